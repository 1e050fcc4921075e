// Package language implements the gateway's Croatian text normalizer.
//
// The normalizer rewrites raw farmer input into a canonical form used for
// routing and intent detection: it lowercases while preserving the
// meaning-bearing diacritics (č, ć, š, ž, đ), folds common ASCII
// substitutions back to the proper diacritic form when the result is a
// known agricultural term, expands regional and dialectal synonyms to one
// canonical lexical form, and classifies a coarse intent from an ordered
// keyword rule table.
//
// Normalization is a pure function over static tables: no network, no
// disk, identical input always yields identical output, and normalizing
// an already-normalized string is a no-op.
package language
