package language

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/avaolo/agri-gateway/internal/domain"
)

// CanonicalText is the result of normalizing one piece of input text.
type CanonicalText struct {
	// Text is the canonical form: lowercased, diacritic-restored,
	// synonym-resolved.
	Text string
	// Intent is the classification from the rule table, IntentUnknown
	// when no rule matched.
	Intent domain.Intent
	// Locale is the locale hint passed by the caller, or the configured
	// default when no hint was available.
	Locale string
}

// stripMarks removes combining marks after canonical decomposition, which
// turns č/ć/š/ž into their ASCII base letters. đ carries a stroke rather
// than a combining mark and is handled separately in foldASCII.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldASCII returns the ASCII-substituted spelling of a lowercase term,
// the way farmers commonly type it on keyboards without Croatian layout.
func foldASCII(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return strings.ReplaceAll(folded, "đ", "d")
}

// Normalizer rewrites raw Croatian text into canonical form. It is built
// once from a Lexicon and safe for unsynchronized concurrent use; all
// lookups go against immutable tables.
type Normalizer struct {
	folds         map[string]string
	synonyms      map[string]string
	rules         []IntentRule
	defaultLocale string
}

// NewNormalizer builds a Normalizer from the given lexicon. The ASCII
// restoration table is derived from the canonical terms and synonym keys:
// a folded spelling maps back to its proper form only when it resolves to
// exactly one known term. Folds shared by more than one term are dropped
// entirely, so ambiguous ASCII input is passed through rather than
// guessed into a possibly wrong diacritic.
func NewNormalizer(lex Lexicon, defaultLocale string) *Normalizer {
	canonical := make(map[string]struct{}, len(lex.CanonicalTerms))
	for _, t := range lex.CanonicalTerms {
		canonical[strings.ToLower(t)] = struct{}{}
	}

	synonyms := make(map[string]string, len(lex.Synonyms))
	for k, v := range lex.Synonyms {
		k, v = strings.ToLower(k), strings.ToLower(v)
		// A canonical term must stay a fixed point of normalization, so a
		// synonym entry may never shadow one.
		if _, isCanonical := canonical[k]; isCanonical {
			continue
		}
		synonyms[k] = v
	}

	folds := make(map[string]string)
	ambiguous := make(map[string]struct{})
	addFold := func(from, to string) {
		if from == to {
			return
		}
		// A fold that is itself a known term or dialect word is ambiguous
		// by definition: the typed form already means something.
		if _, ok := canonical[from]; ok {
			return
		}
		if _, ok := synonyms[from]; ok {
			return
		}
		if _, bad := ambiguous[from]; bad {
			return
		}
		if existing, ok := folds[from]; ok && existing != to {
			delete(folds, from)
			ambiguous[from] = struct{}{}
			return
		}
		folds[from] = to
	}
	for term := range canonical {
		addFold(foldASCII(term), term)
	}
	// ASCII-typed dialect words restore straight to the canonical value.
	for k, v := range synonyms {
		addFold(foldASCII(k), v)
	}

	rules := make([]IntentRule, len(lex.IntentRules))
	for i, r := range lex.IntentRules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		rules[i] = IntentRule{Intent: r.Intent, Keywords: kws}
	}

	return &Normalizer{
		folds:         folds,
		synonyms:      synonyms,
		rules:         rules,
		defaultLocale: defaultLocale,
	}
}

// Normalize rewrites text into its canonical form and classifies its
// intent. The function is pure and deterministic: identical input always
// yields identical output, and Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text, localeHint string) CanonicalText {
	composed, _, err := transform.String(norm.NFC, text)
	if err != nil {
		composed = text
	}
	lowered := strings.ToLower(composed)

	var b strings.Builder
	b.Grow(len(lowered))
	tokens := make(map[string]struct{})

	var word strings.Builder
	flush := func() {
		if word.Len() == 0 {
			return
		}
		tok := n.normalizeToken(word.String())
		tokens[tok] = struct{}{}
		b.WriteString(tok)
		word.Reset()
	}
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word.WriteRune(r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()

	normalized := b.String()

	locale := localeHint
	if locale == "" {
		locale = n.defaultLocale
	}

	return CanonicalText{
		Text:   normalized,
		Intent: n.classify(normalized, tokens),
		Locale: locale,
	}
}

// normalizeToken restores diacritics for a known ASCII-substituted term
// and resolves dialectal synonyms to the canonical form. Unknown tokens
// pass through unchanged.
func (n *Normalizer) normalizeToken(tok string) string {
	if restored, ok := n.folds[tok]; ok {
		tok = restored
	}
	if canonical, ok := n.synonyms[tok]; ok {
		tok = canonical
	}
	return tok
}

// classify runs the ordered intent rule table over the canonical text.
// Single-word keywords match whole tokens; keywords with spaces match as
// phrases. No match is a valid terminal classification, not a failure.
func (n *Normalizer) classify(text string, tokens map[string]struct{}) domain.Intent {
	for _, rule := range n.rules {
		for _, kw := range rule.Keywords {
			if strings.ContainsRune(kw, ' ') {
				if strings.Contains(text, kw) {
					return rule.Intent
				}
				continue
			}
			if _, ok := tokens[kw]; ok {
				return rule.Intent
			}
		}
	}
	return domain.IntentUnknown
}
