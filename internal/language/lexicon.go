package language

import "github.com/avaolo/agri-gateway/internal/domain"

// IntentRule associates an intent with the keywords that trigger it.
// Keywords containing a space are matched as phrases against the whole
// normalized text; single words are matched against individual tokens.
type IntentRule struct {
	Intent   domain.Intent
	Keywords []string
}

// Lexicon holds the static language tables the normalizer is built from.
// The tables are loaded once at startup (built-in defaults, optionally
// extended from configuration) and never mutated afterwards.
type Lexicon struct {
	// CanonicalTerms are known agricultural terms in their proper
	// diacritic form. The normalizer derives its ASCII-fold restoration
	// table from this list.
	CanonicalTerms []string
	// Synonyms maps regional or dialectal variants to one canonical
	// lexical form. Values should themselves be canonical terms so that
	// normalization is idempotent.
	Synonyms map[string]string
	// IntentRules are evaluated in order; the first rule with a matching
	// keyword wins.
	IntentRules []IntentRule
}

// DefaultLexicon returns the built-in Croatian agricultural lexicon.
// Configuration may extend the synonym table, but the canonical terms and
// intent rules below cover the domain vocabulary the backends understand.
func DefaultLexicon() Lexicon {
	return Lexicon{
		CanonicalTerms: []string{
			// crops
			"pšenica", "ječam", "raž", "zob", "kukuruz", "soja", "suncokret",
			"rajčica", "krumpir", "luk", "češnjak", "kupus", "mrkva", "paprika",
			"voće", "povrće", "jabuka", "kruška", "šljiva", "višnja", "trešnja",
			"breskva", "malina", "kupina", "maslina", "vinograd", "lucerna",
			// equipment
			"traktor", "plug", "sijačica", "prskalica", "kombajn", "kosilica",
			"freza", "prikolica", "škare",
			// weather
			"vrijeme", "prognoza", "kiša", "suša", "mraz", "tuča", "oluja",
			"vjetar", "snijeg", "temperatura",
			// activities
			"sjetva", "žetva", "berba", "gnojidba", "prskanje", "zaštita",
			"navodnjavanje", "zalijevanje", "orezivanje", "oranje",
			// inputs
			"gnojivo", "sjeme", "sadnica", "pesticid", "herbicid", "fungicid",
			"dušik", "fosfor", "kalij",
			// pests and diseases
			"štetnici", "uši", "gusjenice", "zlatica", "plamenjača", "pepelnica",
			// market
			"cijena", "tržište", "otkup", "prodaja", "subvencija", "poticaj",
		},
		Synonyms: map[string]string{
			// kajkavian / čakavian / colloquial crop names
			"kuruza":    "kukuruz",
			"kuruz":     "kukuruz",
			"šenica":    "pšenica",
			"pomidor":   "rajčica",
			"pomidora":  "rajčica",
			"paradajz":  "rajčica",
			"kumpir":    "krumpir",
			"krtola":    "krumpir",
			"sime":      "sjeme",
			"vrime":     "vrijeme",
			"daž":       "kiša",
			"dažd":      "kiša",
			"nevera":    "oluja",
			"štrcanje":  "prskanje",
			"štrcaljka": "prskalica",
			"gnoj":      "gnojivo",
			"trator":    "traktor",
		},
		IntentRules: []IntentRule{
			{
				Intent: domain.IntentWeather,
				Keywords: []string{
					"vrijeme", "prognoza", "kiša", "suša", "mraz", "tuča",
					"oluja", "vjetar", "snijeg", "temperatura",
				},
			},
			{
				Intent: domain.IntentPestControl,
				Keywords: []string{
					"štetnici", "prskanje", "zaštita", "pesticid", "herbicid",
					"fungicid", "uši", "lisne uši", "gusjenice", "zlatica",
					"plamenjača", "pepelnica",
				},
			},
			{
				Intent: domain.IntentPricing,
				Keywords: []string{
					"cijena", "tržište", "otkup", "prodaja", "subvencija",
					"poticaj", "košta", "kosta",
				},
			},
			{
				Intent: domain.IntentPlanting,
				Keywords: []string{
					"sjetva", "sijati", "posijati", "saditi", "sadnja",
					"sadnica", "sjeme",
				},
			},
			{
				Intent: domain.IntentFertilization,
				Keywords: []string{
					"gnojidba", "gnojivo", "dušik", "fosfor", "kalij",
				},
			},
			{
				Intent: domain.IntentIrrigation,
				Keywords: []string{
					"navodnjavanje", "zalijevanje", "zalijevati",
				},
			},
		},
	}
}
