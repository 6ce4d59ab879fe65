package textclean

// Canonical lexicons for French spoken-language cleanup. The source
// material carried several divergent copies of these lists; they are
// reconciled here into one set: entries that behave as hesitation noise are
// fillers, entries that behave as discourse connectors get the comma
// treatment, and no entry appears in both.

// DefaultFillers are hesitation tokens removed outright.
var DefaultFillers = []string{
	"euh", "hum", "um", "ah", "ben", "bah", "hein", "quoi", "genre",
}

// DefaultConnectors are discourse connectors that receive a trailing comma.
var DefaultConnectors = []string{
	"alors", "donc", "du coup", "en fait", "voilà", "ensuite",
	"par conséquent", "d'ailleurs", "cependant", "néanmoins",
}

// DefaultInterrogativeLeads mark a sentence without terminal punctuation as
// a question when it starts with one of them.
var DefaultInterrogativeLeads = []string{
	"est-ce que", "n'est-ce pas", "qui", "que", "quoi", "où", "quand",
	"comment", "pourquoi", "quel", "quelle", "quels", "quelles",
}

// DefaultSpokenRewrites replace spoken formulations with written ones in
// CleanAdvanced. Ordered so chained rewrites collapse within a single pass
// ("ça marche" becomes "d'accord" becomes "OK"), keeping the rewrite
// idempotent.
var DefaultSpokenRewrites = [][2]string{
	{"parce que", "car"},
	{"ça marche", "d'accord"},
	{"d'accord", "OK"},
}
