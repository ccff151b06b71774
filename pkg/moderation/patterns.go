package moderation

// PatternTable maps a category name to its lowercase keyword triggers.
// Tables are built once at startup and treated as immutable; changing
// patterns means constructing a new scorer.
type PatternTable map[string][]string

// FactualError binds a literal known-false phrase to its correction and the
// score forced onto the misinformation concern when the phrase appears.
type FactualError struct {
	Phrase     string
	Correction string
	Score      float64
}

// ConcernSpec is the full configuration of one concern scorer. The four
// original agents differed only in these values, so one parameterized scorer
// covers all of them.
type ConcernSpec struct {
	Name        string
	DisplayName string
	Patterns    PatternTable
	// PerMatchIncrement is added to a category's score for each matched
	// token, capped at 1.0. The constants differ per concern and must not
	// be normalized across concerns.
	PerMatchIncrement float64
	Recommendation    string
	FactualErrors     []FactualError
	// PromptFocus is the concern-specific guidance inserted into the remote
	// model prompt.
	PromptFocus string
}

const (
	ConcernToxicity           = "toxicity"
	ConcernContextualToxicity = "contextual_toxicity"
	ConcernBias               = "bias"
	ConcernMisinformation     = "misinformation"
	ConcernCoordination       = "coordination"
)

// FallbackModelName marks records produced by the keyword scorer rather than
// a remote model.
const FallbackModelName = "keyword-fallback"

var toxicityPatterns = PatternTable{
	"insults":    {"stupid", "idiot", "moron", "dumbass", "loser", "pathetic", "worthless", "clown"},
	"profanity":  {"damn", "crap", "bullshit", "wtf", "stfu", "ass"},
	"threats":    {"kill", "destroy", "hurt", "punch", "beat", "strangle"},
	"harassment": {"creep", "stalker", "doxx", "harass"},
}

var contextualToxicityPatterns = PatternTable{
	"dehumanizing": {"vermin", "subhuman", "parasite", "scum", "cockroach", "animals"},
	"incitement":   {"exterminate", "purge", "eradicate", "cleanse"},
	"exclusion":    {"deport", "banish", "untermensch", "outsiders"},
}

var biasPatterns = PatternTable{
	"gender":         {"females", "hysterical", "shrill", "bossy", "emasculated"},
	"political":      {"libtard", "commie", "fascist", "sheeple", "snowflake"},
	"ethnic":         {"ghetto", "thug", "illegals", "tribal"},
	"religious":      {"infidel", "heathen", "cultist", "zealot"},
	"generalization": {"always", "never", "everyone", "typical"},
}

var misinformationPatterns = PatternTable{
	"conspiracy":    {"hoax", "coverup", "plandemic", "chemtrails", "deepstate", "illuminati"},
	"pseudoscience": {"detox", "miracle", "homeopathy", "cure-all", "quantum-healing"},
	"clickbait":     {"shocking", "exposed", "bombshell", "unbelievable", "they-dont-want"},
	"denialism":     {"rigged", "fake", "fraud", "staged"},
}

var coordinationPatterns = PatternTable{
	"automation":    {"copypasta", "botnet", "spambot", "autopost"},
	"campaign":      {"brigade", "brigading", "astroturf", "raid"},
	"amplification": {"upvote", "retweet", "boost", "crosspost", "mass-report"},
	"recruitment":   {"join", "telegram", "discord", "dm"},
}

var misinformationFacts = []FactualError{
	{
		Phrase:     "paris is in spain",
		Correction: "Factual correction: Paris is in France, not Spain.",
		Score:      0.95,
	},
	{
		Phrase:     "the earth is flat",
		Correction: "Factual correction: the Earth is an oblate spheroid, not flat.",
		Score:      0.95,
	},
	{
		Phrase:     "vaccines cause autism",
		Correction: "Factual correction: vaccines do not cause autism; the claim has been repeatedly debunked.",
		Score:      0.9,
	},
	{
		Phrase:     "the moon landing was faked",
		Correction: "Factual correction: the Apollo Moon landings are extensively documented real events.",
		Score:      0.9,
	},
	{
		Phrase:     "5g causes covid",
		Correction: "Factual correction: 5G radio signals cannot transmit or cause a viral disease.",
		Score:      0.9,
	},
}

// DefaultConcernSpecs returns the built-in concern set in evaluation order.
// Per-match increments and table contents reproduce the production scoring
// behavior and must stay in sync with ConcernWeights.
func DefaultConcernSpecs() []ConcernSpec {
	return []ConcernSpec{
		{
			Name:              ConcernToxicity,
			DisplayName:       "Toxicity",
			Patterns:          toxicityPatterns,
			PerMatchIncrement: 0.3,
			Recommendation:    "Content contains potentially toxic language. Recommend human review before publication.",
			PromptFocus:       "hate speech, personal attacks, harassment, threats, and profanity",
		},
		{
			Name:              ConcernContextualToxicity,
			DisplayName:       "Toxicity",
			Patterns:          contextualToxicityPatterns,
			PerMatchIncrement: 0.25,
			Recommendation:    "Content contains dehumanizing or inciting language. Recommend escalation to a moderator.",
			PromptFocus:       "dehumanizing language, incitement to violence, and coded exclusionary rhetoric",
		},
		{
			Name:              ConcernBias,
			DisplayName:       "Bias",
			Patterns:          biasPatterns,
			PerMatchIncrement: 0.2,
			Recommendation:    "Content shows indicators of biased framing. Recommend checking for one-sided sourcing.",
			PromptFocus:       "gender, ethnic, religious, political, and socioeconomic bias or one-sided framing",
		},
		{
			Name:              ConcernMisinformation,
			DisplayName:       "Misinformation",
			Patterns:          misinformationPatterns,
			PerMatchIncrement: 0.2,
			Recommendation:    "Content shows misinformation indicators. Recommend verifying claims against reliable sources.",
			PromptFocus:       "factual accuracy, misleading claims, conspiracy theories, and manipulated statistics",
			FactualErrors:     misinformationFacts,
		},
		{
			Name:              ConcernCoordination,
			DisplayName:       "Coordinated Behavior",
			Patterns:          coordinationPatterns,
			PerMatchIncrement: 0.15,
			Recommendation:    "Content shows signs of coordinated inauthentic behavior. Recommend checking posting patterns.",
			PromptFocus:       "signs of coordinated inauthentic behavior, bot-like posting, and astroturfing",
		},
	}
}

// ConcernWeights are the trust-score weights per concern. They sum to 1.0;
// misinformation is weighted highest.
var ConcernWeights = map[string]float64{
	ConcernToxicity:           0.20,
	ConcernContextualToxicity: 0.15,
	ConcernBias:               0.20,
	ConcernMisinformation:     0.30,
	ConcernCoordination:       0.15,
}

// SpecByName finds one of the default concern specs. ok is false for unknown
// names.
func SpecByName(name string) (ConcernSpec, bool) {
	for _, spec := range DefaultConcernSpecs() {
		if spec.Name == name {
			return spec, true
		}
	}
	return ConcernSpec{}, false
}
