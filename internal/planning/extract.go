package planning

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// knownDestinations are the place names recognized anywhere in a message.
// Anything else only fills the destination slot when the conversation is
// already asking for it.
var knownDestinations = []string{
	"quebec city", "niagara falls", "mont-tremblant",
	"toronto", "vancouver", "montreal", "calgary", "ottawa", "edmonton",
	"winnipeg", "halifax", "victoria", "banff", "whistler", "jasper",
	"kelowna", "regina",
}

var (
	datePhraseRe = regexp.MustCompile(`\b(next weekend|this weekend|next week|this week|next month|long weekend|christmas|new year|thanksgiving|summer|winter|spring|fall)\b`)
	monthRe      = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)(\s*\d{1,2}(?:st|nd|rd|th)?(?:\s*(?:-|to)\s*\d{1,2}(?:st|nd|rd|th)?)?)?\b`)

	groupPhraseRe = regexp.MustCompile(`\b(\d{1,2})\s*(?:people|persons|person|guests|guest|adults|adult|travellers|travelers|of us)\b`)
	smallNumberRe = regexp.MustCompile(`\b\d{1,2}\b`)

	dollarRangeRe  = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)\s*(?:-|to)\s*\$?\s*(\d+(?:\.\d+)?)`)
	bareRangeRe    = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:-|to)\s*(\d+(?:\.\d+)?)\b`)
	dollarAmountRe = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)`)
	bareNumberRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)

	environmentRe = regexp.MustCompile(`\b(beach|mountains|mountain|city|forest|lakeside|lake|suburban|countryside)\b`)
)

// featureAliases maps message wording to canonical feature tokens. Order
// matters only for readability; canonicals are deduplicated afterwards.
var featureAliases = []struct{ pattern, canonical string }{
	{"wi-fi", "wifi"},
	{"wifi", "wifi"},
	{"internet", "wifi"},
	{"hot tub", "hot tub"},
	{"jacuzzi", "hot tub"},
	{"kitchen", "kitchen"},
	{"pool", "pool"},
	{"gym", "gym"},
	{"fitness", "gym"},
	{"pet-friendly", "pet-friendly"},
	{"pet friendly", "pet-friendly"},
	{"pets", "pet-friendly"},
	{"parking", "parking"},
	{"balcony", "balcony"},
	{"fireplace", "fireplace"},
	{"air conditioning", "air conditioning"},
	{"bbq", "bbq"},
	{"barbecue", "bbq"},
	{"washer", "washer"},
	{"laundry", "washer"},
}

// heuristics extracts slot values from one message without model help. The
// first pass runs only confident patterns, consuming matched text so one
// phrase never feeds two slots. A second pass relaxes the rule for the slot
// the conversation is parked on, so a plain answer like "4" or "Moncton"
// still fills it.
func heuristics(message string, current model.Step) model.CollectedInfo {
	var got model.CollectedInfo
	text := strings.ToLower(strings.TrimSpace(message))

	got.GroupSize, text = extractGroupSize(text, false)
	got.TravelDates, text = extractDates(text, false)
	got.BudgetMin, got.BudgetMax, text = extractBudget(text, false)
	got.Destination, text = extractDestination(text, false)
	got.PreferredEnvironment, text = extractEnvironment(text)
	got.MustHaveFeatures = extractFeatures(text)

	switch current {
	case model.StepGroupSize:
		if got.GroupSize == nil {
			got.GroupSize, _ = extractGroupSize(text, true)
		}
	case model.StepBudget:
		if got.BudgetMin == nil {
			got.BudgetMin, got.BudgetMax, _ = extractBudget(text, true)
		}
	case model.StepDestination:
		if got.Destination == nil {
			got.Destination, _ = extractDestination(text, true)
		}
	case model.StepDates:
		if got.TravelDates == nil {
			got.TravelDates, _ = extractDates(text, true)
		}
	}
	return got
}

func extractGroupSize(text string, targeted bool) (*int, string) {
	if m := groupPhraseRe.FindStringSubmatchIndex(text); m != nil {
		if n, err := strconv.Atoi(text[m[2]:m[3]]); err == nil && n > 0 {
			return &n, cut(text, m[0], m[1])
		}
	}
	if strings.Contains(text, "family") {
		n := 4
		return &n, text
	}
	if strings.Contains(text, "couple") {
		n := 2
		return &n, text
	}
	if targeted {
		if m := smallNumberRe.FindStringIndex(text); m != nil {
			if n, err := strconv.Atoi(text[m[0]:m[1]]); err == nil && n > 0 {
				return &n, cut(text, m[0], m[1])
			}
		}
	}
	return nil, text
}

func extractDates(text string, targeted bool) (*string, string) {
	if m := datePhraseRe.FindStringIndex(text); m != nil {
		v := title(text[m[0]:m[1]])
		return &v, cut(text, m[0], m[1])
	}
	if m := monthRe.FindStringIndex(text); m != nil {
		v := title(strings.TrimSpace(text[m[0]:m[1]]))
		return &v, cut(text, m[0], m[1])
	}
	if targeted {
		if t := strings.TrimSpace(text); t != "" {
			v := title(t)
			return &v, text
		}
	}
	return nil, text
}

func extractBudget(text string, targeted bool) (*float64, *float64, string) {
	if m := dollarRangeRe.FindStringSubmatchIndex(text); m != nil {
		lo, hi := ordered(parseFloat(text[m[2]:m[3]]), parseFloat(text[m[4]:m[5]]))
		return &lo, &hi, cut(text, m[0], m[1])
	}
	// a bare "100-200" is only a budget when money is plausibly the topic
	if targeted || hasMoneyCue(text) {
		if m := bareRangeRe.FindStringSubmatchIndex(text); m != nil {
			lo, hi := ordered(parseFloat(text[m[2]:m[3]]), parseFloat(text[m[4]:m[5]]))
			return &lo, &hi, cut(text, m[0], m[1])
		}
	}
	if m := dollarAmountRe.FindStringSubmatchIndex(text); m != nil {
		lo := parseFloat(text[m[2]:m[3]])
		hi := lo + 100
		return &lo, &hi, cut(text, m[0], m[1])
	}
	if targeted {
		if nums := bareNumberRe.FindAllString(text, 2); len(nums) > 0 {
			if len(nums) == 2 {
				lo, hi := ordered(parseFloat(nums[0]), parseFloat(nums[1]))
				return &lo, &hi, text
			}
			lo := parseFloat(nums[0])
			hi := lo + 100
			return &lo, &hi, text
		}
	}
	return nil, nil, text
}

func extractDestination(text string, targeted bool) (*string, string) {
	for _, place := range knownDestinations {
		if i := strings.Index(text, place); i != -1 {
			v := title(place)
			return &v, cut(text, i, i+len(place))
		}
	}
	if targeted {
		t := strings.Trim(strings.TrimSpace(text), " .,!?")
		for _, prefix := range []string{"going to ", "somewhere in ", "around ", "near ", "in ", "to ", "visit "} {
			t = strings.TrimPrefix(t, prefix)
		}
		if t != "" && !isFillerAnswer(t) {
			v := title(t)
			return &v, text
		}
	}
	return nil, text
}

func extractEnvironment(text string) (*string, string) {
	if m := environmentRe.FindStringSubmatchIndex(text); m != nil {
		v := canonicalEnvironment(text[m[2]:m[3]])
		return &v, cut(text, m[0], m[1])
	}
	return nil, text
}

func extractFeatures(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, alias := range featureAliases {
		if !strings.Contains(text, alias.pattern) {
			continue
		}
		if _, dup := seen[alias.canonical]; dup {
			continue
		}
		seen[alias.canonical] = struct{}{}
		out = append(out, alias.canonical)
	}
	return out
}

func canonicalEnvironment(s string) string {
	switch s {
	case "mountains":
		return "mountain"
	case "lakeside":
		return "lake"
	}
	return s
}

// isFillerAnswer rejects non-answers and rambling text so they are not echoed
// into a free-text slot.
func isFillerAnswer(t string) bool {
	for _, filler := range []string{"not sure", "no idea", "idk", "dunno", "anywhere", "you choose", "you pick", "surprise me", "don't know", "dont know"} {
		if strings.Contains(t, filler) {
			return true
		}
	}
	return len(strings.Fields(t)) > 6
}

func hasMoneyCue(text string) bool {
	for _, cue := range []string{"$", "budget", "price", "night", "dollar", "cad"} {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

func cut(s string, start, end int) string {
	return strings.TrimSpace(s[:start] + " " + s[end:])
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}
