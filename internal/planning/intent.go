package planning

import "strings"

// Intent labels what a free-form chat message is asking for.
type Intent string

const (
	IntentTravelPlanning     Intent = "travel_planning"
	IntentPropertyGeneration Intent = "property_generation"
	IntentRecommendation     Intent = "recommendation"
	IntentGeneralChat        Intent = "general_chat"
)

var (
	generationCues = []string{
		"generate", "add properties", "add new properties", "new listings",
		"create properties", "more properties", "add listings",
	}
	planningCues = []string{
		"plan a trip", "plan my trip", "planning a trip", "trip", "vacation",
		"getaway", "travel", "holiday",
	}
	recommendCues = []string{
		"recommend", "suggest", "show me", "find me", "looking for a place",
		"best place",
	}
)

// ClassifyIntent routes a chat message by keyword. Generation cues win over
// planning cues because "generate vacation properties" mentions both.
func ClassifyIntent(message string) Intent {
	text := strings.ToLower(message)
	for _, cue := range generationCues {
		if strings.Contains(text, cue) {
			return IntentPropertyGeneration
		}
	}
	for _, cue := range planningCues {
		if strings.Contains(text, cue) {
			return IntentTravelPlanning
		}
	}
	for _, cue := range recommendCues {
		if strings.Contains(text, cue) {
			return IntentRecommendation
		}
	}
	return IntentGeneralChat
}
