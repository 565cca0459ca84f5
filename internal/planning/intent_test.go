package planning

import "testing"

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		msg  string
		want Intent
	}{
		{"Can you generate some new properties in BC?", IntentPropertyGeneration},
		{"add listings near the coast", IntentPropertyGeneration},
		{"Help me plan a trip to Banff", IntentTravelPlanning},
		{"I need a vacation", IntentTravelPlanning},
		{"thinking about a weekend getaway", IntentTravelPlanning},
		{"Recommend something nice", IntentRecommendation},
		{"show me places near a lake", IntentRecommendation},
		{"hello there", IntentGeneralChat},
		{"what's the weather like", IntentGeneralChat},
		// generation cues outrank planning cues
		{"generate a few vacation properties", IntentPropertyGeneration},
	}
	for _, tc := range cases {
		if got := ClassifyIntent(tc.msg); got != tc.want {
			t.Fatalf("ClassifyIntent(%q) = %s, want %s", tc.msg, got, tc.want)
		}
	}
}
