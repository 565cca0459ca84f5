package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/genai"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

const extractSystem = `You extract vacation planning details from a traveler's message. Respond with a single JSON object and nothing else. Use null for anything the message does not state. Fields: "destination" (string), "travel_dates" (string), "group_size" (number), "budget_min" (number), "budget_max" (number), "preferred_environment" (one of beach, mountain, city, forest, lake, suburban, countryside), "must_have_features" (array of strings).`

type aiSlots struct {
	Destination          *string  `json:"destination"`
	TravelDates          *string  `json:"travel_dates"`
	GroupSize            *float64 `json:"group_size"`
	BudgetMin            *float64 `json:"budget_min"`
	BudgetMax            *float64 `json:"budget_max"`
	PreferredEnvironment *string  `json:"preferred_environment"`
	MustHaveFeatures     []string `json:"must_have_features"`
}

// aiExtract asks the model which slot values one message carries. The reply
// is cleaned before use: blank strings drop, reversed budget bounds swap and
// a lone bound becomes a band.
func (p *Planner) aiExtract(ctx context.Context, message string) (model.CollectedInfo, error) {
	out, err := p.gen.Generate(ctx, genai.Request{
		System:      extractSystem,
		User:        message,
		Model:       p.cfg.ExtractionModel,
		MaxTokens:   300,
		Temperature: 0.1,
	})
	if err != nil {
		return model.CollectedInfo{}, err
	}
	doc, ok := genai.ExtractJSON(out)
	if !ok {
		return model.CollectedInfo{}, fmt.Errorf("no JSON object in extraction reply")
	}
	var slots aiSlots
	if err := json.Unmarshal([]byte(doc), &slots); err != nil {
		return model.CollectedInfo{}, fmt.Errorf("decode extraction reply: %w", err)
	}
	return slots.collected(), nil
}

func (s aiSlots) collected() model.CollectedInfo {
	var info model.CollectedInfo
	info.Destination = cleanText(s.Destination)
	info.TravelDates = cleanText(s.TravelDates)
	if s.GroupSize != nil {
		if n := int(math.Round(*s.GroupSize)); n > 0 {
			info.GroupSize = &n
		}
	}
	switch {
	case s.BudgetMin != nil && s.BudgetMax != nil:
		lo, hi := ordered(*s.BudgetMin, *s.BudgetMax)
		if hi > 0 {
			info.BudgetMin, info.BudgetMax = &lo, &hi
		}
	case s.BudgetMax != nil && *s.BudgetMax > 0:
		lo := 0.0
		info.BudgetMin, info.BudgetMax = &lo, s.BudgetMax
	case s.BudgetMin != nil && *s.BudgetMin > 0:
		hi := *s.BudgetMin + 100
		info.BudgetMin, info.BudgetMax = s.BudgetMin, &hi
	}
	if v := cleanText(s.PreferredEnvironment); v != nil {
		lower := strings.ToLower(*v)
		info.PreferredEnvironment = &lower
	}
	for _, f := range s.MustHaveFeatures {
		if t := strings.ToLower(strings.TrimSpace(f)); t != "" {
			info.MustHaveFeatures = append(info.MustHaveFeatures, t)
		}
	}
	return info
}

func cleanText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" || strings.EqualFold(t, "null") || strings.EqualFold(t, "none") {
		return nil
	}
	return &t
}
