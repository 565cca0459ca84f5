package planning

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/genai"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// questionFor returns the deterministic prompt for the slot the session is
// waiting on, folding in values collected so far.
func questionFor(step model.Step, info model.CollectedInfo) string {
	switch step {
	case model.StepDestination:
		return "Where would you like to go? A city, a town or a region all work."
	case model.StepDates:
		if info.Destination != nil {
			return fmt.Sprintf("%s sounds great! When are you planning to travel?", *info.Destination)
		}
		return "When are you planning to travel?"
	case model.StepGroupSize:
		return "How many people are traveling?"
	case model.StepBudget:
		if info.GroupSize != nil && *info.GroupSize > 1 {
			return fmt.Sprintf("What nightly budget should I aim for, for the %d of you? A range like $100-200 works.", *info.GroupSize)
		}
		return "What is your nightly budget? A range like $100-200 works."
	case model.StepEnvironment:
		return "What kind of setting do you prefer? Beach, mountain, city, forest, lake or suburban?"
	case model.StepFeatures:
		return "Any must-have features? Wifi, a kitchen, a pool, parking, that sort of thing."
	}
	return "Tell me about the trip you have in mind."
}

const questionSystem = `You are a friendly vacation planning assistant. Rephrase the given question in one short conversational sentence. Keep the same meaning and any examples. Reply with the question only.`

// question picks the next prompt, letting the chat model rephrase the
// template when one is configured. Phrasing failures fall back silently.
func (p *Planner) question(ctx context.Context, sess *model.TravelSession) string {
	base := questionFor(sess.CurrentStep, sess.Collected)
	if p.gen == nil {
		return base
	}
	out, err := p.gen.Generate(ctx, genai.Request{
		System:      questionSystem,
		User:        base,
		Model:       p.cfg.ChatModel,
		MaxTokens:   80,
		Temperature: 0.7,
	})
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			log.Debug().Err(err).Str("step", string(sess.CurrentStep)).Msg("question rephrasing failed, using template")
		}
		return base
	}
	return out
}

// completionSummary describes the finished plan and how many matches it
// produced.
func completionSummary(info model.CollectedInfo, matches int, refined bool) string {
	var parts []string
	if info.Destination != nil {
		parts = append(parts, *info.Destination)
	}
	if info.TravelDates != nil {
		parts = append(parts, fmt.Sprintf("traveling %s", *info.TravelDates))
	}
	if info.GroupSize != nil {
		parts = append(parts, fmt.Sprintf("%d travelers", *info.GroupSize))
	}
	if info.BudgetMin != nil && info.BudgetMax != nil {
		parts = append(parts, fmt.Sprintf("$%.0f-$%.0f per night", *info.BudgetMin, *info.BudgetMax))
	}
	if info.PreferredEnvironment != nil {
		parts = append(parts, fmt.Sprintf("%s setting", *info.PreferredEnvironment))
	}
	if len(info.MustHaveFeatures) > 0 {
		parts = append(parts, "with "+strings.Join(info.MustHaveFeatures, ", "))
	}

	lead := "Your plan is set"
	if refined {
		lead = "Preferences updated"
	}
	summary := lead
	if len(parts) > 0 {
		summary += ": " + strings.Join(parts, ", ")
	}
	switch {
	case matches == 0:
		return summary + ". I could not find a match yet, try loosening the budget or the feature list."
	case matches == 1:
		return summary + ". I found 1 place that fits."
	default:
		return summary + fmt.Sprintf(". I found %d places that fit.", matches)
	}
}
