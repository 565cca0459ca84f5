package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/genai"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/planning"
)

const chatSystem = `You are a friendly assistant for a Canadian vacation
rental service. Answer briefly and helpfully. If the user seems to want to
plan a trip, invite them to describe the destination, dates, group size,
budget, and preferred setting.`

const cannedChatReply = "I can help you plan a getaway. Tell me where you'd " +
	"like to go, when, how many people are coming, and your nightly budget."

// ChatService routes free-form chat messages to the matching capability:
// property generation, travel planning, or plain conversation.
type ChatService struct {
	gen       genai.Generator
	planner   *planning.Planner
	propGen   *PropertyGenService
	chatModel string
}

func NewChatService(gen genai.Generator, planner *planning.Planner, propGen *PropertyGenService, chatModel string) *ChatService {
	return &ChatService{gen: gen, planner: planner, propGen: propGen, chatModel: chatModel}
}

// ChatResult is the routed response for one chat message. Step and
// Completion are only meaningful when SessionID is set.
type ChatResult struct {
	Intent          planning.Intent
	Reply           string
	SessionID       string
	Step            model.Step
	Completion      float64
	Completed       bool
	Properties      []model.Property
	Recommendations []model.ScoredProperty
}

// Handle classifies the message and dispatches it. Recommendation asks go
// through the planner too: an incomplete session needs its slots filled
// first, and a complete one refreshes its matches on any new message.
func (s *ChatService) Handle(ctx context.Context, message, sessionID string) (*ChatResult, error) {
	intent := planning.ClassifyIntent(message)
	res := &ChatResult{Intent: intent}

	switch intent {
	case planning.IntentPropertyGeneration:
		props, fromFallback, err := s.propGen.Generate(ctx, message)
		if err != nil {
			return nil, err
		}
		res.Properties = props
		if fromFallback {
			res.Reply = fmt.Sprintf("I added %d properties from our standard collection to the catalog.", len(props))
		} else {
			res.Reply = fmt.Sprintf("I generated %d new properties and added them to the catalog.", len(props))
		}
		return res, nil

	case planning.IntentTravelPlanning, planning.IntentRecommendation:
		out, err := s.planner.Advance(ctx, sessionID, message)
		if err != nil {
			return nil, err
		}
		res.Reply = out.Reply
		res.SessionID = out.Session.SessionID
		res.Step = out.Session.CurrentStep
		res.Completion = planning.CompletionPercent(out.Session.Collected)
		res.Completed = out.Completed
		res.Recommendations = out.Recommendations
		return res, nil

	default:
		res.Reply = s.smallTalk(ctx, message)
		return res, nil
	}
}

func (s *ChatService) smallTalk(ctx context.Context, message string) string {
	if s.gen == nil {
		return cannedChatReply
	}
	reply, err := s.gen.Generate(ctx, genai.Request{
		System:      chatSystem,
		User:        message,
		Model:       s.chatModel,
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil || reply == "" {
		log.Debug().Err(err).Msg("chat generation failed, using canned reply")
		return cannedChatReply
	}
	return reply
}
