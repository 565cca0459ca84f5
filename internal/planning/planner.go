package planning

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/genai"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// slotOrder is the fixed order the conversation walks through.
var slotOrder = []model.Step{
	model.StepDestination,
	model.StepDates,
	model.StepGroupSize,
	model.StepBudget,
	model.StepEnvironment,
	model.StepFeatures,
}

// Recommender produces property matches for a completed plan.
type Recommender interface {
	ForSession(ctx context.Context, info model.CollectedInfo, limit int) ([]model.ScoredProperty, error)
}

// Config tunes the planner's model usage and result sizing.
type Config struct {
	ExtractionModel    string
	ChatModel          string
	MaxRecommendations int
}

// Planner advances planning sessions one message at a time. Each session id
// has its own lock, so concurrent requests for the same conversation apply
// in some total order and single-message sessions stay consistent.
type Planner struct {
	store SessionStore
	gen   genai.Generator
	rec   Recommender
	cfg   Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds a planner. gen may be nil; extraction and question phrasing then
// run purely on the deterministic rules.
func New(store SessionStore, gen genai.Generator, rec Recommender, cfg Config) *Planner {
	if cfg.MaxRecommendations <= 0 {
		cfg.MaxRecommendations = 5
	}
	return &Planner{
		store: store,
		gen:   gen,
		rec:   rec,
		cfg:   cfg,
		locks: make(map[string]*sync.Mutex),
	}
}

// Outcome is the visible result of advancing a session by one message.
type Outcome struct {
	Session         *model.TravelSession
	Reply           string
	Recommendations []model.ScoredProperty
	Completed       bool
}

// Advance applies one user message to the session, creating the session on
// first contact. An empty sessionID starts a fresh conversation. The step
// only ever moves forward; a message that yields nothing re-asks the same
// question. Once complete, further messages refine the collected info and
// refresh the matches.
func (p *Planner) Advance(ctx context.Context, sessionID, message string) (Outcome, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	lock := p.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, ok := p.store.Get(sessionID)
	if !ok {
		sess = newSession(sessionID)
	}
	wasComplete := sess.CurrentStep == model.StepComplete

	got := p.extract(ctx, message, sess.CurrentStep)
	if ctx.Err() != nil {
		// abandoned request: leave the stored session untouched
		return Outcome{}, ctx.Err()
	}
	apply(&sess.Collected, got, wasComplete)

	sess.ConversationCount++
	for _, s := range slotOrder {
		if slotFilled(sess.Collected, s) {
			sess.StepCompletion[s] = true
		}
	}
	if !wasComplete {
		sess.CurrentStep = nextStep(sess.Collected)
	}
	sess.UpdateTime = time.Now()

	out := Outcome{}
	if sess.CurrentStep == model.StepComplete {
		out.Completed = true
		recs, err := p.rec.ForSession(ctx, sess.Collected, p.cfg.MaxRecommendations)
		if err != nil {
			log.Warn().Err(err).Str("sessionId", sessionID).Msg("session recommendations failed")
			recs = nil
		}
		out.Recommendations = recs
		out.Reply = completionSummary(sess.Collected, len(recs), wasComplete)
	} else {
		out.Reply = p.question(ctx, sess)
	}
	p.store.Put(sess)
	out.Session = sess
	return out, nil
}

// Get returns a copy of the stored session.
func (p *Planner) Get(sessionID string) (*model.TravelSession, error) {
	sess, ok := p.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: session %s", model.ErrNotFound, sessionID)
	}
	return sess, nil
}

// Delete ends a conversation and frees its lock.
func (p *Planner) Delete(sessionID string) error {
	if !p.store.Delete(sessionID) {
		return fmt.Errorf("%w: session %s", model.ErrNotFound, sessionID)
	}
	p.mu.Lock()
	delete(p.locks, sessionID)
	p.mu.Unlock()
	return nil
}

// extract runs model extraction first with the deterministic rules as
// backstop for anything the model missed or when it is unavailable.
func (p *Planner) extract(ctx context.Context, message string, current model.Step) model.CollectedInfo {
	rules := heuristics(message, current)
	if p.gen == nil {
		return rules
	}
	got, err := p.aiExtract(ctx, message)
	if err != nil {
		if ctx.Err() == nil {
			log.Debug().Err(err).Msg("model extraction failed, using rules")
		}
		return rules
	}
	apply(&got, rules, false)
	return got
}

func (p *Planner) lockFor(id string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[id]
	if !ok {
		l = &sync.Mutex{}
		p.locks[id] = l
	}
	return l
}

func newSession(id string) *model.TravelSession {
	now := time.Now()
	return &model.TravelSession{
		SessionID:      id,
		CurrentStep:    model.StepInitial,
		StepCompletion: make(map[model.Step]bool, len(slotOrder)),
		CreationTime:   now,
		UpdateTime:     now,
	}
}

func slotFilled(info model.CollectedInfo, step model.Step) bool {
	switch step {
	case model.StepDestination:
		return info.Destination != nil
	case model.StepDates:
		return info.TravelDates != nil
	case model.StepGroupSize:
		return info.GroupSize != nil
	case model.StepBudget:
		return info.BudgetMin != nil && info.BudgetMax != nil
	case model.StepEnvironment:
		return info.PreferredEnvironment != nil
	case model.StepFeatures:
		return len(info.MustHaveFeatures) > 0
	}
	return false
}

func nextStep(info model.CollectedInfo) model.Step {
	for _, s := range slotOrder {
		if !slotFilled(info, s) {
			return s
		}
	}
	return model.StepComplete
}

// CompletionPercent reports slot progress on a 0 to 100 scale.
func CompletionPercent(info model.CollectedInfo) float64 {
	done := 0
	for _, s := range slotOrder {
		if slotFilled(info, s) {
			done++
		}
	}
	return float64(done) / float64(len(slotOrder)) * 100
}

// apply copies extracted values into the collected set. While slots are still
// being gathered an existing value wins; once the session is complete new
// values refine the old ones and features are merged.
func apply(dst *model.CollectedInfo, got model.CollectedInfo, overwrite bool) {
	if got.Destination != nil && (overwrite || dst.Destination == nil) {
		dst.Destination = got.Destination
	}
	if got.TravelDates != nil && (overwrite || dst.TravelDates == nil) {
		dst.TravelDates = got.TravelDates
	}
	if got.GroupSize != nil && (overwrite || dst.GroupSize == nil) {
		dst.GroupSize = got.GroupSize
	}
	if got.BudgetMin != nil && got.BudgetMax != nil && (overwrite || dst.BudgetMin == nil || dst.BudgetMax == nil) {
		dst.BudgetMin, dst.BudgetMax = got.BudgetMin, got.BudgetMax
	}
	if got.PreferredEnvironment != nil && (overwrite || dst.PreferredEnvironment == nil) {
		dst.PreferredEnvironment = got.PreferredEnvironment
	}
	if len(got.MustHaveFeatures) > 0 {
		switch {
		case overwrite:
			dst.MustHaveFeatures = mergeFeatures(dst.MustHaveFeatures, got.MustHaveFeatures)
		case len(dst.MustHaveFeatures) == 0:
			dst.MustHaveFeatures = got.MustHaveFeatures
		}
	}
}

func mergeFeatures(have, extra []string) []string {
	seen := make(map[string]struct{}, len(have))
	out := append([]string(nil), have...)
	for _, f := range have {
		seen[f] = struct{}{}
	}
	for _, f := range extra {
		if _, dup := seen[f]; !dup {
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}
