package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/genai"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

const genSystem = `You create fictional Canadian vacation rental listings.
Respond with ONLY a JSON array of 3 to 5 objects, no prose. Each object has:
"location" (city and province), "type" (e.g. Cabin, Condo, House, Chalet),
"nightly_price" (number between 50 and 500), "features" (array of lowercase
strings), "tags" (array from: beach, mountain, city, forest, lake, suburban,
countryside).`

// genProperty is the JSON shape requested from the model. Parsed per object
// so one malformed element does not discard the batch.
type genProperty struct {
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	NightlyPrice float64  `json:"nightly_price"`
	Features     []string `json:"features"`
	Tags         []string `json:"tags"`
}

// PropertyGenService asks the model for fresh catalog entries and falls back
// to fixed templates when generation fails or nothing usable parses.
type PropertyGenService struct {
	gen      genai.Generator
	props    *PropertyService
	genModel string
}

func NewPropertyGenService(gen genai.Generator, props *PropertyService, genModel string) *PropertyGenService {
	return &PropertyGenService{gen: gen, props: props, genModel: genModel}
}

// Generate produces new properties from the request text, stores them, and
// reports whether the template fallback was used. Properties the store
// rejects are logged and skipped.
func (s *PropertyGenService) Generate(ctx context.Context, request string) ([]model.Property, bool, error) {
	parsed := s.generate(ctx, request)
	fromFallback := false
	if len(parsed) == 0 {
		parsed = TemplateProperties()
		fromFallback = true
	}

	stored := make([]model.Property, 0, len(parsed))
	for i := range parsed {
		created, err := s.props.CreateProperty(ctx, &parsed[i])
		if err != nil {
			if ctx.Err() != nil {
				return stored, fromFallback, ctx.Err()
			}
			log.Warn().Err(err).Str("location", parsed[i].Location).Msg("generated property rejected by store")
			continue
		}
		stored = append(stored, *created)
	}
	if len(stored) == 0 {
		return nil, fromFallback, fmt.Errorf("no generated property could be stored")
	}
	return stored, fromFallback, nil
}

func (s *PropertyGenService) generate(ctx context.Context, request string) []model.Property {
	if s.gen == nil {
		return nil
	}
	user := "Generate the listings now."
	if strings.TrimSpace(request) != "" {
		user = fmt.Sprintf("Generate the listings now. The user asked: %q", request)
	}
	raw, err := s.gen.Generate(ctx, genai.Request{
		System:      genSystem,
		User:        user,
		Model:       s.genModel,
		MaxTokens:   1200,
		Temperature: 0.8,
	})
	if err != nil {
		log.Warn().Err(err).Msg("property generation failed, using templates")
		return nil
	}
	return parseGenerated(raw)
}

// parseGenerated extracts properties from a model response: pull out the JSON
// value, accept either an array or a lone object, and salvage valid elements
// from a partially broken array.
func parseGenerated(raw string) []model.Property {
	blob, ok := genai.ExtractJSON(raw)
	if !ok {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &elems); err != nil {
		elems = []json.RawMessage{json.RawMessage(blob)}
	}

	out := make([]model.Property, 0, len(elems))
	for _, el := range elems {
		var g genProperty
		if err := json.Unmarshal(el, &g); err != nil {
			log.Debug().Err(err).Msg("generated element does not parse")
			continue
		}
		p, err := g.toModel()
		if err != nil {
			log.Debug().Err(err).Str("location", g.Location).Msg("generated property rejected")
			continue
		}
		out = append(out, p)
	}
	return out
}

func (g genProperty) toModel() (model.Property, error) {
	if strings.TrimSpace(g.Location) == "" || strings.TrimSpace(g.Type) == "" {
		return model.Property{}, fmt.Errorf("missing location or type")
	}
	if g.NightlyPrice < 50 || g.NightlyPrice > 500 {
		return model.Property{}, fmt.Errorf("nightly price %.2f outside 50-500", g.NightlyPrice)
	}
	return model.Property{
		Location:     strings.TrimSpace(g.Location),
		Type:         strings.TrimSpace(g.Type),
		NightlyPrice: g.NightlyPrice,
		Features:     g.Features,
		Tags:         g.Tags,
	}, nil
}

// TemplateProperties returns the fixed fallback listings used when
// generation yields nothing usable.
func TemplateProperties() []model.Property {
	return []model.Property{
		{Location: "Toronto, Ontario", Type: "Condo", NightlyPrice: 180, Features: []string{"wifi", "kitchen", "air conditioning"}, Tags: []string{"city"}},
		{Location: "Vancouver, British Columbia", Type: "House", NightlyPrice: 250, Features: []string{"wifi", "garden", "parking"}, Tags: []string{"beach", "city"}},
		{Location: "Montreal, Quebec", Type: "Apartment", NightlyPrice: 120, Features: []string{"wifi", "kitchen"}, Tags: []string{"city"}},
		{Location: "Calgary, Alberta", Type: "Villa", NightlyPrice: 300, Features: []string{"pool", "hot tub", "parking"}, Tags: []string{"suburban"}},
	}
}
