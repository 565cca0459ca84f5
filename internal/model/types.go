package model

import "time"

// Property represents one rentable unit in the catalog.
// Records are created by import or seeding and are read-only afterwards,
// except for coordinate and image backfill.
type Property struct {
	ID           int64    `json:"propertyId"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	NightlyPrice float64  `json:"nightlyPrice"`
	Features     []string `json:"features"`
	Tags         []string `json:"tags"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	ImageAlt     *string  `json:"imageAlt,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the property was ever geocoded.
func (p *Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Preferences is one user's or one session's ranking configuration.
// BudgetMin/BudgetMax are swap-normalized by the engine when min > max.
// An empty RequiredFeatures set means "no feature preference" and scores
// neutrally; an empty Types set accepts any property type.
type Preferences struct {
	BudgetMin            float64  `json:"budgetMin"`
	BudgetMax            float64  `json:"budgetMax"`
	PreferredEnvironment string   `json:"preferredEnvironment,omitempty"`
	RequiredFeatures     []string `json:"requiredFeatures,omitempty"`
	Types                []string `json:"types,omitempty"`
	LocationWeight       float64  `json:"locationWeight"`
	TypeWeight           float64  `json:"typeWeight"`
	FeaturesWeight       float64  `json:"featuresWeight"`
	PriceWeight          float64  `json:"priceWeight"`
}

// User represents a stored profile with weighted ranking preferences.
type User struct {
	ID              int64    `json:"userId"`
	Name            string   `json:"name"`
	GroupSize       *int     `json:"groupSize,omitempty"`
	PreferredEnv    *string  `json:"preferredEnv,omitempty"`
	BudgetMin       *float64 `json:"budgetMin,omitempty"`
	BudgetMax       *float64 `json:"budgetMax,omitempty"`
	WeighedLocation int      `json:"weighedLocation"`
	WeighedType     int      `json:"weighedType"`
	WeighedFeatures int      `json:"weighedFeatures"`
	WeighedPrice    int      `json:"weighedPrice"`
	TravelStartDate *string  `json:"travelStartDate,omitempty"`
	TravelEndDate   *string  `json:"travelEndDate,omitempty"`
}

// Step identifies one state of the travel-planning conversation.
type Step string

const (
	StepInitial     Step = "initial"
	StepDestination Step = "destination"
	StepDates       Step = "dates"
	StepGroupSize   Step = "group_size"
	StepBudget      Step = "budget"
	StepEnvironment Step = "environment"
	StepFeatures    Step = "features"
	StepComplete    Step = "complete"
)

// CollectedInfo holds the slot values extracted so far in a planning session.
// The key set is fixed; nil means the slot has not been filled.
type CollectedInfo struct {
	Destination          *string  `json:"destination,omitempty"`
	TravelDates          *string  `json:"travelDates,omitempty"`
	GroupSize            *int     `json:"groupSize,omitempty"`
	BudgetMin            *float64 `json:"budgetMin,omitempty"`
	BudgetMax            *float64 `json:"budgetMax,omitempty"`
	PreferredEnvironment *string  `json:"preferredEnvironment,omitempty"`
	MustHaveFeatures     []string `json:"mustHaveFeatures,omitempty"`
}

// TravelSession is one in-progress planning conversation.
// CurrentStep only moves forward through the fixed slot order and jumps to
// StepComplete once every slot is filled; it never regresses.
type TravelSession struct {
	SessionID         string        `json:"sessionId"`
	CurrentStep       Step          `json:"currentStep"`
	Collected         CollectedInfo `json:"collectedInfo"`
	StepCompletion    map[Step]bool `json:"stepCompletion"`
	ConversationCount int           `json:"conversationCount"`
	CreationTime      time.Time     `json:"creationTime"`
	UpdateTime        time.Time     `json:"updateTime"`
}

// Clone returns a deep copy. Session stores hand out copies so readers never
// observe a conversation mid-update.
func (s *TravelSession) Clone() *TravelSession {
	if s == nil {
		return nil
	}
	c := *s
	c.Collected = s.Collected.Clone()
	c.StepCompletion = make(map[Step]bool, len(s.StepCompletion))
	for k, v := range s.StepCompletion {
		c.StepCompletion[k] = v
	}
	return &c
}

// Clone returns a deep copy of the collected slot values.
func (c CollectedInfo) Clone() CollectedInfo {
	out := c
	if c.Destination != nil {
		v := *c.Destination
		out.Destination = &v
	}
	if c.TravelDates != nil {
		v := *c.TravelDates
		out.TravelDates = &v
	}
	if c.GroupSize != nil {
		v := *c.GroupSize
		out.GroupSize = &v
	}
	if c.BudgetMin != nil {
		v := *c.BudgetMin
		out.BudgetMin = &v
	}
	if c.BudgetMax != nil {
		v := *c.BudgetMax
		out.BudgetMax = &v
	}
	if c.PreferredEnvironment != nil {
		v := *c.PreferredEnvironment
		out.PreferredEnvironment = &v
	}
	out.MustHaveFeatures = append([]string(nil), c.MustHaveFeatures...)
	return out
}

// ScoredProperty pairs a property with its ranking score and the per-criterion
// breakdown used to explain it.
type ScoredProperty struct {
	Property         Property `json:"property"`
	Score            float64  `json:"score"`
	PriceScore       float64  `json:"priceScore"`
	EnvironmentScore float64  `json:"environmentScore"`
	FeaturesScore    float64  `json:"featuresScore"`
	TypeScore        float64  `json:"typeScore"`
	LocationScore    float64  `json:"locationScore"`
}
