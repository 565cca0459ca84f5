package api

import (
	"github.com/gorilla/mux"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api/recovery"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/planning"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
)

// Deps carries the constructed collaborators the HTTP layer serves.
type Deps struct {
	Properties *services.PropertyService
	Users      *services.UserService
	Recommend  *services.RecommendService
	Chat       *services.ChatService
	Planner    *planning.Planner
}

// NewRouter wires every route to its handler. Run-time construction of the
// services happens in the service entrypoint; tests can pass fakes here.
func NewRouter(d Deps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Health
	healthHandler := NewHealthHandler()
	root.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")

	// Properties
	property := NewPropertyHandler(d.Properties)
	root.HandleFunc("/api/properties", property.ListProperties).Methods("GET")
	root.HandleFunc("/api/properties", property.CreateProperty).Methods("POST")
	root.HandleFunc("/api/properties/{propertyId}", property.GetProperty).Methods("GET")

	// Filtering
	filter := NewFilterHandler(d.Recommend)
	root.HandleFunc("/api/filter_properties", filter.FilterProperties).Methods("POST")
	root.HandleFunc("/api/filter_options", filter.FilterOptions).Methods("GET")

	// Scoring
	matcher := NewMatchHandler(d.Recommend)
	root.HandleFunc("/api/smart_match", matcher.SmartMatch).Methods("POST")
	root.HandleFunc("/api/search_by_location", matcher.SearchByLocation).Methods("POST")
	root.HandleFunc("/api/recommend", matcher.Recommend).Methods("POST")

	// Travel planning
	plan := NewPlanningHandler(d.Planner)
	root.HandleFunc("/api/travel_planning", plan.Advance).Methods("POST")
	root.HandleFunc("/api/travel_planning/session/{sessionId}", plan.GetSession).Methods("GET")
	root.HandleFunc("/api/travel_planning/session/{sessionId}", plan.DeleteSession).Methods("DELETE")

	// Users
	user := NewUserHandler(d.Users)
	root.HandleFunc("/api/users", user.CreateUser).Methods("POST")
	root.HandleFunc("/api/users/{userId}", user.GetUser).Methods("GET")
	root.HandleFunc("/api/users/{userId}/weights", user.UpdateWeights).Methods("PUT")

	// Chat
	chat := NewChatHandler(d.Chat)
	root.HandleFunc("/chat", chat.Chat).Methods("POST")

	return root
}
