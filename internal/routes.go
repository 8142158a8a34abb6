package internal

import (
	"meetsync/internal/controllers"
	"meetsync/internal/providers"
	"meetsync/internal/structures"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func InitRoutes(
	groupController *controllers.GroupController,
	availabilityController *controllers.AvailabilityController,
	insightController *controllers.InsightController,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/api/groups", http.HandlerFunc(groupController.CreateGroup))
	routers.Get("/api/groups/{groupId}", http.HandlerFunc(groupController.GetGroup))
	routers.Post("/api/groups/{groupId}/members", http.HandlerFunc(groupController.CreateMember))
	routers.Get("/api/groups/{groupId}/members", http.HandlerFunc(groupController.ListMembers))
	routers.Post("/api/groups/{groupId}/invites", http.HandlerFunc(groupController.Invite))

	routers.Post("/api/groups/{groupId}/availability", http.HandlerFunc(availabilityController.Upsert))
	routers.Get("/api/groups/{groupId}/availability", http.HandlerFunc(availabilityController.List))
	routers.Get("/api/groups/{groupId}/availability/{memberId}", http.HandlerFunc(availabilityController.GetForMember))

	routers.Get("/api/groups/{groupId}/best-dates", http.HandlerFunc(insightController.BestDates))
	routers.Get("/api/groups/{groupId}/calendar", http.HandlerFunc(insightController.Calendar))
	routers.Get("/api/groups/{groupId}/responses", http.HandlerFunc(insightController.Responses))
	return routers
}

// NewHandler assembles the full HTTP surface: instrumented and CORS-wrapped
// API routes plus the websocket, health and metrics endpoints.
func NewHandler(
	conf *structures.Config,
	router providers.RouterProviderInterface,
	wsController *controllers.WsController,
	healthController *controllers.HealthController,
	metrics providers.MetricsProviderInterface,
) http.Handler {
	api := router.Build()
	api.Use(func(next http.Handler) http.Handler {
		return providers.MetricsMiddleware(metrics, next)
	})
	api.HandleFunc("/ws", wsController.Serve).Methods(http.MethodGet)
	api.HandleFunc("/health", healthController.Health).Methods(http.MethodGet)
	if conf.Metrics.Enabled {
		api.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	origins := conf.Broadcast.AllowedOrigin
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(api)
}
