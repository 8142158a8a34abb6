package controllers

import (
	"fmt"
	"meetsync/internal/providers"
	"net/http"
	"time"
)

type HealthController struct {
	stats     providers.SubscriptionStatsSource
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Groups        int     `json:"groups"`
	Listeners     int     `json:"listeners"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Groups:        hc.stats.GroupCount(),
		Listeners:     hc.stats.ListenerCount(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(stats providers.SubscriptionStatsSource) *HealthController {
	return &HealthController{
		stats:     stats,
		startTime: time.Now(),
	}
}
