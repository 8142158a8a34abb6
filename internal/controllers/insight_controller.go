package controllers

import (
	"meetsync/internal/providers"
	"meetsync/internal/services"
	"net/http"
)

type InsightController struct {
	logger  providers.Logger
	service services.InsightServiceInterface
}

func NewInsightController(logger providers.Logger, service services.InsightServiceInterface) *InsightController {
	return &InsightController{
		logger:  logger,
		service: service,
	}
}

func (ic *InsightController) BestDates(w http.ResponseWriter, r *http.Request) {
	entries, err := ic.service.BestDates(r.Context(), groupID(r))
	if err != nil {
		writeError(w, r, ic.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (ic *InsightController) Calendar(w http.ResponseWriter, r *http.Request) {
	days, err := ic.service.Calendar(r.Context(), groupID(r))
	if err != nil {
		writeError(w, r, ic.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (ic *InsightController) Responses(w http.ResponseWriter, r *http.Request) {
	summary, err := ic.service.Responses(r.Context(), groupID(r))
	if err != nil {
		writeError(w, r, ic.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
