package controllers

import (
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"meetsync/internal/services"
	"net/http"

	"github.com/gorilla/mux"
)

type AvailabilityController struct {
	logger  providers.Logger
	service services.AvailabilityServiceInterface
}

func NewAvailabilityController(logger providers.Logger, service services.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		logger:  logger,
		service: service,
	}
}

func (ac *AvailabilityController) Upsert(w http.ResponseWriter, r *http.Request) {
	var input models.UpsertAvailabilityInput
	if !decodeBody(w, r, &input) {
		return
	}
	record, err := ac.service.Upsert(r.Context(), groupID(r), &input)
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (ac *AvailabilityController) List(w http.ResponseWriter, r *http.Request) {
	records, err := ac.service.List(r.Context(), groupID(r))
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GetForMember answers with an empty record when the member has not
// responded yet.
func (ac *AvailabilityController) GetForMember(w http.ResponseWriter, r *http.Request) {
	gid := groupID(r)
	memberID := mux.Vars(r)["memberId"]
	record, found, err := ac.service.GetForMember(r.Context(), gid, memberID)
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, models.NewEmptyAvailability(gid, memberID))
		return
	}
	writeJSON(w, http.StatusOK, record)
}
