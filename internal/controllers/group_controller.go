package controllers

import (
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"meetsync/internal/services"
	"net/http"
)

type GroupController struct {
	logger  providers.Logger
	service services.GroupServiceInterface
}

func NewGroupController(logger providers.Logger, service services.GroupServiceInterface) *GroupController {
	return &GroupController{
		logger:  logger,
		service: service,
	}
}

func (gc *GroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var input models.CreateGroupInput
	if !decodeBody(w, r, &input) {
		return
	}
	out, err := gc.service.CreateGroup(r.Context(), &input)
	if err != nil {
		writeError(w, r, gc.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (gc *GroupController) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := gc.service.GetGroup(r.Context(), groupID(r))
	if err != nil {
		writeError(w, r, gc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (gc *GroupController) CreateMember(w http.ResponseWriter, r *http.Request) {
	var input models.CreateMemberInput
	if !decodeBody(w, r, &input) {
		return
	}
	member, err := gc.service.CreateMember(r.Context(), groupID(r), &input)
	if err != nil {
		writeError(w, r, gc.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (gc *GroupController) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := gc.service.ListMembers(r.Context(), groupID(r))
	if err != nil {
		writeError(w, r, gc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (gc *GroupController) Invite(w http.ResponseWriter, r *http.Request) {
	var input models.InviteInput
	if !decodeBody(w, r, &input) {
		return
	}
	result, err := gc.service.Invite(r.Context(), groupID(r), &input)
	if err != nil {
		writeError(w, r, gc.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
