package services

import (
	"context"
	"errors"
	"fmt"
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"meetsync/internal/storage"
	"strings"

	"github.com/gookit/validate"
)

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, input *models.CreateGroupInput) (*models.CreatedGroup, error)
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	CreateMember(ctx context.Context, groupID string, input *models.CreateMemberInput) (*models.Member, error)
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)
	Invite(ctx context.Context, groupID string, input *models.InviteInput) (*models.InviteResult, error)
}

type GroupService struct {
	store  storage.Store
	logger providers.Logger
}

func NewGroupService(store storage.Store, logger providers.Logger) GroupServiceInterface {
	return &GroupService{store: store, logger: logger}
}

func (s *GroupService) CreateGroup(ctx context.Context, input *models.CreateGroupInput) (*models.CreatedGroup, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	mode := input.AvailabilityMode
	if mode == "" {
		mode = models.ModeFullDay
	}
	if !mode.Valid() {
		return nil, validationErrorf("unknown availability mode %q", mode)
	}

	group := &models.Group{
		Name:             input.Name,
		Description:      input.Description,
		CreatedBy:        input.CreatedBy,
		AvailabilityMode: mode,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	s.logger.Infof(providers.TypePost, "Group %s created (%s)", group.ID, group.AvailabilityMode)

	out := &models.CreatedGroup{Group: group}
	if input.CreatorName != "" && input.CreatorEmail != "" {
		creator := &models.Member{
			GroupID:   group.ID,
			Name:      input.CreatorName,
			Email:     input.CreatorEmail,
			IsCreator: true,
		}
		if err := s.store.CreateMember(ctx, creator); err != nil {
			return nil, fmt.Errorf("create creator member: %w", err)
		}
		out.Creator = creator
	}
	return out, nil
}

func (s *GroupService) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	return s.store.GetGroup(ctx, id)
}

func (s *GroupService) CreateMember(ctx context.Context, groupID string, input *models.CreateMemberInput) (*models.Member, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	member := &models.Member{
		GroupID:   groupID,
		Name:      input.Name,
		Email:     input.Email,
		IsCreator: input.IsCreator,
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}

func (s *GroupService) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, groupID)
}

// Invite adds one member per address in a comma or newline separated list.
// Members are created one by one; a failure is reported for that address
// and does not undo the members created before it.
func (s *GroupService) Invite(ctx context.Context, groupID string, input *models.InviteInput) (*models.InviteResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	emails := ParseInviteList(input.Emails)
	if len(emails) == 0 {
		return nil, validationErrorf("no email addresses found")
	}

	result := &models.InviteResult{
		Invited: make([]*models.Member, 0, len(emails)),
		Failed:  make([]models.InviteFailed, 0),
	}
	for _, email := range emails {
		if !validate.IsEmail(email) {
			result.Failed = append(result.Failed, models.InviteFailed{Email: email, Reason: "invalid email"})
			continue
		}
		member := &models.Member{
			GroupID: groupID,
			Name:    strings.SplitN(email, "@", 2)[0],
			Email:   email,
		}
		if err := s.store.CreateMember(ctx, member); err != nil {
			s.logger.Warnf(providers.TypePost, "Invite %s to group %s failed: %s", email, groupID, err)
			result.Failed = append(result.Failed, models.InviteFailed{Email: email, Reason: err.Error()})
			continue
		}
		result.Invited = append(result.Invited, member)
	}
	s.logger.Infof(providers.TypePost, "Group %s invites: %d added, %d failed", groupID, len(result.Invited), len(result.Failed))
	return result, nil
}

// ParseInviteList splits on commas and newlines and keeps entries that
// look like an address.
func ParseInviteList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if strings.Contains(f, "@") {
			out = append(out, f)
		}
	}
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
