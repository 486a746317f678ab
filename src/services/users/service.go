// Package users is the admin view over accounts.
package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/auth"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/services/submission"
)

const (
	MsgNotFound       = "User not found"
	MsgOwnRole        = "Cannot change your own role"
	MsgOwnStatus      = "Cannot deactivate your own account"
	MsgOwnDelete      = "Cannot delete your own account"
	MsgInvalidRole    = "Invalid role"
	MsgInvalidStatus  = "Invalid status filter"
	recentActivity    = 5
	overviewNewestCap = 5
)

type Service struct {
	stores      *repository.Stores
	forms       *forms.Service
	submissions *submission.Service
	log         *slog.Logger
	now         func() time.Time
}

func NewService(stores *repository.Stores, formSvc *forms.Service, subSvc *submission.Service, log *slog.Logger) *Service {
	return &Service{stores: stores, forms: formSvc, submissions: subSvc, log: log, now: time.Now}
}

func (s *Service) load(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.stores.Users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNotFound)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load user", err)
	}
	return u, nil
}

func (s *Service) counts(ctx context.Context, id primitive.ObjectID) (int64, int64, error) {
	nForms, err := s.stores.Forms.Count(ctx, repository.FormFilter{CreatedBy: &id})
	if err != nil {
		return 0, 0, apperror.Upstream("failed to count forms", err)
	}
	nSubs, err := s.stores.Submissions.Count(ctx, repository.SubmissionFilter{UserID: &id})
	if err != nil {
		return 0, 0, apperror.Upstream("failed to count submissions", err)
	}
	return nForms, nSubs, nil
}

// List returns users matching search, role and status ("active" or
// "inactive"), each with its form and submission counts.
func (s *Service) List(ctx context.Context, actor *models.Identity, params models.UserFilterParams) (*models.PaginatedResponse, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	filter := repository.UserFilter{Search: strings.TrimSpace(params.Search)}
	switch params.Role {
	case "", "all":
	case models.RoleAdmin, models.RoleUser:
		filter.Role = params.Role
	default:
		return nil, apperror.Validation(MsgInvalidRole)
	}
	switch params.Status {
	case "", "all":
	case "active":
		active := true
		filter.Active = &active
	case "inactive":
		active := false
		filter.Active = &active
	default:
		return nil, apperror.Validation(MsgInvalidStatus)
	}

	page := params.PaginationParams.Normalize()
	users, total, err := s.stores.Users.List(ctx, filter, page)
	if err != nil {
		return nil, apperror.Upstream("failed to list users", err)
	}
	rows := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		nForms, nSubs, err := s.counts(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.UserSummary{User: u, FormCount: nForms, SubmissionCount: nSubs})
	}
	return models.NewPaginatedResponse(rows, total, page), nil
}

func (s *Service) Get(ctx context.Context, actor *models.Identity, id primitive.ObjectID) (*models.UserDetail, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	nForms, nSubs, err := s.counts(ctx, id)
	if err != nil {
		return nil, err
	}
	recentForms, _, err := s.stores.Forms.List(ctx, repository.FormFilter{CreatedBy: &id}, models.PaginationParams{Page: 1, Limit: recentActivity})
	if err != nil {
		return nil, apperror.Upstream("failed to list forms", err)
	}
	recentSubs, err := s.stores.Submissions.List(ctx, repository.SubmissionFilter{UserID: &id}, recentActivity)
	if err != nil {
		return nil, apperror.Upstream("failed to list submissions", err)
	}
	return &models.UserDetail{
		User:              *u,
		FormCount:         nForms,
		SubmissionCount:   nSubs,
		RecentForms:       recentForms,
		RecentSubmissions: recentSubs,
	}, nil
}

func (s *Service) ChangeRole(ctx context.Context, actor *models.Identity, id primitive.ObjectID, role string) (*models.User, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, apperror.Validation(MsgInvalidRole)
	}
	if err := auth.ProtectSelf(actor, id, MsgOwnRole); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(u *models.User) { u.Role = role })
}

func (s *Service) SetStatus(ctx context.Context, actor *models.Identity, id primitive.ObjectID, active bool) (*models.User, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := auth.ProtectSelf(actor, id, MsgOwnStatus); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(u *models.User) { u.IsActive = active })
}

func (s *Service) mutate(ctx context.Context, id primitive.ObjectID, apply func(*models.User)) (*models.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(u)
	u.UpdatedAt = s.now()
	if err := s.stores.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(MsgNotFound)
		}
		return nil, apperror.Upstream("failed to update user", err)
	}
	s.log.Info("user updated", slog.String("user_id", u.ID.Hex()), slog.String("role", u.Role), slog.Bool("active", u.IsActive))
	return u, nil
}

// Delete removes the account, the forms it owns with their submissions, and
// the submissions it made elsewhere.
func (s *Service) Delete(ctx context.Context, actor *models.Identity, id primitive.ObjectID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	if err := auth.ProtectSelf(actor, id, MsgOwnDelete); err != nil {
		return err
	}
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	nForms, err := s.forms.PurgeOwnedBy(ctx, id)
	if err != nil {
		return err
	}
	nSubs, err := s.submissions.PurgeUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.stores.Users.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperror.Upstream("failed to delete user", err)
	}
	s.log.Info("user deleted", slog.String("user_id", id.Hex()), slog.Int("forms", nForms), slog.Int("submissions", nSubs))
	return nil
}

func (s *Service) Overview(ctx context.Context, actor *models.Identity) (*models.SystemOverview, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	active := true
	var out models.SystemOverview
	var err error

	if out.TotalUsers, err = s.stores.Users.Count(ctx, repository.UserFilter{}); err != nil {
		return nil, apperror.Upstream("failed to count users", err)
	}
	if out.ActiveUsers, err = s.stores.Users.Count(ctx, repository.UserFilter{Active: &active}); err != nil {
		return nil, apperror.Upstream("failed to count users", err)
	}
	if out.AdminUsers, err = s.stores.Users.Count(ctx, repository.UserFilter{Role: models.RoleAdmin}); err != nil {
		return nil, apperror.Upstream("failed to count users", err)
	}
	if out.TotalForms, err = s.stores.Forms.Count(ctx, repository.FormFilter{}); err != nil {
		return nil, apperror.Upstream("failed to count forms", err)
	}
	if out.ActiveForms, err = s.stores.Forms.Count(ctx, repository.FormFilter{Active: &active}); err != nil {
		return nil, apperror.Upstream("failed to count forms", err)
	}
	if out.TotalSubmissions, err = s.stores.Submissions.Count(ctx, repository.SubmissionFilter{}); err != nil {
		return nil, apperror.Upstream("failed to count submissions", err)
	}
	out.RecentUsers, _, err = s.stores.Users.List(ctx, repository.UserFilter{}, models.PaginationParams{Page: 1, Limit: overviewNewestCap})
	if err != nil {
		return nil, apperror.Upstream("failed to list users", err)
	}
	return &out, nil
}
