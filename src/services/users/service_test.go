package users

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/services/submission"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	stores *repository.Stores
	forms  *forms.Service
	subs   *submission.Service
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := repository.NewMemoryStores()
	formSvc := forms.NewService(stores, discard)
	subSvc := submission.NewService(stores, formSvc, nil, discard)
	return &fixture{stores: stores, forms: formSvc, subs: subSvc, svc: NewService(stores, formSvc, subSvc, discard)}
}

func (f *fixture) user(t *testing.T, email, role string, active bool, age time.Duration) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: email, Role: role, IsActive: active, CreatedAt: time.Now().Add(-age)}
	require.NoError(t, f.stores.Users.Create(context.Background(), u))
	return u
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	root := f.user(t, "root@example.com", models.RoleAdmin, true, 3*time.Hour)
	f.user(t, "ann@example.com", models.RoleUser, true, 2*time.Hour)
	f.user(t, "bob@example.com", models.RoleUser, false, time.Hour)
	actor := models.IdentityOf(root)

	all, err := f.svc.List(ctx, actor, models.UserFilterParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	inactive, err := f.svc.List(ctx, actor, models.UserFilterParams{Status: "inactive"})
	require.NoError(t, err)
	rows := inactive.Data.([]models.UserSummary)
	require.Len(t, rows, 1)
	assert.Equal(t, "bob@example.com", rows[0].Email)

	search, err := f.svc.List(ctx, actor, models.UserFilterParams{PaginationParams: models.PaginationParams{Search: "ANN"}, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, int64(1), search.Total)

	_, err = f.svc.List(ctx, actor, models.UserFilterParams{Status: "sleeping"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.svc.List(ctx, &models.Identity{Role: models.RoleUser}, models.UserFilterParams{})
	assert.True(t, apperror.Is(err, apperror.KindAuthorization))
}

func TestSelfProtection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	root := f.user(t, "root@example.com", models.RoleAdmin, true, 0)
	actor := models.IdentityOf(root)

	_, err := f.svc.ChangeRole(ctx, actor, root.ID, models.RoleUser)
	assert.Equal(t, MsgOwnRole, err.Error())
	_, err = f.svc.SetStatus(ctx, actor, root.ID, false)
	assert.Equal(t, MsgOwnStatus, err.Error())
	err = f.svc.Delete(ctx, actor, root.ID)
	assert.Equal(t, MsgOwnDelete, err.Error())
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	stored, err := f.stores.Users.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestChangeRoleAndStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := models.IdentityOf(f.user(t, "root@example.com", models.RoleAdmin, true, 0))
	ann := f.user(t, "ann@example.com", models.RoleUser, true, 0)

	u, err := f.svc.ChangeRole(ctx, actor, ann.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	u, err = f.svc.SetStatus(ctx, actor, ann.ID, false)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	_, err = f.svc.ChangeRole(ctx, actor, ann.ID, "owner")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := models.IdentityOf(f.user(t, "root@example.com", models.RoleAdmin, true, 0))
	host := f.user(t, "host@example.com", models.RoleAdmin, true, 0)
	guest := f.user(t, "guest@example.com", models.RoleUser, true, 0)

	allowAnon, noLogin := true, false
	req := models.CreateFormRequest{
		Title:     "Meetup",
		Questions: []models.QuestionInput{{ID: "q", Type: models.QuestionText, Label: "Q"}},
		Settings:  &models.FormSettingsInput{AllowAnonymous: &allowAnon, RequireLogin: &noLogin},
	}
	hosted, err := f.forms.Create(ctx, models.IdentityOf(host), req)
	require.NoError(t, err)
	other, err := f.forms.Create(ctx, actor, req)
	require.NoError(t, err)

	answer := []models.Answer{{QuestionID: "q", Value: "hi"}}
	_, err = f.subs.Create(ctx, nil, models.CreateSubmissionRequest{FormID: hosted.ID.Hex(), UserName: "x", UserEmail: "x@example.com", Answers: answer}, nil)
	require.NoError(t, err)
	_, err = f.subs.Create(ctx, models.IdentityOf(guest), models.CreateSubmissionRequest{FormID: other.ID.Hex(), Answers: answer}, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, actor, host.ID))
	require.NoError(t, f.svc.Delete(ctx, actor, guest.ID))

	_, err = f.stores.Forms.FindByID(ctx, hosted.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	n, err := f.stores.Submissions.Count(ctx, repository.SubmissionFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	kept, err := f.stores.Forms.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, kept.Counters.Total)

	_, err = f.svc.Get(ctx, actor, guest.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestOverviewAndDetail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	root := f.user(t, "root@example.com", models.RoleAdmin, true, 0)
	f.user(t, "ann@example.com", models.RoleUser, false, time.Hour)
	actor := models.IdentityOf(root)

	_, err := f.forms.Create(ctx, actor, models.CreateFormRequest{
		Title:     "Meetup",
		Questions: []models.QuestionInput{{ID: "q", Type: models.QuestionText, Label: "Q"}},
	})
	require.NoError(t, err)

	ov, err := f.svc.Overview(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ov.TotalUsers)
	assert.Equal(t, int64(1), ov.ActiveUsers)
	assert.Equal(t, int64(1), ov.AdminUsers)
	assert.Equal(t, int64(1), ov.TotalForms)
	assert.Equal(t, int64(1), ov.ActiveForms)
	require.Len(t, ov.RecentUsers, 2)
	assert.Equal(t, root.ID, ov.RecentUsers[0].ID)

	detail, err := f.svc.Get(ctx, actor, root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.FormCount)
	assert.Len(t, detail.RecentForms, 1)
}
