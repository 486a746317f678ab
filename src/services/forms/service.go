// Package forms manages registration forms and their statistics.
package forms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/auth"
	"sgformer-backend/src/services/capacity"
)

const (
	MsgFormNotFound   = "Form not found"
	MsgNoQuestions    = "At least one question is required"
	recentSubmissions = 5
)

type Service struct {
	stores *repository.Stores
	log    *slog.Logger
	now    func() time.Time
}

func NewService(stores *repository.Stores, log *slog.Logger) *Service {
	return &Service{stores: stores, log: log, now: time.Now}
}

// Load returns the form or a not-found error.
func (s *Service) Load(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	form, err := s.stores.Forms.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgFormNotFound)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load form", err)
	}
	return form, nil
}

// LoadOwned returns the form only to the admin who created it.
func (s *Service) LoadOwned(ctx context.Context, actor *models.Identity, id primitive.ObjectID) (*models.Form, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	form, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeFormOwner(actor, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *Service) Create(ctx context.Context, actor *models.Identity, req models.CreateFormRequest) (*models.Form, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	questions, err := BuildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	settings := ApplySettings(DefaultSettings(), req.Settings)
	if err := checkWindow(settings); err != nil {
		return nil, err
	}

	now := s.now()
	form := &models.Form{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Questions:   questions,
		Settings:    settings,
		CreatedBy:   actor.ID,
		Counters:    models.FormCounters{Options: map[string]int64{}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.stores.Forms.Create(ctx, form); err != nil {
		return nil, apperror.Upstream("failed to create form", err)
	}
	s.log.Info("form created", slog.String("form_id", form.ID.Hex()), slog.String("owner", actor.ID.Hex()))
	return form, nil
}

// Get is the public view used to render and fill a form.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.FormDetail, error) {
	form, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := s.detail(form)
	if owner, err := s.stores.Users.FindByID(ctx, form.CreatedBy); err == nil {
		detail.Creator = &models.FormCreator{Name: owner.Name, Email: owner.Email}
	}
	return detail, nil
}

func (s *Service) detail(form *models.Form) *models.FormDetail {
	return &models.FormDetail{
		Form:            *form,
		SubmissionCount: form.Counters.Total,
		Availability:    capacity.Availability(form),
	}
}

func (s *Service) Update(ctx context.Context, actor *models.Identity, id primitive.ObjectID, req models.UpdateFormRequest) (*models.Form, error) {
	form, err := s.LoadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperror.Validation("Title is required")
		}
		form.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		form.Description = *req.Description
	}
	if req.Questions != nil {
		questions, err := BuildQuestions(carryIDs(form.Questions, req.Questions))
		if err != nil {
			return nil, err
		}
		form.Questions = questions
	}
	form.Settings = ApplySettings(form.Settings, req.Settings)
	if err := checkWindow(form.Settings); err != nil {
		return nil, err
	}
	form.UpdatedAt = s.now()

	if err := s.stores.Forms.Update(ctx, form); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(MsgFormNotFound)
		}
		return nil, apperror.Upstream("failed to update form", err)
	}
	if req.Questions != nil {
		if err := s.recount(ctx, form); err != nil {
			return nil, err
		}
	}
	return form, nil
}

// carryIDs gives question and option input without an id the id of the
// existing entry it matches, so seat counters keyed by those ids still apply.
// Questions match on label and type, options on value and then label.
func carryIDs(existing []models.Question, in []models.QuestionInput) []models.QuestionInput {
	byID := make(map[string]*models.Question, len(existing))
	byLabel := make(map[string]*models.Question, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
		byLabel[existing[i].Label] = &existing[i]
	}

	taken := map[string]bool{}
	for _, qi := range in {
		if id := strings.TrimSpace(qi.ID); id != "" {
			taken[id] = true
		}
	}

	out := make([]models.QuestionInput, len(in))
	for i, qi := range in {
		prev := byID[strings.TrimSpace(qi.ID)]
		if strings.TrimSpace(qi.ID) == "" {
			if p := byLabel[strings.TrimSpace(qi.Label)]; p != nil && p.Type == qi.Type && !taken[p.ID] {
				prev = p
				qi.ID = p.ID
				taken[p.ID] = true
			}
		}
		if prev != nil {
			qi.Options = carryOptionIDs(prev.Options, qi.Options)
		}
		out[i] = qi
	}
	return out
}

func carryOptionIDs(existing []models.QuestionOption, in []models.QuestionOptionInput) []models.QuestionOptionInput {
	taken := map[string]bool{}
	for _, oi := range in {
		if id := strings.TrimSpace(oi.ID); id != "" {
			taken[id] = true
		}
	}
	match := func(same func(o models.QuestionOption) bool) string {
		for _, o := range existing {
			if !taken[o.ID] && same(o) {
				taken[o.ID] = true
				return o.ID
			}
		}
		return ""
	}

	out := make([]models.QuestionOptionInput, len(in))
	for i, oi := range in {
		if strings.TrimSpace(oi.ID) == "" {
			label := strings.TrimSpace(oi.Label)
			value := strings.TrimSpace(oi.Value)
			if value == "" {
				value = label
			}
			oi.ID = match(func(o models.QuestionOption) bool { return o.Value == value })
			if oi.ID == "" {
				oi.ID = match(func(o models.QuestionOption) bool { return o.Label == label })
			}
		}
		out[i] = oi
	}
	return out
}

// recount rebuilds the seat counters from stored submissions once the
// questions have changed. Keys of removed options are dropped.
func (s *Service) recount(ctx context.Context, form *models.Form) error {
	subs := s.stores.Submissions
	total, err := subs.Count(ctx, repository.SubmissionFilter{FormID: &form.ID})
	if err != nil {
		return apperror.Upstream("failed to count submissions", err)
	}
	counters := models.FormCounters{Total: total, Options: map[string]int64{}}
	for _, q := range form.Questions {
		if !q.Type.HasOptions() {
			continue
		}
		for _, o := range q.Options {
			n, err := subs.CountAnswer(ctx, form.ID, q.ID, o.Value)
			if err != nil {
				return apperror.Upstream("failed to count answers", err)
			}
			counters.Options[models.OptionKey(q.ID, o.ID)] = n
		}
	}
	if err := s.stores.Forms.SetCounters(ctx, form.ID, counters); err != nil {
		return apperror.Upstream("failed to update seat counters", err)
	}
	form.Counters = counters
	return nil
}

// Delete removes the form and every submission made to it.
func (s *Service) Delete(ctx context.Context, actor *models.Identity, id primitive.ObjectID) error {
	form, err := s.LoadOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.purge(ctx, form.ID)
}

func (s *Service) purge(ctx context.Context, formID primitive.ObjectID) error {
	n, err := s.stores.Submissions.DeleteByForm(ctx, formID)
	if err != nil {
		return apperror.Upstream("failed to delete submissions", err)
	}
	if err := s.stores.Forms.Delete(ctx, formID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperror.Upstream("failed to delete form", err)
	}
	s.log.Info("form deleted", slog.String("form_id", formID.Hex()), slog.Int64("submissions", n))
	return nil
}

// PurgeOwnedBy deletes every form created by owner, used when the owner's
// account is removed.
func (s *Service) PurgeOwnedBy(ctx context.Context, owner primitive.ObjectID) (int, error) {
	deleted := 0
	page := models.PaginationParams{Page: 1, Limit: 100}
	for {
		forms, _, err := s.stores.Forms.List(ctx, repository.FormFilter{CreatedBy: &owner}, page)
		if err != nil {
			return deleted, apperror.Upstream("failed to list forms", err)
		}
		if len(forms) == 0 {
			return deleted, nil
		}
		for _, f := range forms {
			if err := s.purge(ctx, f.ID); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
}

func (s *Service) list(ctx context.Context, filter repository.FormFilter, page models.PaginationParams) (*models.PaginatedResponse, error) {
	forms, total, err := s.stores.Forms.List(ctx, filter, page)
	if err != nil {
		return nil, apperror.Upstream("failed to list forms", err)
	}
	rows := make([]models.FormDetail, 0, len(forms))
	for i := range forms {
		rows = append(rows, *s.detail(&forms[i]))
	}
	return models.NewPaginatedResponse(rows, total, page), nil
}

func (s *Service) ListOwned(ctx context.Context, actor *models.Identity, page models.PaginationParams) (*models.PaginatedResponse, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.FormFilter{CreatedBy: &actor.ID}, page)
}

// ListPublic returns active forms whose window contains now.
func (s *Service) ListPublic(ctx context.Context, page models.PaginationParams) (*models.PaginatedResponse, error) {
	now := s.now()
	return s.list(ctx, repository.FormFilter{OpenAt: &now}, page)
}

func (s *Service) Stats(ctx context.Context, actor *models.Identity, id primitive.ObjectID) (*models.FormStats, error) {
	form, err := s.LoadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	subs := s.stores.Submissions
	attended := true

	total, err := subs.Count(ctx, repository.SubmissionFilter{FormID: &form.ID})
	if err != nil {
		return nil, apperror.Upstream("failed to count submissions", err)
	}
	present, err := subs.Count(ctx, repository.SubmissionFilter{FormID: &form.ID, Attended: &attended})
	if err != nil {
		return nil, apperror.Upstream("failed to count attendance", err)
	}
	recent, err := subs.List(ctx, repository.SubmissionFilter{FormID: &form.ID}, recentSubmissions)
	if err != nil {
		return nil, apperror.Upstream("failed to list submissions", err)
	}

	stats := &models.FormStats{
		TotalSubmissions:    total,
		AttendedSubmissions: present,
		RecentSubmissions:   recent,
		QuestionStats:       []models.QuestionStat{},
	}
	if total > 0 {
		stats.AttendanceRate = math.Round(float64(present)/float64(total)*10000) / 100
	}

	for _, q := range form.Questions {
		if !q.Type.HasOptions() || len(q.Options) == 0 {
			continue
		}
		qs := models.QuestionStat{QuestionID: q.ID, Label: q.Label, Type: q.Type}
		for _, o := range q.Options {
			n, err := subs.CountAnswer(ctx, form.ID, q.ID, o.Value)
			if err != nil {
				return nil, apperror.Upstream("failed to count answers", err)
			}
			qs.Options = append(qs.Options, models.OptionStat{Label: o.Label, Value: o.Value, Count: n})
		}
		stats.QuestionStats = append(stats.QuestionStats, qs)
	}
	return stats, nil
}

func DefaultSettings() models.FormSettings {
	return models.FormSettings{RequireLogin: true, IsActive: true}
}

// ApplySettings overlays the fields present in in onto base.
func ApplySettings(base models.FormSettings, in *models.FormSettingsInput) models.FormSettings {
	if in == nil {
		return base
	}
	if in.AllowAnonymous != nil {
		base.AllowAnonymous = *in.AllowAnonymous
	}
	if in.RequireLogin != nil {
		base.RequireLogin = *in.RequireLogin
	}
	switch {
	case in.MaxSubmissions != nil && *in.MaxSubmissions == 0, in.Cleared("maxSubmissions"):
		base.MaxSubmissions = nil
	case in.MaxSubmissions != nil:
		base.MaxSubmissions = in.MaxSubmissions
	}
	switch {
	case in.Cleared("startDate"):
		base.StartDate = nil
	case in.StartDate != nil:
		base.StartDate = in.StartDate
	}
	switch {
	case in.Cleared("endDate"):
		base.EndDate = nil
	case in.EndDate != nil:
		base.EndDate = in.EndDate
	}
	if in.IsActive != nil {
		base.IsActive = *in.IsActive
	}
	return base
}

func checkWindow(st models.FormSettings) error {
	if st.StartDate != nil && st.EndDate != nil && !st.StartDate.Before(*st.EndDate) {
		return apperror.Validation("startDate must be before endDate")
	}
	return nil
}

// BuildQuestions normalises question input: ids are generated when absent,
// option values default to their label, and definitions are checked.
func BuildQuestions(in []models.QuestionInput) ([]models.Question, error) {
	if len(in) == 0 {
		return nil, apperror.Validation(MsgNoQuestions)
	}

	var errs []string
	seen := map[string]bool{}
	out := make([]models.Question, 0, len(in))

	for _, qi := range in {
		q := models.Question{
			ID:             strings.TrimSpace(qi.ID),
			Type:           qi.Type,
			Label:          strings.TrimSpace(qi.Label),
			Description:    qi.Description,
			Required:       qi.Required,
			IsPersonalInfo: qi.IsPersonalInfo,
			Validation:     qi.Validation,
			Settings:       qi.Settings,
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("Question id %q is used more than once", q.ID))
		}
		seen[q.ID] = true

		if q.Type.HasOptions() && len(qi.Options) == 0 {
			errs = append(errs, q.Label+" needs at least one option")
		}
		values := map[string]bool{}
		for _, oi := range qi.Options {
			o := models.QuestionOption{
				ID:    strings.TrimSpace(oi.ID),
				Label: strings.TrimSpace(oi.Label),
				Value: strings.TrimSpace(oi.Value),
				Limit: oi.Limit,
			}
			if o.ID == "" {
				o.ID = uuid.NewString()
			}
			if o.Value == "" {
				o.Value = o.Label
			}
			if values[o.Value] {
				errs = append(errs, fmt.Sprintf("%s has duplicate option %q", q.Label, o.Value))
			}
			values[o.Value] = true
			q.Options = append(q.Options, o)
		}

		if v := q.Validation; v != nil {
			if v.Pattern != "" {
				if _, err := regexp.Compile(v.Pattern); err != nil {
					errs = append(errs, q.Label+" has an invalid pattern")
				}
			}
			if v.MinLength != nil && v.MaxLength != nil && *v.MinLength > *v.MaxLength {
				errs = append(errs, q.Label+" has minLength greater than maxLength")
			}
			if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
				errs = append(errs, q.Label+" has min greater than max")
			}
		}
		out = append(out, q)
	}

	if len(errs) > 0 {
		return nil, apperror.Validation("Invalid questions", errs...)
	}
	return out, nil
}
