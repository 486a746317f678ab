// Package submission runs the registration flow and the owner-side
// management of submissions.
package submission

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/lib/sl"
	"sgformer-backend/src/metrics"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/auth"
	"sgformer-backend/src/services/capacity"
	"sgformer-backend/src/services/export"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/services/notifications"
	"sgformer-backend/src/services/tickets"
	"sgformer-backend/src/services/validation"
)

const (
	MsgNotFound       = "Submission not found"
	MsgNoAnswers      = "At least one answer is required"
	MsgBadEmail       = "Invalid email format"
	MsgMissingContact = "Name and email are required"
	MsgValidation     = "Validation errors"
	MsgDuplicateUser  = "You have already submitted this form"
	MsgDuplicateEmail = "This email has already been used for this form"
)

type Service struct {
	stores   *repository.Stores
	forms    *forms.Service
	notifier notifications.Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewService(stores *repository.Stores, formSvc *forms.Service, notifier notifications.Notifier, log *slog.Logger) *Service {
	if notifier == nil {
		notifier = notifications.NoopNotifier{}
	}
	return &Service{stores: stores, forms: formSvc, notifier: notifier, log: log, now: time.Now}
}

// Create validates and stores a registration. Seats are reserved before the
// insert and handed back when the insert fails.
func (s *Service) Create(ctx context.Context, actor *models.Identity, req models.CreateSubmissionRequest, meta *models.SubmissionMetadata) (*models.Submission, error) {
	sub, err := s.create(ctx, actor, req, meta)
	metrics.ObserveSubmission(err)
	return sub, err
}

func (s *Service) create(ctx context.Context, actor *models.Identity, req models.CreateSubmissionRequest, meta *models.SubmissionMetadata) (*models.Submission, error) {
	formID, err := primitive.ObjectIDFromHex(req.FormID)
	if err != nil {
		return nil, apperror.NotFound(forms.MsgFormNotFound)
	}
	form, err := s.forms.Load(ctx, formID)
	if err != nil {
		return nil, err
	}

	if actor == nil && form.Settings.RequireLogin && !form.Settings.AllowAnonymous {
		return nil, apperror.Authentication(auth.MsgLoginRequired)
	}
	now := s.now()
	if err := capacity.CheckOpen(form, now); err != nil {
		return nil, err
	}

	if len(req.Answers) == 0 {
		return nil, apperror.Validation(MsgNoAnswers)
	}
	name := strings.TrimSpace(req.UserName)
	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	if actor != nil {
		if name == "" {
			name = actor.Name
		}
		if email == "" {
			email = strings.ToLower(actor.Email)
		}
	}
	if name == "" || email == "" {
		return nil, apperror.Validation(MsgMissingContact)
	}
	if !validation.IsEmail(email) {
		return nil, apperror.Validation(MsgBadEmail)
	}
	if errs := validation.ValidateAnswers(form.Questions, req.Answers); len(errs) > 0 {
		return nil, apperror.Validation(MsgValidation, errs...)
	}

	if actor != nil {
		n, err := s.stores.Submissions.Count(ctx, repository.SubmissionFilter{FormID: &form.ID, UserID: &actor.ID})
		if err != nil {
			return nil, apperror.Upstream("failed to check submissions", err)
		}
		if n > 0 {
			return nil, apperror.Conflict(MsgDuplicateUser)
		}
	}

	reservation := capacity.BuildReservation(form, req.Answers)
	if err := s.stores.Forms.ReserveSeats(ctx, form.ID, reservation); err != nil {
		return nil, s.refused(ctx, form.ID, reservation, err)
	}

	sub := &models.Submission{
		FormID:      form.ID,
		UserName:    name,
		UserEmail:   email,
		Answers:     req.Answers,
		SubmittedAt: now,
		Metadata:    meta,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if actor != nil {
		uid := actor.ID
		sub.UserID = &uid
	}

	if err := s.stores.Submissions.Create(ctx, sub); err != nil {
		if rerr := s.stores.Forms.ReleaseSeats(ctx, form.ID, reservation); rerr != nil {
			s.log.Error("failed to release seats", slog.String("form_id", form.ID.Hex()), sl.Err(rerr))
		}
		switch {
		case errors.Is(err, repository.ErrDuplicateUser):
			return nil, apperror.Conflict(MsgDuplicateUser)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperror.Conflict(MsgDuplicateEmail)
		}
		return nil, apperror.Upstream("failed to save submission", err)
	}

	s.log.Info("submission created", slog.String("submission_id", sub.ID.Hex()), slog.String("form_id", form.ID.Hex()))
	s.notifier.SubmissionCreated(ctx, sub)
	return sub, nil
}

// refused explains a failed reservation against a fresh read of the form.
func (s *Service) refused(ctx context.Context, formID primitive.ObjectID, r models.Reservation, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(forms.MsgFormNotFound)
	}
	if !errors.Is(err, repository.ErrSeatsUnavailable) {
		return apperror.Upstream("failed to reserve seats", err)
	}
	fresh, ferr := s.forms.Load(ctx, formID)
	if ferr != nil {
		return ferr
	}
	return capacity.Explain(fresh, r)
}

func (s *Service) load(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	sub, err := s.stores.Submissions.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNotFound)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load submission", err)
	}
	return sub, nil
}

// loadVisible returns a submission to its submitter or to the form owner.
func (s *Service) loadVisible(ctx context.Context, actor *models.Identity, id primitive.ObjectID) (*models.Submission, *models.Form, error) {
	if err := auth.RequireUser(actor); err != nil {
		return nil, nil, err
	}
	sub, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	form, err := s.forms.Load(ctx, sub.FormID)
	if err != nil {
		return nil, nil, err
	}
	if sub.SubmittedBy(actor.ID) {
		return sub, form, nil
	}
	if err := auth.AuthorizeFormOwner(actor, form); err != nil {
		return nil, nil, err
	}
	return sub, form, nil
}

func (s *Service) loadOwned(ctx context.Context, actor *models.Identity, id primitive.ObjectID) (*models.Submission, *models.Form, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, nil, err
	}
	sub, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	form, err := s.forms.LoadOwned(ctx, actor, sub.FormID)
	if err != nil {
		return nil, nil, err
	}
	return sub, form, nil
}

func (s *Service) Get(ctx context.Context, actor *models.Identity, id primitive.ObjectID) (*models.Submission, error) {
	sub, _, err := s.loadVisible(ctx, actor, id)
	return sub, err
}

func (s *Service) Ticket(ctx context.Context, actor *models.Identity, id primitive.ObjectID) (*models.Ticket, error) {
	sub, form, err := s.loadVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	t, err := tickets.Render(sub, form.Title)
	if err != nil {
		return nil, apperror.Upstream("failed to render ticket", err)
	}
	return t, nil
}

func (s *Service) ListByForm(ctx context.Context, actor *models.Identity, formID primitive.ObjectID) ([]models.Submission, error) {
	form, err := s.forms.LoadOwned(ctx, actor, formID)
	if err != nil {
		return nil, err
	}
	subs, err := s.stores.Submissions.List(ctx, repository.SubmissionFilter{FormID: &form.ID}, 0)
	if err != nil {
		return nil, apperror.Upstream("failed to list submissions", err)
	}
	return subs, nil
}

func (s *Service) ListMine(ctx context.Context, actor *models.Identity) ([]models.SubmissionWithForm, error) {
	if err := auth.RequireUser(actor); err != nil {
		return nil, err
	}
	subs, err := s.stores.Submissions.List(ctx, repository.SubmissionFilter{UserID: &actor.ID}, 0)
	if err != nil {
		return nil, apperror.Upstream("failed to list submissions", err)
	}

	titles := map[primitive.ObjectID]string{}
	out := make([]models.SubmissionWithForm, 0, len(subs))
	for _, sub := range subs {
		title, ok := titles[sub.FormID]
		if !ok {
			if form, err := s.stores.Forms.FindByID(ctx, sub.FormID); err == nil {
				title = form.Title
			}
			titles[sub.FormID] = title
		}
		out = append(out, models.SubmissionWithForm{Submission: sub, FormTitle: title})
	}
	return out, nil
}

// SetAttendance lets the form owner set or clear the attended flag directly.
func (s *Service) SetAttendance(ctx context.Context, actor *models.Identity, id primitive.ObjectID, attended bool) (*models.Submission, error) {
	sub, _, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.stores.Submissions.SetAttended(ctx, sub.ID, attended, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNotFound)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to update attendance", err)
	}
	if attended && !sub.Attended {
		s.notifier.AttendanceMarked(ctx, updated)
	}
	return updated, nil
}

// Delete removes a submission and frees the seats it held.
func (s *Service) Delete(ctx context.Context, actor *models.Identity, id primitive.ObjectID) error {
	sub, form, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, form, sub)
}

func (s *Service) remove(ctx context.Context, form *models.Form, sub *models.Submission) error {
	if err := s.stores.Submissions.Delete(ctx, sub.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(MsgNotFound)
		}
		return apperror.Upstream("failed to delete submission", err)
	}
	if form == nil {
		return nil
	}
	r := capacity.BuildReservation(form, sub.Answers)
	if err := s.stores.Forms.ReleaseSeats(ctx, form.ID, r); err != nil {
		s.log.Error("failed to release seats", slog.String("form_id", form.ID.Hex()), sl.Err(err))
	}
	return nil
}

// PurgeUser deletes every submission made by userID, releasing seats on
// forms that still exist.
func (s *Service) PurgeUser(ctx context.Context, userID primitive.ObjectID) (int, error) {
	subs, err := s.stores.Submissions.List(ctx, repository.SubmissionFilter{UserID: &userID}, 0)
	if err != nil {
		return 0, apperror.Upstream("failed to list submissions", err)
	}
	n := 0
	for i := range subs {
		form, err := s.stores.Forms.FindByID(ctx, subs[i].FormID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return n, apperror.Upstream("failed to load form", err)
		}
		if err := s.remove(ctx, form, &subs[i]); err != nil && !apperror.Is(err, apperror.KindNotFound) {
			return n, err
		}
		n++
	}
	return n, nil
}

// Export is a form's submissions rendered for download.
type Export struct {
	FileName    string
	ContentType string
	Body        []byte
	Rows        []models.Submission
}

// Export renders the form's submissions as CSV, or returns the rows when
// format is "json".
func (s *Service) Export(ctx context.Context, actor *models.Identity, formID primitive.ObjectID, format string) (*Export, error) {
	form, err := s.forms.LoadOwned(ctx, actor, formID)
	if err != nil {
		return nil, err
	}
	subs, err := s.stores.Submissions.List(ctx, repository.SubmissionFilter{FormID: &form.ID}, 0)
	if err != nil {
		return nil, apperror.Upstream("failed to list submissions", err)
	}

	if strings.EqualFold(format, "json") {
		return &Export{FileName: export.FileName(form, "json"), ContentType: "application/json", Rows: subs}, nil
	}
	body, err := export.CSV(form, subs)
	if err != nil {
		return nil, apperror.Upstream("failed to export submissions", err)
	}
	return &Export{FileName: export.FileName(form, "csv"), ContentType: "text/csv; charset=utf-8", Body: body}, nil
}
