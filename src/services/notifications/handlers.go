package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/jobs"
	"sgformer-backend/src/lib/sl"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
)

type Handlers struct {
	sender      MailSender
	stores      *repository.Stores
	frontendURL string
	log         *slog.Logger
}

func NewHandlers(sender MailSender, stores *repository.Stores, frontendURL string, log *slog.Logger) *Handlers {
	return &Handlers{
		sender:      sender,
		stores:      stores,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
	}
}

// Register binds every notification task type on the worker mux.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(jobs.TypeSubmissionReceived, h.HandleSubmissionReceived)
	mux.HandleFunc(jobs.TypeAttendanceConfirmed, h.HandleAttendanceConfirmed)
}

// load returns nil, nil when the submission or form was deleted meanwhile.
func (h *Handlers) load(ctx context.Context, t *asynq.Task) (*models.Submission, *models.Form, error) {
	p, err := jobs.ParseSubmissionPayload(t)
	if err != nil {
		return nil, nil, fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	subID, err := primitive.ObjectIDFromHex(p.SubmissionID)
	if err != nil {
		return nil, nil, fmt.Errorf("bad submission id %q: %w", p.SubmissionID, asynq.SkipRetry)
	}

	sub, err := h.stores.Submissions.FindByID(ctx, subID)
	if errors.Is(err, repository.ErrNotFound) {
		h.log.Warn("submission gone, skipping task", slog.String("submission_id", p.SubmissionID))
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	form, err := h.stores.Forms.FindByID(ctx, sub.FormID)
	if errors.Is(err, repository.ErrNotFound) {
		h.log.Warn("form gone, skipping task", slog.String("form_id", sub.FormID.Hex()))
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return sub, form, nil
}

func (h *Handlers) HandleSubmissionReceived(ctx context.Context, t *asynq.Task) error {
	sub, form, err := h.load(ctx, t)
	if err != nil || sub == nil {
		return err
	}

	html, err := RenderConfirmationEmail(ConfirmationEmailData{
		UserName:  sub.UserName,
		FormTitle: form.Title,
		TicketURL: fmt.Sprintf("%s/submissions/%s/ticket", h.frontendURL, sub.ID.Hex()),
	})
	if err != nil {
		return err
	}
	if err := h.sender.Send(ctx, sub.UserEmail, "Registration confirmed: "+form.Title, html); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", sub.UserEmail, err)
	}

	owner, err := h.stores.Users.FindByID(ctx, form.CreatedBy)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	total, err := h.stores.Submissions.Count(ctx, repository.SubmissionFilter{FormID: &form.ID})
	if err != nil {
		return err
	}
	html, err = RenderReceivedEmail(ReceivedEmailData{
		OwnerName:    owner.Name,
		FormTitle:    form.Title,
		UserName:     sub.UserName,
		UserEmail:    sub.UserEmail,
		SubmittedAt:  sub.SubmittedAt,
		Total:        total,
		DashboardURL: fmt.Sprintf("%s/forms/%s/submissions", h.frontendURL, form.ID.Hex()),
	})
	if err != nil {
		return err
	}
	// Logged only: a retry would resend the attendee confirmation.
	if err := h.sender.Send(ctx, owner.Email, "New registration: "+form.Title, html); err != nil {
		h.log.Error("owner notification failed", slog.String("to", owner.Email), sl.Err(err))
	}
	return nil
}

func (h *Handlers) HandleAttendanceConfirmed(ctx context.Context, t *asynq.Task) error {
	sub, form, err := h.load(ctx, t)
	if err != nil || sub == nil {
		return err
	}
	if !sub.Attended || sub.AttendedAt == nil {
		return nil
	}

	html, err := RenderAttendanceEmail(AttendanceEmailData{
		UserName:   sub.UserName,
		FormTitle:  form.Title,
		AttendedAt: *sub.AttendedAt,
	})
	if err != nil {
		return err
	}
	return h.sender.Send(ctx, sub.UserEmail, "Checked in: "+form.Title, html)
}
