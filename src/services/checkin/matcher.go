// Package checkin marks attendees present from scanned ticket payloads.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/metrics"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/notifications"
	"sgformer-backend/src/services/tickets"
)

const (
	MsgWrongEvent = "This ticket is for a different event."
	MsgNotFound   = "Invalid ticket. Submission not found."
)

type Matcher struct {
	subs     repository.SubmissionStore
	notifier notifications.Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewMatcher(subs repository.SubmissionStore, notifier notifications.Notifier, log *slog.Logger) *Matcher {
	if notifier == nil {
		notifier = notifications.NoopNotifier{}
	}
	return &Matcher{subs: subs, notifier: notifier, log: log, now: time.Now}
}

func alreadyCheckedIn(name string) error {
	return apperror.Conflict(fmt.Sprintf("This person (%s) has already checked in.", name))
}

// Scan checks a ticket in for eventFormID. Only the first successful scan of
// a ticket changes state.
func (m *Matcher) Scan(ctx context.Context, eventFormID primitive.ObjectID, data string) (*models.CheckInResult, error) {
	res, err := m.scan(ctx, eventFormID, data)
	metrics.ObserveCheckIn(err)
	return res, err
}

func (m *Matcher) scan(ctx context.Context, eventFormID primitive.ObjectID, data string) (*models.CheckInResult, error) {
	payload, err := tickets.Decode(data)
	if err != nil {
		return nil, err
	}
	if payload.FormID != eventFormID.Hex() {
		return nil, apperror.Conflict(MsgWrongEvent)
	}

	subID, err := primitive.ObjectIDFromHex(payload.SubmissionID)
	if err != nil {
		return nil, apperror.NotFound(MsgNotFound)
	}
	sub, err := m.subs.FindByID(ctx, subID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNotFound)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load submission", err)
	}
	if sub.FormID != eventFormID {
		return nil, apperror.Conflict(MsgWrongEvent)
	}
	if sub.Attended {
		return nil, alreadyCheckedIn(sub.UserName)
	}

	updated, err := m.subs.MarkAttended(ctx, subID, m.now())
	switch {
	case errors.Is(err, repository.ErrAlreadyAttended):
		return nil, alreadyCheckedIn(sub.UserName)
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperror.NotFound(MsgNotFound)
	case err != nil:
		return nil, apperror.Upstream("failed to check in", err)
	}

	m.log.Info("checked in", slog.String("submission_id", updated.ID.Hex()), slog.String("form_id", eventFormID.Hex()))
	m.notifier.AttendanceMarked(ctx, updated)

	return &models.CheckInResult{
		SubmissionID: updated.ID.Hex(),
		UserName:     updated.UserName,
		UserEmail:    updated.UserEmail,
		Message:      fmt.Sprintf("%s checked in successfully.", updated.UserName),
	}, nil
}
