package notifications

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sgformer-backend/src/jobs"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
)

type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(ctx context.Context, to, subject, html string) error {
	return m.Called(to, subject, html).Error(0)
}

type fixture struct {
	stores *repository.Stores
	owner  *models.User
	form   *models.Form
	sub    *models.Submission
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	stores := repository.NewMemoryStores()

	owner := &models.User{Email: "owner@example.com", Name: "Olivia", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, stores.Users.Create(ctx, owner))
	form := &models.Form{Title: "Go Meetup", CreatedBy: owner.ID, Settings: models.FormSettings{IsActive: true}}
	require.NoError(t, stores.Forms.Create(ctx, form))
	sub := &models.Submission{FormID: form.ID, UserName: "Sam", UserEmail: "sam@example.com", SubmittedAt: time.Now()}
	require.NoError(t, stores.Submissions.Create(ctx, sub))

	return fixture{stores: stores, owner: owner, form: form, sub: sub}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestSubmissionReceivedMailsAttendeeAndOwner(t *testing.T) {
	f := newFixture(t)
	sender := new(MockMailSender)
	sender.On("Send", "sam@example.com", "Registration confirmed: Go Meetup", mock.MatchedBy(func(html string) bool {
		return strings.Contains(html, "https://app.test/submissions/"+f.sub.ID.Hex()+"/ticket")
	})).Return(nil)
	sender.On("Send", "owner@example.com", "New registration: Go Meetup", mock.MatchedBy(func(html string) bool {
		return strings.Contains(html, "sam@example.com")
	})).Return(nil)

	h := NewHandlers(sender, f.stores, "https://app.test/", discard)
	task, err := jobs.NewSubmissionReceivedTask(f.sub.ID.Hex(), f.form.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, h.HandleSubmissionReceived(context.Background(), task))
	sender.AssertExpectations(t)
}

func TestSubmissionReceivedRetriesWhenAttendeeMailFails(t *testing.T) {
	f := newFixture(t)
	sender := new(MockMailSender)
	sender.On("Send", "sam@example.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	h := NewHandlers(sender, f.stores, "https://app.test", discard)
	task, err := jobs.NewSubmissionReceivedTask(f.sub.ID.Hex(), f.form.ID.Hex())
	require.NoError(t, err)

	assert.Error(t, h.HandleSubmissionReceived(context.Background(), task))
	sender.AssertNotCalled(t, "Send", "owner@example.com", mock.Anything, mock.Anything)
}

func TestDeletedSubmissionIsSkipped(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.stores.Submissions.Delete(context.Background(), f.sub.ID))
	sender := new(MockMailSender)

	h := NewHandlers(sender, f.stores, "https://app.test", discard)
	task, err := jobs.NewSubmissionReceivedTask(f.sub.ID.Hex(), f.form.ID.Hex())
	require.NoError(t, err)

	assert.NoError(t, h.HandleSubmissionReceived(context.Background(), task))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	h := NewHandlers(new(MockMailSender), repository.NewMemoryStores(), "", discard)
	err := h.HandleAttendanceConfirmed(context.Background(), asynq.NewTask(jobs.TypeAttendanceConfirmed, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestAttendanceConfirmed(t *testing.T) {
	f := newFixture(t)
	_, err := f.stores.Submissions.MarkAttended(context.Background(), f.sub.ID, time.Now())
	require.NoError(t, err)

	sender := new(MockMailSender)
	sender.On("Send", "sam@example.com", "Checked in: Go Meetup", mock.Anything).Return(nil)

	h := NewHandlers(sender, f.stores, "https://app.test", discard)
	task, err := jobs.NewAttendanceConfirmedTask(f.sub.ID.Hex(), f.form.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, h.HandleAttendanceConfirmed(context.Background(), task))
	sender.AssertExpectations(t)
}

func TestRenderTemplatesEscape(t *testing.T) {
	html, err := RenderConfirmationEmail(ConfirmationEmailData{UserName: "<b>x</b>", FormTitle: "T", TicketURL: "https://a/t"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>x</b>")
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
}
