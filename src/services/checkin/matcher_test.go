package checkin

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/notifications"
	"sgformer-backend/src/services/tickets"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func seed(t *testing.T, subs repository.SubmissionStore, formID primitive.ObjectID) *models.Submission {
	t.Helper()
	sub := &models.Submission{FormID: formID, UserName: "Ann", UserEmail: "ann@example.com", SubmittedAt: time.Now()}
	require.NoError(t, subs.Create(context.Background(), sub))
	return sub
}

func payload(t *testing.T, sub *models.Submission) string {
	t.Helper()
	data, err := tickets.Encode(tickets.PayloadFor(sub))
	require.NoError(t, err)
	return data
}

func TestScanChecksInOnce(t *testing.T) {
	ctx := context.Background()
	subs := repository.NewMemorySubmissionStore()
	formID := primitive.NewObjectID()
	sub := seed(t, subs, formID)
	m := NewMatcher(subs, notifications.NoopNotifier{}, discard)

	res, err := m.Scan(ctx, formID, payload(t, sub))
	require.NoError(t, err)
	assert.Equal(t, "Ann", res.UserName)
	assert.Equal(t, "ann@example.com", res.UserEmail)
	assert.Equal(t, "Ann checked in successfully.", res.Message)

	_, err = m.Scan(ctx, formID, payload(t, sub))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "This person (Ann) has already checked in.", err.Error())

	stored, err := subs.FindByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, stored.Attended)
}

func TestScanRejects(t *testing.T) {
	ctx := context.Background()
	subs := repository.NewMemorySubmissionStore()
	formID := primitive.NewObjectID()
	sub := seed(t, subs, formID)
	m := NewMatcher(subs, nil, discard)

	otherEvent := payload(t, &models.Submission{ID: sub.ID, FormID: primitive.NewObjectID()})
	missing := payload(t, &models.Submission{ID: primitive.NewObjectID(), FormID: formID})

	cases := []struct {
		name string
		data string
		kind apperror.Kind
		msg  string
	}{
		{"garbage", "not json", apperror.KindValidation, tickets.MsgBadPayload},
		{"missing ids", `{"submissionId":""}`, apperror.KindValidation, tickets.MsgBadPayload},
		{"other event", otherEvent, apperror.KindConflict, MsgWrongEvent},
		{"unknown submission", missing, apperror.KindNotFound, MsgNotFound},
		{"bad id", `{"submissionId":"zzz","formId":"` + formID.Hex() + `"}`, apperror.KindNotFound, MsgNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Scan(ctx, formID, tc.data)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, tc.kind), "got %v", err)
			assert.Equal(t, tc.msg, err.Error())
		})
	}

	stored, err := subs.FindByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.False(t, stored.Attended)
}

func TestConcurrentScansSucceedOnce(t *testing.T) {
	ctx := context.Background()
	subs := repository.NewMemorySubmissionStore()
	formID := primitive.NewObjectID()
	sub := seed(t, subs, formID)
	m := NewMatcher(subs, nil, discard)
	data := payload(t, sub)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, dup := 0, 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Scan(ctx, formID, data)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if apperror.Is(err, apperror.KindConflict) {
				dup++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 15, dup)
}
