package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/models"
)

func intPtr(n int) *int { return &n }

func seedForm(t *testing.T, stores *Stores, mutate func(*models.Form)) *models.Form {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	form := &models.Form{
		Title: "Workshop",
		Questions: []models.Question{{
			ID:    "session",
			Type:  models.QuestionRadio,
			Label: "Session",
			Options: []models.QuestionOption{
				{ID: "o1", Label: "Morning", Value: "morning", Limit: intPtr(2)},
				{ID: "o2", Label: "Evening", Value: "evening"},
			},
		}},
		Settings:  models.FormSettings{IsActive: true, RequireLogin: true},
		CreatedBy: primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(form)
	}
	require.NoError(t, stores.Forms.Create(context.Background(), form))
	return form
}

// runStoreContract exercises behaviour every Stores implementation must share.
func runStoreContract(t *testing.T, newStores func(t *testing.T) *Stores) {
	t.Run("ReserveSeatsStopsAtFormCap", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, func(f *models.Form) { f.Settings.MaxSubmissions = intPtr(2) })
		r := models.Reservation{Max: form.Settings.MaxSubmissions}

		require.NoError(t, stores.Forms.ReserveSeats(ctx, form.ID, r))
		require.NoError(t, stores.Forms.ReserveSeats(ctx, form.ID, r))
		assert.ErrorIs(t, stores.Forms.ReserveSeats(ctx, form.ID, r), ErrSeatsUnavailable)

		require.NoError(t, stores.Forms.ReleaseSeats(ctx, form.ID, r))
		require.NoError(t, stores.Forms.ReserveSeats(ctx, form.ID, r))

		got, err := stores.Forms.FindByID(ctx, form.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, got.Counters.Total)
	})

	t.Run("SetCountersReplacesOptionKeys", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, nil)
		evening := models.Reservation{Claims: []models.SeatClaim{{Key: models.OptionKey("session", "o2")}}}
		require.NoError(t, stores.Forms.ReserveSeats(ctx, form.ID, evening))

		require.NoError(t, stores.Forms.SetCounters(ctx, form.ID, models.FormCounters{
			Total:   2,
			Options: map[string]int64{models.OptionKey("session", "o1"): 2},
		}))

		got, err := stores.Forms.FindByID(ctx, form.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, got.Counters.Total)
		assert.Equal(t, map[string]int64{models.OptionKey("session", "o1"): 2}, got.Counters.Options)

		morning := models.Reservation{Claims: []models.SeatClaim{{Key: models.OptionKey("session", "o1"), Limit: 2}}}
		assert.ErrorIs(t, stores.Forms.ReserveSeats(ctx, form.ID, morning), ErrSeatsUnavailable)
		assert.ErrorIs(t, stores.Forms.SetCounters(ctx, primitive.NewObjectID(), models.FormCounters{}), ErrNotFound)
	})

	t.Run("ReserveSeatsStopsAtOptionLimit", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, nil)
		morning := models.Reservation{Claims: []models.SeatClaim{{Key: models.OptionKey("session", "o1"), Limit: 2}}}
		evening := models.Reservation{Claims: []models.SeatClaim{{Key: models.OptionKey("session", "o2")}}}

		require.NoError(t, stores.Forms.ReserveSeats(ctx, form.ID, morning))
		require.NoError(t, stores.Forms.ReserveSeats(ctx, form.ID, morning))
		assert.ErrorIs(t, stores.Forms.ReserveSeats(ctx, form.ID, morning), ErrSeatsUnavailable)
		require.NoError(t, stores.Forms.ReserveSeats(ctx, form.ID, evening))

		got, err := stores.Forms.FindByID(ctx, form.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, got.Counters.Total)
		assert.EqualValues(t, 2, got.Counters.Options[models.OptionKey("session", "o1")])
		assert.EqualValues(t, 1, got.Counters.Options[models.OptionKey("session", "o2")])
	})

	t.Run("ReserveSeatsIsAtomicUnderContention", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, func(f *models.Form) { f.Settings.MaxSubmissions = intPtr(5) })
		r := models.Reservation{Max: form.Settings.MaxSubmissions}

		var wg sync.WaitGroup
		var mu sync.Mutex
		granted := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if stores.Forms.ReserveSeats(ctx, form.ID, r) == nil {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 5, granted)
	})

	t.Run("ReserveSeatsOnMissingForm", func(t *testing.T) {
		stores := newStores(t)
		err := stores.Forms.ReserveSeats(context.Background(), primitive.NewObjectID(), models.Reservation{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdateKeepsCounters", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, nil)
		require.NoError(t, stores.Forms.ReserveSeats(ctx, form.ID, models.Reservation{}))

		form.Title = "Renamed"
		form.Counters = models.FormCounters{}
		require.NoError(t, stores.Forms.Update(ctx, form))

		got, err := stores.Forms.FindByID(ctx, form.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.EqualValues(t, 1, got.Counters.Total)
	})

	t.Run("SubmissionUniqueness", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, nil)
		userID := primitive.NewObjectID()

		first := &models.Submission{FormID: form.ID, UserID: &userID, UserName: "A", UserEmail: "a@example.com", SubmittedAt: time.Now()}
		require.NoError(t, stores.Submissions.Create(ctx, first))

		sameEmail := &models.Submission{FormID: form.ID, UserName: "B", UserEmail: "a@example.com", SubmittedAt: time.Now()}
		assert.ErrorIs(t, stores.Submissions.Create(ctx, sameEmail), ErrDuplicateEmail)

		sameUser := &models.Submission{FormID: form.ID, UserID: &userID, UserName: "A", UserEmail: "other@example.com", SubmittedAt: time.Now()}
		assert.ErrorIs(t, stores.Submissions.Create(ctx, sameUser), ErrDuplicateUser)

		anon1 := &models.Submission{FormID: form.ID, UserName: "C", UserEmail: "c@example.com", SubmittedAt: time.Now()}
		anon2 := &models.Submission{FormID: form.ID, UserName: "D", UserEmail: "d@example.com", SubmittedAt: time.Now()}
		require.NoError(t, stores.Submissions.Create(ctx, anon1))
		require.NoError(t, stores.Submissions.Create(ctx, anon2))

		otherForm := seedForm(t, stores, nil)
		again := &models.Submission{FormID: otherForm.ID, UserID: &userID, UserName: "A", UserEmail: "a@example.com", SubmittedAt: time.Now()}
		assert.NoError(t, stores.Submissions.Create(ctx, again))
	})

	t.Run("MarkAttendedOnlyOnce", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, nil)
		sub := &models.Submission{FormID: form.ID, UserName: "A", UserEmail: "a@example.com", SubmittedAt: time.Now()}
		require.NoError(t, stores.Submissions.Create(ctx, sub))

		at := time.Now().UTC().Truncate(time.Millisecond)
		got, err := stores.Submissions.MarkAttended(ctx, sub.ID, at)
		require.NoError(t, err)
		assert.True(t, got.Attended)
		require.NotNil(t, got.AttendedAt)

		_, err = stores.Submissions.MarkAttended(ctx, sub.ID, at)
		assert.ErrorIs(t, err, ErrAlreadyAttended)

		_, err = stores.Submissions.MarkAttended(ctx, primitive.NewObjectID(), at)
		assert.ErrorIs(t, err, ErrNotFound)

		cleared, err := stores.Submissions.SetAttended(ctx, sub.ID, false, at)
		require.NoError(t, err)
		assert.False(t, cleared.Attended)
		assert.Nil(t, cleared.AttendedAt)
	})

	t.Run("CountAnswerMatchesListValues", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, nil)
		require.NoError(t, stores.Submissions.Create(ctx, &models.Submission{
			FormID: form.ID, UserEmail: "a@example.com", SubmittedAt: time.Now(),
			Answers: []models.Answer{{QuestionID: "session", Value: "morning"}},
		}))
		require.NoError(t, stores.Submissions.Create(ctx, &models.Submission{
			FormID: form.ID, UserEmail: "b@example.com", SubmittedAt: time.Now(),
			Answers: []models.Answer{{QuestionID: "session", Value: []string{"morning", "evening"}}},
		}))

		n, err := stores.Submissions.CountAnswer(ctx, form.ID, "session", "morning")
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		n, err = stores.Submissions.CountAnswer(ctx, form.ID, "session", "evening")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("ListNewestFirstAndDeleteByForm", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		form := seedForm(t, stores, nil)
		base := time.Now().UTC().Truncate(time.Millisecond)
		for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
			require.NoError(t, stores.Submissions.Create(ctx, &models.Submission{
				FormID: form.ID, UserEmail: email, SubmittedAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}

		subs, err := stores.Submissions.List(ctx, SubmissionFilter{FormID: &form.ID}, 2)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Equal(t, "c@example.com", subs[0].UserEmail)
		assert.Equal(t, "b@example.com", subs[1].UserEmail)

		n, err := stores.Submissions.DeleteByForm(ctx, form.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		count, err := stores.Submissions.Count(ctx, SubmissionFilter{FormID: &form.ID})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("OpenFormsFilter", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Millisecond)
		past := now.Add(-time.Hour)
		future := now.Add(time.Hour)

		open := seedForm(t, stores, func(f *models.Form) { f.Settings.StartDate = &past; f.Settings.EndDate = &future })
		seedForm(t, stores, func(f *models.Form) { f.Settings.StartDate = &future })
		seedForm(t, stores, func(f *models.Form) { f.Settings.EndDate = &past })
		seedForm(t, stores, func(f *models.Form) { f.Settings.IsActive = false })

		forms, total, err := stores.Forms.List(ctx, FormFilter{OpenAt: &now}, models.DefaultPagination())
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		assert.Equal(t, open.ID, forms[0].ID)
	})

	t.Run("UserLookupAndSearch", func(t *testing.T) {
		stores := newStores(t)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Millisecond)
		alice := &models.User{Email: "alice@example.com", Name: "Alice", GoogleID: "g-1", Role: models.RoleAdmin, IsActive: true, CreatedAt: now}
		bob := &models.User{Email: "bob@example.com", Name: "Bob", Role: models.RoleUser, IsActive: false, CreatedAt: now.Add(time.Second)}
		require.NoError(t, stores.Users.Create(ctx, alice))
		require.NoError(t, stores.Users.Create(ctx, bob))
		assert.ErrorIs(t, stores.Users.Create(ctx, &models.User{Email: "alice@example.com"}), ErrDuplicateAccount)

		got, err := stores.Users.FindByGoogleID(ctx, "g-1")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = stores.Users.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)

		users, total, err := stores.Users.List(ctx, UserFilter{Search: "BO"}, models.DefaultPagination())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, "Bob", users[0].Name)

		inactive := false
		n, err := stores.Users.Count(ctx, UserFilter{Active: &inactive})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}
