package submission

import (
	"context"
	"fmt"
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
	"sgformer-backend/src/services/checkin"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/services/tickets"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingNotifier struct {
	mu       sync.Mutex
	created  []primitive.ObjectID
	attended []primitive.ObjectID
}

func (n *recordingNotifier) SubmissionCreated(_ context.Context, sub *models.Submission) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, sub.ID)
}

func (n *recordingNotifier) AttendanceMarked(_ context.Context, sub *models.Submission) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attended = append(n.attended, sub.ID)
}

type fixture struct {
	stores   *repository.Stores
	forms    *forms.Service
	svc      *Service
	notifier *recordingNotifier
	owner    *models.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := repository.NewMemoryStores()
	formSvc := forms.NewService(stores, discard)
	n := &recordingNotifier{}
	return &fixture{
		stores:   stores,
		forms:    formSvc,
		svc:      NewService(stores, formSvc, n, discard),
		notifier: n,
		owner:    &models.Identity{ID: primitive.NewObjectID(), Email: "owner@example.com", Name: "Owner", Role: models.RoleAdmin},
	}
}

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func (f *fixture) createForm(t *testing.T, mutate func(*models.CreateFormRequest)) *models.Form {
	t.Helper()
	req := models.CreateFormRequest{
		Title: "F1",
		Questions: []models.QuestionInput{
			{ID: "slot", Type: models.QuestionRadio, Label: "Slot", Required: true, Options: []models.QuestionOptionInput{
				{ID: "o1", Label: "O1", Limit: intPtr(2)},
				{ID: "o2", Label: "O2"},
			}},
			{ID: "note", Type: models.QuestionText, Label: "Note"},
		},
		Settings: &models.FormSettingsInput{AllowAnonymous: boolPtr(true), RequireLogin: boolPtr(false)},
	}
	if mutate != nil {
		mutate(&req)
	}
	form, err := f.forms.Create(context.Background(), f.owner, req)
	require.NoError(t, err)
	return form
}

func register(formID primitive.ObjectID, name, slot string) models.CreateSubmissionRequest {
	return models.CreateSubmissionRequest{
		FormID:    formID.Hex(),
		UserName:  name,
		UserEmail: name + "@example.com",
		Answers:   []models.Answer{{QuestionID: "slot", Value: slot}},
	}
}

func TestOptionLimitScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)

	s1, err := f.svc.Create(ctx, nil, register(form.ID, "s1", "O1"), nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, nil, register(form.ID, "s2", "O1"), nil)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, nil, register(form.ID, "s3", "O1"), nil)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindCapacity))
	assert.Equal(t, "O1 is full", err.Error())

	detail, err := f.forms.Get(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, detail.Availability, 1)
	assert.True(t, detail.Availability[0].Full)
	assert.Equal(t, int64(2), detail.SubmissionCount)

	// O2 has no limit and still takes registrations.
	_, err = f.svc.Create(ctx, nil, register(form.ID, "s3", "O2"), nil)
	require.NoError(t, err)

	ticket, err := f.svc.Ticket(ctx, f.owner, s1.ID)
	require.NoError(t, err)

	matcher := checkin.NewMatcher(f.stores.Submissions, f.notifier, discard)
	res, err := matcher.Scan(ctx, form.ID, ticket.Data)
	require.NoError(t, err)
	assert.Equal(t, "s1", res.UserName)

	_, err = matcher.Scan(ctx, form.ID, ticket.Data)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Contains(t, err.Error(), "already checked in")

	stored, err := f.stores.Submissions.FindByID(ctx, s1.ID)
	require.NoError(t, err)
	assert.True(t, stored.Attended)
	assert.Len(t, f.notifier.created, 3)
	assert.Len(t, f.notifier.attended, 1)
}

func TestFormEditKeepsOptionFull(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)

	for _, name := range []string{"s1", "s2"} {
		_, err := f.svc.Create(ctx, nil, register(form.ID, name, "O1"), nil)
		require.NoError(t, err)
	}

	_, err := f.forms.Update(ctx, f.owner, form.ID, models.UpdateFormRequest{Questions: []models.QuestionInput{
		{Type: models.QuestionRadio, Label: "Slot", Required: true, Options: []models.QuestionOptionInput{
			{Label: "O1", Limit: intPtr(2)},
			{Label: "O2"},
		}},
		{Type: models.QuestionText, Label: "Note"},
	}})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, nil, register(form.ID, "s3", "O1"), nil)
	require.Error(t, err)
	assert.Equal(t, "O1 is full", err.Error())

	s4, err := f.svc.Create(ctx, nil, register(form.ID, "s4", "O2"), nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, f.owner, s4.ID))

	stored, err := f.stores.Forms.FindByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Counters.Total)
	assert.Equal(t, int64(2), stored.Counters.Options[models.OptionKey("slot", "o1")])
	assert.Zero(t, stored.Counters.Options[models.OptionKey("slot", "o2")])
}

func TestMaxSubmissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, func(r *models.CreateFormRequest) { r.Settings.MaxSubmissions = intPtr(3) })

	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, nil, register(form.ID, fmt.Sprintf("u%d", i), "O2"), nil)
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, nil, register(form.ID, "late", "O2"), nil)
	assert.True(t, apperror.Is(err, apperror.KindCapacity))
	assert.Equal(t, "Maximum submissions reached", err.Error())
}

func TestConcurrentRegistrationsRespectLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := f.svc.Create(ctx, nil, register(form.ID, fmt.Sprintf("c%d", i), "O1"), nil); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 2, ok)

	stored, err := f.stores.Forms.FindByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Counters.Total)
}

func TestDuplicateEmailReleasesSeat(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)

	_, err := f.svc.Create(ctx, nil, register(form.ID, "ann", "O1"), nil)
	require.NoError(t, err)

	again := register(form.ID, "ann", "O1")
	again.UserEmail = "ANN@example.com"
	_, err = f.svc.Create(ctx, nil, again, nil)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, MsgDuplicateEmail, err.Error())

	stored, err := f.stores.Forms.FindByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Counters.Total)
	assert.Equal(t, int64(1), stored.Counters.Options[models.OptionKey("slot", "o1")])
}

func TestDuplicateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)
	user := &models.Identity{ID: primitive.NewObjectID(), Email: "u@example.com", Name: "U", Role: models.RoleUser}

	req := models.CreateSubmissionRequest{FormID: form.ID.Hex(), Answers: []models.Answer{{QuestionID: "slot", Value: "O2"}}}
	sub, err := f.svc.Create(ctx, user, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "U", sub.UserName)
	assert.Equal(t, "u@example.com", sub.UserEmail)

	req.UserEmail = "other@example.com"
	_, err = f.svc.Create(ctx, user, req, nil)
	assert.Equal(t, MsgDuplicateUser, err.Error())
}

func TestCreateRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	open := f.createForm(t, nil)
	loginOnly := f.createForm(t, func(r *models.CreateFormRequest) { r.Settings = nil })
	inactive := f.createForm(t, func(r *models.CreateFormRequest) { r.Settings.IsActive = boolPtr(false) })
	past := time.Now().Add(-time.Hour)
	closed := f.createForm(t, func(r *models.CreateFormRequest) { r.Settings.EndDate = &past })

	noAnswers := register(open.ID, "x", "O1")
	noAnswers.Answers = nil
	badEmail := register(open.ID, "x", "O1")
	badEmail.UserEmail = "not-an-email"
	missingRequired := register(open.ID, "x", "")
	badOption := register(open.ID, "x", "O9")

	cases := []struct {
		name string
		req  models.CreateSubmissionRequest
		kind apperror.Kind
		msg  string
	}{
		{"unknown form", register(primitive.NewObjectID(), "x", "O1"), apperror.KindNotFound, forms.MsgFormNotFound},
		{"login required", register(loginOnly.ID, "x", "O1"), apperror.KindAuthentication, ""},
		{"inactive", register(inactive.ID, "x", "O1"), apperror.KindCapacity, "Form is not active"},
		{"closed", register(closed.ID, "x", "O1"), apperror.KindCapacity, "Form is closed"},
		{"no answers", noAnswers, apperror.KindValidation, MsgNoAnswers},
		{"bad email", badEmail, apperror.KindValidation, MsgBadEmail},
		{"required empty", missingRequired, apperror.KindValidation, MsgValidation},
		{"unknown option", badOption, apperror.KindValidation, MsgValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, nil, tc.req, nil)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, tc.kind), "got %v", err)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, err.Error())
			}
		})
	}

	n, err := f.stores.Submissions.Count(ctx, repository.SubmissionFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStrayAnswersTakeNoSeats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)

	repeated := register(form.ID, "ann", "O2")
	repeated.Answers = []models.Answer{{QuestionID: "slot", Value: "bogus"}, {QuestionID: "slot", Value: "O2"}}
	both := register(form.ID, "bob", "O1")
	both.Answers = []models.Answer{{QuestionID: "slot", Value: []interface{}{"O1", "O2"}}}
	ghost := register(form.ID, "cid", "O1")
	ghost.Answers = append(ghost.Answers, models.Answer{QuestionID: "ghost", Value: "x"})

	cases := []struct {
		name   string
		req    models.CreateSubmissionRequest
		detail string
	}{
		{"repeated question", repeated, "Slot is answered more than once"},
		{"two options on radio", both, "Slot accepts a single option"},
		{"unknown question", ghost, `Unknown question "ghost"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, nil, tc.req, nil)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Details, tc.detail)
		})
	}

	n, err := f.stores.Submissions.Count(ctx, repository.SubmissionFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
	stored, err := f.stores.Forms.FindByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Counters.Total)
	assert.Zero(t, stored.Counters.Options[models.OptionKey("slot", "o1")])
}

func TestVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)
	user := &models.Identity{ID: primitive.NewObjectID(), Email: "u@example.com", Name: "U", Role: models.RoleUser}
	stranger := &models.Identity{ID: primitive.NewObjectID(), Email: "s@example.com", Role: models.RoleUser}
	otherAdmin := &models.Identity{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	sub, err := f.svc.Create(ctx, user, models.CreateSubmissionRequest{FormID: form.ID.Hex(), Answers: []models.Answer{{QuestionID: "slot", Value: "O1"}}}, nil)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, user, sub.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, f.owner, sub.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, stranger, sub.ID)
	assert.True(t, apperror.Is(err, apperror.KindAuthorization))
	_, err = f.svc.Get(ctx, otherAdmin, sub.ID)
	assert.True(t, apperror.Is(err, apperror.KindAuthorization))
	_, err = f.svc.Get(ctx, nil, sub.ID)
	assert.True(t, apperror.Is(err, apperror.KindAuthentication))

	mine, err := f.svc.ListMine(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "F1", mine[0].FormTitle)

	ticket, err := f.svc.Ticket(ctx, user, sub.ID)
	require.NoError(t, err)
	payload, err := tickets.Decode(ticket.Data)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), payload.UserID)
}

func TestSetAttendanceAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)
	sub, err := f.svc.Create(ctx, nil, register(form.ID, "ann", "O1"), nil)
	require.NoError(t, err)

	updated, err := f.svc.SetAttendance(ctx, f.owner, sub.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Attended)
	assert.NotNil(t, updated.AttendedAt)
	assert.Len(t, f.notifier.attended, 1)

	updated, err = f.svc.SetAttendance(ctx, f.owner, sub.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Attended)
	assert.Nil(t, updated.AttendedAt)

	require.NoError(t, f.svc.Delete(ctx, f.owner, sub.ID))
	stored, err := f.stores.Forms.FindByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Counters.Total)
	assert.Zero(t, stored.Counters.Options[models.OptionKey("slot", "o1")])

	_, err = f.svc.Get(ctx, f.owner, sub.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.createForm(t, nil)
	_, err := f.svc.Create(ctx, nil, register(form.ID, "ann", "O1"), nil)
	require.NoError(t, err)

	csvOut, err := f.svc.Export(ctx, f.owner, form.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "F1-submissions.csv", csvOut.FileName)
	assert.Contains(t, string(csvOut.Body), "ann@example.com,Absent,O1")

	jsonOut, err := f.svc.Export(ctx, f.owner, form.ID, "json")
	require.NoError(t, err)
	assert.Len(t, jsonOut.Rows, 1)

	_, err = f.svc.Export(ctx, &models.Identity{ID: primitive.NewObjectID(), Role: models.RoleAdmin}, form.ID, "")
	assert.True(t, apperror.Is(err, apperror.KindAuthorization))
}

func TestPurgeUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.createForm(t, nil)
	b := f.createForm(t, nil)
	user := &models.Identity{ID: primitive.NewObjectID(), Email: "u@example.com", Name: "U", Role: models.RoleUser}
	for _, form := range []*models.Form{a, b} {
		_, err := f.svc.Create(ctx, user, models.CreateSubmissionRequest{FormID: form.ID.Hex(), Answers: []models.Answer{{QuestionID: "slot", Value: "O1"}}}, nil)
		require.NoError(t, err)
	}

	n, err := f.svc.PurgeUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := f.stores.Forms.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Counters.Total)
}
