package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/models"
)

// NewMemoryStores returns stores that keep everything in process memory.
// They honour the same uniqueness and seat contracts as the Mongo stores.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:       NewMemoryUserStore(),
		Forms:       NewMemoryFormStore(),
		Submissions: NewMemorySubmissionStore(),
	}
}

func paginate[T any](items []T, page models.PaginationParams) []T {
	page = page.Normalize()
	start := int(page.GetSkip())
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func newerFirst(at1, at2 time.Time, id1, id2 primitive.ObjectID) bool {
	if !at1.Equal(at2) {
		return at1.After(at2)
	}
	return id1.Hex() > id2.Hex()
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email || (user.GoogleID != "" && u.GoogleID == user.GoogleID) {
			return ErrDuplicateAccount
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) find(match func(models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.ID == id })
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.Email == email })
}

func (s *MemoryUserStore) FindByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.GoogleID != "" && u.GoogleID == googleID })
}

func (s *MemoryUserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && u.Email == user.Email {
			return ErrDuplicateAccount
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (f UserFilter) matches(u models.User) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(u.Name), needle) && !strings.Contains(strings.ToLower(u.Email), needle) {
			return false
		}
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.Active != nil && u.IsActive != *f.Active {
		return false
	}
	return true
}

func (s *MemoryUserStore) filtered(filter UserFilter) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.User{}
	for _, u := range s.users {
		if filter.matches(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out
}

func (s *MemoryUserStore) List(_ context.Context, filter UserFilter, page models.PaginationParams) ([]models.User, int64, error) {
	all := s.filtered(filter)
	return paginate(all, page), int64(len(all)), nil
}

func (s *MemoryUserStore) Count(_ context.Context, filter UserFilter) (int64, error) {
	return int64(len(s.filtered(filter))), nil
}

type MemoryFormStore struct {
	mu    sync.RWMutex
	forms map[primitive.ObjectID]models.Form
}

func NewMemoryFormStore() *MemoryFormStore {
	return &MemoryFormStore{forms: map[primitive.ObjectID]models.Form{}}
}

func cloneForm(f models.Form) models.Form {
	f.Questions = append([]models.Question(nil), f.Questions...)
	for i := range f.Questions {
		f.Questions[i].Options = append([]models.QuestionOption(nil), f.Questions[i].Options...)
	}
	opts := make(map[string]int64, len(f.Counters.Options))
	for k, v := range f.Counters.Options {
		opts[k] = v
	}
	f.Counters.Options = opts
	return f
}

func (s *MemoryFormStore) Create(_ context.Context, form *models.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if form.ID.IsZero() {
		form.ID = primitive.NewObjectID()
	}
	s.forms[form.ID] = cloneForm(*form)
	return nil
}

func (s *MemoryFormStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.forms[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneForm(f)
	return &out, nil
}

func (s *MemoryFormStore) Update(_ context.Context, form *models.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.forms[form.ID]
	if !ok {
		return ErrNotFound
	}
	next := cloneForm(*form)
	next.Counters = cur.Counters
	next.CreatedBy = cur.CreatedBy
	next.CreatedAt = cur.CreatedAt
	s.forms[form.ID] = next
	return nil
}

func (s *MemoryFormStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.forms[id]; !ok {
		return ErrNotFound
	}
	delete(s.forms, id)
	return nil
}

func (f FormFilter) matches(form models.Form) bool {
	if f.CreatedBy != nil && form.CreatedBy != *f.CreatedBy {
		return false
	}
	if f.Active != nil && form.Settings.IsActive != *f.Active {
		return false
	}
	if f.OpenAt != nil {
		at := *f.OpenAt
		st := form.Settings
		if !st.IsActive {
			return false
		}
		if st.StartDate != nil && st.StartDate.After(at) {
			return false
		}
		if st.EndDate != nil && st.EndDate.Before(at) {
			return false
		}
	}
	return true
}

func (s *MemoryFormStore) filtered(filter FormFilter) []models.Form {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Form{}
	for _, f := range s.forms {
		if filter.matches(f) {
			out = append(out, cloneForm(f))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out
}

func (s *MemoryFormStore) List(_ context.Context, filter FormFilter, page models.PaginationParams) ([]models.Form, int64, error) {
	all := s.filtered(filter)
	return paginate(all, page), int64(len(all)), nil
}

func (s *MemoryFormStore) Count(_ context.Context, filter FormFilter) (int64, error) {
	return int64(len(s.filtered(filter))), nil
}

func (s *MemoryFormStore) ReserveSeats(_ context.Context, formID primitive.ObjectID, r models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.forms[formID]
	if !ok {
		return ErrNotFound
	}
	if r.Max != nil && f.Counters.Total >= int64(*r.Max) {
		return ErrSeatsUnavailable
	}
	for _, c := range r.Claims {
		if c.Limit > 0 && f.Counters.Options[c.Key] >= int64(c.Limit) {
			return ErrSeatsUnavailable
		}
	}

	if f.Counters.Options == nil {
		f.Counters.Options = map[string]int64{}
	}
	f.Counters.Total++
	for _, c := range r.Claims {
		f.Counters.Options[c.Key]++
	}
	s.forms[formID] = f
	return nil
}

func (s *MemoryFormStore) ReleaseSeats(_ context.Context, formID primitive.ObjectID, r models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.forms[formID]
	if !ok {
		return nil
	}
	f.Counters.Total--
	for _, c := range r.Claims {
		if f.Counters.Options != nil {
			f.Counters.Options[c.Key]--
		}
	}
	s.forms[formID] = f
	return nil
}

func (s *MemoryFormStore) SetCounters(_ context.Context, formID primitive.ObjectID, c models.FormCounters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.forms[formID]
	if !ok {
		return ErrNotFound
	}
	f.Counters = models.FormCounters{Total: c.Total, Options: make(map[string]int64, len(c.Options))}
	for k, v := range c.Options {
		f.Counters.Options[k] = v
	}
	s.forms[formID] = f
	return nil
}

type MemorySubmissionStore struct {
	mu   sync.RWMutex
	subs map[primitive.ObjectID]models.Submission
}

func NewMemorySubmissionStore() *MemorySubmissionStore {
	return &MemorySubmissionStore{subs: map[primitive.ObjectID]models.Submission{}}
}

func cloneSubmission(s models.Submission) models.Submission {
	s.Answers = append([]models.Answer(nil), s.Answers...)
	return s
}

func (s *MemorySubmissionStore) Create(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.subs {
		if existing.FormID != sub.FormID {
			continue
		}
		if sub.UserID != nil && existing.SubmittedBy(*sub.UserID) {
			return ErrDuplicateUser
		}
		if existing.UserEmail == sub.UserEmail {
			return ErrDuplicateEmail
		}
	}
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	s.subs[sub.ID] = cloneSubmission(*sub)
	return nil
}

func (s *MemorySubmissionStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneSubmission(sub)
	return &out, nil
}

func (f SubmissionFilter) matches(s models.Submission) bool {
	if f.FormID != nil && s.FormID != *f.FormID {
		return false
	}
	if f.UserID != nil && !s.SubmittedBy(*f.UserID) {
		return false
	}
	if f.Attended != nil && s.Attended != *f.Attended {
		return false
	}
	return true
}

func (s *MemorySubmissionStore) filtered(filter SubmissionFilter) []models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Submission{}
	for _, sub := range s.subs {
		if filter.matches(sub) {
			out = append(out, cloneSubmission(sub))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].SubmittedAt, out[j].SubmittedAt, out[i].ID, out[j].ID)
	})
	return out
}

func (s *MemorySubmissionStore) List(_ context.Context, filter SubmissionFilter, limit int64) ([]models.Submission, error) {
	all := s.filtered(filter)
	if limit > 0 && int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemorySubmissionStore) Count(_ context.Context, filter SubmissionFilter) (int64, error) {
	return int64(len(s.filtered(filter))), nil
}

func (s *MemorySubmissionStore) CountAnswer(_ context.Context, formID primitive.ObjectID, questionID, value string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, sub := range s.subs {
		if sub.FormID != formID {
			continue
		}
		if a := sub.Answer(questionID); a != nil && answerHas(a.Value, value) {
			n++
		}
	}
	return n, nil
}

func answerHas(v interface{}, value string) bool {
	switch t := v.(type) {
	case string:
		return t == value
	case []string:
		for _, s := range t {
			if s == value {
				return true
			}
		}
	case []interface{}:
		for _, s := range t {
			if fmt.Sprint(s) == value {
				return true
			}
		}
	}
	return false
}

func (s *MemorySubmissionStore) SetAttended(_ context.Context, id primitive.ObjectID, attended bool, at time.Time) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	sub.Attended = attended
	sub.AttendedAt = nil
	if attended {
		sub.AttendedAt = &at
	}
	sub.UpdatedAt = at
	s.subs[id] = sub
	out := cloneSubmission(sub)
	return &out, nil
}

func (s *MemorySubmissionStore) MarkAttended(_ context.Context, id primitive.ObjectID, at time.Time) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sub.Attended {
		return nil, ErrAlreadyAttended
	}
	sub.Attended = true
	sub.AttendedAt = &at
	sub.UpdatedAt = at
	s.subs[id] = sub
	out := cloneSubmission(sub)
	return &out, nil
}

func (s *MemorySubmissionStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[id]; !ok {
		return ErrNotFound
	}
	delete(s.subs, id)
	return nil
}

func (s *MemorySubmissionStore) DeleteByForm(_ context.Context, formID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sub := range s.subs {
		if sub.FormID == formID {
			delete(s.subs, id)
			n++
		}
	}
	return n, nil
}
