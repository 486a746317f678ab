// Package repository persists users, forms and submissions.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail and ErrDuplicateUser come from the per-form unique indexes.
	ErrDuplicateEmail   = errors.New("duplicate submission email")
	ErrDuplicateUser    = errors.New("duplicate submission user")
	ErrDuplicateAccount = errors.New("duplicate account")
	// ErrSeatsUnavailable means a reservation hit the form cap or an option limit.
	ErrSeatsUnavailable = errors.New("seats unavailable")
	ErrAlreadyAttended  = errors.New("already attended")
)

type UserFilter struct {
	Search string
	Role   string
	Active *bool
}

type FormFilter struct {
	CreatedBy *primitive.ObjectID
	Active    *bool
	// OpenAt keeps forms whose window contains the instant.
	OpenAt *time.Time
}

type SubmissionFilter struct {
	FormID   *primitive.ObjectID
	UserID   *primitive.ObjectID
	Attended *bool
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter UserFilter, page models.PaginationParams) ([]models.User, int64, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
}

type FormStore interface {
	Create(ctx context.Context, form *models.Form) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error)
	// Update replaces the editable fields. Counters are left alone.
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter FormFilter, page models.PaginationParams) ([]models.Form, int64, error)
	Count(ctx context.Context, filter FormFilter) (int64, error)
	// ReserveSeats atomically takes one seat on the form and on every claimed
	// option, or none of them.
	ReserveSeats(ctx context.Context, formID primitive.ObjectID, r models.Reservation) error
	ReleaseSeats(ctx context.Context, formID primitive.ObjectID, r models.Reservation) error
	// SetCounters overwrites the seat counters, dropping option keys not in c.
	SetCounters(ctx context.Context, formID primitive.ObjectID, c models.FormCounters) error
}

type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error)
	// List returns newest first. limit 0 means no limit.
	List(ctx context.Context, filter SubmissionFilter, limit int64) ([]models.Submission, error)
	Count(ctx context.Context, filter SubmissionFilter) (int64, error)
	// CountAnswer counts submissions of a form whose answer to the question
	// equals value, or contains it for list answers.
	CountAnswer(ctx context.Context, formID primitive.ObjectID, questionID, value string) (int64, error)
	SetAttended(ctx context.Context, id primitive.ObjectID, attended bool, at time.Time) (*models.Submission, error)
	// MarkAttended flips attended from false to true. A second call returns
	// ErrAlreadyAttended.
	MarkAttended(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.Submission, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByForm(ctx context.Context, formID primitive.ObjectID) (int64, error)
}

// Stores bundles the three collections handed to services.
type Stores struct {
	Users       UserStore
	Forms       FormStore
	Submissions SubmissionStore
}
