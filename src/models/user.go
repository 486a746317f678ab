package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is created on first successful sign-in.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID     string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	Picture      string             `bson:"picture,omitempty" json:"picture,omitempty"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	LastLoginAt  *time.Time         `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Name  string             `json:"name"`
	Role  string             `json:"role"`
}

func (i *Identity) IsAdmin() bool { return i != nil && i.Role == RoleAdmin }

func IdentityOf(u *User) *Identity {
	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// UserSummary is a list row in the admin user table.
type UserSummary struct {
	User
	FormCount       int64 `json:"formCount"`
	SubmissionCount int64 `json:"submissionCount"`
}

type UserDetail struct {
	User              User         `json:"user"`
	FormCount         int64        `json:"formCount"`
	SubmissionCount   int64        `json:"submissionCount"`
	RecentForms       []Form       `json:"recentForms"`
	RecentSubmissions []Submission `json:"recentSubmissions"`
}

type SystemOverview struct {
	TotalUsers       int64  `json:"totalUsers"`
	ActiveUsers      int64  `json:"activeUsers"`
	AdminUsers       int64  `json:"adminUsers"`
	TotalForms       int64  `json:"totalForms"`
	ActiveForms      int64  `json:"activeForms"`
	TotalSubmissions int64  `json:"totalSubmissions"`
	RecentUsers      []User `json:"recentUsers"`
}
