package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer.Value holds a string, a list of strings, a number, a bool or a date.
type Answer struct {
	QuestionID string      `bson:"questionId" json:"questionId"`
	Value      interface{} `bson:"value" json:"value"`
}

type SubmissionMetadata struct {
	IPAddress string `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent string `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	Referrer  string `bson:"referrer,omitempty" json:"referrer,omitempty"`
}

type Submission struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FormID      primitive.ObjectID  `bson:"formId" json:"formId"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	UserName    string              `bson:"userName" json:"userName"`
	UserEmail   string              `bson:"userEmail" json:"userEmail"`
	Answers     []Answer            `bson:"answers" json:"answers"`
	SubmittedAt time.Time           `bson:"submittedAt" json:"submittedAt"`
	Attended    bool                `bson:"attended" json:"attended"`
	AttendedAt  *time.Time          `bson:"attendedAt,omitempty" json:"attendedAt,omitempty"`
	Metadata    *SubmissionMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (s *Submission) Answer(questionID string) *Answer {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}

// SubmittedBy reports whether the submission belongs to the given user.
func (s *Submission) SubmittedBy(userID primitive.ObjectID) bool {
	return s.UserID != nil && *s.UserID == userID
}

// SubmissionWithForm is a row of "my submissions".
type SubmissionWithForm struct {
	Submission
	FormTitle string `json:"formTitle"`
}
