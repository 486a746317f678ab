package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionEmail    QuestionType = "email"
	QuestionPhone    QuestionType = "phone"
	QuestionNumber   QuestionType = "number"
	QuestionSelect   QuestionType = "select"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
	QuestionDate     QuestionType = "date"
	QuestionTime     QuestionType = "time"
	QuestionDatetime QuestionType = "datetime"
	QuestionFile     QuestionType = "file"
	QuestionRating   QuestionType = "rating"
	QuestionScale    QuestionType = "scale"
	QuestionYesNo    QuestionType = "yesno"
)

// HasOptions reports whether answers to this type are picked from Options.
func (t QuestionType) HasOptions() bool {
	return t == QuestionSelect || t == QuestionRadio || t == QuestionCheckbox
}

type QuestionOption struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
	Limit *int   `bson:"limit,omitempty" json:"limit,omitempty"`
}

type QuestionValidation struct {
	MinLength     *int     `bson:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength     *int     `bson:"maxLength,omitempty" json:"maxLength,omitempty"`
	Min           *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max           *float64 `bson:"max,omitempty" json:"max,omitempty"`
	Pattern       string   `bson:"pattern,omitempty" json:"pattern,omitempty"`
	CustomMessage string   `bson:"customMessage,omitempty" json:"customMessage,omitempty"`
}

type QuestionSettings struct {
	Placeholder string `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	Multiple    bool   `bson:"multiple,omitempty" json:"multiple,omitempty"`
	Rows        int    `bson:"rows,omitempty" json:"rows,omitempty"`
	Scale       int    `bson:"scale,omitempty" json:"scale,omitempty"`
}

type Question struct {
	ID             string              `bson:"id" json:"id"`
	Type           QuestionType        `bson:"type" json:"type"`
	Label          string              `bson:"label" json:"label"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Required       bool                `bson:"required" json:"required"`
	IsPersonalInfo bool                `bson:"isPersonalInfo" json:"isPersonalInfo"`
	Options        []QuestionOption    `bson:"options,omitempty" json:"options,omitempty"`
	Validation     *QuestionValidation `bson:"validation,omitempty" json:"validation,omitempty"`
	Settings       *QuestionSettings   `bson:"settings,omitempty" json:"settings,omitempty"`
}

// MultipleChoice reports whether an answer may pick more than one option.
func (q *Question) MultipleChoice() bool {
	return q.Type == QuestionCheckbox || (q.Settings != nil && q.Settings.Multiple)
}

type FormSettings struct {
	AllowAnonymous bool       `bson:"allowAnonymous" json:"allowAnonymous"`
	RequireLogin   bool       `bson:"requireLogin" json:"requireLogin"`
	MaxSubmissions *int       `bson:"maxSubmissions,omitempty" json:"maxSubmissions,omitempty"`
	StartDate      *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate        *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	IsActive       bool       `bson:"isActive" json:"isActive"`
}

// FormCounters are the seat counters maintained by seat reservation.
// Options is keyed by OptionKey(questionID, optionID).
type FormCounters struct {
	Total   int64            `bson:"total" json:"total"`
	Options map[string]int64 `bson:"options,omitempty" json:"options,omitempty"`
}

type Form struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Questions   []Question         `bson:"questions" json:"questions"`
	Settings    FormSettings       `bson:"settings" json:"settings"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Counters    FormCounters       `bson:"counters" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (f *Form) Question(id string) *Question {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return &f.Questions[i]
		}
	}
	return nil
}

// OptionAvailability tells clients whether a limited option still has seats.
type OptionAvailability struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
	Value      string `json:"value"`
	Label      string `json:"label"`
	Limit      int    `json:"limit"`
	Count      int64  `json:"count"`
	Full       bool   `json:"full"`
}

type FormCreator struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FormDetail struct {
	Form
	SubmissionCount int64                `json:"submissionCount"`
	Availability    []OptionAvailability `json:"availability"`
	Creator         *FormCreator         `json:"creator,omitempty"`
}

type OptionStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type QuestionStat struct {
	QuestionID string       `json:"questionId"`
	Label      string       `json:"label"`
	Type       QuestionType `json:"type"`
	Options    []OptionStat `json:"options"`
}

type FormStats struct {
	TotalSubmissions    int64          `json:"totalSubmissions"`
	AttendedSubmissions int64          `json:"attendedSubmissions"`
	AttendanceRate      float64        `json:"attendanceRate"`
	RecentSubmissions   []Submission   `json:"recentSubmissions"`
	QuestionStats       []QuestionStat `json:"questionStats"`
}
