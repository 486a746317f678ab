package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type QuestionOptionInput struct {
	ID    string `json:"id" validate:"omitempty,max=100"`
	Label string `json:"label" validate:"required,max=200"`
	Value string `json:"value" validate:"omitempty,max=200"`
	Limit *int   `json:"limit" validate:"omitempty,min=1"`
}

type QuestionInput struct {
	ID             string                `json:"id" validate:"omitempty,max=100"`
	Type           QuestionType          `json:"type" validate:"required,oneof=text textarea email phone number select radio checkbox date time datetime file rating scale yesno"`
	Label          string                `json:"label" validate:"required,max=500"`
	Description    string                `json:"description" validate:"omitempty,max=2000"`
	Required       bool                  `json:"required"`
	IsPersonalInfo bool                  `json:"isPersonalInfo"`
	Options        []QuestionOptionInput `json:"options" validate:"omitempty,dive"`
	Validation     *QuestionValidation   `json:"validation"`
	Settings       *QuestionSettings     `json:"settings"`
}

// FormSettingsInput uses pointers so updates can tell "unset" from "false".
// An explicit null clears maxSubmissions, startDate or endDate, and a
// maxSubmissions of 0 removes the cap as well.
type FormSettingsInput struct {
	AllowAnonymous *bool      `json:"allowAnonymous"`
	RequireLogin   *bool      `json:"requireLogin"`
	MaxSubmissions *int       `json:"maxSubmissions" validate:"omitempty,min=0"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	IsActive       *bool      `json:"isActive"`

	nulls map[string]bool
}

var clearableSettings = []string{"maxSubmissions", "startDate", "endDate"}

func (in *FormSettingsInput) UnmarshalJSON(data []byte) error {
	type plain FormSettingsInput
	var p plain
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*in = FormSettingsInput(p)
	for _, key := range clearableSettings {
		if v, ok := raw[key]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			if in.nulls == nil {
				in.nulls = map[string]bool{}
			}
			in.nulls[key] = true
		}
	}
	return nil
}

// Cleared reports whether the request sent an explicit null for key.
func (in *FormSettingsInput) Cleared(key string) bool {
	return in.nulls[key]
}

type CreateFormRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description" validate:"omitempty,max=5000"`
	Questions   []QuestionInput    `json:"questions" validate:"required,min=1,dive"`
	Settings    *FormSettingsInput `json:"settings"`
}

type UpdateFormRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string            `json:"description" validate:"omitempty,max=5000"`
	Questions   []QuestionInput    `json:"questions" validate:"omitempty,dive"`
	Settings    *FormSettingsInput `json:"settings"`
}

type CreateSubmissionRequest struct {
	FormID    string   `json:"formId" validate:"required"`
	UserName  string   `json:"userName" validate:"omitempty,max=200"`
	UserEmail string   `json:"userEmail" validate:"omitempty,max=320"`
	Answers   []Answer `json:"answers"`
}

type AttendanceRequest struct {
	Attended *bool `json:"attended" validate:"required"`
}

type ScanRequest struct {
	Data string `json:"data" validate:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type StatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type UserFilterParams struct {
	PaginationParams
	Role   string `query:"role"`
	Status string `query:"status"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
