package seeder

import (
	"context"
	"fmt"
	"log"

	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/forms"
)

func intPtr(n int) *int { return &n }

// SeedSampleForms creates a demo workshop form for owner when the owner has
// no forms yet.
func SeedSampleForms(ctx context.Context, stores *repository.Stores, formSvc *forms.Service, owner *models.User) error {
	n, err := stores.Forms.Count(ctx, repository.FormFilter{CreatedBy: &owner.ID})
	if err != nil {
		return fmt.Errorf("count forms: %w", err)
	}
	if n > 0 {
		return nil
	}

	workshop := models.CreateFormRequest{
		Title:       "Go Workshop Registration",
		Description: "Reserve a seat for one of the hands-on sessions",
		Questions: []models.QuestionInput{
			{
				ID:             "fullName",
				Type:           models.QuestionText,
				Label:          "Full name",
				Required:       true,
				IsPersonalInfo: true,
				Validation:     &models.QuestionValidation{MinLength: intPtr(2), MaxLength: intPtr(100)},
			},
			{
				ID:             "phone",
				Type:           models.QuestionPhone,
				Label:          "Phone number",
				IsPersonalInfo: true,
				Validation:     &models.QuestionValidation{Pattern: `^[0-9+\- ]{6,20}$`, CustomMessage: "Phone number looks wrong"},
			},
			{
				ID:       "session",
				Type:     models.QuestionRadio,
				Label:    "Session",
				Required: true,
				Options: []models.QuestionOptionInput{
					{ID: "morning", Label: "Morning (09:00)", Value: "morning", Limit: intPtr(30)},
					{ID: "afternoon", Label: "Afternoon (13:00)", Value: "afternoon", Limit: intPtr(30)},
				},
			},
			{
				ID:    "topics",
				Type:  models.QuestionCheckbox,
				Label: "Topics you are interested in",
				Options: []models.QuestionOptionInput{
					{Label: "Concurrency"},
					{Label: "Generics"},
					{Label: "Web services"},
				},
			},
			{
				ID:         "experience",
				Type:       models.QuestionNumber,
				Label:      "Years of Go experience",
				Validation: &models.QuestionValidation{Min: floatPtr(0), Max: floatPtr(50)},
			},
		},
	}

	form, err := formSvc.Create(ctx, models.IdentityOf(owner), workshop)
	if err != nil {
		return fmt.Errorf("seed form: %w", err)
	}
	log.Println("🌱 Sample form created:", form.ID.Hex())
	return nil
}

func floatPtr(f float64) *float64 { return &f }
