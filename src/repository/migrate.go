package repository

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sgformer-backend/src/models"
)

// LegacyQuestionID is the question that replaces form-level options.
const LegacyQuestionID = "legacy-option"

// LegacyOption is the old form-level option shape.
type LegacyOption struct {
	ID    string `bson:"id"`
	Label string `bson:"label"`
	Limit *int   `bson:"limit,omitempty"`
}

type legacyForm struct {
	ID        primitive.ObjectID `bson:"_id"`
	Options   []LegacyOption     `bson:"options"`
	Questions []models.Question  `bson:"questions"`
}

type legacySubmission struct {
	ID               primitive.ObjectID `bson:"_id"`
	SelectedOptionID string             `bson:"selectedOptionId"`
}

// FoldLegacyOptions turns form-level options into a required radio question.
// Option values are the old option ids, which is what selectedOptionId held.
func FoldLegacyOptions(opts []LegacyOption) models.Question {
	q := models.Question{
		ID:       LegacyQuestionID,
		Type:     models.QuestionRadio,
		Label:    "Option",
		Required: true,
	}
	for _, o := range opts {
		q.Options = append(q.Options, models.QuestionOption{
			ID:    o.ID,
			Label: o.Label,
			Value: o.ID,
			Limit: o.Limit,
		})
	}
	return q
}

// MigrateLegacyForms rewrites every form still carrying form-level options
// and the submissions that reference them, then recounts seats for those
// forms and for any form that has no counters yet. Running it twice is a no-op.
func MigrateLegacyForms(ctx context.Context, db *mongo.Database, log *slog.Logger) (int, error) {
	forms := db.Collection(FormsCollection)
	subs := db.Collection(SubmissionsCollection)

	cur, err := forms.Find(ctx, bson.M{"options.0": bson.M{"$exists": true}})
	if err != nil {
		return 0, fmt.Errorf("find legacy forms: %w", err)
	}
	var legacy []legacyForm
	if err := cur.All(ctx, &legacy); err != nil {
		return 0, fmt.Errorf("decode legacy forms: %w", err)
	}

	for _, lf := range legacy {
		q := FoldLegacyOptions(lf.Options)
		questions := append([]models.Question{q}, lf.Questions...)

		if _, err := forms.UpdateOne(ctx, bson.M{"_id": lf.ID}, bson.M{
			"$set":   bson.M{"questions": questions},
			"$unset": bson.M{"options": ""},
		}); err != nil {
			return 0, fmt.Errorf("migrate form %s: %w", lf.ID.Hex(), err)
		}

		scur, err := subs.Find(ctx, bson.M{"formId": lf.ID, "selectedOptionId": bson.M{"$exists": true}})
		if err != nil {
			return 0, err
		}
		var old []legacySubmission
		if err := scur.All(ctx, &old); err != nil {
			return 0, err
		}
		for _, s := range old {
			if _, err := subs.UpdateOne(ctx, bson.M{"_id": s.ID}, bson.M{
				"$push":  bson.M{"answers": models.Answer{QuestionID: LegacyQuestionID, Value: s.SelectedOptionID}},
				"$unset": bson.M{"selectedOptionId": ""},
			}); err != nil {
				return 0, fmt.Errorf("migrate submission %s: %w", s.ID.Hex(), err)
			}
		}

		if err := recountSeats(ctx, forms, subs, lf.ID, questions); err != nil {
			return 0, err
		}
		log.Info("migrated legacy form", slog.String("form_id", lf.ID.Hex()), slog.Int("submissions", len(old)))
	}

	// Forms written before seat counters existed get them computed once.
	ccur, err := forms.Find(ctx, bson.M{"counters": bson.M{"$exists": false}})
	if err != nil {
		return 0, fmt.Errorf("find uncounted forms: %w", err)
	}
	var uncounted []models.Form
	if err := ccur.All(ctx, &uncounted); err != nil {
		return 0, err
	}
	for _, f := range uncounted {
		if err := recountSeats(ctx, forms, subs, f.ID, f.Questions); err != nil {
			return 0, err
		}
	}
	return len(legacy), nil
}

func recountSeats(ctx context.Context, forms, subs *mongo.Collection, formID primitive.ObjectID, questions []models.Question) error {
	total, err := subs.CountDocuments(ctx, bson.M{"formId": formID})
	if err != nil {
		return err
	}
	set := bson.M{"counters.total": total}
	for _, q := range questions {
		if !q.Type.HasOptions() {
			continue
		}
		for _, o := range q.Options {
			n, err := subs.CountDocuments(ctx, bson.M{
				"formId":  formID,
				"answers": bson.M{"$elemMatch": bson.M{"questionId": q.ID, "value": o.Value}},
			})
			if err != nil {
				return err
			}
			set["counters.options."+models.OptionKey(q.ID, o.ID)] = n
		}
	}
	_, err = forms.UpdateOne(ctx, bson.M{"_id": formID}, bson.M{"$set": set})
	return err
}
