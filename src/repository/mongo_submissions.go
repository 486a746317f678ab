package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sgformer-backend/src/models"
)

const (
	SubmissionsCollection = "submissions"

	formEmailIndex = "formId_userEmail_unique"
	formUserIndex  = "formId_userId_unique"
)

type SubmissionRepo struct {
	coll *mongo.Collection
}

func NewSubmissionRepo(db *mongo.Database) *SubmissionRepo {
	return &SubmissionRepo{coll: db.Collection(SubmissionsCollection)}
}

func (r *SubmissionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "formId", Value: 1}, {Key: "userEmail", Value: 1}},
			Options: options.Index().SetName(formEmailIndex).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "formId", Value: 1}, {Key: "userId", Value: 1}},
			Options: options.Index().SetName(formUserIndex).SetUnique(true).
				SetPartialFilterExpression(bson.M{"userId": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "formId", Value: 1}, {Key: "submittedAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "submittedAt", Value: -1}}},
	})
	return err
}

func (r *SubmissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, sub)
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), formUserIndex) {
			return ErrDuplicateUser
		}
		return ErrDuplicateEmail
	}
	return fmt.Errorf("insert submission: %w", err)
}

func (r *SubmissionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var sub models.Submission
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func submissionQuery(f SubmissionFilter) bson.M {
	q := bson.M{}
	if f.FormID != nil {
		q["formId"] = *f.FormID
	}
	if f.UserID != nil {
		q["userId"] = *f.UserID
	}
	if f.Attended != nil {
		q["attended"] = *f.Attended
	}
	return q
}

func (r *SubmissionRepo) List(ctx context.Context, filter SubmissionFilter, limit int64) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, submissionQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subs := []models.Submission{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubmissionRepo) Count(ctx context.Context, filter SubmissionFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, submissionQuery(filter))
}

// CountAnswer relies on array equality semantics: {value: v} also matches
// arrays that contain v.
func (r *SubmissionRepo) CountAnswer(ctx context.Context, formID primitive.ObjectID, questionID, value string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{
		"formId": formID,
		"answers": bson.M{"$elemMatch": bson.M{
			"questionId": questionID,
			"value":      value,
		}},
	})
}

func (r *SubmissionRepo) SetAttended(ctx context.Context, id primitive.ObjectID, attended bool, at time.Time) (*models.Submission, error) {
	update := bson.M{"$set": bson.M{"attended": true, "attendedAt": at, "updatedAt": at}}
	if !attended {
		update = bson.M{
			"$set":   bson.M{"attended": false, "updatedAt": at},
			"$unset": bson.M{"attendedAt": ""},
		}
	}

	var sub models.Submission
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepo) MarkAttended(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.Submission, error) {
	var sub models.Submission
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "attended": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"attended": true, "attendedAt": at, "updatedAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sub)
	if err == nil {
		return &sub, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrAlreadyAttended
}

func (r *SubmissionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SubmissionRepo) DeleteByForm(ctx context.Context, formID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"formId": formID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
