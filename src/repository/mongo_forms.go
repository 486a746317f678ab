package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sgformer-backend/src/models"
)

const FormsCollection = "forms"

type FormRepo struct {
	coll *mongo.Collection
}

func NewFormRepo(db *mongo.Database) *FormRepo {
	return &FormRepo{coll: db.Collection(FormsCollection)}
}

func (r *FormRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "settings.isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *FormRepo) Create(ctx context.Context, form *models.Form) error {
	if form.ID.IsZero() {
		form.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, form); err != nil {
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}

func (r *FormRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *FormRepo) Update(ctx context.Context, form *models.Form) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": form.ID}, bson.M{"$set": bson.M{
		"title":       form.Title,
		"description": form.Description,
		"questions":   form.Questions,
		"settings":    form.Settings,
		"updatedAt":   form.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FormRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func formQuery(f FormFilter) bson.M {
	q := bson.M{}
	if f.CreatedBy != nil {
		q["createdBy"] = *f.CreatedBy
	}
	if f.Active != nil {
		q["settings.isActive"] = *f.Active
	}
	if f.OpenAt != nil {
		at := *f.OpenAt
		q["settings.isActive"] = true
		q["$and"] = bson.A{
			bson.M{"$or": bson.A{
				bson.M{"settings.startDate": nil},
				bson.M{"settings.startDate": bson.M{"$lte": at}},
			}},
			bson.M{"$or": bson.A{
				bson.M{"settings.endDate": nil},
				bson.M{"settings.endDate": bson.M{"$gte": at}},
			}},
		}
	}
	return q
}

func (r *FormRepo) List(ctx context.Context, filter FormFilter, page models.PaginationParams) ([]models.Form, int64, error) {
	q := formQuery(filter)
	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.GetSkip()).
		SetLimit(int64(page.Limit))

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	forms := []models.Form{}
	if err := cur.All(ctx, &forms); err != nil {
		return nil, 0, err
	}
	return forms, total, nil
}

func (r *FormRepo) Count(ctx context.Context, filter FormFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, formQuery(filter))
}

// ReserveSeats is a single conditional $inc. A counter that does not exist
// yet matches {$not: {$gte: limit}}, so fresh forms need no initialisation.
func (r *FormRepo) ReserveSeats(ctx context.Context, formID primitive.ObjectID, res models.Reservation) error {
	filter := bson.M{"_id": formID}
	inc := bson.M{"counters.total": 1}
	if res.Max != nil {
		filter["counters.total"] = bson.M{"$not": bson.M{"$gte": *res.Max}}
	}
	for _, c := range res.Claims {
		field := "counters.options." + c.Key
		inc[field] = 1
		if c.Limit > 0 {
			filter[field] = bson.M{"$not": bson.M{"$gte": c.Limit}}
		}
	}

	out, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("reserve seats: %w", err)
	}
	if out.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": formID})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrSeatsUnavailable
	}
	return nil
}

func (r *FormRepo) ReleaseSeats(ctx context.Context, formID primitive.ObjectID, res models.Reservation) error {
	inc := bson.M{"counters.total": -1}
	for _, c := range res.Claims {
		inc["counters.options."+c.Key] = -1
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": formID}, bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("release seats: %w", err)
	}
	return nil
}

func (r *FormRepo) SetCounters(ctx context.Context, formID primitive.ObjectID, c models.FormCounters) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": formID}, bson.M{"$set": bson.M{"counters": c}})
	if err != nil {
		return fmt.Errorf("set counters: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
