package repository

import (
	"context"
	"time"

	"formsight/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionRepository persists submissions. Submissions are never updated.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) (string, error)
	GetByID(ctx context.Context, formID, id string) (*model.Submission, error)
	ListByFormID(ctx context.Context, formID string) ([]*model.Submission, error)
	Delete(ctx context.Context, formID, id string) error
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepository {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

// EnsureIndexes creates the index backing the newest-first listing per form
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("submissions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "formId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("forms").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}},
	})
	return err
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) (string, error) {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	sub.ID = ""

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return "", err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid.Hex()
	}
	return sub.ID, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, formID, id string) (*model.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var sub model.Submission
	err = r.collection.FindOne(ctx, bson.M{"_id": oid, "formId": formID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sub.ID = id
	return &sub, nil
}

func (r *submissionRepo) ListByFormID(ctx context.Context, formID string) ([]*model.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []*model.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) Delete(ctx context.Context, formID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "formId": formID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
