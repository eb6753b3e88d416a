package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"policy-manager/internal/policy/models"
	"policy-manager/pkg/platform/sentinel"
)

// Collection is the policy collection name.
const Collection = "policies"

// MongoStore persists policies in MongoDB. Policies carry no uniqueness
// constraint, so no indexes beyond _id are created.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongo constructs the store over the policies collection.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(Collection)}
}

func (s *MongoStore) Insert(ctx context.Context, policy *models.Policy) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, policy)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert policy: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Policy, error) {
	var policy models.Policy
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&policy)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("policy %s: %w", id.Hex(), sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find policy: %w", err)
	}
	return &policy, nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]*models.Policy, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}

	policies := make([]*models.Policy, 0)
	for cursor.Next(ctx) {
		var policy models.Policy
		if err := cursor.Decode(&policy); err != nil {
			_ = cursor.Close(ctx)
			return nil, fmt.Errorf("decode policy: %w", err)
		}
		policies = append(policies, &policy)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate policies: %w", err)
	}
	return policies, nil
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, update models.UpdatePolicy) error {
	fields := bson.M{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.ScalarValue != nil {
		fields["scalar_value"] = *update.ScalarValue
	}
	if len(fields) == 0 {
		return nil
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("policy %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("policy %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	return nil
}
