package store

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"policy-manager/internal/employee/models"
	"policy-manager/pkg/platform/sentinel"
)

// Collection is the employee collection name.
const Collection = "employees"

// Error Contract:
// All store methods follow this pattern:
// - Return sentinel.ErrNotFound (wrapped) when no document matched
// - Return sentinel.ErrConflict (wrapped) when a write hits the email unique index
// - Return wrapped driver errors for infrastructure failures
//
// Stores are never reached with malformed identifiers; parsing happens at the
// service boundary.

// MongoStore persists employees in MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongo constructs the store and ensures the unique index on email. The
// index is the authoritative uniqueness guarantee; the service-level
// pre-check only exists to produce the specific duplicate-email message.
func NewMongo(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection(Collection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create email index: %w", err)
	}
	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Insert(ctx context.Context, employee *models.Employee) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("email already taken: %w", sentinel.ErrConflict)
		}
		return primitive.NilObjectID, fmt.Errorf("insert employee: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("employee %s: %w", id.Hex(), sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	normalize(&employee)
	return &employee, nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("employee with email %s: %w", email, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	normalize(&employee)
	return &employee, nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]*models.Employee, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return decodeAll(ctx, cursor)
}

// Update merges the non-nil fields of update over the stored document.
func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, update models.UpdateEmployee) error {
	fields := bson.M{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if len(fields) == 0 {
		// Nothing to merge; existence is still verified by the caller's re-fetch.
		return nil
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email already taken: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("employee %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("employee %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	return nil
}

// SearchByName matches name case-insensitively on a literal substring. The
// input is quoted before building the regex so metacharacters in the query
// cannot change its meaning.
func (s *MongoStore) SearchByName(ctx context.Context, name string) ([]*models.Employee, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	return decodeAll(ctx, cursor)
}

// AddAssignedPolicy applies a set-add of policyID into assigned_policies.
// $addToSet is duplicate-safe at the storage layer, which keeps the set
// consistent even when two assigns race past the coordinator's guard.
func (s *MongoStore) AddAssignedPolicy(ctx context.Context, id primitive.ObjectID, policyID string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"assigned_policies": policyID}},
	)
	if err != nil {
		return fmt.Errorf("add assigned policy: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("employee %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	return nil
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*models.Employee, error) {
	employees := make([]*models.Employee, 0)
	for cursor.Next(ctx) {
		var employee models.Employee
		if err := cursor.Decode(&employee); err != nil {
			_ = cursor.Close(ctx)
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		normalize(&employee)
		employees = append(employees, &employee)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

// normalize keeps assigned_policies a JSON [] rather than null for documents
// decoded without the field.
func normalize(e *models.Employee) {
	if e.AssignedPolicies == nil {
		e.AssignedPolicies = []string{}
	}
}
