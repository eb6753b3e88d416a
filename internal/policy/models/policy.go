package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Policy is an insurance policy document. Policies are created, updated, and
// deleted independently of any employee referencing them.
type Policy struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	ScalarValue *float64           `bson:"scalar_value,omitempty" json:"scalar_value,omitempty"`
}

// CreatePolicy is the payload for creating a policy.
type CreatePolicy struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Description *string  `json:"description"`
	ScalarValue *float64 `json:"scalar_value"`
}

// UpdatePolicy is the partial-update payload; nil fields are left untouched.
type UpdatePolicy struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	ScalarValue *float64 `json:"scalar_value"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u UpdatePolicy) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.ScalarValue == nil
}
