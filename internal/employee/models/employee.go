package models

import (
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is the aggregate root for an employee record.
//
// Invariants:
//   - Email is unique across all employees
//   - AssignedPolicies holds policy ids with set semantics: no duplicates,
//     insertion order otherwise irrelevant
//   - Every id in AssignedPolicies referenced an existing policy at the
//     moment it was assigned
//
// The assignment invariant is not continuously enforced: the store has no
// foreign keys, and deleting a policy does not remove it from employees that
// reference it. Existence is checked only at assignment time, by the
// assignment coordinator.
type Employee struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	AssignedPolicies []string           `bson:"assigned_policies" json:"assigned_policies"`
}

// HasPolicy reports whether the policy id is already assigned.
func (e *Employee) HasPolicy(policyID string) bool {
	return slices.Contains(e.AssignedPolicies, policyID)
}

// CreateEmployee is the payload for creating an employee.
type CreateEmployee struct {
	Name  string `json:"name" validate:"required,min=1"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateEmployee is the partial-update payload. Nil fields are left
// untouched; only explicitly supplied, non-null fields are merged over the
// stored document.
type UpdateEmployee struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u UpdateEmployee) IsEmpty() bool {
	return u.Name == nil && u.Email == nil
}
