// Package domain provides store identifier validation and parsing.
//
// The document store assigns each document an opaque 24-character lowercase
// hex identifier (a BSON ObjectID). Every operation that accepts an id from a
// caller must parse it here first, so malformed input fails with
// CodeInvalidID before any query is issued. A malformed id is a distinct
// failure from a lookup miss: CodeInvalidID, never CodeNotFound.
package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	dErrors "policy-manager/pkg/domain-errors"
)

// IsValidID reports whether s is a well-formed store identifier:
// exactly 24 lowercase hex characters.
func IsValidID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ParseEmployeeID parses an employee identifier, failing with CodeInvalidID
// on malformed input.
func ParseEmployeeID(s string) (primitive.ObjectID, error) {
	return parseID(s, "Invalid employee id")
}

// ParsePolicyID parses a policy identifier, failing with CodeInvalidID on
// malformed input.
func ParsePolicyID(s string) (primitive.ObjectID, error) {
	return parseID(s, "Invalid policy id")
}

func parseID(s, message string) (primitive.ObjectID, error) {
	if !IsValidID(s) {
		return primitive.NilObjectID, dErrors.New(dErrors.CodeInvalidID, message)
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, dErrors.New(dErrors.CodeInvalidID, message)
	}
	return oid, nil
}
