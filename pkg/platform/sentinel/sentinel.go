package sentinel

import "errors"

// Sentinel errors for store-level facts. Stores return these (wrapped with
// context) so services can translate them into domain errors without knowing
// which backend produced them.
//
// These represent factual states about documents, not validation failures:
// - ErrNotFound: no document matched the identifier
// - ErrConflict: a write violated a uniqueness constraint
//
// For malformed input, use pkg/domain-errors directly; stores are never
// reached with malformed identifiers.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
