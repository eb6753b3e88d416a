// Package assignment coordinates the employee↔policy relation. The store
// enforces no referential integrity, so the relation is kept valid here: both
// sides must exist before a policy id enters an employee's assignment set.
package assignment

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	employeemodels "policy-manager/internal/employee/models"
	"policy-manager/internal/platform/metrics"
	policymodels "policy-manager/internal/policy/models"
	dErrors "policy-manager/pkg/domain-errors"
	"policy-manager/pkg/platform/sentinel"
)

// EmployeeService resolves employees for existence checks and the final
// re-fetch.
type EmployeeService interface {
	Get(ctx context.Context, id string) (*employeemodels.Employee, error)
}

// PolicyService resolves policies for existence checks.
type PolicyService interface {
	Get(ctx context.Context, id string) (*policymodels.Policy, error)
}

// EmployeeStore applies the assignment mutation. Only the set-add goes to
// the store directly; existence checks go through the services above.
type EmployeeStore interface {
	AddAssignedPolicy(ctx context.Context, id primitive.ObjectID, policyID string) error
}

// Service is the assignment coordinator.
type Service struct {
	employees EmployeeService
	policies  PolicyService
	store     EmployeeStore
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures a Service.
type Option func(s *Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the service metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(employees EmployeeService, policies PolicyService, store EmployeeStore, opts ...Option) *Service {
	s := &Service{
		employees: employees,
		policies:  policies,
		store:     store,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assign adds policyID to the employee's assignment set and returns the
// updated employee. Each step is a hard precondition, in order:
//
//  1. Resolve the employee (propagates invalid-id / not-found for it).
//  2. Resolve the policy for existence only; the value is discarded.
//  3. Fail with already-assigned if the policy is present. Re-assignment is
//     an error, not a no-op.
//  4. Set-add the policy id. $addToSet is duplicate-safe, so two assigns
//     racing past step 3 cannot produce a duplicate entry; at worst one
//     racer succeeds without reporting already-assigned.
//  5. Re-fetch so the caller observes the authoritative post-mutation state
//     rather than a locally patched copy.
//
// There is no atomicity across the steps: a cancellation mid-way leaves no
// compensating rollback, and nothing here undoes a concurrent mutation
// between steps 1 and 4.
func (s *Service) Assign(ctx context.Context, employeeID, policyID string) (*employeemodels.Employee, error) {
	employee, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if _, err := s.policies.Get(ctx, policyID); err != nil {
		return nil, err
	}

	if employee.HasPolicy(policyID) {
		return nil, dErrors.New(dErrors.CodeAlreadyAssigned, "Policy already assigned to this employee")
	}

	if err := s.store.AddAssignedPolicy(ctx, employee.ID, policyID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Employee deleted between steps 1 and 4.
			return nil, dErrors.New(dErrors.CodeNotFound, "Employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to assign policy")
	}

	updated, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "assigned policy to employee",
		"employee_id", employeeID,
		"policy_id", policyID,
	)
	if s.metrics != nil {
		s.metrics.IncrementPoliciesAssigned()
	}
	return updated, nil
}
