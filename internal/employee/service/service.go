// Package service implements the employee repository operations and their
// invariants: email uniqueness on create, fail-fast identifier validation,
// and partial-merge updates.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"policy-manager/internal/employee/models"
	"policy-manager/internal/platform/metrics"
	"policy-manager/pkg/domain"
	dErrors "policy-manager/pkg/domain-errors"
	"policy-manager/pkg/platform/sentinel"
)

// Store is the persistence boundary for employees. Implementations return
// sentinel errors; this service translates them into domain codes.
type Store interface {
	Insert(ctx context.Context, employee *models.Employee) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	FindAll(ctx context.Context) ([]*models.Employee, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.UpdateEmployee) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SearchByName(ctx context.Context, name string) ([]*models.Employee, error)
}

// Service orchestrates employee CRUD.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
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
func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts a new employee with an empty assignment set, guarding email
// uniqueness. The pre-check is read-then-write; the Mongo store's unique
// index closes the race between concurrent creates, and both paths surface
// as the same duplicate-email error.
func (s *Service) Create(ctx context.Context, params models.CreateEmployee) (*models.Employee, error) {
	_, err := s.store.FindByEmail(ctx, params.Email)
	if err == nil {
		return nil, dErrors.New(dErrors.CodeDuplicateEmail, "Employee with this email already exists")
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email")
	}

	employee := &models.Employee{
		Name:             params.Name,
		Email:            params.Email,
		AssignedPolicies: []string{},
	}
	id, err := s.store.Insert(ctx, employee)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeDuplicateEmail, "Employee with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create employee")
	}

	created, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load created employee")
	}

	s.logger.InfoContext(ctx, "created employee", "employee_id", id.Hex())
	if s.metrics != nil {
		s.metrics.IncrementEmployeesCreated()
	}
	return created, nil
}

// Get fetches an employee by id, failing fast on malformed input.
func (s *Service) Get(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := domain.ParseEmployeeID(id)
	if err != nil {
		return nil, err
	}
	employee, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, translateErr(err)
	}
	return employee, nil
}

// List returns all employees in store iteration order.
func (s *Service) List(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
	}
	return employees, nil
}

// Update merges the supplied fields over the stored document and returns the
// authoritative post-update state.
func (s *Service) Update(ctx context.Context, id string, update models.UpdateEmployee) (*models.Employee, error) {
	oid, err := domain.ParseEmployeeID(id)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, oid, update); err != nil {
		return nil, translateErr(err)
	}

	updated, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, translateErr(err)
	}
	s.logger.InfoContext(ctx, "updated employee", "employee_id", id)
	return updated, nil
}

// Delete removes an employee. Policies referenced by the employee are
// untouched; they have independent lifecycles.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := domain.ParseEmployeeID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return translateErr(err)
	}
	s.logger.InfoContext(ctx, "deleted employee", "employee_id", id)
	return nil
}

// SearchByName returns employees whose name contains the substring,
// case-insensitively.
func (s *Service) SearchByName(ctx context.Context, name string) ([]*models.Employee, error) {
	employees, err := s.store.SearchByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search employees")
	}
	return employees, nil
}

func translateErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "Employee not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeDuplicateEmail, "Employee with this email already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "employee store failure")
	}
}
