// Package service implements the policy repository operations. Policies have
// no uniqueness constraint and no search; deleting a policy deliberately does
// not touch employees that reference it.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"policy-manager/internal/platform/metrics"
	"policy-manager/internal/policy/models"
	"policy-manager/pkg/domain"
	dErrors "policy-manager/pkg/domain-errors"
	"policy-manager/pkg/platform/sentinel"
)

// Store is the persistence boundary for policies.
type Store interface {
	Insert(ctx context.Context, policy *models.Policy) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Policy, error)
	FindAll(ctx context.Context) ([]*models.Policy, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.UpdatePolicy) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service orchestrates policy CRUD.
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

// Create inserts a new policy and returns the stored document.
func (s *Service) Create(ctx context.Context, params models.CreatePolicy) (*models.Policy, error) {
	policy := &models.Policy{
		Title:       params.Title,
		Description: params.Description,
		ScalarValue: params.ScalarValue,
	}
	id, err := s.store.Insert(ctx, policy)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create policy")
	}

	created, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load created policy")
	}

	s.logger.InfoContext(ctx, "created policy", "policy_id", id.Hex())
	if s.metrics != nil {
		s.metrics.IncrementPoliciesCreated()
	}
	return created, nil
}

// Get fetches a policy by id, failing fast on malformed input.
func (s *Service) Get(ctx context.Context, id string) (*models.Policy, error) {
	oid, err := domain.ParsePolicyID(id)
	if err != nil {
		return nil, err
	}
	policy, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, translateErr(err)
	}
	return policy, nil
}

// List returns all policies in store iteration order.
func (s *Service) List(ctx context.Context) ([]*models.Policy, error) {
	policies, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}
	return policies, nil
}

// Update merges the supplied fields over the stored document and returns the
// authoritative post-update state.
func (s *Service) Update(ctx context.Context, id string, update models.UpdatePolicy) (*models.Policy, error) {
	oid, err := domain.ParsePolicyID(id)
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
	s.logger.InfoContext(ctx, "updated policy", "policy_id", id)
	return updated, nil
}

// Delete removes a policy. Employees referencing it keep the dangling id in
// assigned_policies; there is no cascading cleanup.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := domain.ParsePolicyID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return translateErr(err)
	}
	s.logger.InfoContext(ctx, "deleted policy", "policy_id", id)
	return nil
}

func translateErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Policy not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "policy store failure")
}
