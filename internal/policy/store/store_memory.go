package store

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"policy-manager/internal/policy/models"
	"policy-manager/pkg/platform/sentinel"
)

// MemoryStore stores policies in memory for tests/dev.
type MemoryStore struct {
	mu       sync.RWMutex
	policies map[primitive.ObjectID]*models.Policy
}

// NewMemory constructs an empty in-memory policy store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		policies: make(map[primitive.ObjectID]*models.Policy),
	}
}

func (s *MemoryStore) Insert(_ context.Context, policy *models.Policy) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := clone(policy)
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	s.policies[stored.ID] = stored
	return stored.ID, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if policy, ok := s.policies[id]; ok {
		return clone(policy), nil
	}
	return nil, fmt.Errorf("policy %s: %w", id.Hex(), sentinel.ErrNotFound)
}

func (s *MemoryStore) FindAll(_ context.Context) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policies := make([]*models.Policy, 0, len(s.policies))
	for _, policy := range s.policies {
		policies = append(policies, clone(policy))
	}
	return policies, nil
}

func (s *MemoryStore) Update(_ context.Context, id primitive.ObjectID, update models.UpdatePolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy, ok := s.policies[id]
	if !ok {
		return fmt.Errorf("policy %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	if update.Title != nil {
		policy.Title = *update.Title
	}
	if update.Description != nil {
		v := *update.Description
		policy.Description = &v
	}
	if update.ScalarValue != nil {
		v := *update.ScalarValue
		policy.ScalarValue = &v
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[id]; !ok {
		return fmt.Errorf("policy %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	delete(s.policies, id)
	return nil
}

func clone(p *models.Policy) *models.Policy {
	copied := *p
	if p.Description != nil {
		v := *p.Description
		copied.Description = &v
	}
	if p.ScalarValue != nil {
		v := *p.ScalarValue
		copied.ScalarValue = &v
	}
	return &copied
}
