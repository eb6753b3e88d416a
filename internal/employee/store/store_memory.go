package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"policy-manager/internal/employee/models"
	"policy-manager/pkg/platform/sentinel"
)

// MemoryStore stores employees in memory for tests/dev. It mirrors the Mongo
// store's semantics: generated ObjectIDs, email uniqueness, set-add on
// assigned policies, and copies on every boundary so callers never alias
// internal state.
type MemoryStore struct {
	mu        sync.RWMutex
	employees map[primitive.ObjectID]*models.Employee
}

// NewMemory constructs an empty in-memory employee store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		employees: make(map[primitive.ObjectID]*models.Employee),
	}
}

func (s *MemoryStore) Insert(_ context.Context, employee *models.Employee) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.employees {
		if existing.Email == employee.Email {
			return primitive.NilObjectID, fmt.Errorf("email already taken: %w", sentinel.ErrConflict)
		}
	}

	stored := clone(employee)
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	s.employees[stored.ID] = stored
	return stored.ID, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if employee, ok := s.employees[id]; ok {
		return clone(employee), nil
	}
	return nil, fmt.Errorf("employee %s: %w", id.Hex(), sentinel.ErrNotFound)
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, employee := range s.employees {
		if employee.Email == email {
			return clone(employee), nil
		}
	}
	return nil, fmt.Errorf("employee with email %s: %w", email, sentinel.ErrNotFound)
}

func (s *MemoryStore) FindAll(_ context.Context) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employees := make([]*models.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		employees = append(employees, clone(employee))
	}
	return employees, nil
}

func (s *MemoryStore) Update(_ context.Context, id primitive.ObjectID, update models.UpdateEmployee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, ok := s.employees[id]
	if !ok {
		return fmt.Errorf("employee %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	if update.Email != nil {
		for otherID, other := range s.employees {
			if otherID != id && other.Email == *update.Email {
				return fmt.Errorf("email already taken: %w", sentinel.ErrConflict)
			}
		}
		employee.Email = *update.Email
	}
	if update.Name != nil {
		employee.Name = *update.Name
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return fmt.Errorf("employee %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	delete(s.employees, id)
	return nil
}

func (s *MemoryStore) SearchByName(_ context.Context, name string) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(name)
	matches := make([]*models.Employee, 0)
	for _, employee := range s.employees {
		if strings.Contains(strings.ToLower(employee.Name), needle) {
			matches = append(matches, clone(employee))
		}
	}
	return matches, nil
}

func (s *MemoryStore) AddAssignedPolicy(_ context.Context, id primitive.ObjectID, policyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, ok := s.employees[id]
	if !ok {
		return fmt.Errorf("employee %s: %w", id.Hex(), sentinel.ErrNotFound)
	}
	// Set semantics: adding a present member is a no-op, as with $addToSet.
	if !employee.HasPolicy(policyID) {
		employee.AssignedPolicies = append(employee.AssignedPolicies, policyID)
	}
	return nil
}

func clone(e *models.Employee) *models.Employee {
	copied := *e
	copied.AssignedPolicies = make([]string, len(e.AssignedPolicies))
	copy(copied.AssignedPolicies, e.AssignedPolicies)
	return &copied
}
