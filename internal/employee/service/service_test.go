package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"policy-manager/internal/employee/models"
	"policy-manager/internal/employee/store"
	dErrors "policy-manager/pkg/domain-errors"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(store.NewMemory())
}

func TestCreate(t *testing.T) {
	svc := newService(t)

	employee, err := svc.Create(context.Background(), models.CreateEmployee{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	assert.False(t, employee.ID.IsZero())
	assert.Equal(t, "Alice", employee.Name)
	assert.Equal(t, "alice@example.com", employee.Email)
	assert.Equal(t, []string{}, employee.AssignedPolicies, "new employees start with an empty assignment set")
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), models.CreateEmployee{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), models.CreateEmployee{Name: "Other", Email: "alice@example.com"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicateEmail))
	assert.Equal(t, "Employee with this email already exists", dErrors.MessageOf(err))
}

func TestGet(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(context.Background(), models.CreateEmployee{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Equal(t, "Employee not found", dErrors.MessageOf(err))
}

// Malformed identifiers must be rejected before any store access.
func TestMalformedIDNeverReachesStore(t *testing.T) {
	svc := New(storeGuard{t})

	for _, id := range []string{"", "abc", "notahexstring12345678901", "5EB7CF5A86D9755DF3A6C593", "5eb7cf5a86d9755df3a6c59", "5eb7cf5a86d9755df3a6c5933"} {
		_, err := svc.Get(context.Background(), id)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID), "Get(%q)", id)
		assert.Equal(t, "Invalid employee id", dErrors.MessageOf(err))

		_, err = svc.Update(context.Background(), id, models.UpdateEmployee{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID), "Update(%q)", id)

		err = svc.Delete(context.Background(), id)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID), "Delete(%q)", id)
	}
}

func TestList(t *testing.T) {
	svc := newService(t)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.Create(context.Background(), models.CreateEmployee{Name: "N", Email: email})
		require.NoError(t, err)
	}

	employees, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, employees, 2)
}

func TestUpdatePartial(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(context.Background(), models.CreateEmployee{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	name := "Alicia"
	updated, err := svc.Update(context.Background(), created.ID.Hex(), models.UpdateEmployee{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
}

// An update with no fields set still checks existence and returns the
// current document unchanged.
func TestUpdateEmpty(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(context.Background(), models.CreateEmployee{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID.Hex(), models.UpdateEmployee{})
	require.NoError(t, err)
	assert.Equal(t, created, updated)

	_, err = svc.Update(context.Background(), primitive.NewObjectID().Hex(), models.UpdateEmployee{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestUpdateToTakenEmail(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(context.Background(), models.CreateEmployee{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := svc.Create(context.Background(), models.CreateEmployee{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	email := "alice@example.com"
	_, err = svc.Update(context.Background(), bob.ID.Hex(), models.UpdateEmployee{Email: &email})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicateEmail))
}

func TestDelete(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(context.Background(), models.CreateEmployee{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID.Hex()))

	err = svc.Delete(context.Background(), created.ID.Hex())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestSearchByName(t *testing.T) {
	svc := newService(t)
	for _, e := range []models.CreateEmployee{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Natalia", Email: "natalia@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	} {
		_, err := svc.Create(context.Background(), e)
		require.NoError(t, err)
	}

	matches, err := svc.SearchByName(context.Background(), "ALI")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

// storeGuard fails the test on any call; it backs the invariant that
// malformed ids never reach persistence.
type storeGuard struct {
	t *testing.T
}

func (g storeGuard) Insert(context.Context, *models.Employee) (primitive.ObjectID, error) {
	g.t.Fatal("Insert called with rejected input")
	return primitive.NilObjectID, nil
}

func (g storeGuard) FindByID(context.Context, primitive.ObjectID) (*models.Employee, error) {
	g.t.Fatal("FindByID called with rejected input")
	return nil, nil
}

func (g storeGuard) FindByEmail(context.Context, string) (*models.Employee, error) {
	g.t.Fatal("FindByEmail called with rejected input")
	return nil, nil
}

func (g storeGuard) FindAll(context.Context) ([]*models.Employee, error) {
	g.t.Fatal("FindAll called with rejected input")
	return nil, nil
}

func (g storeGuard) Update(context.Context, primitive.ObjectID, models.UpdateEmployee) error {
	g.t.Fatal("Update called with rejected input")
	return nil
}

func (g storeGuard) Delete(context.Context, primitive.ObjectID) error {
	g.t.Fatal("Delete called with rejected input")
	return nil
}

func (g storeGuard) SearchByName(context.Context, string) ([]*models.Employee, error) {
	g.t.Fatal("SearchByName called with rejected input")
	return nil, nil
}
