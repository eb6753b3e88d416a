//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"policy-manager/internal/policy/models"
	"policy-manager/pkg/platform/sentinel"
	"policy-manager/pkg/testutil/containers"
)

func newMongoStore(t *testing.T) *MongoStore {
	t.Helper()

	mc := containers.GetMongo(t)
	dbName := fmt.Sprintf("policy_store_test_%s", primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = mc.DropDatabase(context.Background(), dbName)
	})
	return NewMongo(mc.Database(dbName))
}

func TestMongoStoreRoundTrip(t *testing.T) {
	store := newMongoStore(t)
	ctx := context.Background()

	desc := "Covers dental"
	value := 1500.0
	id, err := store.Insert(ctx, &models.Policy{
		Title:       "Dental",
		Description: &desc,
		ScalarValue: &value,
	})
	require.NoError(t, err)

	policy, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dental", policy.Title)
	require.NotNil(t, policy.Description)
	assert.Equal(t, "Covers dental", *policy.Description)
	require.NotNil(t, policy.ScalarValue)
	assert.Equal(t, 1500.0, *policy.ScalarValue)
}

// Optional fields stored with omitempty must read back as nil, not zero values.
func TestMongoStoreOptionalFieldsStayUnset(t *testing.T) {
	store := newMongoStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, &models.Policy{Title: "Dental"})
	require.NoError(t, err)

	policy, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, policy.Description)
	assert.Nil(t, policy.ScalarValue)
}

func TestMongoStoreUpdatePartial(t *testing.T) {
	store := newMongoStore(t)
	ctx := context.Background()

	desc := "Covers dental"
	id, err := store.Insert(ctx, &models.Policy{Title: "Dental", Description: &desc})
	require.NoError(t, err)

	value := 2000.0
	require.NoError(t, store.Update(ctx, id, models.UpdatePolicy{ScalarValue: &value}))

	policy, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dental", policy.Title)
	require.NotNil(t, policy.Description)
	assert.Equal(t, "Covers dental", *policy.Description)
	require.NotNil(t, policy.ScalarValue)
	assert.Equal(t, 2000.0, *policy.ScalarValue)

	title := "X"
	err = store.Update(ctx, primitive.NewObjectID(), models.UpdatePolicy{Title: &title})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMongoStoreDelete(t *testing.T) {
	store := newMongoStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, &models.Policy{Title: "Dental"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	assert.ErrorIs(t, store.Delete(ctx, id), sentinel.ErrNotFound)

	_, err = store.FindByID(ctx, id)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMongoStoreFindAll(t *testing.T) {
	store := newMongoStore(t)
	ctx := context.Background()

	for _, title := range []string{"Dental", "Health", "Vision"} {
		_, err := store.Insert(ctx, &models.Policy{Title: title})
		require.NoError(t, err)
	}

	policies, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, policies, 3)
}
