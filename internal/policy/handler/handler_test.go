package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"policy-manager/internal/policy/models"
	"policy-manager/internal/policy/service"
	"policy-manager/internal/policy/store"
	"policy-manager/pkg/testutil"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	New(service.New(store.NewMemory()), slog.Default()).Register(r)
	return r
}

func createPolicy(t *testing.T, router chi.Router, body map[string]any) *models.Policy {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/policies/", body)
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.Policy](t, rr)
}

func TestCreatePolicy(t *testing.T) {
	router := newRouter()

	policy := createPolicy(t, router, map[string]any{
		"title":        "Dental",
		"description":  "Covers dental",
		"scalar_value": 1500.0,
	})
	assert.False(t, policy.ID.IsZero())
	assert.Equal(t, "Dental", policy.Title)
	require.NotNil(t, policy.Description)
	assert.Equal(t, "Covers dental", *policy.Description)
	require.NotNil(t, policy.ScalarValue)
	assert.Equal(t, 1500.0, *policy.ScalarValue)
}

func TestCreatePolicyOmitsOptionalFields(t *testing.T) {
	router := newRouter()

	policy := createPolicy(t, router, map[string]any{"title": "Dental"})
	assert.Nil(t, policy.Description)
	assert.Nil(t, policy.ScalarValue)
}

func TestCreatePolicyValidation(t *testing.T) {
	router := newRouter()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/policies/", map[string]any{
		"description": "no title",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)
	errResp := testutil.UnmarshalErrorResponse(t, rr)
	assert.Equal(t, "Validation error", errResp.Detail)
	require.Len(t, errResp.Errors, 1)
	assert.Equal(t, "title", errResp.Errors[0].Field)
}

func TestGetPolicy(t *testing.T) {
	router := newRouter()
	created := createPolicy(t, router, map[string]any{"title": "Dental"})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/policies/"+created.ID.Hex()))
	testutil.AssertStatus(t, rr, http.StatusOK)
	got := testutil.UnmarshalResponse[models.Policy](t, rr)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetPolicyInvalidID(t *testing.T) {
	router := newRouter()

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/policies/bogus"))
	testutil.AssertStatusAndDetail(t, rr, http.StatusBadRequest, "Invalid policy id")
}

func TestGetPolicyNotFound(t *testing.T) {
	router := newRouter()

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/policies/"+primitive.NewObjectID().Hex()))
	testutil.AssertStatusAndDetail(t, rr, http.StatusNotFound, "Policy not found")
}

func TestListPolicies(t *testing.T) {
	router := newRouter()
	createPolicy(t, router, map[string]any{"title": "Dental"})
	createPolicy(t, router, map[string]any{"title": "Health"})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/policies/"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	policies := testutil.UnmarshalResponse[[]models.Policy](t, rr)
	assert.Len(t, *policies, 2)
}

// A partial update must not clear fields missing from the body.
func TestUpdatePolicyPartial(t *testing.T) {
	router := newRouter()
	created := createPolicy(t, router, map[string]any{
		"title":       "Dental",
		"description": "Covers dental",
	})

	req := testutil.NewJSONRequest(t, http.MethodPut, "/policies/"+created.ID.Hex(), map[string]any{
		"scalar_value": 2000.0,
	})
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	updated := testutil.UnmarshalResponse[models.Policy](t, rr)
	assert.Equal(t, "Dental", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Covers dental", *updated.Description)
	require.NotNil(t, updated.ScalarValue)
	assert.Equal(t, 2000.0, *updated.ScalarValue)
}

func TestUpdatePolicyNotFound(t *testing.T) {
	router := newRouter()

	req := testutil.NewJSONRequest(t, http.MethodPut, "/policies/"+primitive.NewObjectID().Hex(), map[string]any{
		"title": "X",
	})
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatusAndDetail(t, rr, http.StatusNotFound, "Policy not found")
}

func TestDeletePolicy(t *testing.T) {
	router := newRouter()
	created := createPolicy(t, router, map[string]any{"title": "Dental"})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/policies/"+created.ID.Hex()))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/policies/"+created.ID.Hex()))
	testutil.AssertStatusAndDetail(t, rr, http.StatusNotFound, "Policy not found")
}
