// Package handler exposes the policy CRUD endpoints. Policies have no search
// and no assignment route of their own.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"policy-manager/internal/platform/middleware"
	"policy-manager/internal/policy/models"
	dErrors "policy-manager/pkg/domain-errors"
	"policy-manager/pkg/platform/httputil"
	"policy-manager/pkg/validate"
)

// PolicyService defines the policy operations the handler depends on.
type PolicyService interface {
	Create(ctx context.Context, params models.CreatePolicy) (*models.Policy, error)
	Get(ctx context.Context, id string) (*models.Policy, error)
	List(ctx context.Context) ([]*models.Policy, error)
	Update(ctx context.Context, id string, update models.UpdatePolicy) (*models.Policy, error)
	Delete(ctx context.Context, id string) error
}

// Handler handles policy endpoints.
type Handler struct {
	policies PolicyService
	logger   *slog.Logger
}

// New creates a new policy Handler.
func New(policies PolicyService, logger *slog.Logger) *Handler {
	return &Handler{policies: policies, logger: logger}
}

// Register registers the policy routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/policies", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{policyID}", h.handleGet)
		r.Put("/{policyID}", h.handleUpdate)
		r.Delete("/{policyID}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreatePolicy
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.writeError(ctx, w, err)
		return
	}

	policy, err := h.policies.Create(ctx, req)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, policy)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policies, err := h.policies.List(ctx)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policies)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policy, err := h.policies.Get(ctx, chi.URLParam(r, "policyID"))
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policy)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpdatePolicy
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.writeError(ctx, w, err)
		return
	}

	policy, err := h.policies.Update(ctx, chi.URLParam(r, "policyID"), req)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policy)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.policies.Delete(ctx, chi.URLParam(r, "policyID")); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "policy handler failure",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
