// Package handler exposes the employee endpoints, including name search and
// the assign-policy route.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"policy-manager/internal/employee/models"
	"policy-manager/internal/platform/middleware"
	dErrors "policy-manager/pkg/domain-errors"
	"policy-manager/pkg/platform/httputil"
	"policy-manager/pkg/validate"
)

// EmployeeService defines the employee operations the handler depends on.
type EmployeeService interface {
	Create(ctx context.Context, params models.CreateEmployee) (*models.Employee, error)
	Get(ctx context.Context, id string) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	Update(ctx context.Context, id string, update models.UpdateEmployee) (*models.Employee, error)
	Delete(ctx context.Context, id string) error
	SearchByName(ctx context.Context, name string) ([]*models.Employee, error)
}

// AssignmentService coordinates the employee↔policy relation.
type AssignmentService interface {
	Assign(ctx context.Context, employeeID, policyID string) (*models.Employee, error)
}

// Handler handles employee endpoints.
type Handler struct {
	employees   EmployeeService
	assignments AssignmentService
	logger      *slog.Logger
}

// New creates a new employee Handler.
func New(employees EmployeeService, assignments AssignmentService, logger *slog.Logger) *Handler {
	return &Handler{
		employees:   employees,
		assignments: assignments,
		logger:      logger,
	}
}

// Register registers the employee routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/search/", h.handleSearch)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
		r.Post("/{employeeID}/assign-policy/{policyID}", h.handleAssignPolicy)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateEmployee
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.writeError(ctx, w, err)
		return
	}

	employee, err := h.employees.Create(ctx, req)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, employee)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employees, err := h.employees.List(ctx)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employee, err := h.employees.Get(ctx, chi.URLParam(r, "employeeID"))
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpdateEmployee
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.writeError(ctx, w, err)
		return
	}

	employee, err := h.employees.Update(ctx, chi.URLParam(r, "employeeID"), req)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.employees.Delete(ctx, chi.URLParam(r, "employeeID")); err != nil {
		h.writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.URL.Query().Get("name")
	if name == "" {
		h.writeError(ctx, w, dErrors.NewValidation([]dErrors.FieldError{
			{Field: "name", Message: "query parameter is required"},
		}))
		return
	}

	employees, err := h.employees.SearchByName(ctx, name)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleAssignPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employee, err := h.assignments.Assign(ctx,
		chi.URLParam(r, "employeeID"),
		chi.URLParam(r, "policyID"),
	)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employee)
}

// writeError logs server-side failures with their full detail and delegates
// response shaping to httputil.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "employee handler failure",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
