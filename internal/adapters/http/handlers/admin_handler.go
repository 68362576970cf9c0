package handlers

import (
	"errors"
	"strings"

	"finser-backend/internal/core/domain"
	"finser-backend/internal/core/services"
	"finser-backend/internal/pkg/pagination"
	"finser-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin review endpoints
type AdminHandler struct {
	formService *services.FormService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(formService *services.FormService) *AdminHandler {
	return &AdminHandler{formService: formService}
}

// StatusRequest represents a status update request body
type StatusRequest struct {
	Status string `json:"status"`
}

// Lookup finds one submission by its token
// @Summary Look up a form by token
// @Description Find the single submission carrying the given token
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param token query string true "Submission token"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/forms/lookup [get]
func (h *AdminHandler) Lookup(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return response.BadRequest(c, "Token is required")
	}

	form, err := h.formService.LookupByToken(c.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrFormNotFound) {
			return response.NotFound(c, "Form not found")
		}
		return response.InternalServerError(c, "Failed to look up form")
	}

	return response.Success(c, "Form retrieved", fiber.Map{
		"form": form,
	})
}

// SetStatus sets a submission's review status
// @Summary Set form status
// @Description Set a submission's status to pending or reviewed
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/forms/{id}/status [put]
func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	formID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid form ID")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.formService.SetReviewStatus(c.Context(), formID, req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFormStatus):
			return response.BadRequest(c, "Status must be pending or reviewed")
		case errors.Is(err, domain.ErrFormNotFound):
			return response.NotFound(c, "Form not found")
		default:
			return response.InternalServerError(c, "Failed to update status")
		}
	}

	return response.Success(c, "Status updated", fiber.Map{
		"id":     formID,
		"status": req.Status,
	})
}

// List returns recent submissions with pagination
// @Summary List recent forms
// @Description List all submissions, newest first, paginated
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/forms [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	forms, total, err := h.formService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list forms")
	}

	items := make([]interface{}, 0, len(forms))
	for _, f := range forms {
		items = append(items, f.ToResponse())
	}

	return response.Success(c, "Forms retrieved", pagination.NewResponse(items, params, total))
}
