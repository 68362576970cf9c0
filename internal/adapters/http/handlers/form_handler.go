package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"finser-backend/internal/core/domain"
	"finser-backend/internal/core/services"
	"finser-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// FormHandler handles form submission and dashboard endpoints
type FormHandler struct {
	formService    *services.FormService
	quizService    *services.QuizService
	invoiceService *services.InvoiceService
}

// NewFormHandler creates a new form handler
func NewFormHandler(
	formService *services.FormService,
	quizService *services.QuizService,
	invoiceService *services.InvoiceService,
) *FormHandler {
	return &FormHandler{
		formService:    formService,
		quizService:    quizService,
		invoiceService: invoiceService,
	}
}

// SubmitRequest represents a form submission request body
type SubmitRequest struct {
	FormType string            `json:"form_type"`
	FormData datatypes.JSONMap `json:"form_data"`
}

// QuizSubmitRequest represents a verification answer set
type QuizSubmitRequest struct {
	Answers []services.QuizAnswer `json:"answers"`
}

// ListTypes returns the static intake catalog
// @Summary List form types
// @Description Returns the static catalog of intake templates
// @Tags Forms
// @Produce json
// @Success 200 {object} response.Response
// @Router /forms/types [get]
func (h *FormHandler) ListTypes(c *fiber.Ctx) error {
	return response.Success(c, "Form types retrieved", fiber.Map{
		"form_types": domain.FormTypes,
	})
}

// Submit handles a new form submission
// @Summary Submit a form
// @Description Submit an intake form and receive a unique token
// @Tags Forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitRequest true "Form submission"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /forms [post]
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.FormType == "" {
		return response.BadRequest(c, "Form type is required")
	}

	form, err := h.formService.Submit(c.Context(), userID, &services.SubmitInput{
		FormType: req.FormType,
		FormData: req.FormData,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownFormType):
			return response.BadRequest(c, "Unknown form type")
		default:
			return response.InternalServerError(c, "Failed to submit form")
		}
	}

	return response.Created(c, "Form submitted successfully", fiber.Map{
		"form": form.ToResponse(),
	})
}

// MyForms lists the caller's submissions, newest first
// @Summary List my forms
// @Description List the authenticated user's submissions, newest first
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /forms/my [get]
func (h *FormHandler) MyForms(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	forms, err := h.formService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list forms")
	}

	items := make([]interface{}, 0, len(forms))
	for _, f := range forms {
		items = append(items, f.ToResponse())
	}

	return response.Success(c, "Forms retrieved", fiber.Map{
		"forms": items,
	})
}

// Invoice renders a submission into a downloadable PDF
// @Summary Download submission invoice
// @Description Render the submission as a PDF document
// @Tags Forms
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Response
// @Router /forms/{id}/invoice [get]
func (h *FormHandler) Invoice(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	formID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid form ID")
	}

	form, err := h.formService.GetOwned(c.Context(), userID, formID)
	if err != nil {
		if errors.Is(err, domain.ErrFormNotFound) {
			return response.NotFound(c, "Form not found")
		}
		return response.InternalServerError(c, "Failed to load form")
	}

	pdf, err := h.invoiceService.Render(form)
	if err != nil {
		return response.InternalServerError(c, "Failed to render invoice")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", services.InvoiceFileName))
	return c.Send(pdf)
}

// StartQuiz samples verification questions for a pending submission
// @Summary Start status verification
// @Description Sample security questions for a pending submission
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /forms/{id}/quiz [post]
func (h *FormHandler) StartQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	formID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid form ID")
	}

	questions, err := h.quizService.Start(c.Context(), userID, formID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFormNotFound):
			return response.NotFound(c, "Form not found")
		case errors.Is(err, domain.ErrQuizNotEligible):
			return response.Conflict(c, "Form is not pending verification")
		default:
			return response.InternalServerError(c, "Failed to start verification")
		}
	}

	return response.Success(c, "Verification started", fiber.Map{
		"questions": questions,
	})
}

// SubmitQuiz grades a verification attempt
// @Summary Submit verification answers
// @Description Grade the answer set; a full pass approves the submission
// @Tags Forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Param body body QuizSubmitRequest true "Answers"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /forms/{id}/quiz/answers [post]
func (h *FormHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	formID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid form ID")
	}

	var req QuizSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.quizService.Submit(c.Context(), userID, formID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFormNotFound):
			return response.NotFound(c, "Form not found")
		case errors.Is(err, domain.ErrQuizNotEligible):
			return response.Conflict(c, "Form is not pending verification")
		case errors.Is(err, domain.ErrQuizNotStarted):
			return response.Conflict(c, "Verification has not been started")
		case errors.Is(err, domain.ErrQuizBadAnswerSet),
			errors.Is(err, domain.ErrQuizUnknownSample):
			return response.BadRequest(c, "Answer set does not match the issued questions")
		default:
			return response.InternalServerError(c, "Failed to grade verification")
		}
	}

	return response.Success(c, "Verification graded", result)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
