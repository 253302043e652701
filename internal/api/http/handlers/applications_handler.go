package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-tracker/internal/analytics"
	"github.com/spec-kit/job-tracker/internal/api/dto"
	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/lifecycle"
	"github.com/spec-kit/job-tracker/internal/projection"
	"github.com/spec-kit/job-tracker/internal/service"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// ApplicationsHandler manages the current owner's applications.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService}
}

// List GET /api/applications?status=&q=.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	filter, err := projection.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return err
	}
	query := c.Query("q")

	view, err := h.service.View(c.UserContext(), filter, query)
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(view.Items))
	for i := range view.Items {
		items = append(items, applicationResponse(&view.Items[i]))
	}
	return c.JSON(fiber.Map{"data": dto.ViewResponse{
		Items:   items,
		Matched: view.Matched,
		Total:   view.Total,
		Status:  filter.String(),
		Query:   query,
	}})
}

// Create POST /api/applications.
func (h *ApplicationsHandler) Create(c *fiber.Ctx) error {
	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := lifecycle.ParseInput(lifecycle.RawInput{
		Company:       req.Company,
		Role:          req.Role,
		Status:        req.Status,
		JobURL:        req.JobURL,
		ResumeVersion: req.ResumeVersion,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}

	app, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": applicationResponse(app)})
}

// Get GET /api/applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	app, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// Update PUT /api/applications/:id.
func (h *ApplicationsHandler) Update(c *fiber.Ctx) error {
	var req dto.ApplicationPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	patch, err := lifecycle.ParsePatch(lifecycle.RawPatch{
		Company:       req.Company,
		Role:          req.Role,
		Status:        req.Status,
		JobURL:        req.JobURL,
		ResumeVersion: req.ResumeVersion,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}

	app, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// Delete DELETE /api/applications/:id.
func (h *ApplicationsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Analytics GET /api/applications/analytics.
func (h *ApplicationsHandler) Analytics(c *fiber.Ctx) error {
	summary, err := h.service.Analytics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": analyticsResponse(summary)})
}

func applicationResponse(app *domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:            app.ID,
		Company:       app.Company,
		Role:          app.Role,
		Status:        app.Status.String(),
		StatusLabel:   app.Status.Label(),
		JobURL:        app.JobURL,
		ResumeVersion: app.ResumeVersion,
		Notes:         app.Notes,
		AppliedAt:     app.AppliedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

func analyticsResponse(summary analytics.Summary) dto.AnalyticsResponse {
	counts := make(map[string]int, len(summary.Counts))
	for status, n := range summary.Counts {
		counts[status.String()] = n
	}
	return dto.AnalyticsResponse{
		Total:         summary.Total,
		Counts:        counts,
		InterviewRate: summary.InterviewRate,
		OfferRate:     summary.OfferRate,
		Active:        summary.Active,
	}
}
