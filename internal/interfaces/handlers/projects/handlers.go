package projects

import (
	"errors"
	"time"

	matchsvc "fundmatch-backend/internal/application/matching"
	projsvc "fundmatch-backend/internal/application/projects"
	"fundmatch-backend/internal/domain"
	"fundmatch-backend/internal/pkg/pagination"
	"fundmatch-backend/internal/pkg/response"
	"fundmatch-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service  *projsvc.Service
	Matching *matchsvc.Service
}

// projectBody holds the client-writable fields; funded and funded_by are
// read-only and dropped by decoding.
type projectBody struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	DeliveryDate *time.Time       `json:"delivery_date"`
}

// validate checks the fields present; with full set, all required fields must be present.
func (b *projectBody) validate(full bool) error {
	var errs []error
	if full {
		errs = append(errs,
			validation.Required("name", b.Name != nil),
			validation.Required("amount", b.Amount != nil),
			validation.Required("delivery_date", b.DeliveryDate != nil),
		)
	}
	if b.Name != nil {
		errs = append(errs, validation.Name("name", *b.Name))
	}
	if b.Amount != nil {
		errs = append(errs, validation.PositiveAmount("amount", *b.Amount))
	}
	if b.DeliveryDate != nil {
		errs = append(errs, validation.Date("delivery_date", *b.DeliveryDate))
	}
	return validation.First(errs...)
}

// GET /api/v1/projects
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	page := pagination.FromQuery(c)
	items, total, err := h.Service.ListProjects(c.Context(), page)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Projects fetched successfully", items, page.Metadata(total))
}

// POST /api/v1/projects
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	var body projectBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := body.validate(true); err != nil {
		return response.BadRequest(c, err.Error())
	}
	in := projsvc.CreateProjectInput{
		Name:         *body.Name,
		Amount:       *body.Amount,
		DeliveryDate: *body.DeliveryDate,
	}
	if body.Description != nil {
		in.Description = *body.Description
	}
	project, err := h.Service.CreateProject(c.Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return response.SuccessCreated(c, "Project created successfully", project, nil)
}

// GET /api/v1/projects/:id
func (h *Handlers) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid project id")
	}
	details, err := h.Service.GetProjectDetails(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Project fetched successfully", details, nil)
}

// PUT /api/v1/projects/:id
func (h *Handlers) UpdateProject(c *fiber.Ctx) error {
	return h.update(c, true)
}

// PATCH /api/v1/projects/:id
func (h *Handlers) PatchProject(c *fiber.Ctx) error {
	return h.update(c, false)
}

func (h *Handlers) update(c *fiber.Ctx, full bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid project id")
	}
	var body projectBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := body.validate(full); err != nil {
		return response.BadRequest(c, err.Error())
	}
	project, err := h.Service.UpdateProject(c.Context(), id, projsvc.UpdateProjectInput{
		Name:         body.Name,
		Description:  body.Description,
		Amount:       body.Amount,
		DeliveryDate: body.DeliveryDate,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Project updated successfully", project, nil)
}

// GET /api/v1/projects/:id/matches
func (h *Handlers) MatchingInvestors(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid project id")
	}
	investors, err := h.Matching.InvestorsForProject(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Matching investors fetched successfully", investors, nil)
}

func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrAlreadyFunded), errors.Is(err, domain.ErrProjectFunded):
		return response.BadRequest(c, err.Error())
	}
	// Unexpected errors go to the global error handler, which logs and records them.
	return err
}
