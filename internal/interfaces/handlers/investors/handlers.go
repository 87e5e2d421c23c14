package investors

import (
	"errors"
	"time"

	investsvc "fundmatch-backend/internal/application/investing"
	invsvc "fundmatch-backend/internal/application/investors"
	matchsvc "fundmatch-backend/internal/application/matching"
	"fundmatch-backend/internal/domain"
	"fundmatch-backend/internal/pkg/pagination"
	"fundmatch-backend/internal/pkg/response"
	"fundmatch-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service   *invsvc.Service
	Matching  *matchsvc.Service
	Investing *investsvc.Service
}

// investorBody holds the client-writable fields. remaining_amount is always
// system-managed and total_amount is only read on create.
type investorBody struct {
	Name                    *string          `json:"name"`
	TotalAmount             *decimal.Decimal `json:"total_amount"`
	IndividualAmount        *decimal.Decimal `json:"individual_amount"`
	ProjectDeliveryDeadline *time.Time       `json:"project_delivery_deadline"`
}

func (b *investorBody) validateCreate() error {
	if err := validation.First(
		validation.Required("name", b.Name != nil),
		validation.Required("total_amount", b.TotalAmount != nil),
		validation.Required("individual_amount", b.IndividualAmount != nil),
		validation.Required("project_delivery_deadline", b.ProjectDeliveryDeadline != nil),
	); err != nil {
		return err
	}
	return validation.First(
		validation.Name("name", *b.Name),
		validation.PositiveAmount("total_amount", *b.TotalAmount),
		b.validateMutable(),
	)
}

func (b *investorBody) validateUpdate(full bool) error {
	if full {
		if err := validation.First(
			validation.Required("name", b.Name != nil),
			validation.Required("individual_amount", b.IndividualAmount != nil),
			validation.Required("project_delivery_deadline", b.ProjectDeliveryDeadline != nil),
		); err != nil {
			return err
		}
	}
	if b.Name != nil {
		if err := validation.Name("name", *b.Name); err != nil {
			return err
		}
	}
	return b.validateMutable()
}

func (b *investorBody) validateMutable() error {
	var errs []error
	if b.IndividualAmount != nil {
		errs = append(errs, validation.PositiveAmount("individual_amount", *b.IndividualAmount))
	}
	if b.ProjectDeliveryDeadline != nil {
		errs = append(errs, validation.Date("project_delivery_deadline", *b.ProjectDeliveryDeadline))
	}
	return validation.First(errs...)
}

// GET /api/v1/investors
func (h *Handlers) ListInvestors(c *fiber.Ctx) error {
	page := pagination.FromQuery(c)
	items, total, err := h.Service.ListInvestors(c.Context(), page)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Investors fetched successfully", items, page.Metadata(total))
}

// POST /api/v1/investors
func (h *Handlers) CreateInvestor(c *fiber.Ctx) error {
	var body investorBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := body.validateCreate(); err != nil {
		return response.BadRequest(c, err.Error())
	}
	investor, err := h.Service.CreateInvestor(c.Context(), invsvc.CreateInvestorInput{
		Name:                    *body.Name,
		TotalAmount:             *body.TotalAmount,
		IndividualAmount:        *body.IndividualAmount,
		ProjectDeliveryDeadline: *body.ProjectDeliveryDeadline,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return response.SuccessCreated(c, "Investor created successfully", investor, nil)
}

// GET /api/v1/investors/:id
func (h *Handlers) GetInvestor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid investor id")
	}
	details, err := h.Service.GetInvestorDetails(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Investor fetched successfully", details, nil)
}

// PUT /api/v1/investors/:id
func (h *Handlers) UpdateInvestor(c *fiber.Ctx) error {
	return h.update(c, true)
}

// PATCH /api/v1/investors/:id
func (h *Handlers) PatchInvestor(c *fiber.Ctx) error {
	return h.update(c, false)
}

func (h *Handlers) update(c *fiber.Ctx, full bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid investor id")
	}
	var body investorBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := body.validateUpdate(full); err != nil {
		return response.BadRequest(c, err.Error())
	}
	investor, err := h.Service.UpdateInvestor(c.Context(), id, invsvc.UpdateInvestorInput{
		Name:                    body.Name,
		IndividualAmount:        body.IndividualAmount,
		ProjectDeliveryDeadline: body.ProjectDeliveryDeadline,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Investor updated successfully", investor, nil)
}

// GET /api/v1/investors/:id/matches
func (h *Handlers) MatchingProjects(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid investor id")
	}
	projects, err := h.Matching.ProjectsForInvestor(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Matching projects fetched successfully", projects, nil)
}

// POST /api/v1/investors/:id/invest/:project_id
func (h *Handlers) InvestIntoProject(c *fiber.Ctx) error {
	investorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid investor id")
	}
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return response.BadRequest(c, "Invalid project id")
	}
	result, err := h.Investing.Invest(c.Context(), investorID, projectID)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Investment committed successfully", fiber.Map{
		"funded_project":   result.Project,
		"remaining_amount": result.Investor.RemainingAmount,
	}, nil)
}

func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvestorNotFound), errors.Is(err, domain.ErrProjectNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvestmentRejected):
		return response.BadRequest(c, err.Error())
	}
	// Unexpected errors go to the global error handler, which logs and records them.
	return err
}
