package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"agrisathi/configs"
	"agrisathi/dto"
	"agrisathi/internal/authctx"
	"agrisathi/services"
)

type QueryHandler struct {
	Farmer *services.FarmerService
}

// POST /api/queries
func (h *QueryHandler) Ask(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body dto.AskReq
	if err := parseBody(c, &body); err != nil {
		return renderErr(c, err)
	}

	q, err := h.Farmer.Ask(c.Context(), actor.ID, body.Question, body.Language)
	if err != nil {
		return renderErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.QueryResp{Query: dto.NewQueryView(q)})
}

// GET /api/queries?limit=20
func (h *QueryHandler) ListRecent(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	limit := int64(c.QueryInt("limit", configs.DefaultRecentQueries))
	if limit <= 0 {
		limit = configs.DefaultRecentQueries
	}
	if limit > configs.MaxRecentQueries {
		limit = configs.MaxRecentQueries
	}

	queries, err := h.Farmer.ListRecent(c.Context(), actor.ID, limit)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.NewQueryListResp(queries))
}

// POST /api/queries/:id/resolve
func (h *QueryHandler) Resolve(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	queryID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query id"})
	}

	// The rating body is optional on resolve.
	var body dto.ResolveReq
	if len(c.Body()) > 0 {
		if err := parseBody(c, &body); err != nil {
			return renderErr(c, err)
		}
	}

	q, err := h.Farmer.MarkResolved(c.Context(), actor.ID, queryID, body.Rating)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.QueryResp{Query: dto.NewQueryView(q)})
}

// POST /api/queries/:id/escalate
func (h *QueryHandler) Escalate(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	queryID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query id"})
	}

	var body dto.EscalateReq
	if err := parseBody(c, &body); err != nil {
		return renderErr(c, err)
	}

	q, err := h.Farmer.Escalate(c.Context(), actor.ID, queryID, body.Reason, body.Notes)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.QueryResp{Query: dto.NewQueryView(q)})
}
