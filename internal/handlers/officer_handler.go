package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"agrisathi/dto"
	"agrisathi/internal/authctx"
	"agrisathi/services"
)

type OfficerHandler struct {
	Officer *services.OfficerService
}

// GET /api/officer/queries/pending
func (h *OfficerHandler) ListPending(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	queries, err := h.Officer.ListPending(c.Context(), actor)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.NewQueryListResp(queries))
}

// GET /api/officer/queries/handled
func (h *OfficerHandler) ListHandled(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	queries, err := h.Officer.ListHandled(c.Context(), actor)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.NewQueryListResp(queries))
}

// POST /api/officer/queries/:id/respond
func (h *OfficerHandler) Respond(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	queryID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query id"})
	}

	var body dto.OfficerRespondReq
	if err := parseBody(c, &body); err != nil {
		return renderErr(c, err)
	}

	q, err := h.Officer.Respond(c.Context(), actor, queryID, body.Reply, body.Notes, body.MarkResolved)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.QueryResp{Query: dto.NewQueryView(q)})
}

// POST /api/officer/queries/:id/force-resolve
func (h *OfficerHandler) ForceResolve(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	queryID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query id"})
	}

	// The notes body is optional on force-resolve.
	var body dto.ForceResolveReq
	if len(c.Body()) > 0 {
		if err := parseBody(c, &body); err != nil {
			return renderErr(c, err)
		}
	}

	q, err := h.Officer.ForceResolve(c.Context(), actor, queryID, body.Notes)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.QueryResp{Query: dto.NewQueryView(q)})
}
