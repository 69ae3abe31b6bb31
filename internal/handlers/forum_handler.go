package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"agrisathi/configs"
	"agrisathi/dto"
	"agrisathi/internal/authctx"
	"agrisathi/internal/repository"
)

type ForumHandler struct {
	Repo *repository.PostRepository
}

// POST /api/forum/posts
func (h *ForumHandler) CreatePost(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body dto.CreatePostReq
	if err := parseBody(c, &body); err != nil {
		return renderErr(c, err)
	}

	post, err := h.Repo.Create(c.Context(), actor.ID, body.Text, body.Category)
	if err != nil {
		return renderErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GET /api/forum/posts?limit=20&cursor=...
func (h *ForumHandler) ListFeed(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", configs.DefaultFeedLimit))
	if limit <= 0 {
		limit = configs.DefaultFeedLimit
	}
	if limit > configs.MaxFeedLimit {
		limit = configs.MaxFeedLimit
	}

	posts, next, err := h.Repo.ListNewestFirst(c.Context(), c.Query("cursor"), limit)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.FeedResp{Posts: posts, NextCursor: next, HasMore: next != nil})
}

// POST /api/forum/posts/:postId/comments
func (h *ForumHandler) AddComment(c *fiber.Ctx) error {
	actor, ok := authctx.ActorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	var body dto.CreateCommentReq
	if err := parseBody(c, &body); err != nil {
		return renderErr(c, err)
	}

	comment, err := h.Repo.AddComment(c.Context(), postID, actor.ID, body.Text)
	if err != nil {
		return renderErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GET /api/forum/posts/:postId/comments
func (h *ForumHandler) ListComments(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	limit := int64(c.QueryInt("limit", configs.DefaultCommentLimit))
	if limit <= 0 || limit > configs.MaxCommentLimit {
		limit = configs.DefaultCommentLimit
	}

	comments, err := h.Repo.ListComments(c.Context(), postID, limit)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.CommentListResp{Comments: comments})
}
