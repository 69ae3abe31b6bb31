package routes

import (
	"github.com/gofiber/fiber/v2"

	"agrisathi/internal/handlers"
	"agrisathi/internal/middleware"
	"agrisathi/internal/repository"
	"agrisathi/model"
	"agrisathi/services"
)

type Deps struct {
	Auth    *services.AuthService
	Farmer  *services.FarmerService
	Officer *services.OfficerService
	Forum   *repository.PostRepository
}

func Register(app *fiber.App, d Deps) {
	authH := &handlers.AuthHandler{Auth: d.Auth}
	queryH := &handlers.QueryHandler{Farmer: d.Farmer}
	officerH := &handlers.OfficerHandler{Officer: d.Officer}
	forumH := &handlers.ForumHandler{Repo: d.Forum}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", authH.Login)

	queries := api.Group("/queries", middleware.RequireAuth())
	queries.Post("/", queryH.Ask)
	queries.Get("/", queryH.ListRecent)
	queries.Post("/:id/resolve", queryH.Resolve)
	queries.Post("/:id/escalate", queryH.Escalate)

	officer := api.Group("/officer",
		middleware.RequireAuth(),
		middleware.RequireRole(model.RoleOfficer, model.RoleAdmin))
	officer.Get("/queries/pending", officerH.ListPending)
	officer.Get("/queries/handled", officerH.ListHandled)
	officer.Post("/queries/:id/respond", officerH.Respond)
	officer.Post("/queries/:id/force-resolve", officerH.ForceResolve)

	forum := api.Group("/forum", middleware.RequireAuth())
	forum.Post("/posts", forumH.CreatePost)
	forum.Get("/posts", forumH.ListFeed)
	forum.Post("/posts/:postId/comments", forumH.AddComment)
	forum.Get("/posts/:postId/comments", forumH.ListComments)
}
