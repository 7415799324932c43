package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/maheshrc27/devjournal/configs"
	"github.com/maheshrc27/devjournal/internal/api/handlers"
	"github.com/maheshrc27/devjournal/internal/api/middleware"
	"github.com/maheshrc27/devjournal/internal/service"
)

const (
	reactionLimit       = 10
	reactionLimitWindow = time.Minute
)

type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Posts     service.PostService
	Reactions service.ReactionService
	Resolver  service.Resolver
	Hours     service.HoursService
	Drafts    service.DraftService
	Media     service.MediaService
	DB        handlers.Pinger
}

func NewApp(cfg config.Config, s Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    service.MaxUploadSize + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	RegisterRoutes(app, cfg, s)
	return app
}

func RegisterRoutes(app *fiber.App, cfg config.Config, s Services) {
	authMiddleware := middleware.NewAuthMiddleware(cfg, s.Auth)
	optionalAuth := authMiddleware.OptionalAuth()
	requireAuthor := authMiddleware.RequireAuthor()

	health := handlers.NewHealthHandler(s.DB)
	app.Get("/healthz", health.Health)

	auth := handlers.NewAuthHandler(cfg, s.Auth)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Post("/logout", auth.Logout)

	post := handlers.NewPostHandler(s.Posts)
	app.Get("/posts", optionalAuth, post.ListPosts)
	app.Get("/posts/:id", optionalAuth, post.GetPost)
	app.Post("/posts", requireAuthor, post.CreatePost)
	app.Put("/posts/:id", requireAuthor, post.UpdatePost)
	app.Delete("/posts/:id", requireAuthor, post.RemovePost)

	reaction := handlers.NewReactionHandler(s.Reactions)
	// each endpoint keeps its own per-IP budget
	app.Post("/reactions", middleware.RateLimit(reactionLimit, reactionLimitWindow), optionalAuth, reaction.ToggleReaction)
	app.Post("/reactions/check", middleware.RateLimit(reactionLimit, reactionLimitWindow), optionalAuth, reaction.CheckReaction)

	schedule := handlers.NewScheduleHandler(s.Resolver)
	app.Get("/schedule-sweep", middleware.CronSecret(cfg.CronSecret), schedule.Sweep)

	hours := handlers.NewHoursHandler(s.Hours)
	app.Get("/hours", hours.GetHours)

	api := app.Group("/api")

	user := handlers.NewUserHandler(s.Users)
	api.Get("/user/info", authMiddleware.RequireAuth(), user.GetUserInfo)
	api.Delete("/user", authMiddleware.RequireAuth(), user.RemoveUser)

	draft := handlers.NewDraftHandler(s.Drafts)
	api.Get("/drafts", requireAuthor, draft.GetDraft)
	api.Put("/drafts", requireAuthor, draft.SaveDraft)
	api.Delete("/drafts", requireAuthor, draft.ClearDraft)

	upload := handlers.NewUploadHandler(s.Media)
	api.Get("/uploads", requireAuthor, upload.ListImages)
	api.Post("/uploads", requireAuthor, upload.UploadImage)
}
