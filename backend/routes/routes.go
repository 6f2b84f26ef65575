package routes

import (
	"educourse/backend/config"
	"educourse/backend/controllers"
	"educourse/backend/live"
	"educourse/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, hub *live.Hub) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)

	// Courses routes. List and detail are public; detail resolves the caller
	// itself so an anonymous hit still gets approved metadata.
	coursesController := controllers.NewCoursesController(db, cfg)
	app.Get("/api/courses", coursesController.ListCourses)
	app.Get("/api/courses/:id", coursesController.GetCourseDetails)
	app.Post("/api/courses", authMiddleware, coursesController.CreateCourse)

	// Materials routes
	materialsController := controllers.NewMaterialsController(db, cfg)
	app.Get("/api/courses/:id/materials", authMiddleware, materialsController.ListMaterials)
	app.Post("/api/courses/:id/materials", authMiddleware, materialsController.AddMaterial)

	// Comments routes
	commentsController := controllers.NewCommentsController(db, cfg, hub)
	comments := app.Group("/api/materials/:id/comments", authMiddleware)
	comments.Get("/", commentsController.GetComments)
	comments.Post("/", commentsController.AddComment)
	comments.Get("/stream", commentsController.StreamComments)

	// Admin moderation routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	admin.Get("/pending", adminController.ListPendingCourses)
	admin.Post("/:id/decide", adminController.DecideCourse)
}
