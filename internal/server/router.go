package server

import (
	"dentapp/internal/cache"
	"dentapp/internal/config"
	"dentapp/internal/domain/auth"
	"dentapp/internal/domain/session"
	"dentapp/internal/domain/user"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes sets up the routes for the application
func SetupRoutes(app *fiber.App, db *gorm.DB, codec *auth.TokenCodec, revocations *cache.SessionRevocationCache, authCfg config.AuthConfig) {
	userRepo := user.NewRepository(db)
	sessionRepo := session.NewRepository(db)

	userService := user.NewService(userRepo)
	sessionService := session.NewServiceWithCache(sessionRepo, revocations)
	authService := auth.NewService(userRepo, sessionService, codec)

	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService, codec, authCfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})

	app.Use(auth.Authenticate(codec))

	authGroup := app.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/refresh-token", authHandler.RefreshFromBody)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/logout-all", auth.RequireAuth(), authHandler.LogoutAll)
	authGroup.Get("/me", authHandler.Me)
	authGroup.Get("/validate", authHandler.Validate)
	authGroup.Get("/should-refresh", authHandler.ShouldRefresh)
	authGroup.Post("/cleanup-sessions", auth.RequireRole(user.RoleAdmin, user.RoleSuperAdmin), authHandler.CleanupSessions)

	userGroup := app.Group("/user")
	userGroup.Post("/signup", userHandler.SignUp)
	userGroup.Get("/profile", auth.RequireAuth(), userHandler.Profile(identityUsername))

	// Literal paths must be registered ahead of the :id wildcard.
	userGroup.Get("/all", auth.RequireRole(user.RoleAdmin, user.RoleSuperAdmin), userHandler.GetAll)
	userGroup.Get("/active", auth.RequireRole(user.RoleAdmin, user.RoleSuperAdmin), userHandler.GetActive)
	userGroup.Get("/role/:role", auth.RequireRole(user.RoleAdmin, user.RoleSuperAdmin), userHandler.GetByRole)
	userGroup.Get("/username/:username", auth.RequireAuth(), userHandler.GetByUsername)
	userGroup.Get("/:id", auth.RequireAuth(), userHandler.GetByID)
	userGroup.Put("/:id", auth.RequireRole(user.RoleAdmin, user.RoleSuperAdmin), userHandler.Update)
	userGroup.Delete("/:id", auth.RequireRole(user.RoleAdmin, user.RoleSuperAdmin), userHandler.Deactivate)
}

func identityUsername(c *fiber.Ctx) string {
	if id := auth.GetIdentity(c); id != nil {
		return id.Username
	}
	return ""
}
