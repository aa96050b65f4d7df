package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/princep266/loggerbackend/internal/config"
	"github.com/princep266/loggerbackend/internal/handlers"
	"github.com/princep266/loggerbackend/internal/middleware"
	"github.com/princep266/loggerbackend/internal/repository"
	"github.com/princep266/loggerbackend/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	sessionRepo := repository.NewWorkoutSessionRepository(db)
	entryRepo := repository.NewWorkoutEntryRepository(db)

	exerciseCatalog := services.NewExerciseCatalog(services.DefaultCatalog(), exerciseRepo)
	workoutService := services.NewWorkoutService(db, exerciseCatalog, sessionRepo, entryRepo)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)

	authRequired := middleware.AuthRequired(cfg.JWTSecret)

	users := app.Group("/api/v1/users")
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Get("/current-user", authRequired, authHandler.Me)
	users.Post("/change-password", authRequired, authHandler.ChangePassword)
	users.Patch("/update-profile", authRequired, authHandler.UpdateProfile)

	users.Post("/workout-log", authRequired, workoutHandler.LogActivity)
	users.Get("/workout-activity", authRequired, workoutHandler.GetActivity)
	users.Delete("/workout-log/:id", authRequired, workoutHandler.DeleteEntry)
}
