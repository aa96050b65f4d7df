package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/princep266/loggerbackend/internal/models"
	"github.com/princep266/loggerbackend/internal/services"
)

type WorkoutHandler struct {
	service workoutApplicationService
}

type workoutApplicationService interface {
	LogActivity(ctx context.Context, userID int64, input services.LogActivityInput) (*models.LoggedActivity, error)
	ListActivity(ctx context.Context, userID int64) ([]models.SessionActivity, error)
	DeleteEntry(ctx context.Context, userID int64, entryID int64) error
}

func NewWorkoutHandler(service *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

type logActivityRequest struct {
	BodyPart     string   `json:"bodyPart"`
	ExerciseName string   `json:"exerciseName"`
	Sets         *int     `json:"sets"`
	Reps         *int     `json:"reps"`
	Weight       *float64 `json:"weight"`
	Date         string   `json:"date"`
	IsCustom     bool     `json:"isCustom"`
}

func (h *WorkoutHandler) LogActivity(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.BodyPart == "" || strings.TrimSpace(req.ExerciseName) == "" ||
		req.Sets == nil || req.Reps == nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "bodyPart, exerciseName, sets, and reps are required"})
	}

	weight := 0.0
	if req.Weight != nil {
		weight = *req.Weight
	}

	activity, err := h.service.LogActivity(c.Context(), userID, services.LogActivityInput{
		BodyPart:     req.BodyPart,
		ExerciseName: req.ExerciseName,
		Sets:         *req.Sets,
		Reps:         *req.Reps,
		Weight:       weight,
		Date:         req.Date,
		IsCustom:     req.IsCustom,
	})
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"activity": activity})
}

func (h *WorkoutHandler) GetActivity(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	activity, err := h.service.ListActivity(c.Context(), userID)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"activity": activity})
}

func (h *WorkoutHandler) DeleteEntry(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entryID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || entryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout entry id"})
	}

	if err := h.service.DeleteEntry(c.Context(), userID, entryID); err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Workout entry deleted successfully"})
}

func mapWorkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout entry not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process workout request"})
	}
}
