package repository

import (
	"context"

	"github.com/princep266/loggerbackend/internal/models"
)

type CreateExerciseInput struct {
	UserID   int64
	Name     string
	BodyPart string
	IsCustom bool
}

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(
	ctx context.Context,
	input CreateExerciseInput,
) (*models.Exercise, error) {
	query := `
		INSERT INTO exercises (user_id, name, body_part, is_custom)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, body_part, is_custom, created_at, updated_at
	`
	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, input.UserID, input.Name, input.BodyPart, input.IsCustom).Scan(
		&exercise.ID,
		&exercise.UserID,
		&exercise.Name,
		&exercise.BodyPart,
		&exercise.IsCustom,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) GetByUserAndName(
	ctx context.Context,
	userID int64,
	name string,
) (*models.Exercise, error) {
	query := `
		SELECT id, user_id, name, body_part, is_custom, created_at, updated_at
		FROM exercises
		WHERE user_id = $1 AND name = $2
	`
	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, userID, name).Scan(
		&exercise.ID,
		&exercise.UserID,
		&exercise.Name,
		&exercise.BodyPart,
		&exercise.IsCustom,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `
		SELECT id, user_id, name, body_part, is_custom, created_at, updated_at
		FROM exercises
		WHERE id = $1
	`
	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, id).Scan(
		&exercise.ID,
		&exercise.UserID,
		&exercise.Name,
		&exercise.BodyPart,
		&exercise.IsCustom,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}
