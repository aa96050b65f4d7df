package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/princep266/loggerbackend/internal/models"
)

type CreateWorkoutEntryInput struct {
	SessionID   int64
	ExerciseID  int64
	Sets        int
	Reps        int
	Weight      float64
	PerformedAt time.Time
}

type WorkoutEntryRepository struct {
	db DBTX
}

func NewWorkoutEntryRepository(db DBTX) *WorkoutEntryRepository {
	return &WorkoutEntryRepository{db: db}
}

func (r *WorkoutEntryRepository) Create(
	ctx context.Context,
	input CreateWorkoutEntryInput,
) (*models.WorkoutEntry, error) {
	query := `
		INSERT INTO workout_entries (session_id, exercise_id, sets, reps, weight, performed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, session_id, exercise_id, sets, reps, weight, performed_at, created_at, updated_at
	`
	var entry models.WorkoutEntry
	err := r.db.QueryRow(
		ctx,
		query,
		input.SessionID,
		input.ExerciseID,
		input.Sets,
		input.Reps,
		input.Weight,
		input.PerformedAt,
	).Scan(
		&entry.ID,
		&entry.SessionID,
		&entry.ExerciseID,
		&entry.Sets,
		&entry.Reps,
		&entry.Weight,
		&entry.PerformedAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WorkoutEntryRepository) GetByID(
	ctx context.Context,
	entryID int64,
) (*models.WorkoutEntry, error) {
	query := `
		SELECT id, session_id, exercise_id, sets, reps, weight, performed_at, created_at, updated_at
		FROM workout_entries
		WHERE id = $1
	`
	var entry models.WorkoutEntry
	err := r.db.QueryRow(ctx, query, entryID).Scan(
		&entry.ID,
		&entry.SessionID,
		&entry.ExerciseID,
		&entry.Sets,
		&entry.Reps,
		&entry.Weight,
		&entry.PerformedAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WorkoutEntryRepository) Delete(ctx context.Context, entryID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workout_entries WHERE id = $1`, entryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListBySessionIDs returns every entry belonging to the given sessions,
// with its exercise resolved, grouped by session id.
func (r *WorkoutEntryRepository) ListBySessionIDs(
	ctx context.Context,
	sessionIDs []int64,
) (map[int64][]models.EntryDetail, error) {
	entriesBySession := make(map[int64][]models.EntryDetail)
	if len(sessionIDs) == 0 {
		return entriesBySession, nil
	}

	query := `
		SELECT
			e.id, e.session_id, e.exercise_id, e.sets, e.reps, e.weight, e.performed_at, e.created_at, e.updated_at,
			x.id, x.user_id, x.name, x.body_part, x.is_custom, x.created_at, x.updated_at
		FROM workout_entries e
		JOIN exercises x ON x.id = e.exercise_id
		WHERE e.session_id = ANY($1)
		ORDER BY e.performed_at ASC, e.id ASC
	`
	rows, err := r.db.Query(ctx, query, sessionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var detail models.EntryDetail
		var exercise models.Exercise
		if err := rows.Scan(
			&detail.ID,
			&detail.SessionID,
			&detail.ExerciseID,
			&detail.Sets,
			&detail.Reps,
			&detail.Weight,
			&detail.PerformedAt,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&exercise.ID,
			&exercise.UserID,
			&exercise.Name,
			&exercise.BodyPart,
			&exercise.IsCustom,
			&exercise.CreatedAt,
			&exercise.UpdatedAt,
		); err != nil {
			return nil, err
		}
		detail.Exercise = &exercise
		entriesBySession[detail.SessionID] = append(entriesBySession[detail.SessionID], detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entriesBySession, nil
}
