package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/princep266/loggerbackend/internal/models"
)

type CreateWorkoutSessionInput struct {
	UserID   int64
	Date     time.Time
	DayStart time.Time
}

type WorkoutSessionRepository struct {
	db DBTX
}

func NewWorkoutSessionRepository(db DBTX) *WorkoutSessionRepository {
	return &WorkoutSessionRepository{db: db}
}

const workoutSessionColumns = `
	id, user_id, session_date, day_start, total_volume, total_sets, total_reps,
	volume_by_muscle_group, created_at, updated_at
`

func (r *WorkoutSessionRepository) Create(
	ctx context.Context,
	input CreateWorkoutSessionInput,
) (*models.WorkoutSession, error) {
	query := `
		INSERT INTO workout_sessions (user_id, session_date, day_start, total_volume, total_sets, total_reps, volume_by_muscle_group)
		VALUES ($1, $2, $3, 0, 0, 0, '{}')
		RETURNING ` + workoutSessionColumns

	return scanWorkoutSession(r.db.QueryRow(ctx, query, input.UserID, input.Date, input.DayStart))
}

func (r *WorkoutSessionRepository) GetByIDForUpdate(
	ctx context.Context,
	sessionID int64,
) (*models.WorkoutSession, error) {
	query := `
		SELECT ` + workoutSessionColumns + `
		FROM workout_sessions
		WHERE id = $1
		FOR UPDATE
	`
	return scanWorkoutSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *WorkoutSessionRepository) GetByUserAndDayForUpdate(
	ctx context.Context,
	userID int64,
	dayStart time.Time,
) (*models.WorkoutSession, error) {
	query := `
		SELECT ` + workoutSessionColumns + `
		FROM workout_sessions
		WHERE user_id = $1 AND day_start = $2
		FOR UPDATE
	`
	return scanWorkoutSession(r.db.QueryRow(ctx, query, userID, dayStart))
}

func (r *WorkoutSessionRepository) ListByUserID(
	ctx context.Context,
	userID int64,
) ([]models.WorkoutSession, error) {
	query := `
		SELECT ` + workoutSessionColumns + `
		FROM workout_sessions
		WHERE user_id = $1
		ORDER BY day_start DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.WorkoutSession, 0)
	for rows.Next() {
		session, err := scanWorkoutSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// UpdateAggregates writes the session's aggregate fields back after the
// service has applied (or reversed) an entry's contribution. Callers must
// hold the session row lock when racing writers are possible.
func (r *WorkoutSessionRepository) UpdateAggregates(
	ctx context.Context,
	session *models.WorkoutSession,
) (*models.WorkoutSession, error) {
	query := `
		UPDATE workout_sessions
		SET total_volume = $2, total_sets = $3, total_reps = $4, volume_by_muscle_group = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + workoutSessionColumns

	return scanWorkoutSession(r.db.QueryRow(
		ctx,
		query,
		session.ID,
		session.TotalVolume,
		session.TotalSets,
		session.TotalReps,
		session.VolumeByMuscleGroup,
	))
}

func scanWorkoutSession(row pgx.Row) (*models.WorkoutSession, error) {
	var session models.WorkoutSession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Date,
		&session.DayStart,
		&session.TotalVolume,
		&session.TotalSets,
		&session.TotalReps,
		&session.VolumeByMuscleGroup,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if session.VolumeByMuscleGroup == nil {
		session.VolumeByMuscleGroup = models.MuscleVolumes{}
	}
	return &session, nil
}
