package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/princep266/loggerbackend/internal/models"
	"github.com/princep266/loggerbackend/internal/repository"
)

// WorkoutService owns the per-day session aggregates. Logging an
// activity and deleting an entry both run inside one transaction so the
// entry row and the session aggregates can never diverge.
type WorkoutService struct {
	db          *pgxpool.Pool
	catalog     *ExerciseCatalog
	sessionRepo *repository.WorkoutSessionRepository
	entryRepo   *repository.WorkoutEntryRepository
}

func NewWorkoutService(
	db *pgxpool.Pool,
	catalog *ExerciseCatalog,
	sessionRepo *repository.WorkoutSessionRepository,
	entryRepo *repository.WorkoutEntryRepository,
) *WorkoutService {
	return &WorkoutService{
		db:          db,
		catalog:     catalog,
		sessionRepo: sessionRepo,
		entryRepo:   entryRepo,
	}
}

// Date carries the raw request value; it is validated after the other
// fields so the first failing field decides the error.
type LogActivityInput struct {
	BodyPart     string
	ExerciseName string
	Sets         int
	Reps         int
	Weight       float64
	Date         string
	IsCustom     bool
}

// LogActivity records one exercise entry and folds its contribution into
// the user's session for that calendar day, creating the session on the
// day's first log. On success the returned session's aggregates equal
// the sum over all of its live entries, the new one included.
func (s *WorkoutService) LogActivity(
	ctx context.Context,
	userID int64,
	input LogActivityInput,
) (*models.LoggedActivity, error) {
	performedAt, err := prepareLogActivity(s.catalog, input)
	if err != nil {
		return nil, err
	}

	exercise, err := s.catalog.ResolveOrCreate(
		ctx,
		userID,
		input.BodyPart,
		input.ExerciseName,
		input.IsCustom,
	)
	if err != nil {
		return nil, err
	}

	dayStart, _ := dayBucket(performedAt)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewWorkoutSessionRepository(tx)
	txEntryRepo := repository.NewWorkoutEntryRepository(tx)

	// Serialize concurrent first-logs of the same (user, day) so exactly
	// one session row wins the find-or-create; the unique index on
	// (user_id, day_start) backs this up.
	if _, err := tx.Exec(
		ctx,
		"SELECT pg_advisory_xact_lock($1)",
		sessionLockKey(userID, dayStart),
	); err != nil {
		return nil, err
	}

	session, err := txSessionRepo.GetByUserAndDayForUpdate(ctx, userID, dayStart)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		session, err = txSessionRepo.Create(ctx, repository.CreateWorkoutSessionInput{
			UserID:   userID,
			Date:     performedAt,
			DayStart: dayStart,
		})
		if err != nil {
			return nil, err
		}
	}

	entry, err := txEntryRepo.Create(ctx, repository.CreateWorkoutEntryInput{
		SessionID:   session.ID,
		ExerciseID:  exercise.ID,
		Sets:        input.Sets,
		Reps:        input.Reps,
		Weight:      input.Weight,
		PerformedAt: performedAt,
	})
	if err != nil {
		return nil, err
	}

	applyEntryContribution(session, input.BodyPart, entry.Sets, entry.Reps, entry.Weight)

	updated, err := txSessionRepo.UpdateAggregates(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.LoggedActivity{Session: *updated, Entry: *entry}, nil
}

// DeleteEntry removes a logged entry and subtracts its contribution from
// the parent session, clamping every aggregate at zero. Session update
// and entry removal share one transaction; the aggregates can never stay
// inflated by a half-applied delete.
func (s *WorkoutService) DeleteEntry(ctx context.Context, userID int64, entryID int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txEntryRepo := repository.NewWorkoutEntryRepository(tx)
	txSessionRepo := repository.NewWorkoutSessionRepository(tx)
	txExerciseRepo := repository.NewExerciseRepository(tx)

	entry, err := txEntryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: workout entry not found", ErrNotFound)
		}
		return err
	}

	session, err := txSessionRepo.GetByIDForUpdate(ctx, entry.SessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: workout session not found", ErrNotFound)
		}
		return err
	}

	// Ownership runs through the session; entries carry no user id.
	if session.UserID != userID {
		return fmt.Errorf("%w: you are not allowed to delete this workout entry", ErrForbidden)
	}

	// Best effort: a missing exercise row only skips the per-muscle
	// adjustment, it does not fail the deletion.
	exercise, err := txExerciseRepo.GetByID(ctx, entry.ExerciseID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		exercise = nil
	}

	// The entry was read before the session lock, so a concurrent delete
	// of the same id may have removed it while we waited. Zero rows here
	// aborts the transaction before the contribution is subtracted twice.
	if err := txEntryRepo.Delete(ctx, entry.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: workout entry not found", ErrNotFound)
		}
		return err
	}

	reverseEntryContribution(session, exercise, entry)

	if _, err := txSessionRepo.UpdateAggregates(ctx, session); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListActivity returns the user's sessions newest day first, each with
// its entries and their resolved exercises. A session with no remaining
// entries comes back with an empty list.
func (s *WorkoutService) ListActivity(
	ctx context.Context,
	userID int64,
) ([]models.SessionActivity, error) {
	sessions, err := s.sessionRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		sessionIDs = append(sessionIDs, session.ID)
	}

	entriesBySession, err := s.entryRepo.ListBySessionIDs(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	activity := make([]models.SessionActivity, 0, len(sessions))
	for _, session := range sessions {
		entries, ok := entriesBySession[session.ID]
		if !ok {
			entries = []models.EntryDetail{}
		}
		activity = append(activity, models.SessionActivity{
			WorkoutSession: session,
			Entries:        entries,
		})
	}

	return activity, nil
}

var activityDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// prepareLogActivity runs the field checks in order and resolves the
// timestamp last; a blank date means "now".
func prepareLogActivity(catalog *ExerciseCatalog, input LogActivityInput) (time.Time, error) {
	if err := validateLogActivityInput(catalog, input); err != nil {
		return time.Time{}, err
	}
	return resolvePerformedAt(input.Date)
}

func resolvePerformedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	for _, layout := range activityDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date provided", ErrValidation)
}

func validateLogActivityInput(catalog *ExerciseCatalog, input LogActivityInput) error {
	if !catalog.AllowsBodyPart(input.BodyPart) {
		return fmt.Errorf("%w: invalid bodyPart provided", ErrValidation)
	}
	if strings.TrimSpace(input.ExerciseName) == "" {
		return fmt.Errorf("%w: exerciseName must be a non-empty string", ErrValidation)
	}
	if input.Sets <= 0 || input.Reps <= 0 {
		return fmt.Errorf("%w: sets and reps must be positive numbers", ErrValidation)
	}
	if input.Weight < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrValidation)
	}
	return nil
}

// entryTotals derives an entry's rep and volume contribution from its
// own fields. Logging and deletion both go through here, which is what
// makes reversal exact.
func entryTotals(sets, reps int, weight float64) (totalReps int, volume float64) {
	totalReps = sets * reps
	volume = weight * float64(totalReps)
	return totalReps, volume
}

func applyEntryContribution(
	session *models.WorkoutSession,
	bodyPart string,
	sets, reps int,
	weight float64,
) {
	totalReps, volume := entryTotals(sets, reps, weight)
	session.TotalVolume += volume
	session.TotalSets += sets
	session.TotalReps += totalReps
	if session.VolumeByMuscleGroup == nil {
		session.VolumeByMuscleGroup = models.MuscleVolumes{}
	}
	session.VolumeByMuscleGroup[bodyPart] += volume
}

func reverseEntryContribution(
	session *models.WorkoutSession,
	exercise *models.Exercise,
	entry *models.WorkoutEntry,
) {
	totalReps, volume := entryTotals(entry.Sets, entry.Reps, entry.Weight)
	session.TotalVolume = max(0, session.TotalVolume-volume)
	session.TotalSets = max(0, session.TotalSets-entry.Sets)
	session.TotalReps = max(0, session.TotalReps-totalReps)

	if exercise == nil || exercise.BodyPart == "" {
		return
	}
	if session.VolumeByMuscleGroup == nil {
		session.VolumeByMuscleGroup = models.MuscleVolumes{}
	}
	current := session.VolumeByMuscleGroup[exercise.BodyPart]
	session.VolumeByMuscleGroup[exercise.BodyPart] = max(0, current-volume)
}

func sessionLockKey(userID int64, dayStart time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", userID, dayStart.Format("2006-01-02"))
	return int64(h.Sum64())
}
