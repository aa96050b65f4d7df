package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/princep266/loggerbackend/internal/models"
)

func newTestSession() *models.WorkoutSession {
	return &models.WorkoutSession{
		ID:                  1,
		UserID:              42,
		VolumeByMuscleGroup: models.MuscleVolumes{},
	}
}

func TestApplyEntryContribution(t *testing.T) {
	session := newTestSession()

	applyEntryContribution(session, "chest", 3, 10, 50)

	if session.TotalVolume != 1500 {
		t.Fatalf("expected total volume 1500, got %v", session.TotalVolume)
	}
	if session.TotalSets != 3 {
		t.Fatalf("expected total sets 3, got %d", session.TotalSets)
	}
	if session.TotalReps != 30 {
		t.Fatalf("expected total reps 30, got %d", session.TotalReps)
	}
	if session.VolumeByMuscleGroup["chest"] != 1500 {
		t.Fatalf("expected chest volume 1500, got %v", session.VolumeByMuscleGroup["chest"])
	}
}

func TestReverseRestoresPriorAggregates(t *testing.T) {
	session := newTestSession()
	applyEntryContribution(session, "back", 2, 5, 20)
	applyEntryContribution(session, "chest", 1, 8, 10)

	entry := &models.WorkoutEntry{Sets: 2, Reps: 5, Weight: 20}
	exercise := &models.Exercise{BodyPart: "back"}
	reverseEntryContribution(session, exercise, entry)

	if session.TotalVolume != 80 {
		t.Fatalf("expected total volume 80 after reversal, got %v", session.TotalVolume)
	}
	if session.TotalSets != 1 {
		t.Fatalf("expected total sets 1 after reversal, got %d", session.TotalSets)
	}
	if session.TotalReps != 8 {
		t.Fatalf("expected total reps 8 after reversal, got %d", session.TotalReps)
	}
	if session.VolumeByMuscleGroup["back"] != 0 {
		t.Fatalf("expected back volume 0 after reversal, got %v", session.VolumeByMuscleGroup["back"])
	}
	if session.VolumeByMuscleGroup["chest"] != 80 {
		t.Fatalf("expected chest volume 80, got %v", session.VolumeByMuscleGroup["chest"])
	}
}

func TestReverseClampsAtZero(t *testing.T) {
	session := newTestSession()
	session.TotalVolume = 100
	session.TotalSets = 1
	session.TotalReps = 5
	session.VolumeByMuscleGroup["legs"] = 100

	entry := &models.WorkoutEntry{Sets: 3, Reps: 10, Weight: 50}
	exercise := &models.Exercise{BodyPart: "legs"}
	reverseEntryContribution(session, exercise, entry)

	if session.TotalVolume != 0 {
		t.Fatalf("expected total volume clamped to 0, got %v", session.TotalVolume)
	}
	if session.TotalSets != 0 {
		t.Fatalf("expected total sets clamped to 0, got %d", session.TotalSets)
	}
	if session.TotalReps != 0 {
		t.Fatalf("expected total reps clamped to 0, got %d", session.TotalReps)
	}
	if session.VolumeByMuscleGroup["legs"] != 0 {
		t.Fatalf("expected legs volume clamped to 0, got %v", session.VolumeByMuscleGroup["legs"])
	}
}

func TestReverseSkipsMuscleGroupWithoutExercise(t *testing.T) {
	session := newTestSession()
	applyEntryContribution(session, "arms", 2, 6, 15)

	entry := &models.WorkoutEntry{Sets: 2, Reps: 6, Weight: 15}
	reverseEntryContribution(session, nil, entry)

	if session.TotalVolume != 0 {
		t.Fatalf("expected total volume 0, got %v", session.TotalVolume)
	}
	// The arms bucket is untouched when the exercise is unresolvable.
	if session.VolumeByMuscleGroup["arms"] != 180 {
		t.Fatalf("expected arms volume left at 180, got %v", session.VolumeByMuscleGroup["arms"])
	}
}

func TestZeroWeightEntriesContributeNoVolume(t *testing.T) {
	session := newTestSession()

	applyEntryContribution(session, "core", 4, 12, 0)

	if session.TotalVolume != 0 {
		t.Fatalf("expected total volume 0 for bodyweight entry, got %v", session.TotalVolume)
	}
	if session.TotalSets != 4 || session.TotalReps != 48 {
		t.Fatalf("expected sets 4 and reps 48, got %d and %d", session.TotalSets, session.TotalReps)
	}
	if session.VolumeByMuscleGroup["core"] != 0 {
		t.Fatalf("expected core volume 0, got %v", session.VolumeByMuscleGroup["core"])
	}
}

func TestValidateLogActivityInput(t *testing.T) {
	catalog := NewExerciseCatalog(DefaultCatalog(), nil)

	cases := []struct {
		name    string
		input   LogActivityInput
		wantErr bool
	}{
		{
			name:  "valid",
			input: LogActivityInput{BodyPart: "chest", ExerciseName: "push ups", Sets: 3, Reps: 10},
		},
		{
			name:    "unknown body part",
			input:   LogActivityInput{BodyPart: "neck", ExerciseName: "push ups", Sets: 3, Reps: 10},
			wantErr: true,
		},
		{
			name:    "zero sets",
			input:   LogActivityInput{BodyPart: "chest", ExerciseName: "push ups", Sets: 0, Reps: 10},
			wantErr: true,
		},
		{
			name:    "negative reps",
			input:   LogActivityInput{BodyPart: "chest", ExerciseName: "push ups", Sets: 3, Reps: -1},
			wantErr: true,
		},
		{
			name:    "negative weight",
			input:   LogActivityInput{BodyPart: "chest", ExerciseName: "push ups", Sets: 3, Reps: 10, Weight: -5},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateLogActivityInput(catalog, tc.input)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestPrepareLogActivityChecksDateLast(t *testing.T) {
	catalog := NewExerciseCatalog(DefaultCatalog(), nil)

	// A bad bodyPart wins over a bad date.
	_, err := prepareLogActivity(catalog, LogActivityInput{
		BodyPart: "neck", ExerciseName: "push ups", Sets: 3, Reps: 10,
		Date: "not-a-date",
	})
	if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "bodyPart") {
		t.Fatalf("expected bodyPart validation error, got %v", err)
	}

	// With every field valid the date is the remaining failure.
	_, err = prepareLogActivity(catalog, LogActivityInput{
		BodyPart: "chest", ExerciseName: "push ups", Sets: 3, Reps: 10,
		Date: "not-a-date",
	})
	if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "date") {
		t.Fatalf("expected date validation error, got %v", err)
	}
}

func TestResolvePerformedAt(t *testing.T) {
	parsed, err := resolvePerformedAt("2030-01-05")
	if err != nil {
		t.Fatalf("resolvePerformedAt: %v", err)
	}
	want := time.Date(2030, 1, 5, 0, 0, 0, 0, time.Local)
	if !parsed.Equal(want) {
		t.Fatalf("expected %v, got %v", want, parsed)
	}

	parsed, err = resolvePerformedAt("2030-01-05T10:30:00")
	if err != nil {
		t.Fatalf("resolvePerformedAt: %v", err)
	}
	if parsed.Hour() != 10 || parsed.Minute() != 30 {
		t.Fatalf("expected 10:30 local, got %v", parsed)
	}

	before := time.Now()
	parsed, err = resolvePerformedAt("")
	if err != nil {
		t.Fatalf("resolvePerformedAt: %v", err)
	}
	if parsed.Before(before) || parsed.After(time.Now()) {
		t.Fatalf("expected blank date to resolve to now, got %v", parsed)
	}
}
