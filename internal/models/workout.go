package models

import "time"

// MuscleVolumes maps a body-part tag to the volume accumulated for it
// within one session.
type MuscleVolumes map[string]float64

type Exercise struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	BodyPart  string    `json:"body_part"`
	IsCustom  bool      `json:"is_custom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkoutSession holds the running aggregates for one user and one
// calendar day. The aggregate fields always equal the sum over the
// session's live entries; SessionAggregator is the only writer.
type WorkoutSession struct {
	ID                  int64         `json:"id"`
	UserID              int64         `json:"user_id"`
	Date                time.Time     `json:"date"`
	DayStart            time.Time     `json:"day_start"`
	TotalVolume         float64       `json:"total_volume"`
	TotalSets           int           `json:"total_sets"`
	TotalReps           int           `json:"total_reps"`
	VolumeByMuscleGroup MuscleVolumes `json:"volume_by_muscle_group"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

type WorkoutEntry struct {
	ID          int64     `json:"id"`
	SessionID   int64     `json:"session_id"`
	ExerciseID  int64     `json:"exercise_id"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	Weight      float64   `json:"weight"`
	PerformedAt time.Time `json:"performed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoggedActivity is what a successful log returns: the entry that was
// created plus the session with its freshly applied aggregates.
type LoggedActivity struct {
	Session WorkoutSession `json:"session"`
	Entry   WorkoutEntry   `json:"workout_entry"`
}

// EntryDetail is an entry with its exercise resolved.
type EntryDetail struct {
	WorkoutEntry
	Exercise *Exercise `json:"exercise,omitempty"`
}

// SessionActivity is the denormalized read view: a session and all the
// entries logged against it.
type SessionActivity struct {
	WorkoutSession
	Entries []EntryDetail `json:"exercises"`
}
