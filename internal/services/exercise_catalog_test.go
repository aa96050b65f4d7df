package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/princep266/loggerbackend/internal/models"
	"github.com/princep266/loggerbackend/internal/repository"
)

type stubExerciseStore struct {
	byName      map[string]*models.Exercise
	createErr   error
	raceWinner  *models.Exercise
	nextID      int64
	createCalls int
	lastCreate  repository.CreateExerciseInput
}

func newStubExerciseStore() *stubExerciseStore {
	return &stubExerciseStore{byName: make(map[string]*models.Exercise), nextID: 1}
}

func (s *stubExerciseStore) Create(
	_ context.Context,
	input repository.CreateExerciseInput,
) (*models.Exercise, error) {
	s.createCalls++
	s.lastCreate = input
	if s.createErr != nil {
		if s.raceWinner != nil {
			s.byName[s.raceWinner.Name] = s.raceWinner
		}
		return nil, s.createErr
	}
	exercise := &models.Exercise{
		ID:       s.nextID,
		UserID:   input.UserID,
		Name:     input.Name,
		BodyPart: input.BodyPart,
		IsCustom: input.IsCustom,
	}
	s.nextID++
	s.byName[input.Name] = exercise
	return exercise, nil
}

func (s *stubExerciseStore) GetByUserAndName(
	_ context.Context,
	_ int64,
	name string,
) (*models.Exercise, error) {
	if exercise, ok := s.byName[name]; ok {
		return exercise, nil
	}
	return nil, pgx.ErrNoRows
}

func TestResolveOrCreateIsIdempotent(t *testing.T) {
	store := newStubExerciseStore()
	catalog := NewExerciseCatalog(DefaultCatalog(), store)

	first, err := catalog.ResolveOrCreate(context.Background(), 42, "chest", "Push Ups", false)
	if err != nil {
		t.Fatalf("first ResolveOrCreate: %v", err)
	}

	second, err := catalog.ResolveOrCreate(context.Background(), 42, "back", "push ups", true)
	if err != nil {
		t.Fatalf("second ResolveOrCreate: %v", err)
	}

	if store.createCalls != 1 {
		t.Fatalf("expected a single create, got %d", store.createCalls)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the first record back, got ids %d and %d", first.ID, second.ID)
	}
	// First write wins: the repeat call's body part never sticks.
	if second.BodyPart != "chest" {
		t.Fatalf("expected body part chest, got %q", second.BodyPart)
	}
}

func TestResolveOrCreateCatalogMatchOverridesCustomFlag(t *testing.T) {
	store := newStubExerciseStore()
	catalog := NewExerciseCatalog(DefaultCatalog(), store)

	exercise, err := catalog.ResolveOrCreate(context.Background(), 42, "chest", "  INCLINE db PRESS ", true)
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}

	if exercise.IsCustom {
		t.Fatal("expected catalog-defined exercise, got custom")
	}
	if exercise.Name != "incline db press" {
		t.Fatalf("expected normalized catalog name, got %q", exercise.Name)
	}
}

func TestResolveOrCreateRejectsUnknownWithoutCustomFlag(t *testing.T) {
	store := newStubExerciseStore()
	catalog := NewExerciseCatalog(DefaultCatalog(), store)

	_, err := catalog.ResolveOrCreate(context.Background(), 42, "arms", "bicep curls", false)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if store.createCalls != 0 {
		t.Fatalf("expected no create, got %d", store.createCalls)
	}

	exercise, err := catalog.ResolveOrCreate(context.Background(), 42, "arms", "bicep curls", true)
	if err != nil {
		t.Fatalf("ResolveOrCreate with custom flag: %v", err)
	}
	if !exercise.IsCustom {
		t.Fatal("expected custom exercise")
	}
	if exercise.Name != "bicep curls" {
		t.Fatalf("expected name bicep curls, got %q", exercise.Name)
	}
}

func TestResolveOrCreateRejectsEmptyName(t *testing.T) {
	catalog := NewExerciseCatalog(DefaultCatalog(), newStubExerciseStore())

	_, err := catalog.ResolveOrCreate(context.Background(), 42, "chest", "   ", true)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestResolveOrCreateRefetchesAfterInsertRace(t *testing.T) {
	store := newStubExerciseStore()
	catalog := NewExerciseCatalog(DefaultCatalog(), store)

	// Simulate another request winning the insert between lookup and
	// create: the create fails with a unique violation and the winning
	// row is visible on the follow-up lookup.
	winner := &models.Exercise{ID: 7, UserID: 42, Name: "push ups", BodyPart: "chest"}
	store.createErr = &pgconn.PgError{Code: "23505"}
	store.raceWinner = winner

	resolved, err := catalog.ResolveOrCreate(context.Background(), 42, "chest", "push ups", false)
	if err != nil {
		t.Fatalf("ResolveOrCreate after race: %v", err)
	}
	if resolved.ID != winner.ID {
		t.Fatalf("expected winner id %d, got %d", winner.ID, resolved.ID)
	}
	if store.createCalls != 1 {
		t.Fatalf("expected one create attempt, got %d", store.createCalls)
	}
}
