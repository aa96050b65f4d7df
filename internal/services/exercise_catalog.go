package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/princep266/loggerbackend/internal/models"
	"github.com/princep266/loggerbackend/internal/repository"
)

// Catalog is the fixed lookup configuration the exercise resolution runs
// against: the closed set of body-part tags and the list of known
// exercise names with their canonical spellings.
type Catalog struct {
	bodyParts      map[string]struct{}
	canonicalNames map[string]string
}

func NewCatalog(bodyParts []string, knownExercises []string) *Catalog {
	catalog := &Catalog{
		bodyParts:      make(map[string]struct{}, len(bodyParts)),
		canonicalNames: make(map[string]string, len(knownExercises)),
	}
	for _, bodyPart := range bodyParts {
		catalog.bodyParts[bodyPart] = struct{}{}
	}
	for _, name := range knownExercises {
		catalog.canonicalNames[strings.ToLower(name)] = name
	}
	return catalog
}

var defaultBodyParts = []string{
	"chest",
	"back",
	"legs",
	"arms",
	"shoulders",
	"core",
	"full body",
	"glutes",
}

// Known exercise names, spelled exactly as the catalog ships them.
var defaultKnownExercises = []string{
	"barbell bench press",
	"incline DB press",
	"push ups",
	"decline bench press",
	"incline bench press",
	"chest dips",
	"cable fly",
	"peck deck",
	"wide push ups",
	"dumbell flys",
	"incline pusj ups",
	"decline push ups",
	"close grip push ups",
	"daimond push ups",
	"archer push ups",
}

func DefaultCatalog() *Catalog {
	return NewCatalog(defaultBodyParts, defaultKnownExercises)
}

func (c *Catalog) AllowsBodyPart(bodyPart string) bool {
	_, ok := c.bodyParts[bodyPart]
	return ok
}

// CanonicalName matches a name case-insensitively against the known
// exercise list and returns the catalog's spelling for it.
func (c *Catalog) CanonicalName(name string) (string, bool) {
	canonical, ok := c.canonicalNames[strings.ToLower(name)]
	return canonical, ok
}

type exerciseStore interface {
	Create(ctx context.Context, input repository.CreateExerciseInput) (*models.Exercise, error)
	GetByUserAndName(ctx context.Context, userID int64, name string) (*models.Exercise, error)
}

// ExerciseCatalog resolves a (user, exercise name) pair to its canonical
// exercise record, creating a custom entry on first use.
type ExerciseCatalog struct {
	catalog   *Catalog
	exercises exerciseStore
}

func NewExerciseCatalog(catalog *Catalog, exercises exerciseStore) *ExerciseCatalog {
	return &ExerciseCatalog{catalog: catalog, exercises: exercises}
}

func (s *ExerciseCatalog) AllowsBodyPart(bodyPart string) bool {
	return s.catalog.AllowsBodyPart(bodyPart)
}

// ResolveOrCreate normalizes rawName and returns the user's exercise
// record for it, creating one if none exists. Known catalog names keep
// their canonical spelling and stay catalog-defined no matter what the
// caller flags; unknown names must be explicitly marked custom. Repeat
// calls return the first record unchanged.
func (s *ExerciseCatalog) ResolveOrCreate(
	ctx context.Context,
	userID int64,
	bodyPart string,
	rawName string,
	isCustom bool,
) (*models.Exercise, error) {
	trimmed := strings.TrimSpace(rawName)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: exerciseName must be a non-empty string", ErrValidation)
	}

	name := strings.ToLower(trimmed)
	if canonical, known := s.catalog.CanonicalName(name); known {
		name = strings.ToLower(canonical)
		isCustom = false
	} else if !isCustom {
		return nil, fmt.Errorf(
			"%w: unknown exerciseName; mark as custom or use a supported one",
			ErrValidation,
		)
	}

	exercise, err := s.exercises.GetByUserAndName(ctx, userID, name)
	if err == nil {
		return exercise, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	created, err := s.exercises.Create(ctx, repository.CreateExerciseInput{
		UserID:   userID,
		Name:     name,
		BodyPart: bodyPart,
		IsCustom: isCustom,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Lost the insert race; the winning row is the record.
			return s.exercises.GetByUserAndName(ctx, userID, name)
		}
		return nil, err
	}
	return created, nil
}
