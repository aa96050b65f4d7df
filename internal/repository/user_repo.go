package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/princep266/loggerbackend/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, gender, age, height_cm, weight_kg, activity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Gender,
		user.Age,
		user.HeightCM,
		user.WeightKG,
		user.Activity,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, gender, age, height_cm, weight_kg, activity, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, gender, age, height_cm, weight_kg, activity, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) ExistsByUsernameOrEmail(
	ctx context.Context,
	username string,
	email string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE username = $1 OR email = $2
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type UpdateProfileInput struct {
	Gender   *string
	Age      *int
	HeightCM *float64
	WeightKG *float64
	Activity *string
}

// UpdateProfile overwrites only the fields the caller supplied; nil
// fields keep their stored value.
func (r *UserRepository) UpdateProfile(
	ctx context.Context,
	id int64,
	input UpdateProfileInput,
) (*models.User, error) {
	query := `
		UPDATE users
		SET gender = COALESCE($2, gender),
			age = COALESCE($3, age),
			height_cm = COALESCE($4, height_cm),
			weight_kg = COALESCE($5, weight_kg),
			activity = COALESCE($6, activity),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, email, password_hash, gender, age, height_cm, weight_kg, activity, created_at, updated_at
	`
	return r.scanUser(r.db.QueryRow(
		ctx,
		query,
		id,
		input.Gender,
		input.Age,
		input.HeightCM,
		input.WeightKG,
		input.Activity,
	))
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Gender,
		&user.Age,
		&user.HeightCM,
		&user.WeightKG,
		&user.Activity,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
