package repo

import (
	"context"
	"time"

	dom "github.com/Sharufkhanniazi/Task-Management-System/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// queryTimeout bounds every store round-trip.
const queryTimeout = 5 * time.Second

// UserRepo provides account persistence.
type UserRepo interface {
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Create(ctx context.Context, email, username, passwordHash string) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// ExistsByEmailOrUsername reports whether any account already uses the email
// or the username. This is a pre-insert optimization; the unique constraints
// in the schema are the authoritative guard.
func (r *PGUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE email = $1 OR username = $2`,
		email, username,
	).Scan(&count)
	return count > 0, err
}

// Create inserts a new account and returns it.
func (r *PGUserRepo) Create(ctx context.Context, email, username, passwordHash string) (dom.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	query := `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, username, password_hash, created_at, updated_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, email, username, passwordHash).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetByEmail returns the account with the given email.
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, username, password_hash, created_at, updated_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
