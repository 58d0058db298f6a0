package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/falci/falci/internal/model"
)

// PostgresStore is the durable production store backed by a pgx pool.
// Schema lives in migrations/.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// CreateFortune inserts a new fortune record.
func (s *PostgresStore) CreateFortune(ctx context.Context, input CreateFortuneInput) (*model.Fortune, error) {
	if !input.Type.IsValid() {
		return nil, ErrInvalidType
	}

	fortune := &model.Fortune{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Content:   input.Content,
		Data:      input.Data,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO fortunes (id, user_id, type, title, content, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		fortune.ID,
		nullIfEmpty(fortune.UserID),
		string(fortune.Type),
		fortune.Title,
		fortune.Content,
		nullIfEmptyJSON(fortune.Data),
		fortune.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fortune: %w", err)
	}

	return fortune, nil
}

// GetFortunes retrieves fortunes newest first, optionally filtered by user.
func (s *PostgresStore) GetFortunes(ctx context.Context, userID string) ([]*model.Fortune, error) {
	query := `
		SELECT id, user_id, type, title, content, data, created_at
		FROM fortunes
	`
	args := []any{}
	if userID != "" {
		query += " WHERE user_id = $1"
		args = append(args, userID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fortunes: %w", err)
	}
	defer rows.Close()

	var fortunes []*model.Fortune
	for rows.Next() {
		fortune, err := scanFortune(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fortune: %w", err)
		}
		fortunes = append(fortunes, fortune)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fortunes: %w", err)
	}

	return fortunes, nil
}

// GetFortune retrieves one fortune by id.
func (s *PostgresStore) GetFortune(ctx context.Context, id string) (*model.Fortune, error) {
	query := `
		SELECT id, user_id, type, title, content, data, created_at
		FROM fortunes
		WHERE id = $1
	`

	fortune, err := scanFortune(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFortuneNotFound
		}
		return nil, fmt.Errorf("failed to get fortune: %w", err)
	}

	return fortune, nil
}

// DeleteFortune removes a fortune and reports whether it existed.
func (s *PostgresStore) DeleteFortune(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM fortunes WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete fortune: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CreateUser inserts a new user record.
func (s *PostgresStore) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		ZodiacSign:   input.ZodiacSign,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
		INSERT INTO users (id, username, password_hash, zodiac_sign, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		nullIfEmpty(user.ZodiacSign),
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves one user by id.
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx, "id = $1", id)
}

// GetUserByUsername retrieves one user by their unique handle.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUser(ctx, "username = $1", username)
}

func (s *PostgresStore) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, zodiac_sign, created_at
		FROM users
		WHERE ` + where

	var (
		user       model.User
		zodiacSign *string
	)
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&zodiacSign,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if zodiacSign != nil {
		user.ZodiacSign = *zodiacSign
	}

	return &user, nil
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// rowScanner abstracts pgx.Row and pgx.Rows for scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFortune(row rowScanner) (*model.Fortune, error) {
	var (
		fortune model.Fortune
		userID  *string
		typ     string
		data    []byte
	)

	err := row.Scan(
		&fortune.ID,
		&userID,
		&typ,
		&fortune.Title,
		&fortune.Content,
		&data,
		&fortune.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		fortune.UserID = *userID
	}
	fortune.Type = model.FortuneType(typ)
	if len(data) > 0 {
		fortune.Data = json.RawMessage(data)
	}

	return &fortune, nil
}

// nullIfEmpty maps empty strings to SQL NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullIfEmptyJSON maps empty payloads to SQL NULL.
func nullIfEmptyJSON(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	return []byte(data)
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	// PostgreSQL error code 23505 is unique_violation
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
