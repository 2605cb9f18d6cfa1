package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, email, username, password_hash, full_name, language,
	coins, xp, welcome_bonus_claimed, created_at, last_login`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Language,
		&user.Coins,
		&user.XP,
		&user.WelcomeBonusClaimed,
		&user.CreatedAt,
		&user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user row and fills in the generated ID
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, username, password_hash, full_name, language, coins, xp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.FullName, user.Language, user.Coins, user.XP,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, IndexUsersEmailLower) {
			return domain.ErrEmailTaken
		}
		if isUniqueViolation(err, IndexUsersUsernameLower) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID returns the user with the given ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userColumns)
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

// GetUserByIdentifier resolves a username or email, case-insensitively
func (r *UserRepository) GetUserByIdentifier(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($1)
	`, userColumns)
	return scanUser(r.db.QueryRow(ctx, query, usernameOrEmail))
}

// UsernameExists reports whether the username is already taken (case-insensitive)
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`
	if err := r.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// EmailExists reports whether the email is already registered (case-insensitive)
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET last_login = $2 WHERE user_id = $1`, userID, at)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateLanguage sets the user's preferred language
func (r *UserRepository) UpdateLanguage(ctx context.Context, userID, language string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET language = $2 WHERE user_id = $1`, userID, language)
	if err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AdjustBalances atomically applies coin and XP deltas and returns the updated user
func (r *UserRepository) AdjustBalances(ctx context.Context, userID string, coinsDelta, xpDelta int) (*domain.User, error) {
	return adjustBalances(ctx, r.db, userID, coinsDelta, xpDelta)
}

// adjustBalances is shared between the pool-backed repository and FarmTx
func adjustBalances(ctx context.Context, q querier, userID string, coinsDelta, xpDelta int) (*domain.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET coins = coins + $2, xp = xp + $3
		WHERE user_id = $1 AND coins + $2 >= 0
		RETURNING %s
	`, userColumns)
	user, err := scanUser(q.QueryRow(ctx, query, userID, coinsDelta, xpDelta))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Distinguish a missing user from an overdraft
			var exists bool
			if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, userID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check user existence: %w", checkErr)
			}
			if exists {
				return nil, domain.ErrInsufficientCoins
			}
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ClaimWelcomeBonus marks the bonus claimed and credits it in one statement.
// Returns false when the bonus was already claimed.
func (r *UserRepository) ClaimWelcomeBonus(ctx context.Context, userID string, amount int) (bool, error) {
	query := `
		UPDATE users
		SET welcome_bonus_claimed = TRUE, coins = coins + $2
		WHERE user_id = $1 AND welcome_bonus_claimed = FALSE
	`
	tag, err := r.db.Exec(ctx, query, userID, amount)
	if err != nil {
		return false, fmt.Errorf("failed to claim welcome bonus: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetTopUsersByXP returns users ordered by XP descending
func (r *UserRepository) GetTopUsersByXP(ctx context.Context, limit int) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY xp DESC, created_at ASC LIMIT $1`, userColumns)
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
