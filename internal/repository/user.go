package repository

import (
	"context"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByIdentifier(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	UpdateLanguage(ctx context.Context, userID, language string) error

	// AdjustBalances atomically applies coin and XP deltas and returns the updated user.
	// A negative coin delta that would take the balance below zero returns ErrInsufficientCoins.
	AdjustBalances(ctx context.Context, userID string, coinsDelta, xpDelta int) (*domain.User, error)

	// ClaimWelcomeBonus sets the claimed flag and credits the bonus in one statement.
	// Returns false when the bonus was already claimed.
	ClaimWelcomeBonus(ctx context.Context, userID string, amount int) (bool, error)

	GetTopUsersByXP(ctx context.Context, limit int) ([]domain.User, error)
}
