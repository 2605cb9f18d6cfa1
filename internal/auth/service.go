package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// WelcomeBonusCoins is granted once, either on first login or via an
// explicit claim.
const WelcomeBonusCoins = 1000

const defaultLanguage = "en"

// SignupParams carries the normalized registration fields
type SignupParams struct {
	Email    string
	Username string
	Password string
	FullName string
	Language string
}

// AuthResult pairs a signed token with the authenticated user
type AuthResult struct {
	Token string      `json:"access_token"`
	User  domain.User `json:"user"`
}

// BonusResult reports a successful welcome bonus claim
type BonusResult struct {
	CoinsAwarded int `json:"coins_awarded"`
	TotalCoins   int `json:"total_coins"`
}

// Service handles registration, login and account settings
type Service interface {
	Signup(ctx context.Context, params SignupParams) (*AuthResult, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error)
	ClaimWelcomeBonus(ctx context.Context, userID string) (*BonusResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateLanguage(ctx context.Context, userID, language string) (*domain.User, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}

type service struct {
	userRepo repository.User
	tokens   *TokenManager
	clock    clock.Clock
}

func NewService(userRepo repository.User, tokens *TokenManager, clk clock.Clock) Service {
	return &service{userRepo: userRepo, tokens: tokens, clock: clk}
}

func (s *service) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	username := strings.ToLower(strings.TrimSpace(params.Username))

	if taken, err := s.userRepo.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}
	if taken, err := s.userRepo.UsernameExists(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	language := params.Language
	if language == "" {
		language = defaultLanguage
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		FullName:     params.FullName,
		Language:     language,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered", "user_id", user.ID, "username", username)
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *service) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error) {
	identifier := strings.ToLower(strings.TrimSpace(usernameOrEmail))

	user, err := s.userRepo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	// First login grants the welcome bonus without an explicit claim
	if !user.WelcomeBonusClaimed {
		granted, err := s.userRepo.ClaimWelcomeBonus(ctx, user.ID, WelcomeBonusCoins)
		if err != nil {
			return nil, err
		}
		if granted {
			user.Coins += WelcomeBonusCoins
			user.WelcomeBonusClaimed = true
			logger.FromContext(ctx).Info("welcome bonus granted", "user_id", user.ID)
		}
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *service) ClaimWelcomeBonus(ctx context.Context, userID string) (*BonusResult, error) {
	granted, err := s.userRepo.ClaimWelcomeBonus(ctx, userID, WelcomeBonusCoins)
	if err != nil {
		return nil, err
	}
	if !granted {
		return nil, domain.ErrBonusClaimed
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BonusResult{CoinsAwarded: WelcomeBonusCoins, TotalCoins: user.Coins}, nil
}

func (s *service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *service) UpdateLanguage(ctx context.Context, userID, language string) (*domain.User, error) {
	if err := s.userRepo.UpdateLanguage(ctx, userID, language); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *service) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(username))
	exists, err := s.userRepo.UsernameExists(ctx, normalized)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
