// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile management and
// issuing/refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/dbx"
	"github.com/dmitrijs2005/supreassistant/internal/server/auth"
	"github.com/dmitrijs2005/supreassistant/internal/server/config"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/repomanager"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User *models.User
	TokenPair
}

// UserService provides account operations:
//   - Register / Login: create or verify users and mint tokens
//   - RefreshToken: rotate refresh tokens and mint new access tokens
//   - GetProfile / UpdateProfile / DeleteProfile
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return common.Validation("Invalid email format")
	}
	return nil
}

func validateUsername(username string) error {
	if utf8.RuneCountInString(username) < minUsernameLength {
		return common.Validation("Username must be at least 3 characters long")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return common.Validation("Password must be at least 8 characters long")
	}
	return nil
}

// Register creates an account. A taken email or username fails with an
// Unauthorized-kind error and leaves no new row behind.
func (s *UserService) Register(ctx context.Context, data models.UserRegistrationData) (*AuthResult, error) {
	username := strings.TrimSpace(data.Username)
	email := strings.ToLower(strings.TrimSpace(data.Email))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(data.Password); err != nil {
		return nil, err
	}

	_, err := s.repomanager.Users(s.db).FindConflict(ctx, email, username, "")
	if err == nil {
		return nil, common.Unauthorized("User already exists")
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.Internal("Error registering user", err)
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		return nil, common.Internal("Error registering user", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.Unauthorized("User already exists")
			}
			return err
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user.ID, tx)
		return genErr
	})
	if err != nil {
		return nil, common.Internal("Error registering user", err)
	}
	return &AuthResult{User: user, TokenPair: *pair}, nil
}

// Login verifies email and password and returns fresh tokens. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, data models.UserLoginData) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	if email == "" || data.Password == "" {
		return nil, common.Validation("Email and password are required")
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Unauthorized("Invalid email or password")
		}
		return nil, common.Internal("Error logging in", err)
	}
	ok, err := auth.CheckPassword(user.PasswordHash, data.Password)
	if err != nil {
		return nil, common.Internal("Error logging in", err)
	}
	if !ok {
		return nil, common.Unauthorized("Invalid email or password")
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, common.Internal("Error logging in", err)
	}
	return &AuthResult{User: user, TokenPair: *pair}, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, common.Validation("Refresh token is required")
	}
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Unauthorized("Invalid refresh token")
		}
		return nil, common.Internal("Error refreshing token", err)
	}
	if token.Expires.Before(s.now()) {
		_ = repo.Delete(ctx, refreshToken)
		return nil, &common.Error{Kind: common.ErrorUnauthorized, Msg: "Refresh token expired", Err: common.ErrRefreshTokenExpired}
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return err
		}
		if err := repoTx.DeleteExpired(ctx, token.UserID); err != nil {
			return err
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, common.Internal("Error refreshing token", err)
	}
	return pair, nil
}

// GetProfile returns the account of userID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, common.NotFound("User not found")
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound("User not found")
		}
		return nil, common.Internal("Error fetching profile", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update. Username and email must stay
// unique; a new password is re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, data models.UpdateProfileData) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data.Username != nil {
		username := strings.TrimSpace(*data.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if data.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*data.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if data.Password != nil {
		if err := validatePassword(*data.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*data.Password)
		if err != nil {
			return nil, common.Internal("Error updating profile", err)
		}
		user.PasswordHash = hash
	}

	repo := s.repomanager.Users(s.db)
	if data.Username != nil || data.Email != nil {
		other, err := repo.FindConflict(ctx, user.Email, user.Username, user.ID)
		switch {
		case err == nil && other.Email == user.Email:
			return nil, common.Validation("Email already in use")
		case err == nil:
			return nil, common.Validation("Username already in use")
		case !errors.Is(err, common.ErrorNotFound):
			return nil, common.Internal("Error updating profile", err)
		}
	}

	if err := repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.Validation("Email already in use")
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.NotFound("User not found")
		}
		return nil, common.Internal("Error updating profile", err)
	}
	return user, nil
}

// DeleteProfile removes the account and, through cascading keys, everything
// it owns.
func (s *UserService) DeleteProfile(ctx context.Context, userID string) error {
	if !validID(userID) {
		return common.NotFound("User not found")
	}
	if err := s.repomanager.Users(s.db).Delete(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NotFound("User not found")
		}
		return common.Internal("Error deleting profile", err)
	}
	return nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, err
	}
	rt := &models.RefreshToken{UserID: userID, Token: refresh, Expires: s.now().Add(s.refreshTokenValidityDuration)}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, rt); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
