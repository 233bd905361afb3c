package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/auth"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/pkg/jwt"
	"github.com/codemyown/leave-mangement-system/internal/pkg/oauth"
	"github.com/codemyown/leave-mangement-system/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const stateTTL = 10 * time.Minute

type AuthServiceImpl struct {
	tx postgresql.TxManager
	user.UserRepository
	jwtService    jwt.Service
	jwtRepository postgresql.JWTRepository
	googleService oauth.GoogleService

	mu            sync.Mutex
	pendingStates map[string]time.Time
}

func NewAuthService(
	tx postgresql.TxManager,
	userRepo user.UserRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:             tx,
		UserRepository: userRepo,
		jwtService:     jwtService,
		jwtRepository:  jwtRepository,
		googleService:  googleService,
		pendingStates:  make(map[string]time.Time),
	}
}

// Register implements auth.AuthService. New accounts hold the employee
// capability; the manager flag is granted out of band.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	var tokens auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := a.UserRepository.Create(ctx, user.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: &passwordHash,
			IsEmployee:   true,
			Department:   req.Department,
		})
		if err != nil {
			return err
		}

		tokens, err = a.issueTokens(ctx, created)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokens, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	account, err := a.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if account.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokens auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		tokens, err = a.issueTokens(ctx, account)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokens, nil
}

// RefreshToken implements auth.AuthService. The old token stays valid until
// its own expiry; only the access token is reissued.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	token, err := a.jwtService.JWTAuth().Decode(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, ok := token.Get("type"); !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userID, revoked, err := a.jwtRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	account, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(account)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.jwtService.RevokeToken(refreshToken)
	return a.jwtRepository.RevokeRefreshToken(ctx, refreshToken)
}

// GoogleRedirectURL implements auth.AuthService.
func (a *AuthServiceImpl) GoogleRedirectURL(ctx context.Context) (string, error) {
	if !a.googleService.Enabled() {
		return "", auth.ErrGoogleDisabled
	}

	state := a.googleService.GenerateState()
	if state == "" {
		return "", fmt.Errorf("failed to generate oauth state")
	}

	a.mu.Lock()
	a.pendingStates[state] = time.Now().Add(stateTTL)
	a.mu.Unlock()

	return a.googleService.RedirectURL(state), nil
}

// GoogleCallback implements auth.AuthService. Sign-in only: the Google email
// must already belong to a registered account.
func (a *AuthServiceImpl) GoogleCallback(ctx context.Context, state, code string) (auth.TokenResponse, error) {
	if !a.googleService.Enabled() {
		return auth.TokenResponse{}, auth.ErrGoogleDisabled
	}
	if !a.consumeState(state) {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	oauthToken, err := a.googleService.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	info, err := a.googleService.FetchUser(ctx, oauthToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google user: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrGoogleNotLinked
	}

	var tokens auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		account, err := a.UserRepository.LinkGoogleAccount(ctx, info.GoogleID, info.Email)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.ErrGoogleNotLinked
			}
			return fmt.Errorf("failed to link google account: %w", err)
		}

		tokens, err = a.issueTokens(ctx, account)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokens, nil
}

// issueTokens creates an access/refresh pair and records the refresh token
// for revocation checks.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, account user.User) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := a.jwtService.GenerateAccessToken(account)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.jwtRepository.CreateRefreshToken(ctx, account.ID, refreshToken, refreshExpiresAt); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}

// consumeState checks a pending OAuth state and removes it. Expired entries
// are swept on the way through.
func (a *AuthServiceImpl) consumeState(state string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	for s, deadline := range a.pendingStates {
		if deadline.Before(now) {
			delete(a.pendingStates, s)
		}
	}

	deadline, ok := a.pendingStates[state]
	if !ok || deadline.Before(now) {
		return false
	}
	delete(a.pendingStates, state)
	return true
}
