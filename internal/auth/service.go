package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AhmedKettaf/inilapstore/internal/users"
	pkgauth "github.com/AhmedKettaf/inilapstore/pkg/auth"
	"github.com/AhmedKettaf/inilapstore/pkg/auth/session"
	"github.com/AhmedKettaf/inilapstore/pkg/config"
	"github.com/AhmedKettaf/inilapstore/pkg/db/models"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
	"github.com/AhmedKettaf/inilapstore/pkg/security"
)

// sessionManager is the slice of the session manager the service uses.
type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// rateLimiter applies a fixed-window counter per scope.
type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Service handles admin console authentication.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*TokenPairDTO, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPairDTO, error)
	Logout(ctx context.Context, accessID string) error
	Profile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
}

type service struct {
	repo      *users.Repository
	sessions  sessionManager
	limiter   rateLimiter
	jwtCfg    config.JWTConfig
	limitCfg  config.AuthRateLimitConfig
	logg      *logger.Logger
	clock     func() time.Time
}

// Options bundles the auth service dependencies.
type Options struct {
	Users     *users.Repository
	Sessions  sessionManager
	Limiter   rateLimiter
	JWT       config.JWTConfig
	RateLimit config.AuthRateLimitConfig
	Logger    *logger.Logger
}

// NewService constructs an auth service instance.
func NewService(opts Options) (Service, error) {
	if opts.Users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if opts.Sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if opts.Limiter == nil {
		return nil, fmt.Errorf("rate limiter required")
	}
	return &service{
		repo:     opts.Users,
		sessions: opts.Sessions,
		limiter:  opts.Limiter,
		jwtCfg:   opts.JWT,
		limitCfg: opts.RateLimit,
		logg:     opts.Logger,
		clock:    time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*TokenPairDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if err := s.checkLoginRateLimits(ctx, email, input.RemoteIP); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return nil, invalidCredentials()
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !match {
		return nil, invalidCredentials()
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID, s.clock().UTC()); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("touch last login: %v", err))
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "admin login")
	}
	return pair, nil
}

// Refresh rotates the refresh token. The expired access token identifies the
// session; its signature is still verified.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPairDTO, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.clock(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenPairDTO{
		AccessToken:  access,
		RefreshToken: newRefresh,
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return &ProfileDTO{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		LastLoginAt: user.LastLoginAt,
	}, nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*TokenPairDTO, error) {
	accessID := session.NewAccessID()
	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.clock(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   pkgauth.RoleAdmin,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}
	return &TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
	}, nil
}

func (s *service) checkLoginRateLimits(ctx context.Context, email, ip string) error {
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, "login:email:"+email, int64(s.limitCfg.LoginEmailLimit), s.limitCfg.LoginWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
	}
	if !allowed {
		return tooManyAttempts()
	}
	if strings.TrimSpace(ip) != "" {
		allowed, _, err = s.limiter.FixedWindowAllow(ctx, "login:ip:"+ip, int64(s.limitCfg.LoginIPLimit), s.limitCfg.LoginWindow)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
		}
		if !allowed {
			return tooManyAttempts()
		}
	}
	return nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}

func tooManyAttempts() error {
	return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts")
}
