package identity

import (
	"context"
	"errors"
	"time"

	"github.com/foodbridge/backend/internal/domain/identity"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/foodbridge/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxLoginAttempts = 3
	lockDuration     = 15 * time.Minute
)

// AuthService handles registration, login and session lifecycle
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	revoker    auth.TokenRevoker
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, revoker auth.TokenRevoker, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		revoker:    revoker,
		logger:     logger,
	}
}

// Register creates a new donor account. Emails are unique case-insensitively.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	address := valueobject.EmptyPickupAddress()
	if req.Address != nil && req.Address.Street != "" {
		address, err = valueobject.NewPickupAddress(req.Address.Street, req.Address.City, req.Address.State, req.Address.Pincode)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
	}

	user, err := identity.NewUser(req.Name, req.Email, req.Password, req.Phone, req.AadharNumber, address)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Login authenticates a user and issues a token pair. Three consecutive
// failures lock the account for fifteen minutes; the same generic error is
// returned for a wrong password and an unknown email.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked, try again later")
		}
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(maxLoginAttempts, lockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Warn("persisting failed-login counter", zap.Error(err))
		}
		if locked {
			s.logger.Warn("account locked after repeated failures",
				zap.String("user_id", user.ID.String()),
			)
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked, try again later")
		}
		return nil, invalidCredentials()
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The user
// must still exist and be allowed to log in.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token is not valid")
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token is not valid")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Account no longer exists")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account cannot log in")
	}

	return s.jwtService.RefreshTokenPair(req.RefreshToken, user.Email)
}

// GetProfile returns the account of the calling user
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile updates the calling user's contact details
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	address := user.Address
	if req.Address != nil && req.Address.Street != "" {
		address, err = valueobject.NewPickupAddress(req.Address.Street, req.Address.City, req.Address.State, req.Address.Pincode)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
	}
	if err := user.UpdateProfile(req.Name, req.Phone, address); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the calling user's password and revokes their other
// sessions.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.revoker.RevokeAllForUser(ctx, user.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Warn("revoking sessions after password change", zap.Error(err))
	}
	return nil
}

func invalidCredentials() *shared.DomainError {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Email or password is incorrect")
}
