package identity

import (
	"context"

	"github.com/foodbridge/backend/internal/domain/identity"
	"github.com/foodbridge/backend/internal/domain/policy"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService provides admin user management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List retrieves user accounts matching the filter. Admin only.
func (s *UserService) List(ctx context.Context, actor policy.Actor, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	if err := policy.Authorize(actor, policy.ActionUserList, policy.Resource{}); err != nil {
		return nil, err
	}

	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Role != "" {
		f.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.IsVerified != nil {
		f.Filters["is_verified"] = *filter.IsVerified
	}

	users, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	result := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &result, nil
}

// GetByID retrieves a user account. Admin only.
func (s *UserService) GetByID(ctx context.Context, actor policy.Actor, id uuid.UUID) (*UserResponse, error) {
	if err := policy.Authorize(actor, policy.ActionUserList, policy.Resource{}); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Verify marks a user account as identity-verified. Admin only.
func (s *UserService) Verify(ctx context.Context, actor policy.Actor, id uuid.UUID) (*UserResponse, error) {
	if err := policy.Authorize(actor, policy.ActionUserVerify, policy.Resource{}); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.MarkVerified()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user verified",
		zap.String("user_id", user.ID.String()),
		zap.String("verified_by", actor.UserID.String()),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Promote grants the admin role to a user. Admin only.
func (s *UserService) Promote(ctx context.Context, actor policy.Actor, id uuid.UUID) (*UserResponse, error) {
	if err := policy.Authorize(actor, policy.ActionUserVerify, policy.Resource{}); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PromoteToAdmin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Deactivate disables a user account. Admin only.
func (s *UserService) Deactivate(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.Authorize(actor, policy.ActionUserVerify, policy.Resource{}); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}

// AttachAadharDocument records the uploaded identity document key on the
// calling user's own account.
func (s *UserService) AttachAadharDocument(ctx context.Context, userID uuid.UUID, objectKey string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.AttachAadharDocument(objectKey); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
