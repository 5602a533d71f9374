package volunteer

import (
	"context"
	"errors"

	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/policy"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/volunteer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides volunteer profile and task-board operations
type Service struct {
	volunteerRepo volunteer.Repository
	donationRepo  donation.Repository
	logger        *zap.Logger
}

// NewService creates a new volunteer Service
func NewService(volunteerRepo volunteer.Repository, donationRepo donation.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		volunteerRepo: volunteerRepo,
		donationRepo:  donationRepo,
		logger:        logger,
	}
}

// Register creates a volunteer profile for the calling user. A user holds at
// most one profile, and an aadhar number registers at most once.
func (s *Service) Register(ctx context.Context, userID uuid.UUID, req RegisterVolunteerRequest) (*VolunteerResponse, error) {
	if _, err := s.volunteerRepo.FindByUserID(ctx, userID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User already has a volunteer profile")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if _, err := s.volunteerRepo.FindByAadhar(ctx, req.AadharNumber); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Aadhar number is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	address, err := toPickupAddress(req.Address)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	v, err := volunteer.NewVolunteer(userID, req.Phone, req.AadharNumber,
		volunteer.Availability(req.Availability), volunteer.Vehicle(req.Vehicle), address)
	if err != nil {
		return nil, err
	}

	if err := s.volunteerRepo.Save(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("volunteer registered",
		zap.String("volunteer_id", v.ID.String()),
		zap.String("user_id", userID.String()),
	)

	resp := ToVolunteerResponse(v)
	return &resp, nil
}

// GetByID retrieves a volunteer by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*VolunteerResponse, error) {
	v, err := s.volunteerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVolunteerResponse(v)
	return &resp, nil
}

// GetProfile retrieves the volunteer profile belonging to a user account
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*VolunteerResponse, error) {
	v, err := s.volunteerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToVolunteerResponse(v)
	return &resp, nil
}

// List retrieves volunteers matching the filter
func (s *Service) List(ctx context.Context, filter VolunteerListFilter) (*shared.Paginated[VolunteerResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.Availability != "" {
		f.Filters["availability"] = filter.Availability
	}
	if filter.City != "" {
		f.Filters["city"] = filter.City
	}

	volunteers, err := s.volunteerRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.volunteerRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]VolunteerResponse, len(volunteers))
	for i := range volunteers {
		responses[i] = ToVolunteerResponse(&volunteers[i])
	}
	result := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &result, nil
}

// UpdateProfile updates a volunteer's contact and availability details.
// Allowed for the profile owner or an admin.
func (s *Service) UpdateProfile(ctx context.Context, actor policy.Actor, volunteerID uuid.UUID, req UpdateProfileRequest) (*VolunteerResponse, error) {
	v, err := s.volunteerRepo.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionVolunteerUpdate, policy.OwnedBy(v.UserID)); err != nil {
		return nil, err
	}

	address, err := toPickupAddress(req.Address)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	if err := v.UpdateProfile(req.Phone, volunteer.Availability(req.Availability), volunteer.Vehicle(req.Vehicle), address); err != nil {
		return nil, err
	}

	if err := s.volunteerRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVolunteerResponse(v)
	return &resp, nil
}

// AssignTask puts a donation on a volunteer's assigned list. Admin only.
// The donation must exist; board membership is checked by the aggregate.
func (s *Service) AssignTask(ctx context.Context, actor policy.Actor, volunteerID, donationID uuid.UUID) (*VolunteerResponse, error) {
	if err := policy.Authorize(actor, policy.ActionTaskAssign, policy.Resource{}); err != nil {
		return nil, err
	}

	v, err := s.volunteerRepo.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.donationRepo.FindByID(ctx, donationID); err != nil {
		return nil, err
	}

	if err := v.AssignTask(donationID); err != nil {
		return nil, err
	}
	if err := s.volunteerRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("task assigned",
		zap.String("volunteer_id", v.ID.String()),
		zap.String("donation_id", donationID.String()),
	)

	resp := ToVolunteerResponse(v)
	return &resp, nil
}

// CompleteTask moves a donation from a volunteer's assigned list to the
// completed list. Only the owning volunteer may complete their own task; the
// board move and the rest of the row persist as one optimistic-locked update.
func (s *Service) CompleteTask(ctx context.Context, actor policy.Actor, volunteerID, donationID uuid.UUID) (*VolunteerResponse, error) {
	v, err := s.volunteerRepo.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionTaskComplete, policy.OwnedBy(v.UserID)); err != nil {
		return nil, err
	}

	if err := v.CompleteTask(donationID); err != nil {
		return nil, err
	}
	if err := s.volunteerRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("task completed",
		zap.String("volunteer_id", v.ID.String()),
		zap.String("donation_id", donationID.String()),
	)

	resp := ToVolunteerResponse(v)
	return &resp, nil
}

// ChangeStatus suspends or reactivates a volunteer account. Admin only.
func (s *Service) ChangeStatus(ctx context.Context, actor policy.Actor, volunteerID uuid.UUID, status string) (*VolunteerResponse, error) {
	if err := policy.Authorize(actor, policy.ActionVolunteerSuspend, policy.Resource{}); err != nil {
		return nil, err
	}

	v, err := s.volunteerRepo.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if err := v.ChangeStatus(volunteer.Status(status)); err != nil {
		return nil, err
	}
	if err := s.volunteerRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVolunteerResponse(v)
	return &resp, nil
}

// AddReview records a review for a volunteer and refreshes the average rating
func (s *Service) AddReview(ctx context.Context, reviewerID, volunteerID uuid.UUID, rating int, comment string) (*VolunteerResponse, error) {
	v, err := s.volunteerRepo.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if err := v.AddReview(reviewerID, rating, comment); err != nil {
		return nil, err
	}
	if err := s.volunteerRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVolunteerResponse(v)
	return &resp, nil
}
