package partner

import (
	"context"
	"errors"

	"github.com/foodbridge/backend/internal/domain/partner"
	"github.com/foodbridge/backend/internal/domain/policy"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service provides organization registry operations
type Service struct {
	orgRepo partner.OrganizationRepository
	logger  *zap.Logger
}

// NewService creates a new partner Service
func NewService(orgRepo partner.OrganizationRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orgRepo: orgRepo,
		logger:  logger,
	}
}

// Create registers an organization owned by the calling user. Registration
// numbers are unique across the registry.
func (s *Service) Create(ctx context.Context, ownerUserID uuid.UUID, req CreateOrganizationRequest) (*OrganizationResponse, error) {
	if _, err := s.orgRepo.FindByRegistrationNumber(ctx, req.RegistrationNumber); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Registration number is already in use")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	address, err := valueobject.NewPickupAddress(req.Address.Street, req.Address.City, req.Address.State, req.Address.Pincode)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	org, err := partner.NewOrganization(ownerUserID, req.Name, partner.OrganizationType(req.Type),
		req.RegistrationNumber, req.ContactPerson, req.Phone, address, req.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("organization registered",
		zap.String("organization_id", org.ID.String()),
		zap.String("type", string(org.Type)),
	)

	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// GetByID retrieves an organization by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// List retrieves organizations matching the filter
func (s *Service) List(ctx context.Context, filter OrganizationListFilter) (*shared.Paginated[OrganizationResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.IsVerified != nil {
		f.Filters["is_verified"] = *filter.IsVerified
	}
	if filter.City != "" {
		f.Filters["city"] = filter.City
	}

	orgs, err := s.orgRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orgRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = ToOrganizationResponse(&orgs[i])
	}
	result := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &result, nil
}

// Update modifies an organization's details. Owner or admin.
func (s *Service) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionOrganizationUpdate, policy.OwnedBy(org.OwnerUserID)); err != nil {
		return nil, err
	}

	address, err := valueobject.NewPickupAddress(req.Address.Street, req.Address.City, req.Address.State, req.Address.Pincode)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	if err := org.UpdateDetails(req.Name, req.ContactPerson, req.Phone, address, req.Capacity); err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}
	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// AttachDocument records a verification document on the organization.
// Owner or admin.
func (s *Service) AttachDocument(ctx context.Context, actor policy.Actor, id uuid.UUID, req AttachDocumentRequest) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionOrganizationUpdate, policy.OwnedBy(org.OwnerUserID)); err != nil {
		return nil, err
	}
	if err := org.AttachDocument(partner.DocumentType(req.Type), req.ObjectKey); err != nil {
		return nil, err
	}
	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}
	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// Verify marks an organization as verified. Admin only.
func (s *Service) Verify(ctx context.Context, actor policy.Actor, id uuid.UUID) (*OrganizationResponse, error) {
	if err := policy.Authorize(actor, policy.ActionOrganizationVerify, policy.Resource{}); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	org.Verify()
	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("organization verified",
		zap.String("organization_id", org.ID.String()),
		zap.String("verified_by", actor.UserID.String()),
	)

	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// RecordStorage adjusts the organization's used storage. Owner or admin.
func (s *Service) RecordStorage(ctx context.Context, actor policy.Actor, id uuid.UUID, delta decimal.Decimal) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionOrganizationUpdate, policy.OwnedBy(org.OwnerUserID)); err != nil {
		return nil, err
	}

	if err := org.RecordStorage(delta); err != nil {
		return nil, err
	}
	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}
	resp := ToOrganizationResponse(org)
	return &resp, nil
}
