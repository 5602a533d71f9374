package donation

import (
	"context"

	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/fulfillment"
	"github.com/foodbridge/backend/internal/domain/policy"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Service handles donation registry operations
type Service struct {
	donationRepo donation.Repository
	txRepo       fulfillment.Repository
}

// NewService creates a new donation Service
func NewService(donationRepo donation.Repository, txRepo fulfillment.Repository) *Service {
	return &Service{
		donationRepo: donationRepo,
		txRepo:       txRepo,
	}
}

// Create lists a new donation owned by the given donor
func (s *Service) Create(ctx context.Context, donorID uuid.UUID, req CreateDonationRequest) (*DonationResponse, error) {
	unit, err := valueobject.ParseUnit(req.Unit)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_UNIT", err.Error())
	}
	quantity, err := valueobject.NewQuantity(req.Quantity, unit)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUANTITY", err.Error())
	}
	address, err := valueobject.NewPickupAddress(req.PickupAddress.Street, req.PickupAddress.City, req.PickupAddress.State, req.PickupAddress.Pincode)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	d, err := donation.NewFoodDonation(donorID, req.Title, req.Description, quantity, req.ExpiryDate, address)
	if err != nil {
		return nil, err
	}
	if len(req.DietaryInfo) > 0 {
		d.SetDietaryInfo(req.DietaryInfo)
	}
	if req.SpecialInstructions != "" {
		d.SetSpecialInstructions(req.SpecialInstructions)
	}

	if err := s.donationRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	resp := ToDonationResponse(d)
	return &resp, nil
}

// GetByID retrieves a donation by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*DonationResponse, error) {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDonationResponse(d)
	return &resp, nil
}

// List retrieves donations matching the filter, newest first
func (s *Service) List(ctx context.Context, filter DonationListFilter) ([]DonationResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.DonorID != nil {
		f.Filters["donor_id"] = *filter.DonorID
	}
	if filter.City != "" {
		f.Filters["city"] = filter.City
	}

	donations, err := s.donationRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.donationRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DonationResponse, len(donations))
	for i := range donations {
		responses[i] = ToDonationResponse(&donations[i])
	}
	return responses, total, nil
}

// Update modifies a donation's descriptive fields. Only the owning donor or
// an admin may update; the status field is not reachable through this path.
func (s *Service) Update(ctx context.Context, id uuid.UUID, actor policy.Actor, req UpdateDonationRequest) (*DonationResponse, error) {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionDonationUpdate, policy.OwnedBy(d.DonorID)); err != nil {
		return nil, err
	}

	title := d.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := d.Description
	if req.Description != nil {
		description = *req.Description
	}
	quantity := d.Quantity
	if req.Quantity != nil || req.Unit != nil {
		amount := d.Quantity.Amount()
		unit := d.Quantity.Unit()
		if req.Quantity != nil {
			amount = *req.Quantity
		}
		if req.Unit != nil {
			parsed, err := valueobject.ParseUnit(*req.Unit)
			if err != nil {
				return nil, shared.NewDomainError("INVALID_UNIT", err.Error())
			}
			unit = parsed
		}
		quantity, err = valueobject.NewQuantity(amount, unit)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_QUANTITY", err.Error())
		}
	}
	expiry := d.ExpiryDate
	if req.ExpiryDate != nil {
		expiry = *req.ExpiryDate
	}
	address := d.PickupAddress
	if req.PickupAddress != nil {
		address, err = valueobject.NewPickupAddress(req.PickupAddress.Street, req.PickupAddress.City, req.PickupAddress.State, req.PickupAddress.Pincode)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
	}

	if err := d.UpdateDetails(title, description, quantity, expiry, address); err != nil {
		return nil, err
	}
	if req.DietaryInfo != nil {
		d.SetDietaryInfo(req.DietaryInfo)
	}
	if req.SpecialInstructions != nil {
		d.SetSpecialInstructions(*req.SpecialInstructions)
	}

	if err := s.donationRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}

	resp := ToDonationResponse(d)
	return &resp, nil
}

// Delete removes a donation. It fails with CONFLICT while a non-terminal
// transaction still references the donation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor policy.Actor) error {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDonationDelete, policy.OwnedBy(d.DonorID)); err != nil {
		return err
	}

	active, err := s.txRepo.FindActiveByDonation(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return shared.NewDomainError("CONFLICT", "Donation has an active transaction and cannot be deleted")
	}

	return s.donationRepo.Delete(ctx, id)
}

// ConfirmDelivered marks a completed donation as delivered (donor confirmation)
func (s *Service) ConfirmDelivered(ctx context.Context, id uuid.UUID, actor policy.Actor) (*DonationResponse, error) {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionDonationDeliver, policy.OwnedBy(d.DonorID)); err != nil {
		return nil, err
	}
	if err := d.ConfirmDelivered(); err != nil {
		return nil, err
	}
	if err := s.donationRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDonationResponse(d)
	return &resp, nil
}

// AttachImage records an uploaded image key on the donation
func (s *Service) AttachImage(ctx context.Context, id uuid.UUID, actor policy.Actor, key string) (*DonationResponse, error) {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionDonationUpdate, policy.OwnedBy(d.DonorID)); err != nil {
		return nil, err
	}
	if err := d.AttachImage(key); err != nil {
		return nil, err
	}
	if err := s.donationRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDonationResponse(d)
	return &resp, nil
}
