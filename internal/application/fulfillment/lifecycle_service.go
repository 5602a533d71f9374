package fulfillment

import (
	"context"
	"errors"

	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/fulfillment"
	"github.com/foodbridge/backend/internal/domain/partner"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleService is the coordinator for the donation lifecycle. It is the
// only writer of donation status and transaction status, and applies every
// cross-entity move as one atomic unit via the transaction scope.
type LifecycleService struct {
	scope        TransactionScope
	donationRepo donation.Repository
	txRepo       fulfillment.Repository
	orgRepo      partner.OrganizationRepository
	logger       *zap.Logger
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(scope TransactionScope, donationRepo donation.Repository, txRepo fulfillment.Repository, orgRepo partner.OrganizationRepository, logger *zap.Logger) *LifecycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		scope:        scope,
		donationRepo: donationRepo,
		txRepo:       txRepo,
		orgRepo:      orgRepo,
		logger:       logger,
	}
}

// Claim opens a transaction against an available donation and reserves it.
// The transaction insert and the donation status flip happen inside one
// database transaction; the flip is a conditional update on the current
// status, so of two concurrent claims exactly one wins and the loser gets
// CONFLICT.
func (s *LifecycleService) Claim(ctx context.Context, req ClaimRequest) (*TransactionResponse, error) {
	d, err := s.donationRepo.FindByID(ctx, req.DonationID)
	if err != nil {
		return nil, err
	}
	if !d.IsClaimable() {
		return nil, shared.NewDomainError("CONFLICT", "Donation is not available")
	}

	org, err := s.orgRepo.FindByID(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	tx, err := fulfillment.NewDonationTransaction(d.ID, d.DonorID, org.ID, req.ScheduledPickupTime, req.Notes)
	if err != nil {
		return nil, err
	}
	tx.SetSummaries(d.Title, org.Name)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.TransactionRepo().Save(ctx, tx); err != nil {
			return err
		}
		// Conditional flip: loses against a concurrent claim and rolls the
		// insert back.
		return repos.DonationRepo().UpdateStatusIf(ctx, d.ID, donation.StatusAvailable, donation.StatusReserved)
	})
	if err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return nil, shared.NewDomainError("CONFLICT", "Donation is not available")
		}
		return nil, err
	}

	s.logger.Info("donation claimed",
		zap.String("donation_id", d.ID.String()),
		zap.String("transaction_id", tx.ID.String()),
		zap.String("organization_id", org.ID.String()),
	)

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// UpdateStatus moves a transaction to the requested status and cascades the
// donation mutation in the same database transaction: completed marks the
// donation completed, cancelled reverts it to available, any other target
// leaves the donation untouched.
func (s *LifecycleService) UpdateStatus(ctx context.Context, transactionID uuid.UUID, req UpdateStatusRequest) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	target := fulfillment.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Unknown transaction status: "+req.Status)
	}

	switch target {
	case fulfillment.StatusAccepted:
		err = tx.Accept()
	case fulfillment.StatusCollected:
		var location *valueobject.GeoPoint
		if req.PickupLocation != nil {
			point, perr := valueobject.NewGeoPoint(req.PickupLocation.Longitude, req.PickupLocation.Latitude)
			if perr != nil {
				return nil, shared.NewDomainError("INVALID_INPUT", perr.Error())
			}
			location = &point
		}
		err = tx.MarkCollected(location)
	case fulfillment.StatusCompleted:
		var feedback *fulfillment.Feedback
		if req.Feedback != nil {
			feedback, err = fulfillment.NewFeedback(req.Feedback.Rating, req.Feedback.Comment)
			if err != nil {
				return nil, err
			}
		}
		err = tx.Complete(feedback)
	case fulfillment.StatusCancelled:
		err = tx.Cancel(req.Reason)
	default:
		return nil, shared.NewDomainError("INVALID_TRANSITION",
			"Cannot change transaction from "+tx.Status.String()+" to "+target.String())
	}
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.TransactionRepo().SaveWithLock(ctx, tx); err != nil {
			return err
		}
		switch target {
		case fulfillment.StatusCompleted:
			return s.cascadeDonation(ctx, repos, tx.DonationID, donation.StatusCompleted)
		case fulfillment.StatusCancelled:
			return s.cascadeDonation(ctx, repos, tx.DonationID, donation.StatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction status updated",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("donation_id", tx.DonationID.String()),
		zap.String("status", target.String()),
	)

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// cascadeDonation applies the donation side of a terminal transaction move
// inside the surrounding database transaction.
func (s *LifecycleService) cascadeDonation(ctx context.Context, repos TransactionalRepositories, donationID uuid.UUID, target donation.Status) error {
	d, err := repos.DonationRepo().FindByID(ctx, donationID)
	if err != nil {
		return err
	}
	if err := d.ChangeStatus(target); err != nil {
		return err
	}
	return repos.DonationRepo().SaveWithLock(ctx, d)
}

// GiveFeedback attaches or replaces the organization's rating on an already
// completed transaction. Completed is terminal for status moves, so this is
// the only write permitted after completion.
func (s *LifecycleService) GiveFeedback(ctx context.Context, transactionID uuid.UUID, req FeedbackInput) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	feedback, err := fulfillment.NewFeedback(req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := tx.GiveFeedback(feedback); err != nil {
		return nil, err
	}
	if err := s.txRepo.SaveWithLock(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("feedback recorded",
		zap.String("transaction_id", tx.ID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// GetByID retrieves a transaction by ID
func (s *LifecycleService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// ListByDonor retrieves the donor's transactions, newest first
func (s *LifecycleService) ListByDonor(ctx context.Context, donorID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, error) {
	txs, err := s.txRepo.FindByDonor(ctx, donorID, toSharedFilter(filter))
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(txs), nil
}

// ListByOrganization retrieves the organization's transactions, newest first
func (s *LifecycleService) ListByOrganization(ctx context.Context, organizationID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, error) {
	txs, err := s.txRepo.FindByOrganization(ctx, organizationID, toSharedFilter(filter))
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(txs), nil
}

func toSharedFilter(filter TransactionListFilter) shared.Filter {
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
	return f
}

func toTransactionResponses(txs []fulfillment.DonationTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}
