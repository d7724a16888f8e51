package handlers

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
	"github.com/surajit50/binshiragp-sub000/pkg/policy"
)

// TenderEngine applies tender lifecycle transitions. Every status
// change goes through models.Transition and runs inside one database
// transaction together with its dependent record mutations, so a work
// can never be observed mid-transition.
type TenderEngine struct {
	db *gorm.DB
}

func NewTenderEngine() *TenderEngine {
	return &TenderEngine{db: config.DB}
}

// RegisterBidders creates BidAgency rows for every agency not already
// registered on the work and advances the status to
// TechnicalBidOpening. Returns the number of newly registered bidders.
// Fails with ErrAllBiddersExist (no writes) when nothing new to add.
func (e *TenderEngine) RegisterBidders(workID uuid.UUID, agencyIDs []uuid.UUID) (int, error) {
	var work models.WorksDetail
	if err := e.db.First(&work, "id = ?", workID).Error; err != nil {
		if notFound(err) {
			return 0, ErrWorkNotFound
		}
		return 0, err
	}

	next, err := models.Transition(work.TenderStatus, models.EventRegisterBidders)
	if err != nil {
		return 0, fmt.Errorf("%w: bidders can only be registered while the tender is open", ErrInvalidState)
	}

	var existing []models.BidAgency
	if err := e.db.Where("works_detail_id = ?", workID).Find(&existing).Error; err != nil {
		return 0, err
	}
	registered := make(map[uuid.UUID]bool, len(existing))
	for _, b := range existing {
		registered[b.AgencyDetailsID] = true
	}

	var fresh []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(agencyIDs))
	for _, id := range agencyIDs {
		if registered[id] || seen[id] {
			continue
		}
		seen[id] = true
		fresh = append(fresh, id)
	}
	if len(fresh) == 0 {
		return 0, ErrAllBiddersExist
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		for _, agencyID := range fresh {
			bid := models.BidAgency{
				AgencyDetailsID: agencyID,
				WorksDetailID:   workID,
			}
			if err := tx.Create(&bid).Error; err != nil {
				return err
			}
			// Every bidder owes EMD against the estimate.
			emd := models.EarnestMoneyRegister{
				BidAgencyID:   bid.ID,
				WorksDetailID: workID,
				Amount:        policy.EarnestMoney(work.FinalEstimateAmount),
				PaymentStatus: models.DepositUnpaid,
			}
			if err := tx.Create(&emd).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.WorksDetail{}).
			Where("id = ?", workID).
			Update("tender_status", next).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent registration of the same
			// agency; the constraint on (agency, work) caught it.
			return 0, ErrAllBiddersExist
		}
		return 0, err
	}

	log.Printf("registered %d bidder(s) on work %s: %s -> %s",
		len(fresh), workID, work.TenderStatus, next)
	return len(fresh), nil
}

// CloseBidderList finalizes the bidder list and moves the work to
// TechnicalEvaluation. Idempotent when already there.
func (e *TenderEngine) CloseBidderList(workID uuid.UUID) error {
	return e.apply(workID, models.EventCloseBidderList, nil)
}

// OpenFinancialBids moves the work to FinancialBidOpening. Requires
// every registered bidder to carry a technical evaluation document.
func (e *TenderEngine) OpenFinancialBids(workID uuid.UUID) error {
	return e.apply(workID, models.EventOpenFinancialBids, func(tx *gorm.DB) error {
		var unevaluated int64
		if err := tx.Model(&models.BidAgency{}).
			Where("works_detail_id = ? AND technical_evaluation_document_id IS NULL", workID).
			Count(&unevaluated).Error; err != nil {
			return err
		}
		if unevaluated > 0 {
			return ErrBiddersUnfinished
		}
		return nil
	})
}

// RecordFinancialBid stores a bidder's financial amount and sets the
// work to FinancialEvaluation. Re-entrant: subsequent calls for other
// bidders on the same work only update that bidder's amount.
func (e *TenderEngine) RecordFinancialBid(workID, agencyID uuid.UUID, amount int64) (*models.BidAgency, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("bid amount must be a positive integer")
	}

	var work models.WorksDetail
	if err := e.db.First(&work, "id = ?", workID).Error; err != nil {
		if notFound(err) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}

	next, err := models.Transition(work.TenderStatus, models.EventRecordFinancial)
	if err != nil {
		return nil, fmt.Errorf("%w: financial bids are only accepted after the financial bid opening", ErrInvalidState)
	}

	var bid models.BidAgency
	if err := e.db.Where("works_detail_id = ? AND agency_details_id = ?", workID, agencyID).
		First(&bid).Error; err != nil {
		if notFound(err) {
			return nil, ErrBidAgencyInvalid
		}
		return nil, err
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BidAgency{}).
			Where("id = ?", bid.ID).
			Update("bidding_amount", amount).Error; err != nil {
			return err
		}
		return tx.Model(&models.WorksDetail{}).
			Where("id = ?", workID).
			Update("tender_status", next).Error
	})
	if err != nil {
		return nil, err
	}

	bid.BiddingAmount = &amount
	log.Printf("recorded financial bid %d on work %s by agency %s", amount, workID, agencyID)
	return &bid, nil
}

// Cancel moves a work to the terminal Cancelled state and releases the
// registered bidders' earnest-money obligations.
func (e *TenderEngine) Cancel(workID uuid.UUID) error {
	return e.applyWith(workID, models.EventCancel, func(tx *gorm.DB, work *models.WorksDetail) error {
		if err := tx.Model(&models.EarnestMoneyRegister{}).
			Where("works_detail_id = ?", workID).
			Update("released", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.WorksDetail{}).
			Where("id = ?", workID).
			Update("work_status", models.WorkStatusCancelled).Error
	})
}

// apply runs a simple transition with an optional precondition check.
func (e *TenderEngine) apply(workID uuid.UUID, event models.TenderEvent, pre func(tx *gorm.DB) error) error {
	return e.applyWith(workID, event, func(tx *gorm.DB, _ *models.WorksDetail) error {
		if pre != nil {
			return pre(tx)
		}
		return nil
	})
}

// applyWith loads the work, validates the transition, runs extra inside
// the same transaction and persists the new status.
func (e *TenderEngine) applyWith(workID uuid.UUID, event models.TenderEvent, extra func(tx *gorm.DB, work *models.WorksDetail) error) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var work models.WorksDetail
		if err := tx.First(&work, "id = ?", workID).Error; err != nil {
			if notFound(err) {
				return ErrWorkNotFound
			}
			return err
		}

		next, err := models.Transition(work.TenderStatus, event)
		if err != nil {
			return fmt.Errorf("%w: %s is not allowed from %q", ErrInvalidState, event, work.TenderStatus)
		}

		if extra != nil {
			if err := extra(tx, &work); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.WorksDetail{}).
			Where("id = ?", workID).
			Update("tender_status", next).Error; err != nil {
			return err
		}

		log.Printf("work %s: %s -> %s (%s)", workID, work.TenderStatus, next, event)
		return nil
	})
}
