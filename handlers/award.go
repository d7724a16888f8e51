package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
	"github.com/surajit50/binshiragp-sub000/pkg/policy"
)

type issueAwardRequest struct {
	WorkID         uuid.UUID       `json:"workId"`
	AcceptBidderID uuid.UUID       `json:"acceptbidderId"`
	MemoNumber     int             `json:"memono"`
	MemoDate       models.JSONTime `json:"memoDate"`
}

// IssueAward awards a work to the selected bidder. AOC creation,
// WorkOrderDetails creation and the work status/linkage update commit
// as one transaction; agreement numbering, EMD conversion and the
// award email are enqueued as follow-up tasks processed independently.
func IssueAward(w http.ResponseWriter, r *http.Request) {
	var req issueAwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MemoNumber <= 0 || req.WorkID == uuid.Nil || req.MemoDate.IsZero() {
		respondError(w, http.StatusBadRequest, "memo number, memo date and work are required")
		return
	}
	if req.AcceptBidderID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "no bidder selected as winner")
		return
	}

	aoc, err := issueAward(req.WorkID, req.AcceptBidderID, req.MemoNumber, req.MemoDate.Time())
	if err != nil {
		switch {
		case errors.Is(err, ErrWorkNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotFinancialEval), errors.Is(err, ErrAlreadyAwarded),
			errors.Is(err, ErrBidAgencyInvalid):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "could not issue award of contract")
		}
		return
	}

	// Kick the runner so follow-ups usually complete promptly; the
	// periodic sweep picks up anything this attempt leaves behind.
	go NewFollowUpRunner(DefaultMailer).ProcessPending()

	respondSuccessData(w, "award of contract issued", aoc)
}

func issueAward(workID, bidAgencyID uuid.UUID, memoNumber int, memoDate time.Time) (*models.AwardOfContract, error) {
	db := config.DB

	var work models.WorksDetail
	if err := db.First(&work, "id = ?", workID).Error; err != nil {
		if notFound(err) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	if work.TenderStatus != models.StatusFinancialEvaluation {
		return nil, ErrNotFinancialEval
	}
	if work.AwardOfContractID != nil {
		return nil, ErrAlreadyAwarded
	}

	var bid models.BidAgency
	if err := db.Where("id = ? AND works_detail_id = ?", bidAgencyID, workID).
		First(&bid).Error; err != nil {
		if notFound(err) {
			return nil, ErrBidAgencyInvalid
		}
		return nil, err
	}
	if bid.BiddingAmount == nil {
		return nil, ErrBidAgencyInvalid
	}

	next, err := models.Transition(work.TenderStatus, models.EventIssueAward)
	if err != nil {
		return nil, ErrNotFinancialEval
	}

	aoc := models.AwardOfContract{
		MemoNumber: memoNumber,
		MemoDate:   memoDate.UTC(),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&aoc).Error; err != nil {
			return err
		}
		wo := models.WorkOrderDetails{
			AwardOfContractID: aoc.ID,
			BidAgencyID:       bid.ID,
		}
		if err := tx.Create(&wo).Error; err != nil {
			return err
		}
		res := tx.Model(&models.WorksDetail{}).
			Where("id = ? AND award_of_contract_id IS NULL", workID).
			Updates(map[string]interface{}{
				"tender_status":        next,
				"work_status":          models.WorkStatusWorkOrder,
				"award_of_contract_id": aoc.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Another request awarded the work between our read and
			// this guarded update.
			return ErrAlreadyAwarded
		}
		return enqueueFollowUps(tx, &aoc, &work, &bid, memoDate)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyAwarded
		}
		return nil, err
	}

	log.Printf("issued AOC %s for work %s to bid %s (memo %d)", aoc.ID, workID, bid.ID, memoNumber)
	return &aoc, nil
}

func enqueueFollowUps(tx *gorm.DB, aoc *models.AwardOfContract, work *models.WorksDetail, bid *models.BidAgency, memoDate time.Time) error {
	payload, err := json.Marshal(models.AwardTaskPayload{
		WorksDetailID: work.ID,
		BidAgencyID:   bid.ID,
		MemoNumber:    aoc.MemoNumber,
		MemoYear:      memoDate.UTC().Year(),
		WorkSlNo:      work.WorkSlNo,
	})
	if err != nil {
		return err
	}
	for _, taskType := range []string{models.TaskAgreement, models.TaskEmdConversion, models.TaskAwardEmail} {
		task := models.FollowUpTask{
			AwardOfContractID: aoc.ID,
			TaskType:          taskType,
			Payload:           payload,
			Status:            models.TaskStatusPending,
			RunAfter:          time.Now(),
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
	}
	return nil
}

// rankedBid is one row of the financial comparison statement.
type rankedBid struct {
	Rank          int       `json:"rank"`
	BidAgencyID   uuid.UUID `json:"bidAgencyId"`
	AgencyName    string    `json:"agencyName"`
	BiddingAmount int64     `json:"biddingAmount"`
	BidPercent    float64   `json:"bidPercent"`
}

// rankBids orders bids ascending by amount; rank 1 is the lowest bid.
// Equal amounts keep registration order (earliest CreatedAt first).
func rankBids(bids []models.BidAgency, estimate int64) []rankedBid {
	withAmount := make([]models.BidAgency, 0, len(bids))
	for _, b := range bids {
		if b.BiddingAmount != nil {
			withAmount = append(withAmount, b)
		}
	}
	sort.SliceStable(withAmount, func(i, j int) bool {
		if *withAmount[i].BiddingAmount != *withAmount[j].BiddingAmount {
			return *withAmount[i].BiddingAmount < *withAmount[j].BiddingAmount
		}
		return withAmount[i].CreatedAt.Before(withAmount[j].CreatedAt)
	})

	out := make([]rankedBid, len(withAmount))
	for i, b := range withAmount {
		name := ""
		if b.Agency != nil {
			name = b.Agency.Name
		}
		out[i] = rankedBid{
			Rank:          i + 1,
			BidAgencyID:   b.ID,
			AgencyName:    name,
			BiddingAmount: *b.BiddingAmount,
			BidPercent:    policy.BidPercent(estimate, *b.BiddingAmount),
		}
	}
	return out
}

// GetBidComparison returns the ranked financial bids for a work.
func GetBidComparison(w http.ResponseWriter, r *http.Request) {
	workID, err := uuid.Parse(mux.Vars(r)["workId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid work id")
		return
	}

	var work models.WorksDetail
	if err := config.DB.First(&work, "id = ?", workID).Error; err != nil {
		respondError(w, http.StatusNotFound, ErrWorkNotFound.Error())
		return
	}

	var bids []models.BidAgency
	if err := config.DB.Preload("Agency").
		Where("works_detail_id = ?", workID).
		Find(&bids).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "could not load bids")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"workId":   workID,
		"estimate": work.FinalEstimateAmount,
		"bids":     rankBids(bids, work.FinalEstimateAmount),
	})
}
