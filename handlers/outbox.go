package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
	"github.com/surajit50/binshiragp-sub000/pkg/policy"
)

const (
	maxTaskAttempts  = 5
	taskRetryBackoff = 2 * time.Minute

	// Security deposits mature six months after the work order.
	depositMaturityMonths = 6
)

// FollowUpRunner processes the outbox of best-effort award follow-ups:
// agreement numbering, EMD-to-security-deposit conversion and the
// award email. Each task runs in its own transaction and is retried
// independently; a failed follow-up never unwinds the committed award.
type FollowUpRunner struct {
	db     *gorm.DB
	mailer Mailer
}

func NewFollowUpRunner(mailer Mailer) *FollowUpRunner {
	return &FollowUpRunner{db: config.DB, mailer: mailer}
}

// Run sweeps pending tasks on the given interval until the process
// exits.
func (fr *FollowUpRunner) Run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		fr.ProcessPending()
	}
}

// ProcessPending executes every due pending task once.
func (fr *FollowUpRunner) ProcessPending() {
	var tasks []models.FollowUpTask
	if err := fr.db.
		Where("status = ? AND run_after <= ?", models.TaskStatusPending, time.Now()).
		Order("created_at ASC").
		Limit(50).
		Find(&tasks).Error; err != nil {
		log.Printf("outbox: fetch pending tasks: %v", err)
		return
	}

	for i := range tasks {
		fr.processTask(&tasks[i])
	}
}

func (fr *FollowUpRunner) processTask(task *models.FollowUpTask) {
	var payload models.AwardTaskPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		fr.fail(task, fmt.Errorf("bad payload: %w", err))
		return
	}

	var err error
	switch task.TaskType {
	case models.TaskAgreement:
		err = fr.registerAgreement(task, &payload)
	case models.TaskEmdConversion:
		err = fr.convertEmdToDeposit(task, &payload)
	case models.TaskAwardEmail:
		err = fr.sendAwardEmail(&payload)
	default:
		err = fmt.Errorf("unknown task type %q", task.TaskType)
	}

	if err != nil {
		fr.fail(task, err)
		return
	}

	if err := fr.db.Model(task).Updates(map[string]interface{}{
		"status":   models.TaskStatusCompleted,
		"attempts": task.Attempts + 1,
	}).Error; err != nil {
		// The task re-runs next sweep; every handler is idempotent,
		// except the award email which would be sent again.
		log.Printf("outbox: could not mark %s completed for AOC %s: %v",
			task.TaskType, task.AwardOfContractID, err)
		return
	}
	log.Printf("outbox: completed %s for AOC %s", task.TaskType, task.AwardOfContractID)
}

func (fr *FollowUpRunner) fail(task *models.FollowUpTask, cause error) {
	attempts := task.Attempts + 1
	status := models.TaskStatusPending
	if attempts >= maxTaskAttempts {
		status = models.TaskStatusFailed
	}
	if err := fr.db.Model(task).Updates(map[string]interface{}{
		"status":     status,
		"attempts":   attempts,
		"last_error": cause.Error(),
		"run_after":  time.Now().Add(taskRetryBackoff),
	}).Error; err != nil {
		log.Printf("outbox: could not record failure of %s for AOC %s: %v",
			task.TaskType, task.AwardOfContractID, err)
	}
	log.Printf("outbox: %s for AOC %s attempt %d failed: %v",
		task.TaskType, task.AwardOfContractID, attempts, cause)
}

// registerAgreement derives and stores the agreement number for the
// award. Idempotent via the unique index on award_of_contract_id.
func (fr *FollowUpRunner) registerAgreement(task *models.FollowUpTask, p *models.AwardTaskPayload) error {
	cert := models.AgreementCertificate{
		AwardOfContractID: task.AwardOfContractID,
		AgreementNumber:   models.AgreementNumber(p.MemoYear, p.MemoNumber, p.WorkSlNo),
	}
	if err := fr.db.Create(&cert).Error; err != nil {
		if isUniqueViolation(err) {
			return nil // already registered on an earlier attempt
		}
		return err
	}
	return nil
}

// convertEmdToDeposit converts the winning bidder's earnest money into
// a security deposit with a maturity date.
func (fr *FollowUpRunner) convertEmdToDeposit(task *models.FollowUpTask, p *models.AwardTaskPayload) error {
	return fr.db.Transaction(func(tx *gorm.DB) error {
		var emd models.EarnestMoneyRegister
		if err := tx.Where("bid_agency_id = ?", p.BidAgencyID).First(&emd).Error; err != nil {
			if notFound(err) {
				return fmt.Errorf("no earnest money register entry for bid %s", p.BidAgencyID)
			}
			return err
		}
		if emd.Released {
			return nil // converted on an earlier attempt
		}

		amount := emd.Amount
		if amount == 0 {
			var work models.WorksDetail
			if err := tx.First(&work, "id = ?", p.WorksDetailID).Error; err != nil {
				return err
			}
			amount = policy.EarnestMoney(work.FinalEstimateAmount)
		}

		deposit := models.SecurityDeposit{
			WorksDetailID: p.WorksDetailID,
			BidAgencyID:   &p.BidAgencyID,
			Amount:        amount,
			MaturityDate:  time.Now().UTC().AddDate(0, depositMaturityMonths, 0),
			PaymentStatus: models.DepositUnpaid,
		}
		if err := tx.Create(&deposit).Error; err != nil {
			return err
		}
		return tx.Model(&emd).Update("released", true).Error
	})
}

// sendAwardEmail notifies the winning agency if it has an email on
// file. Skipping (no address, mail disabled) is success, not failure.
func (fr *FollowUpRunner) sendAwardEmail(p *models.AwardTaskPayload) error {
	var bid models.BidAgency
	if err := fr.db.Preload("Agency").Preload("Work").
		First(&bid, "id = ?", p.BidAgencyID).Error; err != nil {
		return err
	}
	if bid.Agency == nil || bid.Agency.Email == "" {
		log.Printf("outbox: no email on file for bid %s, skipping notification", p.BidAgencyID)
		return nil
	}

	workName := ""
	if bid.Work != nil {
		workName = bid.Work.ActivityDescription
	}
	return fr.mailer.SendAwardNotice(bid.Agency.Email, bid.Agency.Name, workName, p.MemoNumber)
}
