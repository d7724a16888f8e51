package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/surajit50/binshiragp-sub000/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250110_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.NitDetails{}, &models.WorksDetail{},
					&models.AgencyDetails{}, &models.BidAgency{},
					&models.Credential{}, &models.ValidityOfDocument{},
					&models.TechnicalEvaluationDocument{},
					&models.AwardOfContract{}, &models.WorkOrderDetails{},
					&models.AgreementCertificate{},
					&models.PaymentDetail{},
					&models.EarnestMoneyRegister{}, &models.SecurityDeposit{},
				)
			},
		},
		{
			// NIT memo numbers restart every calendar year, so the
			// uniqueness is over (memo_number, year(memo_date)) — an
			// expression index AutoMigrate cannot produce.
			ID: "20250110_nit_memo_year_unique",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_nit_memo_year
					ON nit_details (memo_number, date_part('year', memo_date))
					WHERE deleted_at IS NULL`).Error
			},
		},
		{
			// At most one Final Bill per work.
			ID: "20250110_final_bill_singleton",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_payment_final_bill
					ON payment_details (works_detail_id)
					WHERE bill_type = 'Final Bill' AND deleted_at IS NULL`).Error
			},
		},
		{
			ID: "20250112_add_follow_up_tasks",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.FollowUpTask{})
			},
		},
		{
			ID: "20250120_add_citizen_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Notice{}, &models.WarishApplication{})
			},
		},
	})
	return m.Migrate()
}
