package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"

	"github.com/surajit50/binshiragp-sub000/config"
	"github.com/surajit50/binshiragp-sub000/models"
)

// ExportNitRegister downloads the NIT register for one year as an
// Excel workbook, one row per work with its tender state and award.
func ExportNitRegister(w http.ResponseWriter, r *http.Request) {
	year := r.URL.Query().Get("year")
	if year == "" {
		year = fmt.Sprintf("%d", time.Now().Year())
	}

	var nits []models.NitDetails
	err := config.DB.
		Preload("Works.BidAgencies.Agency").
		Preload("Works.AwardOfContract.WorkOrderDetails").
		Where("date_part('year', memo_date) = ?", year).
		Order("memo_number ASC").
		Find(&nits).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not load NIT register")
		return
	}

	f, err := createNitRegisterFile(year, nits)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not generate Excel file")
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not write Excel file")
		return
	}

	filename := fmt.Sprintf("nit_register_%s_%s.xlsx", year, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

var nitRegisterHeaders = []string{
	"NIT Memo No.", "Memo Date", "Work Sl.", "Activity Description",
	"Estimate (Rs)", "Tender Status", "Bidders", "Awarded Agency", "AOC Memo No.",
}

func createNitRegisterFile(year string, nits []models.NitDetails) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "NIT Register"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("NIT Register %s", year))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	for colIdx, header := range nitRegisterHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		f.SetColWidth(sheetName, registerColumnLetter(colIdx+1), registerColumnLetter(colIdx+1), 20)
	}

	row := 5
	for _, nit := range nits {
		for _, work := range nit.Works {
			awardedAgency := ""
			aocMemo := ""
			if work.AwardOfContract != nil {
				aocMemo = fmt.Sprintf("%d", work.AwardOfContract.MemoNumber)
				if wo := work.AwardOfContract.WorkOrderDetails; wo != nil {
					for _, bid := range work.BidAgencies {
						if bid.ID == wo.BidAgencyID && bid.Agency != nil {
							awardedAgency = bid.Agency.Name
							break
						}
					}
				}
			}

			values := []interface{}{
				nit.MemoNumber,
				nit.MemoDate.Format("2006-01-02"),
				work.WorkSlNo,
				work.ActivityDescription,
				work.FinalEstimateAmount,
				string(work.TenderStatus),
				len(work.BidAgencies),
				awardedAgency,
				aocMemo,
			}
			for colIdx, value := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
				f.SetCellValue(sheetName, cell, value)
			}
			row++
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// ExportWorkPayments downloads the payment ledger of one work as an
// Excel workbook with a deduction breakdown and totals row.
func ExportWorkPayments(w http.ResponseWriter, r *http.Request) {
	workID := mux.Vars(r)["workId"]

	var work models.WorksDetail
	err := config.DB.
		Preload("Nit").
		Preload("Payments").
		First(&work, "id = ?", workID).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "work not found")
		return
	}

	f, err := createWorkPaymentsFile(&work)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not generate Excel file")
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not write Excel file")
		return
	}

	filename := fmt.Sprintf("work_%d_payments_%s.xlsx", work.WorkSlNo, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

var paymentLedgerHeaders = []string{
	"Bill Type", "Payment Date", "Gross (Rs)", "Income Tax", "Labour Cess",
	"TDS CGST", "TDS SGST", "Security Deposit", "Net Paid (Rs)", "MB Ref", "eGram Voucher",
}

func createWorkPaymentsFile(work *models.WorksDetail) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Payments"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	title := fmt.Sprintf("Payment Ledger — Work Sl. %d", work.WorkSlNo)
	if work.Nit != nil {
		title = fmt.Sprintf("Payment Ledger — NIT %d, Work Sl. %d", work.Nit.MemoNumber, work.WorkSlNo)
	}
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", work.ActivityDescription)
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Estimate: Rs %d", work.FinalEstimateAmount))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
	})
	for colIdx, header := range paymentLedgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 5)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		f.SetColWidth(sheetName, registerColumnLetter(colIdx+1), registerColumnLetter(colIdx+1), 16)
	}

	var totalGross, totalNet int64
	row := 6
	for _, p := range work.Payments {
		values := []interface{}{
			p.BillType,
			p.BillPaymentDate.Format("2006-01-02"),
			p.GrossBillAmount,
			p.IncomeTax,
			p.LabourWelfareCess,
			p.TdsCgst,
			p.TdsSgst,
			p.SecurityDeposit,
			p.NetAmount,
			p.MbRefNo,
			p.EGramVoucherNo,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
		totalGross += p.GrossBillAmount
		totalNet += p.NetAmount
		row++
	}

	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E7E6E6"},
			Pattern: 1,
		},
	})
	row++
	for colIdx, value := range []interface{}{
		"Total", "", totalGross, "", "", "", "", "", totalNet,
		fmt.Sprintf("Pending: Rs %d", work.FinalEstimateAmount-totalGross),
	} {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
		f.SetCellValue(sheetName, cell, value)
		f.SetCellStyle(sheetName, cell, cell, totalStyle)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func registerColumnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
