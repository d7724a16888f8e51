// Package policy holds the pure money math for tender workflows:
// earnest money, security deposit, percentage deductions and net
// payable amounts. All inputs and outputs are whole rupees; every
// derived value is rounded before it is persisted or compared.
package policy

import "math"

// Fixed percentages mandated by the payment rules.
const (
	SecurityDepositPercent = 2.0
	EarnestMoneyPercent    = 2.0
)

// Round rounds to the nearest rupee, halves away from zero.
func Round(x float64) int64 {
	return int64(math.Round(x))
}

// PercentageDeduction converts a percentage entry into the absolute
// deduction on a gross amount: round(gross * pct / 100). The computed
// value, not the raw percentage, is what gets persisted.
func PercentageDeduction(gross int64, pct float64) int64 {
	return Round(float64(gross) * pct / 100)
}

// SecurityDeposit is the retention held back from a gross bill.
func SecurityDeposit(gross int64) int64 {
	return PercentageDeduction(gross, SecurityDepositPercent)
}

// EarnestMoney is the EMD owed against an estimated work amount.
func EarnestMoney(estimate int64) int64 {
	return PercentageDeduction(estimate, EarnestMoneyPercent)
}

// NetAmount is the payable remainder of a gross bill after itemized
// deductions and the security deposit.
func NetAmount(gross, incomeTax, labourCess, tdsCgst, tdsSgst, securityDeposit int64) int64 {
	return gross - incomeTax - labourCess - tdsCgst - tdsSgst - securityDeposit
}

// BidPercent expresses a bid relative to the estimate: negative means
// below estimate, positive above. Returns 0 when the estimate is 0.
func BidPercent(estimate, bid int64) float64 {
	if estimate == 0 {
		return 0
	}
	return (float64(bid) - float64(estimate)) / float64(estimate) * 100
}
