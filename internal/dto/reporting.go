package dto

import (
	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one account row of the trial balance.
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	CategoryID  string          `json:"categoryID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse wraps the trial balance report. Balanced is always
// true on a successful response; an imbalance fails the request instead.
type TrialBalanceResponse struct {
	PeriodID     string                    `json:"periodID"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
	Balanced     bool                      `json:"balanced"`
}

// ToTrialBalanceResponse converts a domain.TrialBalanceReport to its DTO.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			CategoryID:  row.CategoryID,
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	return TrialBalanceResponse{
		PeriodID:     r.PeriodID,
		Rows:         rows,
		TotalDebits:  r.TotalDebits,
		TotalCredits: r.TotalCredits,
		Balanced:     r.TotalDebits.Equal(r.TotalCredits),
	}
}
