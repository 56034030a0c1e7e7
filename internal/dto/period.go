package dto

import (
	"time"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeriodRequest defines the data needed to open a new fiscal period.
type CreatePeriodRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID  string              `json:"periodID"`
	StartDate time.Time           `json:"startDate"`
	EndDate   time.Time           `json:"endDate"`
	Status    domain.PeriodStatus `json:"status"`
}

// ListPeriodsResponse wraps an organization's period listing.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// PeriodSummaryResponse defines the persisted aggregate totals of a period.
type PeriodSummaryResponse struct {
	PeriodID          string             `json:"periodID"`
	OpeningBalance    decimal.Decimal    `json:"openingBalance"`
	TotalDebits       decimal.Decimal    `json:"totalDebits"`
	TotalCredits      decimal.Decimal    `json:"totalCredits"`
	ClosingBalance    decimal.Decimal    `json:"closingBalance"`
	ClosingSide       domain.BalanceSide `json:"closingSide"`
	ReconciliationGap decimal.Decimal    `json:"reconciliationGap"`
	ClassifiedCount   int                `json:"classifiedCount"`
	UnclassifiedCount int                `json:"unclassifiedCount"`
	EntryCount        int                `json:"entryCount"`
}

// ToPeriodResponse converts a domain.FiscalPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
	}
}

// ToPeriodResponses converts a slice of domain periods.
func ToPeriodResponses(periods []domain.FiscalPeriod) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		res[i] = ToPeriodResponse(&p)
	}
	return res
}

// ToPeriodSummaryResponse converts a domain.PeriodSummary to its DTO.
func ToPeriodSummaryResponse(s *domain.PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		PeriodID:          s.PeriodID,
		OpeningBalance:    s.OpeningBalance,
		TotalDebits:       s.TotalDebits,
		TotalCredits:      s.TotalCredits,
		ClosingBalance:    s.ClosingBalance,
		ClosingSide:       s.ClosingSide,
		ReconciliationGap: s.ReconciliationGap,
		ClassifiedCount:   s.ClassifiedCount,
		UnclassifiedCount: s.UnclassifiedCount,
		EntryCount:        s.EntryCount,
	}
}
