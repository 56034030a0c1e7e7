package dto

import (
	"time"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImportTransactionItem is one well-formed statement row supplied by the
// statement-import collaborator. Exactly one of debitAmount and creditAmount
// must be positive.
type ImportTransactionItem struct {
	Date         time.Time       `json:"date" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// ImportTransactionsRequest defines a bulk import into a fiscal period.
type ImportTransactionsRequest struct {
	Transactions []ImportTransactionItem `json:"transactions" binding:"required,min=1,dive"`
}

// OverrideClassificationRequest defines a manual classification override.
type OverrideClassificationRequest struct {
	AccountCode string `json:"accountCode" binding:"required"`
}

// TransactionResponse defines the data returned for a bank transaction.
type TransactionResponse struct {
	TxnID        string          `json:"txnID"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	AccountCode  *string         `json:"accountCode"`
	ClassifiedBy string          `json:"classifiedBy,omitempty"`
}

// ListTransactionsResponse wraps a period's transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ClassifyPeriodResult reports the outcome of a batch classification run.
// Unclassified transactions are not an error; they await manual resolution.
type ClassifyPeriodResult struct {
	Classified   int `json:"classified"`
	Unclassified int `json:"unclassified"`
}

// ToTransactionResponse converts a domain.BankTransaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.BankTransaction) TransactionResponse {
	return TransactionResponse{
		TxnID:        t.TxnID,
		Date:         t.Date,
		Description:  t.Description,
		DebitAmount:  t.DebitAmount,
		CreditAmount: t.CreditAmount,
		BalanceAfter: t.BalanceAfter,
		AccountCode:  t.AccountCode,
		ClassifiedBy: t.ClassifiedBy,
	}
}

// ToTransactionResponses converts a slice of domain bank transactions.
func ToTransactionResponses(txns []domain.BankTransaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}
