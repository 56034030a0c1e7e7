// Package accounting holds the normal-balance arithmetic shared by the ledger
// engine and its tests. Everything downstream (trial balance, period summary)
// must consume these results rather than recompute them; duplicated balance
// math is the documented root cause of historical sign-inversion defects.
package accounting

import (
	"fmt"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClosingBalance applies the normal-balance convention to an account's opening
// balance and period movement:
//
//	DEBIT normal:  closing = opening + debits - credits
//	CREDIT normal: closing = opening + credits - debits
//
// The result is reported as a non-negative amount plus an explicit side; a net
// negative value flips the reported side.
func ClosingBalance(accountCode string, normalSide domain.BalanceSide, opening, debits, credits decimal.Decimal) (domain.AccountBalance, error) {
	var signed decimal.Decimal
	switch normalSide {
	case domain.DebitSide:
		signed = opening.Add(debits).Sub(credits)
	case domain.CreditSide:
		signed = opening.Add(credits).Sub(debits)
	default:
		return domain.AccountBalance{}, fmt.Errorf("unknown normal balance side %q for account %s", normalSide, accountCode)
	}

	side := normalSide
	if signed.IsNegative() {
		signed = signed.Abs()
		if side == domain.DebitSide {
			side = domain.CreditSide
		} else {
			side = domain.DebitSide
		}
	}

	return domain.AccountBalance{AccountCode: accountCode, Amount: signed, Side: side}, nil
}

// DeriveOpeningBalance computes the opening balance implied by the first
// statement row of a period. Statements carry no explicit opening-balance
// line, so the balance before the first transaction is its balance-after
// with the transaction's own effect undone: plus its debit (money that had
// left), minus its credit (money that had entered).
func DeriveOpeningBalance(first domain.BankTransaction) decimal.Decimal {
	return first.BalanceAfter.Add(first.DebitAmount).Sub(first.CreditAmount)
}

// ValidateEntryBalance checks the double-entry invariant on a journal entry:
// line debits and line credits must sum to exactly the same amount, and every
// line must carry exactly one positive side.
func ValidateEntryBalance(entry domain.JournalEntry) error {
	if len(entry.Lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines, got %d", len(entry.Lines))
	}

	for _, line := range entry.Lines {
		debitSet := line.DebitAmount.IsPositive()
		creditSet := line.CreditAmount.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("line for account %s must carry exactly one of debit or credit", line.AccountCode)
		}
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("line for account %s carries a negative amount", line.AccountCode)
		}
	}

	debits := entry.TotalDebits()
	credits := entry.TotalCredits()
	if !debits.Equal(credits) {
		return fmt.Errorf("debits sum to %s and credits sum to %s", debits.String(), credits.String())
	}
	return nil
}
