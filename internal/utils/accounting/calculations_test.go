package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/autobooks/autobooks_app/internal/utils/accounting"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClosingBalance(t *testing.T) {
	tests := []struct {
		name       string
		side       domain.BalanceSide
		opening    string
		debits     string
		credits    string
		wantAmount string
		wantSide   domain.BalanceSide
	}{
		{"debit normal accumulates debits", domain.DebitSide, "0", "1210.00", "0", "1210.00", domain.DebitSide},
		{"debit normal nets credits off", domain.DebitSide, "479507.94", "15000.00", "53210.00", "441297.94", domain.DebitSide},
		{"credit normal accumulates credits", domain.CreditSide, "0", "0", "15000.00", "15000.00", domain.CreditSide},
		{"debit normal flips on negative", domain.DebitSide, "100.00", "0", "340.00", "240.00", domain.CreditSide},
		{"credit normal flips on negative", domain.CreditSide, "0", "500.00", "200.00", "300.00", domain.DebitSide},
		{"zero stays on normal side", domain.CreditSide, "0", "0", "0", "0", domain.CreditSide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.ClosingBalance("1100", tt.side, d(tt.opening), d(tt.debits), d(tt.credits))
			require.NoError(t, err)
			assert.True(t, got.Amount.Equal(d(tt.wantAmount)), "amount %s", got.Amount)
			assert.Equal(t, tt.wantSide, got.Side)
			assert.False(t, got.Amount.IsNegative())
		})
	}
}

func TestClosingBalanceUnknownSide(t *testing.T) {
	_, err := accounting.ClosingBalance("1100", "SIDEWAYS", decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestDeriveOpeningBalance(t *testing.T) {
	debit := domain.BankTransaction{
		DebitAmount:  d("1210.00"),
		BalanceAfter: d("478297.94"),
	}
	assert.True(t, accounting.DeriveOpeningBalance(debit).Equal(d("479507.94")))

	credit := domain.BankTransaction{
		CreditAmount: d("15000.00"),
		BalanceAfter: d("493297.94"),
	}
	assert.True(t, accounting.DeriveOpeningBalance(credit).Equal(d("478297.94")))
}

func TestValidateEntryBalance(t *testing.T) {
	src := "t1"
	balanced := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{AccountCode: "8200", DebitAmount: d("5000.00"), SourceTxnID: &src},
			{AccountCode: "1100", CreditAmount: d("5000.00"), SourceTxnID: &src},
		},
	}
	assert.NoError(t, accounting.ValidateEntryBalance(balanced))

	unbalanced := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{AccountCode: "8200", DebitAmount: d("5000.00")},
			{AccountCode: "1100", CreditAmount: d("4999.99")},
		},
	}
	assert.Error(t, accounting.ValidateEntryBalance(unbalanced))

	single := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{AccountCode: "8200", DebitAmount: d("5000.00")},
		},
	}
	assert.Error(t, accounting.ValidateEntryBalance(single))

	bothSides := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{AccountCode: "8200", DebitAmount: d("10.00"), CreditAmount: d("10.00")},
			{AccountCode: "1100", CreditAmount: d("10.00")},
		},
	}
	assert.Error(t, accounting.ValidateEntryBalance(bothSides))

	negative := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{AccountCode: "8200", DebitAmount: d("-10.00")},
			{AccountCode: "1100", CreditAmount: d("-10.00")},
		},
	}
	assert.Error(t, accounting.ValidateEntryBalance(negative))
}
