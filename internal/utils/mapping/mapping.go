// Package mapping converts between domain entities and their database models.
package mapping

import (
	"github.com/autobooks/autobooks_app/internal/core/domain"
	"github.com/autobooks/autobooks_app/internal/models"
)

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrgID:       d.OrgID,
		Name:        d.Name,
		IsActive:    d.IsActive,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrgID:       m.OrgID,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		OrgID:         d.OrgID,
		Code:          d.Code,
		Name:          d.Name,
		CategoryID:    d.CategoryID,
		IsBankAccount: d.IsBankAccount,
		IsActive:      d.IsActive,
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		OrgID:         m.OrgID,
		Code:          m.Code,
		Name:          m.Name,
		CategoryID:    m.CategoryID,
		IsBankAccount: m.IsBankAccount,
		IsActive:      m.IsActive,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

func ToModelRule(d domain.MappingRule) models.MappingRule {
	return models.MappingRule{
		RuleID:      d.RuleID,
		OrgID:       d.OrgID,
		MatchType:   string(d.MatchType),
		Pattern:     d.Pattern,
		AccountCode: d.AccountCode,
		Priority:    d.Priority,
		Sequence:    d.Sequence,
		IsActive:    d.IsActive,
		Name:        d.Name,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainRule restores a stored user rule. Source is always the user tier;
// system rules never reach the store.
func ToDomainRule(m models.MappingRule) domain.MappingRule {
	return domain.MappingRule{
		RuleID:      m.RuleID,
		OrgID:       m.OrgID,
		MatchType:   domain.MatchType(m.MatchType),
		Pattern:     m.Pattern,
		AccountCode: m.AccountCode,
		Priority:    m.Priority,
		Sequence:    m.Sequence,
		IsActive:    m.IsActive,
		Source:      domain.RuleSourceUser,
		Name:        m.Name,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	var classifiedBy *string
	if d.ClassifiedBy != "" {
		cb := d.ClassifiedBy
		classifiedBy = &cb
	}
	return models.BankTransaction{
		TxnID:        d.TxnID,
		OrgID:        d.OrgID,
		PeriodID:     d.PeriodID,
		Date:         d.Date,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		BalanceAfter: d.BalanceAfter,
		AccountCode:  d.AccountCode,
		ClassifiedBy: classifiedBy,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	classifiedBy := ""
	if m.ClassifiedBy != nil {
		classifiedBy = *m.ClassifiedBy
	}
	return domain.BankTransaction{
		TxnID:        m.TxnID,
		OrgID:        m.OrgID,
		PeriodID:     m.PeriodID,
		Date:         m.Date,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		BalanceAfter: m.BalanceAfter,
		AccountCode:  m.AccountCode,
		ClassifiedBy: classifiedBy,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, []models.JournalLine) {
	entry := models.JournalEntry{
		EntryID:     d.EntryID,
		OrgID:       d.OrgID,
		PeriodID:    d.PeriodID,
		Reference:   d.Reference,
		Date:        d.Date,
		Description: d.Description,
		AuditFields: toModelAudit(d.AuditFields),
	}
	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			LineID:       l.LineID,
			EntryID:      l.EntryID,
			AccountCode:  l.AccountCode,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			SourceTxnID:  l.SourceTxnID,
		}
	}
	return entry, lines
}

func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:     m.EntryID,
		OrgID:       m.OrgID,
		PeriodID:    m.PeriodID,
		Reference:   m.Reference,
		Date:        m.Date,
		Description: m.Description,
		AuditFields: toDomainAudit(m.AuditFields),
		Lines:       make([]domain.JournalLine, len(lines)),
	}
	for i, l := range lines {
		entry.Lines[i] = domain.JournalLine{
			LineID:       l.LineID,
			EntryID:      l.EntryID,
			AccountCode:  l.AccountCode,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			SourceTxnID:  l.SourceTxnID,
		}
	}
	return entry
}

func ToModelPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:    d.PeriodID,
		OrgID:       d.OrgID,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		AuditFields: toModelAudit(d.AuditFields),
	}
}

func ToDomainPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:    m.PeriodID,
		OrgID:       m.OrgID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.PeriodStatus(m.Status),
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

func ToModelPeriodSummary(orgID string, d domain.PeriodSummary) models.PeriodSummary {
	return models.PeriodSummary{
		PeriodID:          d.PeriodID,
		OrgID:             orgID,
		OpeningBalance:    d.OpeningBalance,
		TotalDebits:       d.TotalDebits,
		TotalCredits:      d.TotalCredits,
		ClosingBalance:    d.ClosingBalance,
		ClosingSide:       string(d.ClosingSide),
		ReconciliationGap: d.ReconciliationGap,
		ClassifiedCount:   d.ClassifiedCount,
		UnclassifiedCount: d.UnclassifiedCount,
		EntryCount:        d.EntryCount,
	}
}

func ToDomainPeriodSummary(m models.PeriodSummary) domain.PeriodSummary {
	return domain.PeriodSummary{
		PeriodID:          m.PeriodID,
		OpeningBalance:    m.OpeningBalance,
		TotalDebits:       m.TotalDebits,
		TotalCredits:      m.TotalCredits,
		ClosingBalance:    m.ClosingBalance,
		ClosingSide:       domain.BalanceSide(m.ClosingSide),
		ReconciliationGap: m.ReconciliationGap,
		ClassifiedCount:   m.ClassifiedCount,
		UnclassifiedCount: m.UnclassifiedCount,
		EntryCount:        m.EntryCount,
	}
}
