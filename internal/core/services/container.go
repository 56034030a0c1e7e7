package services

import (
	"github.com/autobooks/autobooks_app/internal/chart"
	portsrepo "github.com/autobooks/autobooks_app/internal/core/ports/repositories"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
)

// NewServicesContainer wires every service against the repository provider
// and the shared chart definition.
func NewServicesContainer(def *chart.Definition, repos portsrepo.RepositoryProvider) (*portssvc.ServicesContainer, error) {
	chartSvc, err := NewChartService(def, repos.AccountRepo)
	if err != nil {
		return nil, err
	}
	orgSvc := NewOrganizationService(repos.OrgRepo, chartSvc)
	ruleSvc := NewRuleCatalogService(def, repos.RuleRepo)
	classifierSvc := NewClassifierService(ruleSvc, repos.AccountRepo, repos.TxnRepo)
	txnSvc := NewTransactionService(repos.TxnRepo, repos.PeriodRepo)
	journalSvc := NewJournalService(def, repos.JournalRepo, repos.TxnRepo)
	ledgerSvc := NewLedgerService(def, repos.JournalRepo, repos.TxnRepo)
	reportingSvc := NewReportingService(def, ledgerSvc)
	periodSvc := NewPeriodService(def, repos.PeriodRepo, repos.TxnRepo, repos.JournalRepo, classifierSvc, journalSvc, ledgerSvc, reportingSvc, repos.TxManager)

	return &portssvc.ServicesContainer{
		OrgSvc:        orgSvc,
		ChartSvc:      chartSvc,
		RuleSvc:       ruleSvc,
		ClassifierSvc: classifierSvc,
		TxnSvc:        txnSvc,
		JournalSvc:    journalSvc,
		LedgerSvc:     ledgerSvc,
		ReportingSvc:  reportingSvc,
		PeriodSvc:     periodSvc,
	}, nil
}
