package services

// ServicesContainer holds all service facades needed by the transport layers.
type ServicesContainer struct {
	OrgSvc        OrganizationSvcFacade
	ChartSvc      ChartSvcFacade
	RuleSvc       RuleCatalogSvcFacade
	ClassifierSvc ClassifierSvcFacade
	TxnSvc        TransactionSvcFacade
	JournalSvc    JournalSvcFacade
	LedgerSvc     LedgerSvcFacade
	ReportingSvc  ReportingSvcFacade
	PeriodSvc     PeriodSvcFacade
}
