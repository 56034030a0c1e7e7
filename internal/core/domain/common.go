package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Organization is the owning scope for every other entity. Accounts, rules,
// periods and everything beneath them belong to exactly one organization.
type Organization struct {
	OrgID    string `json:"orgID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
