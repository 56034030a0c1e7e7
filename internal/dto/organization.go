package dto

import (
	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to register an organization.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrgID    string `json:"orgID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// ToOrganizationResponse converts a domain.Organization to its DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{OrgID: o.OrgID, Name: o.Name, IsActive: o.IsActive}
}
