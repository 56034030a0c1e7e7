package dto

import (
	"time"

	"github.com/autobooks/autobooks_app/internal/core/domain"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	CategoryID    string    `json:"categoryID"`
	IsBankAccount bool      `json:"isBankAccount"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// CategoryResponse defines the data returned for an account category.
type CategoryResponse struct {
	CategoryID string             `json:"categoryID"`
	Name       string             `json:"name"`
	NormalSide domain.BalanceSide `json:"normalSide"`
}

// ListAccountsResponse wraps the chart listing.
type ListAccountsResponse struct {
	Accounts   []AccountResponse  `json:"accounts"`
	Categories []CategoryResponse `json:"categories"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		CategoryID:    acc.CategoryID,
		IsBankAccount: acc.IsBankAccount,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ToCategoryResponses converts a slice of domain categories.
func ToCategoryResponses(categories []domain.AccountCategory) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, NormalSide: c.NormalSide}
	}
	return res
}
