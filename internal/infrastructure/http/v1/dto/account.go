package dto

import (
	"github.com/shopspring/decimal"

	"stratum/internal/core/apperror"
	"stratum/internal/core/id"
	"stratum/internal/domain/account"
)

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	UserID    string `json:"userId" binding:"required"`
	CompanyID string `json:"companyId" binding:"required"`
	Number    string `json:"number" binding:"required"`
	Currency  string `json:"currency" binding:"required,len=3"`
}

// ToEntity converts the request to a domain entity.
func (r CreateAccountRequest) ToEntity() (*account.Account, error) {
	userID, err := id.Parse(r.UserID)
	if err != nil {
		return nil, apperror.NewValidation("invalid userId format")
	}
	companyID, err := id.Parse(r.CompanyID)
	if err != nil {
		return nil, apperror.NewValidation("invalid companyId format")
	}
	return account.New(userID, companyID, r.Number, r.Currency), nil
}

// UpdateAccountRequest is the payload for updating an account.
type UpdateAccountRequest struct {
	Number  *string          `json:"number"`
	Balance *decimal.Decimal `json:"balance"`
}

// ApplyTo applies non-nil fields onto an existing entity.
func (r UpdateAccountRequest) ApplyTo(a *account.Account) {
	if r.Number != nil {
		a.SetNumber(*r.Number)
	}
	if r.Balance != nil {
		a.SetBalance(*r.Balance)
	}
}

// AccountResponse is the API shape of an account.
type AccountResponse struct {
	BaseResponse
	UserID      string          `json:"userId"`
	CompanyID   string          `json:"companyId"`
	Number      string          `json:"number"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	DisplayName string          `json:"displayName"`
}

// FromAccount maps a domain entity to its response.
func FromAccount(a *account.Account) AccountResponse {
	return AccountResponse{
		BaseResponse: FromIntegrated(&a.IntegratedEntity),
		UserID:       a.UserID.String(),
		CompanyID:    a.CompanyID.String(),
		Number:       a.Number,
		Currency:     a.Currency,
		Balance:      a.Balance,
		DisplayName:  a.DisplayName(),
	}
}
