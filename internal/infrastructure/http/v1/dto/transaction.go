package dto

import (
	"github.com/shopspring/decimal"

	"stratum/internal/core/apperror"
	"stratum/internal/core/id"
	"stratum/internal/domain/transaction"
)

// CreateTransactionRequest is the payload for creating a transaction.
type CreateTransactionRequest struct {
	AccountID string          `json:"accountId" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
}

// ToEntity converts the request to a domain entity.
func (r CreateTransactionRequest) ToEntity() (*transaction.Transaction, error) {
	accountID, err := id.Parse(r.AccountID)
	if err != nil {
		return nil, apperror.NewValidation("invalid accountId format")
	}
	return transaction.New(accountID, r.Amount, r.Reference), nil
}

// UpdateTransactionRequest is the payload for updating a transaction.
type UpdateTransactionRequest struct {
	Reference *string `json:"reference"`
}

// ApplyTo applies non-nil fields onto an existing entity.
func (r UpdateTransactionRequest) ApplyTo(t *transaction.Transaction) {
	if r.Reference != nil {
		t.SetReference(*r.Reference)
	}
}

// TransactionResponse is the API shape of a transaction.
type TransactionResponse struct {
	BaseResponse
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// FromTransaction maps a domain entity to its response.
func FromTransaction(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		BaseResponse: FromIntegrated(&t.IntegratedEntity),
		AccountID:    t.AccountID.String(),
		Amount:       t.Amount,
		Reference:    t.Reference,
	}
}
