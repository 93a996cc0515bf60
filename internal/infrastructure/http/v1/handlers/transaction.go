package handlers

import (
	"stratum/internal/domain/lifecycle"
	"stratum/internal/domain/transaction"
	"stratum/internal/infrastructure/http/v1/dto"
	"stratum/internal/infrastructure/storage/postgres/entity_repo"
)

// TransactionHTTPHandler is the configured generic handler for transactions.
type TransactionHTTPHandler = EntityHandler[
	*transaction.Transaction,
	dto.CreateTransactionRequest,
	dto.UpdateTransactionRequest,
]

// NewTransactionHandler creates the transaction handler.
func NewTransactionHandler(
	base *BaseHandler,
	service *lifecycle.Service[*transaction.Transaction],
	repo *entity_repo.TransactionRepo,
) *TransactionHTTPHandler {
	config := EntityHandlerConfig[
		*transaction.Transaction,
		dto.CreateTransactionRequest,
		dto.UpdateTransactionRequest,
	]{
		Service: service,
		Lister:  repo,

		MapCreateDTO: func(req dto.CreateTransactionRequest) (*transaction.Transaction, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateTransactionRequest, existing *transaction.Transaction) {
			req.ApplyTo(existing)
		},
		MapToDTO: func(e *transaction.Transaction) any {
			return dto.FromTransaction(e)
		},
	}

	return NewEntityHandler(base, config)
}
