package handlers

import (
	"stratum/internal/domain/account"
	"stratum/internal/domain/lifecycle"
	"stratum/internal/infrastructure/http/v1/dto"
	"stratum/internal/infrastructure/storage/postgres/entity_repo"
)

// AccountHTTPHandler is the configured generic handler for accounts.
type AccountHTTPHandler = EntityHandler[
	*account.Account,
	dto.CreateAccountRequest,
	dto.UpdateAccountRequest,
]

// NewAccountHandler creates the account handler.
func NewAccountHandler(
	base *BaseHandler,
	service *lifecycle.Service[*account.Account],
	repo *entity_repo.AccountRepo,
) *AccountHTTPHandler {
	config := EntityHandlerConfig[
		*account.Account,
		dto.CreateAccountRequest,
		dto.UpdateAccountRequest,
	]{
		Service: service,
		Lister:  repo,

		MapCreateDTO: func(req dto.CreateAccountRequest) (*account.Account, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateAccountRequest, existing *account.Account) {
			req.ApplyTo(existing)
		},
		MapToDTO: func(e *account.Account) any {
			return dto.FromAccount(e)
		},
	}

	return NewEntityHandler(base, config)
}
