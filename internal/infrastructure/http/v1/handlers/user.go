package handlers

import (
	"stratum/internal/domain/appuser"
	"stratum/internal/domain/lifecycle"
	"stratum/internal/infrastructure/http/v1/dto"
	"stratum/internal/infrastructure/storage/postgres/entity_repo"
)

// UserHTTPHandler is the configured generic handler for users.
type UserHTTPHandler = EntityHandler[
	*appuser.User,
	dto.CreateUserRequest,
	dto.UpdateUserRequest,
]

// NewUserHandler creates the user handler.
func NewUserHandler(
	base *BaseHandler,
	service *lifecycle.Service[*appuser.User],
	repo *entity_repo.UserRepo,
) *UserHTTPHandler {
	config := EntityHandlerConfig[
		*appuser.User,
		dto.CreateUserRequest,
		dto.UpdateUserRequest,
	]{
		Service: service,
		Lister:  repo,

		MapCreateDTO: func(req dto.CreateUserRequest) (*appuser.User, error) {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateUserRequest, existing *appuser.User) {
			req.ApplyTo(existing)
		},
		MapToDTO: func(e *appuser.User) any {
			return dto.FromUser(e)
		},
	}

	return NewEntityHandler(base, config)
}
