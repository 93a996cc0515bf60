package dto

import (
	"stratum/internal/core/apperror"
	"stratum/internal/core/id"
	"stratum/internal/domain/appuser"
)

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	CompanyID string `json:"companyId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FullName  string `json:"fullName" binding:"required"`
}

// ToEntity converts the request to a domain entity.
func (r CreateUserRequest) ToEntity() (*appuser.User, error) {
	companyID, err := id.Parse(r.CompanyID)
	if err != nil {
		return nil, apperror.NewValidation("invalid companyId format")
	}
	return appuser.New(companyID, r.Email, r.FullName), nil
}

// UpdateUserRequest is the payload for updating a user.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
}

// ApplyTo applies non-nil fields onto an existing entity.
func (r UpdateUserRequest) ApplyTo(u *appuser.User) {
	if r.Email != nil {
		u.SetEmail(*r.Email)
	}
	if r.FullName != nil {
		u.SetFullName(*r.FullName)
	}
}

// UserResponse is the API shape of a user.
type UserResponse struct {
	BaseResponse
	CompanyID string `json:"companyId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
}

// FromUser maps a domain entity to its response.
func FromUser(u *appuser.User) UserResponse {
	return UserResponse{
		BaseResponse: FromIntegrated(&u.IntegratedEntity),
		CompanyID:    u.CompanyID.String(),
		Email:        u.Email,
		FullName:     u.FullName,
	}
}
