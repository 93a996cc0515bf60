package dto

import (
	"stratum/internal/domain/company"
)

// CreateCompanyRequest is the payload for creating a company.
type CreateCompanyRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ToEntity converts the request to a domain entity.
func (r CreateCompanyRequest) ToEntity() *company.Company {
	return company.New(r.Code, r.Name)
}

// UpdateCompanyRequest is the payload for updating a company.
// Nil fields are left unchanged.
type UpdateCompanyRequest struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

// ApplyTo applies non-nil fields onto an existing entity.
func (r UpdateCompanyRequest) ApplyTo(c *company.Company) {
	if r.Code != nil {
		c.SetCode(*r.Code)
	}
	if r.Name != nil {
		c.SetName(*r.Name)
	}
}

// CompanyResponse is the API shape of a company.
type CompanyResponse struct {
	BaseResponse
	Code string `json:"code"`
	Name string `json:"name"`
}

// FromCompany maps a domain entity to its response.
func FromCompany(c *company.Company) CompanyResponse {
	return CompanyResponse{
		BaseResponse: FromIntegrated(&c.IntegratedEntity),
		Code:         c.Code,
		Name:         c.Name,
	}
}
