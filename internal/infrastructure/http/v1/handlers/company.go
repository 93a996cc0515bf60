package handlers

import (
	"stratum/internal/domain/company"
	"stratum/internal/domain/lifecycle"
	"stratum/internal/infrastructure/http/v1/dto"
	"stratum/internal/infrastructure/storage/postgres/entity_repo"
)

// CompanyHTTPHandler is the configured generic handler for companies.
type CompanyHTTPHandler = EntityHandler[
	*company.Company,
	dto.CreateCompanyRequest,
	dto.UpdateCompanyRequest,
]

// NewCompanyHandler creates the company handler.
func NewCompanyHandler(
	base *BaseHandler,
	service *lifecycle.Service[*company.Company],
	repo *entity_repo.CompanyRepo,
) *CompanyHTTPHandler {
	config := EntityHandlerConfig[
		*company.Company,
		dto.CreateCompanyRequest,
		dto.UpdateCompanyRequest,
	]{
		Service: service,
		Lister:  repo,

		MapCreateDTO: func(req dto.CreateCompanyRequest) (*company.Company, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateCompanyRequest, existing *company.Company) {
			req.ApplyTo(existing)
		},
		MapToDTO: func(e *company.Company) any {
			return dto.FromCompany(e)
		},
	}

	return NewEntityHandler(base, config)
}
