// Package company defines the root entity type of the demo graph.
package company

import (
	"context"

	"stratum/internal/archive"
	"stratum/internal/core/apperror"
	"stratum/internal/core/entity"
)

// Company is the root of the archive hierarchy: archiving a company cascades
// to its users and accounts, and through them to transactions.
type Company struct {
	entity.IntegratedEntity

	// Code is a human-readable identifier (unique)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// New creates a new Company.
func New(code, name string) *Company {
	return &Company{
		IntegratedEntity: entity.NewIntegratedEntity(),
		Code:             code,
		Name:             name,
	}
}

// EntityName implements entity.Archivable.
func (c *Company) EntityName() string { return "company" }

// Validate implements entity.Validatable.
func (c *Company) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// SetName changes the display name, preserving prior state first.
func (c *Company) SetName(name string) {
	c.CaptureState(c)
	c.Name = name
}

// SetCode changes the code, preserving prior state first.
func (c *Company) SetCode(code string) {
	c.CaptureState(c)
	c.Code = code
}

// Definition returns the archive descriptor for Company.
func Definition() archive.EntityDef {
	def := archive.DefaultDef("company", "companies")
	def.Relations = []archive.RelationDef{
		{Name: "users", Cardinality: archive.OneToMany, Target: "user", ReverseField: "company_id"},
		{Name: "accounts", Cardinality: archive.OneToMany, Target: "account", ReverseField: "company_id"},
	}
	return def
}
