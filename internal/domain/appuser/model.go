// Package appuser defines the user entity type of the demo graph.
package appuser

import (
	"context"

	"stratum/internal/archive"
	"stratum/internal/core/apperror"
	"stratum/internal/core/entity"
	"stratum/internal/core/id"
)

// User belongs to a company and owns accounts. Only the raw company_id
// travels with the row; the related company is resolved lazily by callers
// that need it.
type User struct {
	entity.IntegratedEntity

	// CompanyID references the owning company
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// Email is the unique login identifier
	Email string `db:"email" json:"email"`

	// FullName is the display name
	FullName string `db:"full_name" json:"fullName"`
}

// New creates a new User under the given company.
func New(companyID id.ID, email, fullName string) *User {
	return &User{
		IntegratedEntity: entity.NewIntegratedEntity(),
		CompanyID:        companyID,
		Email:            email,
		FullName:         fullName,
	}
}

// EntityName implements entity.Archivable.
func (u *User) EntityName() string { return "user" }

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if id.IsNil(u.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	if u.Email == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	return nil
}

// SetEmail changes the email, preserving prior state first.
func (u *User) SetEmail(email string) {
	u.CaptureState(u)
	u.Email = email
}

// SetFullName changes the display name, preserving prior state first.
func (u *User) SetFullName(name string) {
	u.CaptureState(u)
	u.FullName = name
}

// Definition returns the archive descriptor for User.
func Definition() archive.EntityDef {
	def := archive.DefaultDef("user", "app_users")
	def.Relations = []archive.RelationDef{
		{Name: "company", Cardinality: archive.ManyToOne, Target: "company", ReverseField: "company_id"},
		{Name: "accounts", Cardinality: archive.OneToMany, Target: "account", ReverseField: "user_id"},
	}
	return def
}
