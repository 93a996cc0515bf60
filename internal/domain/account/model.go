// Package account defines the account entity type of the demo graph.
package account

import (
	"context"

	"github.com/shopspring/decimal"

	"stratum/internal/archive"
	"stratum/internal/core/apperror"
	"stratum/internal/core/entity"
	"stratum/internal/core/history"
	"stratum/internal/core/id"
)

// Account is reachable from the root along two distinct edges - directly via
// company_id and through the user via user_id - which makes the schema a
// diamond. Each edge is cascaded once.
type Account struct {
	entity.IntegratedEntity

	// UserID references the owning user
	UserID id.ID `db:"user_id" json:"userId"`

	// CompanyID references the owning company
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// Number is the account reference (unique)
	Number string `db:"number" json:"number"`

	// Currency is an ISO 4217 code
	Currency string `db:"currency" json:"currency"`

	// Balance is the current balance
	Balance decimal.Decimal `db:"balance" json:"balance"`

	// display caches the rendered label; cleared on reload.
	display history.Derived[string] `db:"-" json:"-"`
}

// New creates a new Account for the given user and company.
func New(userID, companyID id.ID, number, currency string) *Account {
	return &Account{
		IntegratedEntity: entity.NewIntegratedEntity(),
		UserID:           userID,
		CompanyID:        companyID,
		Number:           number,
		Currency:         currency,
		Balance:          decimal.Zero,
	}
}

// EntityName implements entity.Archivable.
func (a *Account) EntityName() string { return "account" }

// Validate implements entity.Validatable.
func (a *Account) Validate(ctx context.Context) error {
	if id.IsNil(a.UserID) {
		return apperror.NewValidation("user is required").
			WithDetail("field", "userId")
	}
	if id.IsNil(a.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	if a.Number == "" {
		return apperror.NewValidation("number is required").
			WithDetail("field", "number")
	}
	if len(a.Currency) != 3 {
		return apperror.NewValidation("currency must be a 3-letter code").
			WithDetail("field", "currency")
	}
	return nil
}

// SetBalance changes the balance, preserving prior state first.
func (a *Account) SetBalance(balance decimal.Decimal) {
	a.CaptureState(a)
	a.Balance = balance
}

// SetNumber changes the account number, preserving prior state first.
func (a *Account) SetNumber(number string) {
	a.CaptureState(a)
	a.Number = number
	a.display.Clear()
}

// DisplayName returns "number (currency)", memoized until reload or a
// number change.
func (a *Account) DisplayName() string {
	return a.display.Get(func() string {
		return a.Number + " (" + a.Currency + ")"
	})
}

// AfterReload extends the base hook: reloaded field values invalidate both
// history snapshots and the derived label.
func (a *Account) AfterReload() {
	a.IntegratedEntity.AfterReload()
	a.display.Clear()
}

// Definition returns the archive descriptor for Account.
func Definition() archive.EntityDef {
	def := archive.DefaultDef("account", "accounts")
	def.Relations = []archive.RelationDef{
		{Name: "user", Cardinality: archive.ManyToOne, Target: "user", ReverseField: "user_id"},
		{Name: "company", Cardinality: archive.ManyToOne, Target: "company", ReverseField: "company_id"},
		{Name: "transactions", Cardinality: archive.OneToMany, Target: "transaction", ReverseField: "account_id"},
	}
	return def
}
