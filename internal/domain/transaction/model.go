// Package transaction defines the leaf entity type of the demo graph.
package transaction

import (
	"context"

	"github.com/shopspring/decimal"

	"stratum/internal/archive"
	"stratum/internal/core/apperror"
	"stratum/internal/core/entity"
	"stratum/internal/core/id"
)

// Transaction is a leaf: it has no cascading dependents of its own.
type Transaction struct {
	entity.IntegratedEntity

	// AccountID references the owning account
	AccountID id.ID `db:"account_id" json:"accountId"`

	// Amount is the signed transaction value
	Amount decimal.Decimal `db:"amount" json:"amount"`

	// Reference is a free-form external identifier
	Reference string `db:"reference" json:"reference,omitempty"`
}

// New creates a new Transaction on the given account.
func New(accountID id.ID, amount decimal.Decimal, reference string) *Transaction {
	return &Transaction{
		IntegratedEntity: entity.NewIntegratedEntity(),
		AccountID:        accountID,
		Amount:           amount,
		Reference:        reference,
	}
}

// EntityName implements entity.Archivable.
func (t *Transaction) EntityName() string { return "transaction" }

// Validate implements entity.Validatable.
func (t *Transaction) Validate(ctx context.Context) error {
	if id.IsNil(t.AccountID) {
		return apperror.NewValidation("account is required").
			WithDetail("field", "accountId")
	}
	return nil
}

// SetReference changes the reference, preserving prior state first.
func (t *Transaction) SetReference(ref string) {
	t.CaptureState(t)
	t.Reference = ref
}

// Definition returns the archive descriptor for Transaction.
func Definition() archive.EntityDef {
	def := archive.DefaultDef("transaction", "transactions")
	def.Relations = []archive.RelationDef{
		{Name: "account", Cardinality: archive.ManyToOne, Target: "account", ReverseField: "account_id"},
	}
	return def
}
