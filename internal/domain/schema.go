// Package domain wires the entity types into the archive registry.
package domain

import (
	"stratum/internal/archive"
	"stratum/internal/domain/account"
	"stratum/internal/domain/appuser"
	"stratum/internal/domain/company"
	"stratum/internal/domain/transaction"
)

// NewRegistry builds the relationship-descriptor registry for all entity
// types. Called once at startup; the descriptors replace any runtime schema
// discovery.
func NewRegistry() *archive.Registry {
	reg := archive.NewRegistry()
	reg.Register(company.Definition())
	reg.Register(appuser.Definition())
	reg.Register(account.Definition())
	reg.Register(transaction.Definition())
	return reg
}
