package entity_repo

import (
	"stratum/internal/domain/account"
	"stratum/internal/domain/appuser"
	"stratum/internal/domain/company"
	"stratum/internal/domain/transaction"
	"stratum/internal/infrastructure/storage/postgres"
)

// CompanyRepo persists Company rows.
type CompanyRepo struct {
	*BaseEntityRepo[*company.Company]
}

// NewCompanyRepo creates the company repository.
func NewCompanyRepo(txm *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{
		BaseEntityRepo: NewBaseEntityRepo(txm, "company", "companies",
			func() *company.Company { return &company.Company{} }),
	}
}

// UserRepo persists User rows.
type UserRepo struct {
	*BaseEntityRepo[*appuser.User]
}

// NewUserRepo creates the user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseEntityRepo: NewBaseEntityRepo(txm, "user", "app_users",
			func() *appuser.User { return &appuser.User{} }),
	}
}

// AccountRepo persists Account rows.
type AccountRepo struct {
	*BaseEntityRepo[*account.Account]
}

// NewAccountRepo creates the account repository.
func NewAccountRepo(txm *postgres.TxManager) *AccountRepo {
	return &AccountRepo{
		BaseEntityRepo: NewBaseEntityRepo(txm, "account", "accounts",
			func() *account.Account { return &account.Account{} }),
	}
}

// TransactionRepo persists Transaction rows.
type TransactionRepo struct {
	*BaseEntityRepo[*transaction.Transaction]
}

// NewTransactionRepo creates the transaction repository.
func NewTransactionRepo(txm *postgres.TxManager) *TransactionRepo {
	return &TransactionRepo{
		BaseEntityRepo: NewBaseEntityRepo(txm, "transaction", "transactions",
			func() *transaction.Transaction { return &transaction.Transaction{} }),
	}
}
