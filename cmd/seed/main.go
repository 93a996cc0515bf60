// Package main creates the database schema and seeds demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"stratum/internal/archive"
	"stratum/internal/domain"
	"stratum/internal/domain/account"
	"stratum/internal/domain/appuser"
	"stratum/internal/domain/company"
	"stratum/internal/domain/lifecycle"
	"stratum/internal/domain/transaction"
	"stratum/internal/infrastructure/storage/postgres"
	"stratum/internal/infrastructure/storage/postgres/entity_repo"
	"stratum/pkg/logger"
)

// Archive columns are identical on every table: the flag, the ordered
// provenance tags, and a capacity guard on the tag array.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
    id              UUID PRIMARY KEY,
    version         INT NOT NULL DEFAULT 1,
    attributes      JSONB NOT NULL DEFAULT '{}',
    archived        BOOLEAN NOT NULL DEFAULT FALSE,
    archive_points  VARCHAR(50)[] NOT NULL DEFAULT '{}',
    updated         TIMESTAMPTZ NOT NULL DEFAULT now(),
    created         TIMESTAMPTZ NOT NULL DEFAULT now(),
    code            VARCHAR(50) NOT NULL UNIQUE,
    name            VARCHAR(255) NOT NULL,
    CONSTRAINT companies_archive_points_capacity CHECK (cardinality(archive_points) <= 10)
);

CREATE TABLE IF NOT EXISTS app_users (
    id              UUID PRIMARY KEY,
    version         INT NOT NULL DEFAULT 1,
    attributes      JSONB NOT NULL DEFAULT '{}',
    archived        BOOLEAN NOT NULL DEFAULT FALSE,
    archive_points  VARCHAR(50)[] NOT NULL DEFAULT '{}',
    updated         TIMESTAMPTZ NOT NULL DEFAULT now(),
    created         TIMESTAMPTZ NOT NULL DEFAULT now(),
    company_id      UUID NOT NULL REFERENCES companies(id),
    email           VARCHAR(255) NOT NULL UNIQUE,
    full_name       VARCHAR(255) NOT NULL,
    CONSTRAINT app_users_archive_points_capacity CHECK (cardinality(archive_points) <= 10)
);

CREATE TABLE IF NOT EXISTS accounts (
    id              UUID PRIMARY KEY,
    version         INT NOT NULL DEFAULT 1,
    attributes      JSONB NOT NULL DEFAULT '{}',
    archived        BOOLEAN NOT NULL DEFAULT FALSE,
    archive_points  VARCHAR(50)[] NOT NULL DEFAULT '{}',
    updated         TIMESTAMPTZ NOT NULL DEFAULT now(),
    created         TIMESTAMPTZ NOT NULL DEFAULT now(),
    user_id         UUID NOT NULL REFERENCES app_users(id),
    company_id      UUID NOT NULL REFERENCES companies(id),
    number          VARCHAR(50) NOT NULL,
    currency        CHAR(3) NOT NULL,
    balance         NUMERIC(19, 4) NOT NULL DEFAULT 0,
    CONSTRAINT accounts_archive_points_capacity CHECK (cardinality(archive_points) <= 10)
);

CREATE TABLE IF NOT EXISTS transactions (
    id              UUID PRIMARY KEY,
    version         INT NOT NULL DEFAULT 1,
    attributes      JSONB NOT NULL DEFAULT '{}',
    archived        BOOLEAN NOT NULL DEFAULT FALSE,
    archive_points  VARCHAR(50)[] NOT NULL DEFAULT '{}',
    updated         TIMESTAMPTZ NOT NULL DEFAULT now(),
    created         TIMESTAMPTZ NOT NULL DEFAULT now(),
    account_id      UUID NOT NULL REFERENCES accounts(id),
    amount          NUMERIC(19, 4) NOT NULL,
    reference       VARCHAR(255) NOT NULL DEFAULT '',
    CONSTRAINT transactions_archive_points_capacity CHECK (cardinality(archive_points) <= 10)
);

CREATE TABLE IF NOT EXISTS sys_audit (
    id                  UUID PRIMARY KEY,
    entity_type         VARCHAR(100) NOT NULL,
    entity_id           UUID NOT NULL,
    action              VARCHAR(50) NOT NULL,
    payload             JSONB,
    payload_compressed  BYTEA,
    compression_algo    VARCHAR(20) NOT NULL DEFAULT 'none',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_app_users_company ON app_users(company_id);
CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts(user_id);
CREATE INDEX IF NOT EXISTS idx_accounts_company ON accounts(company_id);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id);
CREATE INDEX IF NOT EXISTS idx_sys_audit_entity ON sys_audit(entity_type, entity_id);
`

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("creating schema")
	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") != "true" {
		log.Info("schema ready (set SEED_DEMO_DATA=true to insert demo rows)")
		return
	}

	txManager := postgres.NewTxManager(pool)
	registry := domain.NewRegistry()
	executor := archive.NewExecutor(postgres.NewCascadeStore(txManager))

	companies := lifecycle.NewService(lifecycle.Config[*company.Company]{
		Repo:       entity_repo.NewCompanyRepo(txManager),
		TxM:        txManager,
		Registry:   registry,
		Executor:   executor,
		EntityName: "company",
	})
	users := lifecycle.NewService(lifecycle.Config[*appuser.User]{
		Repo:       entity_repo.NewUserRepo(txManager),
		TxM:        txManager,
		Registry:   registry,
		Executor:   executor,
		EntityName: "user",
	})
	accounts := lifecycle.NewService(lifecycle.Config[*account.Account]{
		Repo:       entity_repo.NewAccountRepo(txManager),
		TxM:        txManager,
		Registry:   registry,
		Executor:   executor,
		EntityName: "account",
	})
	transactions := lifecycle.NewService(lifecycle.Config[*transaction.Transaction]{
		Repo:       entity_repo.NewTransactionRepo(txManager),
		TxM:        txManager,
		Registry:   registry,
		Executor:   executor,
		EntityName: "transaction",
	})

	log.Info("seeding demo data")

	acme := company.New("ACME", "Acme Corporation")
	if err := companies.Save(ctx, acme, lifecycle.SaveOptions{}); err != nil {
		log.Fatalw("failed to seed company", "error", err)
	}

	alice := appuser.New(acme.ID, "alice@acme.example", "Alice Smith")
	bob := appuser.New(acme.ID, "bob@acme.example", "Bob Jones")
	for _, u := range []*appuser.User{alice, bob} {
		if err := users.Save(ctx, u, lifecycle.SaveOptions{}); err != nil {
			log.Fatalw("failed to seed user", "email", u.Email, "error", err)
		}
	}

	checking := account.New(alice.ID, acme.ID, "ACC-001", "USD")
	checking.SetBalance(decimal.NewFromInt(1000))
	savings := account.New(bob.ID, acme.ID, "ACC-002", "EUR")
	for _, a := range []*account.Account{checking, savings} {
		if err := accounts.Save(ctx, a, lifecycle.SaveOptions{}); err != nil {
			log.Fatalw("failed to seed account", "number", a.Number, "error", err)
		}
	}

	deposit := transaction.New(checking.ID, decimal.NewFromInt(250), "initial deposit")
	if err := transactions.Save(ctx, deposit, lifecycle.SaveOptions{}); err != nil {
		log.Fatalw("failed to seed transaction", "error", err)
	}

	log.Infow("demo data seeded",
		"companies", 1,
		"users", 2,
		"accounts", 2,
		"transactions", 1,
	)
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
