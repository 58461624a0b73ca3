package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql-backed repositories. The OTP store is
// injected separately because it is backed by Redis, not Postgres.
func NewRepositoryProvider(dbPool *pgxpool.Pool, otpStore portsrepo.OTPStore) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	groupRepo := newPgxGroupRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:    userRepo,
		GroupRepo:   groupRepo,
		ExpenseRepo: expenseRepo,
		OTPStore:    otpStore,
	}
}
