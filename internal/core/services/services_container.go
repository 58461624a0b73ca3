package services

import (
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	portssvc "github.com/splitmate/splitmate_backend/internal/core/ports/services"
	"github.com/splitmate/splitmate_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Initialize group service first since other services depend on its authorizer
	container.Group = NewGroupService(repos.GroupRepo)
	groupAuthorizer := container.Group.(portssvc.GroupAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.GroupRepo, groupAuthorizer)
	container.Balance = NewBalanceService(repos.ExpenseRepo, repos.GroupRepo, WithGroupAuthorizer(groupAuthorizer))

	// Auth services
	container.Token = NewTokenService(cfg, container.User)
	container.OTP = NewOTPService(cfg, repos.OTPStore, container.User)
	container.GoogleAuth = NewGoogleAuthService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.GroupSvcFacade   = (*groupService)(nil)
	_ portssvc.ExpenseSvcFacade = (*expenseService)(nil)
	_ portssvc.BalanceService   = (*balanceService)(nil)
)
