// Package dependency provides dependency injection for the application.
package dependency

import (
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/billfold/backend/config"
	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/application/usecase/bill"
	"github.com/billfold/backend/internal/application/usecase/billrule"
	"github.com/billfold/backend/internal/application/usecase/category"
	"github.com/billfold/backend/internal/infra/server/router"
	"github.com/billfold/backend/internal/integration/adapters"
	"github.com/billfold/backend/internal/integration/entrypoint/controller"
	"github.com/billfold/backend/internal/integration/entrypoint/middleware"
	"github.com/billfold/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	CheckOverdueUseCase    *bill.CheckOverdueUseCase
	EnsureGeneratedUseCase *bill.EnsureGeneratedUseCase
}

// NewInjector creates a new dependency injector with all dependencies
// wired. Clock and notifier are injectable so tests can control time and
// observe change events.
func NewInjector(cfg *config.Config, db *gorm.DB, clock adapter.Clock, notifier adapter.ChangeNotifier) *Injector {
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Create repositories
	ruleRepo := persistence.NewBillRuleRepository(db)
	billRepo := persistence.NewBillRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)

	// Create the recurrence engine
	generator := bill.NewGenerator(billRepo, clock)

	// Create bill rule use cases
	createRuleUseCase := billrule.NewCreateRuleUseCase(ruleRepo, categoryRepo, generator, notifier)
	listRulesUseCase := billrule.NewListRulesUseCase(ruleRepo)
	getRuleUseCase := billrule.NewGetRuleUseCase(ruleRepo)
	updateRuleUseCase := billrule.NewUpdateRuleUseCase(ruleRepo, categoryRepo, generator, notifier)

	// Create bill use cases
	createBillUseCase := bill.NewCreateBillUseCase(billRepo, categoryRepo, notifier)
	listBillsUseCase := bill.NewListBillsUseCase(billRepo)
	getBillUseCase := bill.NewGetBillUseCase(billRepo)
	markAsPaidUseCase := bill.NewMarkAsPaidUseCase(billRepo, ruleRepo, transactionRepo, generator, notifier, clock)
	recordPaymentUseCase := bill.NewRecordPaymentUseCase(billRepo, ruleRepo, transactionRepo, generator, notifier, clock)

	// Create sweep use cases
	checkOverdueUseCase := bill.NewCheckOverdueUseCase(billRepo, ruleRepo, generator, notifier, clock)
	ensureGeneratedUseCase := bill.NewEnsureGeneratedUseCase(ruleRepo, generator, notifier)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, notifier)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	billRuleController := controller.NewBillRuleController(
		createRuleUseCase,
		listRulesUseCase,
		getRuleUseCase,
		updateRuleUseCase,
	)

	billController := controller.NewBillController(
		createBillUseCase,
		listBillsUseCase,
		getBillUseCase,
		markAsPaidUseCase,
		recordPaymentUseCase,
	)

	sweepController := controller.NewSweepController(
		checkOverdueUseCase,
		ensureGeneratedUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var sweepRateLimiter *middleware.RateLimiter
	if os.Getenv("E2E_MODE") == "true" || cfg.Server.Environment == "test" {
		sweepRateLimiter = middleware.NewRateLimiterWithConfig(1000, time.Minute)
	} else {
		sweepRateLimiter = middleware.NewRateLimiter()
	}

	appRouter := router.NewRouter(
		healthController,
		billRuleController,
		billController,
		sweepController,
		categoryController,
		sweepRateLimiter,
	)

	return &Injector{
		Config:                 cfg,
		DB:                     db,
		Router:                 appRouter,
		CheckOverdueUseCase:    checkOverdueUseCase,
		EnsureGeneratedUseCase: ensureGeneratedUseCase,
	}
}
