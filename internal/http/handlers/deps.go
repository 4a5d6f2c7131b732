package handlers

import (
	"storedash/internal/apiclient"
	"storedash/internal/config"
	"storedash/internal/querycache"
	"storedash/internal/repos"
	"storedash/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ShopName string

	Sessions *services.SessionService

	AuthHandler        *AuthHandler
	DashboardHandler   *DashboardHandler
	ProductHandler     *ProductHandler
	CategoryHandler    *CategoryHandler
	OrderHandler       *OrderHandler
	CustomerHandler    *CustomerHandler
	UserHandler        *UserHandler
	InventoryHandler   *InventoryHandler
	TransactionHandler *TransactionHandler
}

// NewDeps wires every screen to one process-wide query cache so an
// invalidation on one page is seen by all of them.
func NewDeps(db *sqlx.DB, cfg config.Config, cache *querycache.Cache) *Deps {
	api := apiclient.New(cfg.APIURL, apiclient.WithTimeout(cfg.APITimeout))
	ordersAPI := apiclient.New(cfg.OrdersAPIURL, apiclient.WithTimeout(cfg.APITimeout))

	sessions := services.NewSessionService(repos.NewSessionRepo(db), api)
	catalogSvc := services.NewCatalogService(api, cache)
	orderSvc := services.NewOrderService(ordersAPI, cache)
	invSvc := services.NewInventoryService(catalogSvc, repos.NewInventoryRepo(db))
	userSvc := services.NewUserService(repos.NewUserRepo(db), cache)
	custSvc := services.NewCustomerService(repos.NewCustomerRepo(db), cache)
	txnSvc := services.NewTransactionService(repos.NewTransactionRepo(db), cache)
	analytics := services.NewAnalyticsService(catalogSvc, orderSvc, cfg.ShopName)

	return &Deps{
		ShopName:           cfg.ShopName,
		Sessions:           sessions,
		AuthHandler:        &AuthHandler{Sessions: sessions},
		DashboardHandler:   &DashboardHandler{Analytics: analytics},
		ProductHandler:     &ProductHandler{Catalog: catalogSvc},
		CategoryHandler:    &CategoryHandler{Catalog: catalogSvc},
		OrderHandler:       &OrderHandler{Orders: orderSvc},
		CustomerHandler:    &CustomerHandler{Customers: custSvc},
		UserHandler:        &UserHandler{Users: userSvc},
		InventoryHandler:   &InventoryHandler{Inv: invSvc},
		TransactionHandler: &TransactionHandler{Transactions: txnSvc},
	}
}
