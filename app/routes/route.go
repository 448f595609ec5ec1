package routes

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"

	"github.com/hatim/makmanager/app/configs"
	"github.com/hatim/makmanager/app/handlers"
	adminhandlers "github.com/hatim/makmanager/app/handlers/admin"
	"github.com/hatim/makmanager/app/middlewares"
	"github.com/hatim/makmanager/app/repositories"
	"github.com/hatim/makmanager/app/services"
	"github.com/hatim/makmanager/app/utils/sessions"
)

const ledgerFeedInterval = 30 * time.Second

// NewRouter wires repositories, services and handlers. ctx bounds the ledger
// feed poller; cancelling it stops the background refresh.
func NewRouter(ctx context.Context, db *gorm.DB, sessionKeys *configs.SessionKeys) http.Handler {
	store := repositories.NewStore(db)
	rnd := render.New()
	v := validator.New()
	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	carts := services.NewCartStore()
	catalogSvc := services.NewCatalogService(store)
	orderSvc := services.NewOrderService(store)
	ledgerSvc := services.NewLedgerService(store)
	analyticsSvc := services.NewAnalyticsService(store)
	paymentSvc := services.NewPaymentService(configs.LoadENV.UPIPayeeVPA, configs.LoadENV.UPIPayeeName)

	ledgerFeed := services.NewLedgerFeed()
	go ledgerSvc.RunFeed(ctx, ledgerFeed, ledgerFeedInterval)

	authHandler := handlers.NewAuthHandler(rnd, store.Users(), sessionStore, v)
	catalogHandler := handlers.NewCatalogHandler(rnd, catalogSvc)
	cartHandler := handlers.NewCartHandler(rnd, v, carts, catalogSvc, configs.LoadENV.BalanceTolerance)
	orderHandler := handlers.NewOrderHandler(rnd, orderSvc, carts)
	adminHandler := adminhandlers.NewAdminHandler(rnd, v, catalogSvc, orderSvc, ledgerSvc, analyticsSvc, paymentSvc, ledgerFeed)

	router := mux.NewRouter()
	router.Use(middlewares.Authenticate(sessionStore, store.Users()))

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", authHandler.RegisterPost).Methods("POST")
	api.HandleFunc("/login", authHandler.LoginPost).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(middlewares.RequireAuth(rnd))
	authed.HandleFunc("/logout", authHandler.LogoutPost).Methods("POST")
	authed.HandleFunc("/me", authHandler.Me).Methods("GET")
	authed.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PUT")
	authed.HandleFunc("/csrf", csrfTokenHandler(rnd)).Methods("GET")

	authed.HandleFunc("/products", catalogHandler.ListProducts).Methods("GET")

	authed.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	authed.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	authed.HandleFunc("/cart/items", cartHandler.UpdateItem).Methods("PUT")
	authed.HandleFunc("/cart/items", cartHandler.RemoveItem).Methods("DELETE")
	authed.HandleFunc("/cart", cartHandler.ClearCart).Methods("DELETE")

	authed.HandleFunc("/orders", orderHandler.MyOrders).Methods("GET")

	placing := authed.NewRoute().Subrouter()
	placing.Use(middlewares.RequireApprovedDealer(rnd))
	placing.HandleFunc("/orders", orderHandler.PlaceOrder).Methods("POST")

	adm := api.PathPrefix("/admin").Subrouter()
	adm.Use(middlewares.RequireAdmin(rnd))
	adm.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	adm.HandleFunc("/products/{id}", adminHandler.UpdateProduct).Methods("PUT")
	adm.HandleFunc("/products/{id}", adminHandler.DeleteProduct).Methods("DELETE")
	adm.HandleFunc("/products/import", adminHandler.ImportPrices).Methods("POST")

	adm.HandleFunc("/orders", adminHandler.ListOrders).Methods("GET")
	adm.HandleFunc("/orders/{id}", adminHandler.GetOrder).Methods("GET")
	adm.HandleFunc("/orders/{id}/approve", adminHandler.ApproveOrder).Methods("POST")
	adm.HandleFunc("/orders/{id}/reject", adminHandler.RejectOrder).Methods("POST")

	adm.HandleFunc("/users", adminHandler.Ledger).Methods("GET")
	adm.HandleFunc("/users/{id}/approve", adminHandler.ApproveDealer).Methods("POST")
	adm.HandleFunc("/users/{id}/payments", adminHandler.RecordPayment).Methods("POST")
	adm.HandleFunc("/users/{id}/paylink", adminHandler.SettlementLink).Methods("GET")

	adm.HandleFunc("/analytics/sales", adminHandler.SalesReport).Methods("GET")

	return withCSRF(router)
}

// Session auth rides on cookies, so state-changing routes carry CSRF
// protection; API clients echo the token from GET /api/csrf in the
// X-CSRF-Token header.
func withCSRF(router http.Handler) http.Handler {
	keyBase64 := configs.LoadENV.CSRFKey
	if keyBase64 == "" {
		log.Println("Warning: APP_CSRF_KEY not set, CSRF protection disabled.")
		return router
	}
	key, err := base64.URLEncoding.DecodeString(keyBase64)
	if err != nil {
		log.Printf("Warning: invalid APP_CSRF_KEY (%v), CSRF protection disabled.", err)
		return router
	}
	return csrf.Protect(key,
		csrf.Path("/"),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.Secure(false),
	)(router)
}

func csrfTokenHandler(rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusOK, map[string]string{"csrf_token": csrf.Token(r)})
	}
}
