package admin

import (
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"

	"github.com/hatim/makmanager/app/services"
)

type AdminHandler struct {
	render       *render.Render
	validator    *validator.Validate
	catalogSvc   *services.CatalogService
	orderSvc     *services.OrderService
	ledgerSvc    *services.LedgerService
	analyticsSvc *services.AnalyticsService
	paymentSvc   *services.PaymentService
	ledgerFeed   *services.LedgerFeed
}

func NewAdminHandler(
	r *render.Render,
	v *validator.Validate,
	catalogSvc *services.CatalogService,
	orderSvc *services.OrderService,
	ledgerSvc *services.LedgerService,
	analyticsSvc *services.AnalyticsService,
	paymentSvc *services.PaymentService,
	ledgerFeed *services.LedgerFeed,
) *AdminHandler {
	return &AdminHandler{
		render:       r,
		validator:    v,
		catalogSvc:   catalogSvc,
		orderSvc:     orderSvc,
		ledgerSvc:    ledgerSvc,
		analyticsSvc: analyticsSvc,
		paymentSvc:   paymentSvc,
		ledgerFeed:   ledgerFeed,
	}
}
