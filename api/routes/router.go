package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Trang-1707/shoppi-backend/api/controllers"
	"github.com/Trang-1707/shoppi-backend/api/middleware"
	checkoutsvc "github.com/Trang-1707/shoppi-backend/internal/checkout"
	"github.com/Trang-1707/shoppi-backend/internal/inventory"
	"github.com/Trang-1707/shoppi-backend/internal/orders"
	"github.com/Trang-1707/shoppi-backend/internal/vouchers"
	"github.com/Trang-1707/shoppi-backend/pkg/config"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	pkgredis "github.com/Trang-1707/shoppi-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readiness map[string]controllers.Pinger,
	idempotencyStore pkgredis.IdempotencyStore,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
	voucherService vouchers.Service,
	inventoryService inventory.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Post("/orders", controllers.PlaceOrder(checkoutService, logg))
		r.Get("/orders", controllers.ListOrders(ordersService, logg))
		r.Get("/orders/{orderId}", controllers.OrderDetail(ordersService, logg))

		r.Put("/order-items/{itemId}/status", controllers.UpdateOrderItemStatus(ordersService, logg))

		r.Get("/vouchers/{code}", controllers.VoucherLookup(voucherService, logg))

		r.Route("/seller", func(r chi.Router) {
			r.Route("/vouchers", func(r chi.Router) {
				r.Post("/", controllers.CreateSellerVoucher(voucherService, logg))
				r.Get("/", controllers.ListSellerVouchers(voucherService, logg))
				r.Get("/{voucherId}", controllers.GetSellerVoucher(voucherService, logg))
				r.Put("/{voucherId}", controllers.UpdateSellerVoucher(voucherService, logg))
				r.Delete("/{voucherId}", controllers.DeleteSellerVoucher(voucherService, logg))
			})
			r.Put("/inventory/{productId}", controllers.SetSellerInventory(inventoryService, logg))
		})
	})

	return r
}
