package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weiluntsai/backoffice-backend/api/controllers"
	"github.com/weiluntsai/backoffice-backend/api/middleware"
	"github.com/weiluntsai/backoffice-backend/internal/contacts"
	"github.com/weiluntsai/backoffice-backend/internal/customers"
	"github.com/weiluntsai/backoffice-backend/internal/dashboard"
	"github.com/weiluntsai/backoffice-backend/internal/orders"
	"github.com/weiluntsai/backoffice-backend/internal/products"
	"github.com/weiluntsai/backoffice-backend/pkg/config"
	"github.com/weiluntsai/backoffice-backend/pkg/db"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
	"github.com/weiluntsai/backoffice-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	productService products.Service,
	orderService orders.Service,
	customerService customers.Service,
	contactService contacts.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Get("/", controllers.Root())
	r.Get("/health", controllers.Health(cfg, dbP))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireTenant(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/{id}", controllers.GetProduct(productService, logg))
			r.Put("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(orderService, logg))
			r.Post("/", controllers.CreateOrder(orderService, logg))
			// Registered before /{id} so chi does not treat "export" as an id.
			r.Get("/export/csv", controllers.ExportOrdersCSV(orderService, logg))
			r.Get("/{id}", controllers.GetOrder(orderService, logg))
			r.Put("/{id}", controllers.UpdateOrder(orderService, logg))
			r.Delete("/{id}", controllers.DeleteOrder(orderService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(customerService, logg))
			r.Post("/", controllers.CreateCustomer(customerService, logg))
			r.Get("/{id}", controllers.GetCustomer(customerService, logg))
			r.Put("/{id}", controllers.UpdateCustomer(customerService, logg))
			r.Delete("/{id}", controllers.DeleteCustomer(customerService, logg))
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", controllers.ListContacts(contactService, logg))
			r.Post("/", controllers.CreateContact(contactService, logg))
			r.Get("/{id}", controllers.GetContact(contactService, logg))
			r.Put("/{id}", controllers.UpdateContact(contactService, logg))
			r.Delete("/{id}", controllers.DeleteContact(contactService, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", controllers.DashboardOverview(dashboardService, logg))
			r.Get("/stats", controllers.DashboardStats(dashboardService, logg))
			r.Get("/expiring-products", controllers.DashboardExpiringProducts(dashboardService, logg))
			r.Get("/recent-orders", controllers.DashboardRecentOrders(dashboardService, logg))
			r.Get("/low-stock", controllers.DashboardLowStock(dashboardService, logg))
		})
	})

	return r
}
