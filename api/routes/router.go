package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marioskal/eshop-backend/api/controllers"
	"github.com/marioskal/eshop-backend/api/middleware"
	adminsvc "github.com/marioskal/eshop-backend/internal/admins"
	authsvc "github.com/marioskal/eshop-backend/internal/auth"
	catalogsvc "github.com/marioskal/eshop-backend/internal/catalog"
	customersvc "github.com/marioskal/eshop-backend/internal/customers"
	ordersvc "github.com/marioskal/eshop-backend/internal/orders"
	productsvc "github.com/marioskal/eshop-backend/internal/products"
	usersvc "github.com/marioskal/eshop-backend/internal/users"
	"github.com/marioskal/eshop-backend/pkg/auth/session"
	"github.com/marioskal/eshop-backend/pkg/config"
	"github.com/marioskal/eshop-backend/pkg/db"
	"github.com/marioskal/eshop-backend/pkg/enums"
	"github.com/marioskal/eshop-backend/pkg/logger"
	"github.com/marioskal/eshop-backend/pkg/metrics"
	"github.com/marioskal/eshop-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

type Services struct {
	Auth      authsvc.Service
	Users     usersvc.Service
	Admins    adminsvc.Service
	Customers customersvc.Service
	Catalog   *catalogsvc.Service
	Products  productsvc.Service
	Orders    ordersvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	sessions sessionManager,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	// Catalog reads and product browsing are open to anonymous visitors.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/brands", controllers.BrandList(svcs.Catalog, logg))
		r.Get("/categories", controllers.CategoryList(svcs.Catalog, logg))
		r.Get("/regions", controllers.RegionList(svcs.Catalog, logg))
	})
	r.Group(func(r chi.Router) {
		r.Get("/api/v1/products", controllers.ProductList(svcs.Products, logg))
		r.Get("/api/v1/products/all", controllers.ProductListAll(svcs.Products, logg))
		r.Get("/api/v1/products/sku/{sku}", controllers.ProductBySKU(svcs.Products, logg))
		r.Get("/api/v1/products/{productId}", controllers.ProductDetail(svcs.Products, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.RoleCustomer), logg))

			r.Route("/v1/orders", func(r chi.Router) {
				r.Post("/", controllers.OrderCreate(svcs.Orders, svcs.Customers, logg))
				r.Get("/", controllers.OrderList(svcs.Orders, svcs.Customers, logg))
				r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, svcs.Customers, logg))
			})

			r.Get("/v1/customers/me", controllers.CustomerProfile(svcs.Customers, logg))
			r.Route("/v1/customers/{customerUuid}", func(r chi.Router) {
				r.Route("/info", func(r chi.Router) {
					r.Post("/", controllers.CustomerInfoCreate(svcs.Customers, logg))
					r.Get("/", controllers.CustomerInfoDetail(svcs.Customers, logg))
					r.Put("/", controllers.CustomerInfoUpdate(svcs.Customers, logg))
					r.Delete("/", controllers.CustomerInfoDelete(svcs.Customers, logg))
				})
				r.Route("/payment-info", func(r chi.Router) {
					r.Post("/", controllers.PaymentInfoCreate(svcs.Customers, logg))
					r.Get("/", controllers.PaymentInfoDetail(svcs.Customers, logg))
					r.Put("/", controllers.PaymentInfoUpdate(svcs.Customers, logg))
					r.Delete("/", controllers.PaymentInfoDelete(svcs.Customers, logg))
				})
			})
		})

		r.Route("/admin/v1", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, string(enums.RoleAdmin), string(enums.RoleSuperAdmin)))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.UserList(svcs.Users, logg))
				r.Post("/", controllers.UserCreate(svcs.Users, logg))
				r.Get("/{userUuid}", controllers.UserDetail(svcs.Users, logg))
				r.Put("/{userUuid}", controllers.UserUpdate(svcs.Users, logg))
				r.Delete("/{userUuid}", controllers.UserDelete(svcs.Users, logg))
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", controllers.CustomerList(svcs.Customers, logg))
				r.Post("/", controllers.CustomerCreate(svcs.Customers, logg))
				r.Get("/{customerUuid}", controllers.CustomerDetail(svcs.Customers, logg))
				r.Put("/{customerUuid}", controllers.CustomerUpdate(svcs.Customers, logg))
				r.Delete("/{customerUuid}", controllers.CustomerDelete(svcs.Customers, logg))
			})

			r.Route("/admins", func(r chi.Router) {
				r.Post("/", controllers.AdminCreate(svcs.Admins, logg))
				r.Get("/me", controllers.AdminProfile(svcs.Admins, logg))
				r.Put("/{adminUuid}", controllers.AdminUpdate(svcs.Admins, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.ProductCreate(svcs.Products, logg))
				r.Put("/{productUuid}", controllers.ProductUpdate(svcs.Products, logg))
				r.Delete("/{productUuid}", controllers.ProductDelete(svcs.Products, logg))
				r.Post("/{productUuid}/photo", controllers.ProductPhotoUpload(svcs.Products, logg))
			})

			r.Put("/orders/{orderUuid}/status", controllers.OrderStatusUpdate(svcs.Orders, logg))
		})
	})

	return r
}
