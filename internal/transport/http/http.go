package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/salesdesk/oms/internal/service/models/order"
	"github.com/salesdesk/oms/internal/service/models/orderitem"
	"github.com/salesdesk/oms/internal/service/models/salesreport"
	createorder "github.com/salesdesk/oms/internal/transport/http/create_order"
	customertotals "github.com/salesdesk/oms/internal/transport/http/customer_totals"
	deleteorder "github.com/salesdesk/oms/internal/transport/http/delete_order"
	getorder "github.com/salesdesk/oms/internal/transport/http/get_order"
	listorders "github.com/salesdesk/oms/internal/transport/http/list_orders"
	"github.com/salesdesk/oms/internal/transport/http/respond"
	totalsale "github.com/salesdesk/oms/internal/transport/http/total_sale"
	"github.com/salesdesk/oms/pkg/http/middleware/recovery"
	"github.com/salesdesk/oms/pkg/http/middleware/trace"
	"github.com/salesdesk/oms/pkg/logger"
)

type service interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	CreateOrder(ctx context.Context, input order.NewOrderInput) (*order.Order, []orderitem.OrderItem, error)
	DeleteOrder(ctx context.Context, id int64) error
	TotalSale(ctx context.Context) (*salesreport.Total, error)
	TotalSalePerCustomer(ctx context.Context) ([]salesreport.CustomerTotal, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Router returns the underlying router, mainly for tests.
func (h *HTTPTransport) Router() *chi.Mux {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport. chi matches
// static segments before parameters, so /orders/total-sale does not
// collide with /orders/{id}.
func (h *HTTPTransport) RegisterRoutes() {
	// The catch-all must be set before mounting subrouters so chi
	// propagates it to them.
	h.router.NotFound(respond.NotFound)
	h.router.MethodNotAllowed(respond.NotFound)

	h.router.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Get("/total-sale", h.totalSale)
		r.Get("/total-sale/customers", h.customerTotals)
		r.Get("/{id}", h.getOrder)
		r.Delete("/{id}", h.deleteOrder)
	})
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.service)
}

func (h *HTTPTransport) totalSale(w http.ResponseWriter, r *http.Request) {
	totalsale.TotalSale(w, r, h.service)
}

func (h *HTTPTransport) customerTotals(w http.ResponseWriter, r *http.Request) {
	customertotals.CustomerTotals(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(recovery.NewRecoveryMiddleware(respond.Error))
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
