package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	createorder "github.com/corray333/backend-labs/cafe/internal/transport/http/create_order"
	deleteorder "github.com/corray333/backend-labs/cafe/internal/transport/http/delete_order"
	getorder "github.com/corray333/backend-labs/cafe/internal/transport/http/get_order"
	listorders "github.com/corray333/backend-labs/cafe/internal/transport/http/list_orders"
	menuitems "github.com/corray333/backend-labs/cafe/internal/transport/http/menu_items"
	updateorder "github.com/corray333/backend-labs/cafe/internal/transport/http/update_order"
	"github.com/corray333/backend-labs/cafe/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/cafe/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type orderService interface {
	CreateOrder(ctx context.Context, model order.CreateOrderModel) (*order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.OrderView, error)
	ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.OrderView, error)
	UpdateOrder(ctx context.Context, id int64, model order.UpdateOrderModel) (*order.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type HTTPTransport struct {
	server       *http.Server
	router       *chi.Mux
	orderService orderService
	menuService  menuitems.Service
}

func NewHTTPTransport(orderService orderService, menuService menuitems.Service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:       server,
		router:       router,
		orderService: orderService,
		menuService:  menuService,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests until ctx expires.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the router with all middleware applied.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/order", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
			r.Patch("/{id}", h.updateOrder)
			r.Delete("/{id}", h.deleteOrder)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", h.listMenuItems)
			r.Post("/", h.createMenuItem)
			r.Get("/{id}", h.getMenuItem)
			r.Patch("/{id}", h.updateMenuItem)
			r.Delete("/{id}", h.deleteMenuItem)
		})
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderService)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderService)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderService)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.orderService)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.orderService)
}

func (h *HTTPTransport) createMenuItem(w http.ResponseWriter, r *http.Request) {
	menuitems.CreateMenuItem(w, r, h.menuService)
}

func (h *HTTPTransport) getMenuItem(w http.ResponseWriter, r *http.Request) {
	menuitems.GetMenuItem(w, r, h.menuService)
}

func (h *HTTPTransport) listMenuItems(w http.ResponseWriter, r *http.Request) {
	menuitems.ListMenuItems(w, r, h.menuService)
}

func (h *HTTPTransport) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	menuitems.UpdateMenuItem(w, r, h.menuService)
}

func (h *HTTPTransport) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	menuitems.DeleteMenuItem(w, r, h.menuService)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

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
		Addr:              "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
