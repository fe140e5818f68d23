package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/config"
	"github.com/dinehall/api/internal/enum"
	"github.com/dinehall/api/internal/handler"
	mw "github.com/dinehall/api/internal/middleware"
	"github.com/dinehall/api/internal/service"
	"github.com/dinehall/api/internal/ws"
)

// Services bundles the application services the routes are built on.
type Services struct {
	Orders    *service.OrderService
	Tables    *service.TableRegistry
	Menu      *service.MenuCatalog
	Carts     *service.CartService
	Reports   *service.ReportService
	Inventory *service.InventoryService
}

// New creates a Chi router with all application routes wired up.
// Role gating rides on the X-Role header; there is no credential check.
func New(cfg *config.Config, svcs Services, hub *ws.Hub, feed *ws.OrderFeed, log *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.WithRole)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Role"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket route
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, feed, log, w, r)
	})

	// Menu
	menuHandler := handler.NewMenuHandler(svcs.Menu)
	r.Route("/menu", menuHandler.RegisterRoutes)

	// Tables and their carts
	tableHandler := handler.NewTableHandler(svcs.Tables, svcs.Orders, log)
	cartHandler := handler.NewCartHandler(svcs.Carts, log)
	r.Route("/tables", func(r chi.Router) {
		tableHandler.RegisterRoutes(r)
		cartHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleAdmin, enum.RoleWaiter))
			tableHandler.RegisterStaffRoutes(r)
		})
	})

	// Orders
	orderHandler := handler.NewOrderHandler(svcs.Orders, log)
	r.Route("/orders", func(r chi.Router) {
		orderHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleAdmin, enum.RoleKitchen, enum.RoleWaiter))
			orderHandler.RegisterStaffRoutes(r)
		})
	})

	// Admin-only routes
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(enum.RoleAdmin))

		reportHandler := handler.NewReportHandler(svcs.Reports, log)
		r.Route("/reports", reportHandler.RegisterRoutes)

		inventoryHandler := handler.NewInventoryHandler(svcs.Inventory)
		r.Route("/inventory", inventoryHandler.RegisterRoutes)
	})

	return r
}
