package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ommangate/order-up-scholars/configs"
	"github.com/ommangate/order-up-scholars/internal/auth"
	"github.com/ommangate/order-up-scholars/internal/cart"
	"github.com/ommangate/order-up-scholars/internal/catalog"
	"github.com/ommangate/order-up-scholars/internal/db"
	"github.com/ommangate/order-up-scholars/internal/handlers"
	"github.com/ommangate/order-up-scholars/internal/latency"
	"github.com/ommangate/order-up-scholars/internal/logging"
	"github.com/ommangate/order-up-scholars/internal/middleware"
	"github.com/ommangate/order-up-scholars/internal/notifier"
	"github.com/ommangate/order-up-scholars/internal/order"
)

func main() {
	root := &cobra.Command{
		Use:   "order-up-scholars",
		Short: "Campus canteen food ordering service",
	}
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func commonFlags(cmd *cobra.Command, configDir, envName *string) {
	cmd.Flags().StringVar(configDir, "config", "./configs", "directory holding base.yaml")
	cmd.Flags().StringVar(envName, "env", "dev", "environment overlay (dev, staging, prod)")
}

func serveCmd() *cobra.Command {
	var configDir, envName string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.Load(configDir, envName)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	commonFlags(cmd, &configDir, &envName)
	return cmd
}

func seedCmd() *cobra.Command {
	var configDir, envName string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the campus fixtures into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.Load(configDir, envName)
			if err != nil {
				return err
			}
			gdb, err := db.Open(cfg)
			if err != nil {
				return err
			}
			return db.Seed(gdb)
		},
	}
	commonFlags(cmd, &configDir, &envName)
	return cmd
}

func run(cfg configs.Config) error {
	log := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)

	gdb, err := db.Open(cfg)
	if err != nil {
		return err
	}
	// The in-memory store starts empty on every boot; seeding is a no-op
	// against an already-populated postgres store.
	if err := db.Seed(gdb); err != nil {
		return err
	}

	delay := latency.New(cfg.Latency.Read, cfg.Latency.Write)
	catalogSvc := catalog.NewService(gdb, delay)
	orderSvc := order.NewService(gdb, delay, notifier.New(cfg, gdb))
	carts := cart.NewRegistry(orderSvc)

	r := newRouter(cfg, log, gdb, delay, catalogSvc, orderSvc, carts)

	log.Info("listening", "addr", cfg.App.HTTPAddr)
	return r.Run(cfg.App.HTTPAddr)
}

func newRouter(
	cfg configs.Config,
	log *slog.Logger,
	gdb *gorm.DB,
	delay latency.Simulator,
	catalogSvc *catalog.Service,
	orderSvc *order.Service,
	carts *cart.Registry,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging(log), middleware.Metrics())

	store := cookie.NewStore([]byte(cfg.App.SessionSecret))
	r.Use(sessions.Sessions(auth.SessionName, store))

	authH := auth.NewHandler(gdb, delay)
	authH.DropCart = carts.Drop
	catalogH := handlers.NewCatalogHandler(catalogSvc)
	cartH := handlers.NewCartHandler(carts, catalogSvc)
	orderH := handlers.NewOrderHandler(orderSvc)
	adminH := handlers.NewAdminHandler(catalogSvc, orderSvc)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/login", authH.Login)
	r.POST("/auth/logout", authH.Logout)
	r.GET("/auth/me", auth.RequireAuth(gdb), authH.Me)

	api := r.Group("/api")
	{
		api.GET("/canteens", catalogH.ListCanteens)
		api.GET("/categories", catalogH.ListCategories)
		api.GET("/items", catalogH.ListItems)

		api.GET("/cart", cartH.GetCart)
		api.POST("/cart/items", cartH.AddItem)
		api.PATCH("/cart/items/:id", cartH.UpdateLine)
		api.DELETE("/cart/items/:id", cartH.RemoveLine)
		api.POST("/cart/clear", cartH.Clear)
		api.POST("/cart/checkout", auth.RequireAuth(gdb), cartH.Checkout)

		api.GET("/orders", auth.RequireAuth(gdb), orderH.ListOrders)
		api.GET("/orders/:id", auth.RequireAuth(gdb), orderH.GetOrder)
	}

	admin := r.Group("/api/admin")
	admin.Use(auth.RequireAuth(gdb), auth.RequireAdmin())
	{
		admin.POST("/items", adminH.CreateItem)
		admin.PUT("/items/:id", adminH.UpdateItem)
		admin.DELETE("/items/:id", adminH.DeleteItem)
		admin.POST("/items/:id/toggle", adminH.ToggleAvailability)
		admin.PATCH("/orders/:id/status", adminH.UpdateOrderStatus)
		admin.GET("/stats", adminH.Stats)
	}

	return r
}
