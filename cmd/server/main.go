package main

import (
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/config"
	"github.com/dinehall/api/internal/router"
	"github.com/dinehall/api/internal/service"
	"github.com/dinehall/api/internal/store"
	"github.com/dinehall/api/internal/ws"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := store.Open(cfg.StorePath, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer db.Close()

	tables := service.NewTableRegistry(db.Tables(), db)
	menu := service.NewMenuCatalog(db.MenuItems(), db.MenuCategories())
	orders := service.NewOrderService(db.Orders(), tables, menu, db)
	carts := service.NewCartService(db.Carts(), menu, orders, db)
	reports := service.NewReportService(orders, menu)
	inventory := service.NewInventoryService(db.Inventory())

	hub := ws.NewHub()
	go hub.Run()

	feed := ws.NewOrderFeed(hub, orders.Orders(), log)
	orders.Subscribe(func(snap service.Snapshot) {
		feed.Publish(snap)
	})

	r := router.New(cfg, router.Services{
		Orders:    orders,
		Tables:    tables,
		Menu:      menu,
		Carts:     carts,
		Reports:   reports,
		Inventory: inventory,
	}, hub, feed, log)

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
