package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/config"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/db"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/migrations"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/sales"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/scheduler"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/seed"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	st := store.New(database, logger)
	stats, err := seed.Run(st, cfg.BusinessName)
	if err != nil {
		logger.Fatal("run startup seed", zap.Error(err))
	}
	if stats.Inserts > 0 {
		logger.Info("seeded demo catalog", zap.Int("inserts", stats.Inserts))
	}

	sched := scheduler.New(st, cfg.HistoryCron, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal("start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &server{
		store:    st,
		recorder: sales.NewRecorder(st, logger),
		log:      logger.Named("http"),
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/items", srv.handleListItems)
		r.Post("/items", srv.handleCreateItem)
		r.Get("/items/{id}", srv.handleGetItem)
		r.Put("/items/{id}", srv.handleUpdateItem)
		r.Delete("/items/{id}", srv.handleDeleteItem)

		r.Get("/conversions", srv.handleListConversions)
		r.Post("/conversions", srv.handleCreateConversion)
		r.Delete("/conversions/{id}", srv.handleDeleteConversion)
		r.Get("/conversions/resolve", srv.handleResolveConversion)

		r.Get("/recipes", srv.handleListRecipes)
		r.Post("/recipes", srv.handleSaveRecipe)
		r.Get("/recipes/{id}", srv.handleGetRecipe)
		r.Put("/recipes/{id}", srv.handleSaveRecipe)
		r.Delete("/recipes/{id}", srv.handleDeleteRecipe)
		r.Get("/recipes/{id}/cost", srv.handleRecipeCost)
		r.Get("/recipes/{id}/history", srv.handleRecipeHistory)

		r.Get("/staff", srv.handleListStaff)
		r.Post("/staff", srv.handleSaveStaff)
		r.Delete("/staff/{id}", srv.handleDeleteStaff)

		r.Get("/overheads", srv.handleListOverheads)
		r.Post("/overheads", srv.handleSaveOverhead)
		r.Delete("/overheads/{id}", srv.handleDeleteOverhead)

		r.Get("/settings", srv.handleGetSettings)
		r.Put("/settings", srv.handleUpdateSettings)

		r.Get("/menu", srv.handleListMenuItems)
		r.Post("/menu", srv.handleSaveMenuItem)
		r.Delete("/menu/{id}", srv.handleDeleteMenuItem)
		r.Get("/menu/engineering", srv.handleMenuEngineering)

		r.Get("/sales", srv.handleListSales)
		r.Post("/sales", srv.handleRecordSale)
	})

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsDev() {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.TimeKey = "timestamp"
	return zcfg.Build()
}
