package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/pbx-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/pbx-dashboard/internal/config"
	"github.com/GregMSThompson/pbx-dashboard/internal/handlers"
	"github.com/GregMSThompson/pbx-dashboard/internal/middleware"
	"github.com/GregMSThompson/pbx-dashboard/internal/response"
	"github.com/GregMSThompson/pbx-dashboard/internal/router"
	"github.com/GregMSThompson/pbx-dashboard/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// local overrides, absent in production
	_ = godotenv.Load()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// services
	dserv := services.NewDashboardService(bs.Backend)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.DashboardSvc = dserv

	// auth
	auth := middleware.StaticUID(cfg.DevUID)
	if cfg.AuthMode == config.AuthFirebase {
		auth = middleware.NewMiddleware(bs.Firebase).FirebaseAuth
	}

	// router
	r := router.NewRouter(deps, auth)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
