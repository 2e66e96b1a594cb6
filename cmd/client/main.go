package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"pongclient/internal/auth"
	"pongclient/internal/channel"
	"pongclient/internal/config"
	"pongclient/internal/diag"
	"pongclient/internal/history"
	"pongclient/internal/render"
	"pongclient/internal/router"
	"pongclient/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	store := storage.New(cfg.StoragePath)
	authClient := auth.NewClient(cfg.APIBaseURL, store, logger)

	reg := prometheus.NewRegistry()
	metrics := diag.NewMetrics(reg)
	go func() {
		logger.Info("diagnostics listening", zap.String("addr", cfg.DiagAddr))
		if err := http.ListenAndServe(cfg.DiagAddr, diag.Routes(reg)); err != nil {
			logger.Error("diagnostics server stopped", zap.Error(err))
		}
	}()

	console := newConsole(os.Stdout, authClient, logger)

	wsBase := strings.TrimSuffix(cfg.WSBaseURL, "/")
	r := router.New(router.Config{
		Dialer:              &channel.WebsocketDialer{Log: logger},
		MenuURL:             wsBase + "/menu/",
		WSBase:              wsBase,
		Store:               store,
		Directory:           authClient,
		Background:          console,
		Screens:             console,
		MenuPresenter:       console,
		GamePresenter:       console,
		TournamentPresenter: console,
		NewRenderer: func() render.Adapter {
			return render.NewConsoleAdapter(logger)
		},
		Log:          logger,
		Metrics:      metrics,
		SamplePeriod: cfg.SamplePeriod,
		FramePeriod:  cfg.FramePeriod,
		PollPeriod:   cfg.PollPeriod,
	}, history.New())
	console.router = r

	// A durable profile means the last login is still valid enough to try
	// the menu straight away; the REST layer re-authenticates on 401.
	if profile, err := store.Profile(); err == nil {
		r.Show(router.ViewMenu, profile, true)
	} else {
		r.Show(router.ViewLogin, nil, true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console.run(ctx, os.Stdin)
	r.Shutdown()
	logger.Info("client stopped")
}
