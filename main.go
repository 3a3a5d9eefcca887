package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/companieshouse/chs.go/log"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/dao"
	"github.com/companieshouse/checkout.api.ch.gov.uk/handlers"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.Namespace = "checkout.api.ch.gov.uk"

	cfg, err := config.Get()
	if err != nil {
		log.Error(fmt.Errorf("error configuring service: %s. Exiting", err))
		return
	}

	// Create router
	mainRouter := mux.NewRouter()
	svc := dao.New(cfg)
	handlers.Register(mainRouter, *cfg, svc)

	log.Info("Starting checkout.api.ch.gov.uk service")

	srv := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: mainRouter,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error(err)
	}
	log.Trace("Exiting checkout.api.ch.gov.uk service")
}
