package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"policy-manager/internal/assignment"
	employeehandler "policy-manager/internal/employee/handler"
	employeeservice "policy-manager/internal/employee/service"
	employeestore "policy-manager/internal/employee/store"
	httpapi "policy-manager/internal/http"
	"policy-manager/internal/platform/config"
	"policy-manager/internal/platform/httpserver"
	"policy-manager/internal/platform/logger"
	"policy-manager/internal/platform/metrics"
	"policy-manager/internal/platform/mongodb"
	policyhandler "policy-manager/internal/policy/handler"
	policyservice "policy-manager/internal/policy/service"
	policystore "policy-manager/internal/policy/store"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx := context.Background()
	mongoClient, err := mongodb.New(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			log.Error("failed to disconnect mongodb", "error", err)
		}
	}()

	db := mongoClient.Database()
	employees, err := employeestore.NewMongo(ctx, db)
	if err != nil {
		log.Error("failed to init employee store", "error", err)
		os.Exit(1)
	}
	policies := policystore.NewMongo(db)

	m := metrics.New()
	employeeSvc := employeeservice.New(employees,
		employeeservice.WithLogger(log),
		employeeservice.WithMetrics(m),
	)
	policySvc := policyservice.New(policies,
		policyservice.WithLogger(log),
		policyservice.WithMetrics(m),
	)
	assignmentSvc := assignment.New(employeeSvc, policySvc, employees,
		assignment.WithLogger(log),
		assignment.WithMetrics(m),
	)

	router := httpapi.NewRouter(
		httpapi.RouterConfig{
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			Health:             mongoClient,
		},
		log,
		m,
		employeehandler.New(employeeSvc, assignmentSvc, log),
		policyhandler.New(policySvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting policy-manager", "addr", cfg.Addr, "db", cfg.MongoDBName)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
