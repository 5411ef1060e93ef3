// README: Entry point; loads config, wires the engine and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"estatematch/internal/ai"
	"estatematch/internal/config"
	httptransport "estatematch/internal/http"
	"estatematch/internal/infra"
	"estatematch/internal/maps"
	"estatematch/internal/modules/analysis"
	"estatematch/internal/modules/chat"
	"estatematch/internal/modules/usage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := ai.NewGeminiEngine(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer engine.Close()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	usageStore := usage.NewStore(dbPool)
	usageSvc := usage.NewService(usageStore, redisClient)

	analysisSvc := analysis.NewService(engine)
	chatSvc := chat.NewService(engine)

	var commuteSvc *maps.CommuteService
	if cfg.Maps.APIKey != "" {
		commuteSvc, err = maps.NewCommuteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	}

	handler := httptransport.NewRouter(analysisSvc, chatSvc, usageSvc, commuteSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
