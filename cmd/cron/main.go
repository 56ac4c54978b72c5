// Command cron runs the cache refresher standalone, for deployments where
// the API server and the background refresh are separate processes.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/cli"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/config"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/scheduler"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/svc"
)

var (
	configFile = flag.String("f", "etc/chatbot.yaml", "the config file")
	once       = flag.Bool("once", false, "refresh once and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime)

	cfg := config.MustLoad(*configFile)
	cli.LogConfigSummary(cfg)
	ctx := svc.NewServiceContext(*cfg)

	refresher := scheduler.New(ctx.Store, cfg.RefreshSpec)
	if *once {
		visited := refresher.RunOnce(context.Background())
		log.Printf("refreshed %d tables", visited)
		return
	}

	if err := refresher.Start(); err != nil {
		log.Fatalf("start refresher: %v", err)
	}
	log.Printf("cache refresher running with spec %q", cfg.RefreshSpec)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("shutting down...")
	refresher.Stop()
}
