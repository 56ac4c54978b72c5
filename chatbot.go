package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/rest"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/config"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/handler"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/scheduler"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/svc"
)

var configFile = flag.String("f", "etc/chatbot.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg)
	handler.RegisterHandlers(server, ctx)

	refresher := scheduler.New(ctx.Store, cfg.RefreshSpec)
	if err := refresher.Start(); err != nil {
		panic(err)
	}
	defer refresher.Stop()

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
