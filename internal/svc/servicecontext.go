package svc

import (
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/answer"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/config"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/nlp"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/registry"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/store"
	fetchpkg "github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
	_ "github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch/alphavantage"
	_ "github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch/tgju"
	llmpkg "github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/llm"
)

type ServiceContext struct {
	Config config.Config

	Registry  *registry.Registry
	Extractor *nlp.Extractor
	Store     *store.Store
	Adapters  map[fetchpkg.Category]fetchpkg.Adapter
	Responder *llmpkg.Responder

	Orchestrator *answer.Orchestrator

	DBConn sqlx.SqlConn
}

func NewServiceContext(c config.Config) *ServiceContext {
	svcCtx := &ServiceContext{Config: c}

	if c.RegistryFile != "" {
		svcCtx.Registry = registry.MustLoad(c.RegistryFile)
	} else {
		svcCtx.Registry = registry.Default()
	}

	resolver := nlp.NewResolver(svcCtx.Registry, time.Now)
	svcCtx.Extractor = nlp.NewExtractor(svcCtx.Registry, resolver)

	fetchCfg := c.Fetch.Value
	if fetchCfg == nil {
		fetchCfg = fetchpkg.DefaultConfig()
	}
	adapters, err := fetchCfg.BuildAdapters()
	if err != nil {
		log.Fatalf("failed to build fetch adapters: %v", err)
	}
	svcCtx.Adapters = adapters

	svcCtx.DBConn = sqlx.NewSqlConn(c.Database.Driver, c.Database.DSN)
	svcCtx.Store = store.New(svcCtx.DBConn, adapters, store.WithDriver(c.Database.Driver))

	if c.LLM.Value != nil && c.LLM.Value.Enabled {
		client, err := llmpkg.NewClient(c.LLM.Value)
		if err != nil {
			log.Fatalf("failed to init llm client: %v", err)
		}
		svcCtx.Responder = llmpkg.NewResponder(client)
	}

	opts := []answer.Option{
		answer.WithQuoteTTL(time.Duration(c.QuoteTTLSeconds) * time.Second),
	}
	if svcCtx.Responder != nil {
		opts = append(opts, answer.WithResponder(svcCtx.Responder))
	}
	svcCtx.Orchestrator = answer.New(svcCtx.Registry, svcCtx.Extractor, svcCtx.Store, adapters, opts...)

	return svcCtx
}
