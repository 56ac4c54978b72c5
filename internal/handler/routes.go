package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/api/query",
				Handler: QueryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/health",
				Handler: HealthHandler(serverCtx),
			},
		},
	)
}
