package handler

import (
	"net/http"
	"strings"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/svc"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/chart"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/llm"
)

// Turn is one prior exchange the client replays for conversational context.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QueryRequest struct {
	Question string `json:"question"`
	History  []Turn `json:"history,optional"`
}

type QueryResponse struct {
	Answer string         `json:"answer"`
	Chart  *chart.Payload `json:"chart,omitempty"`
}

// QueryHandler answers one Persian market question.
func QueryHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		if strings.TrimSpace(req.Question) == "" {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusBadRequest, map[string]string{
				"error": "question is required",
			})
			return
		}

		history := make([]llm.HistoryTurn, 0, len(req.History))
		for _, turn := range req.History {
			history = append(history, llm.HistoryTurn{Question: turn.Question, Answer: turn.Answer})
		}

		result := serverCtx.Orchestrator.Answer(r.Context(), req.Question, history)
		httpx.OkJsonCtx(r.Context(), w, QueryResponse{
			Answer: result.Text,
			Chart:  result.Chart,
		})
	}
}

// HealthHandler reports liveness.
func HealthHandler(_ *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, map[string]string{"status": "ok"})
	}
}
