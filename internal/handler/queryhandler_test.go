package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	_ "modernc.org/sqlite"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/answer"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/nlp"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/registry"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/store"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/svc"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
)

type fixedAdapter struct {
	quote fetch.QuoteResult
}

func (f fixedAdapter) LiveQuote(ctx context.Context, symbol string) fetch.QuoteResult {
	return f.quote
}

func (f fixedAdapter) FullHistory(ctx context.Context, symbol string) ([]fetch.Row, error) {
	return nil, context.DeadlineExceeded
}

func newServiceContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	reg := registry.Default()
	resolver := nlp.NewResolver(reg, time.Now)
	extractor := nlp.NewExtractor(reg, resolver)

	adapters := map[fetch.Category]fetch.Adapter{
		fetch.CategoryCurrency: fixedAdapter{quote: fetch.QuoteResult{
			Status:  fetch.QuoteOK,
			Message: "قیمت دلار برابر با 98,500 تومان است.",
			Price:   98500,
		}},
	}
	conn := sqlx.NewSqlConn("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	st := store.New(conn, adapters)

	return &svc.ServiceContext{
		Orchestrator: answer.New(reg, extractor, st, adapters),
	}
}

func postQuery(t *testing.T, handlerFn http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handlerFn(recorder, req)
	return recorder
}

func TestQueryHandlerLiveQuote(t *testing.T) {
	handlerFn := QueryHandler(newServiceContext(t))

	recorder := postQuery(t, handlerFn, QueryRequest{Question: "قیمت دلار امروز چنده"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "قیمت دلار برابر با 98,500 تومان است.", resp.Answer)
	assert.Nil(t, resp.Chart)
}

func TestQueryHandlerUnrecognized(t *testing.T) {
	handlerFn := QueryHandler(newServiceContext(t))

	recorder := postQuery(t, handlerFn, QueryRequest{Question: "سلام خوبی؟"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Contains(t, resp.Answer, "❌")
}

func TestQueryHandlerEmptyQuestion(t *testing.T) {
	handlerFn := QueryHandler(newServiceContext(t))
	recorder := postQuery(t, handlerFn, map[string]string{"question": "  "})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHealthHandler(t *testing.T) {
	recorder := httptest.NewRecorder()
	HealthHandler(nil)(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "ok")
}
