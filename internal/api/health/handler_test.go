package health_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocustomer/internal/api/health"
	"gocustomer/internal/pkg/logger"
)

func serve(h *health.Handler) (*httptest.ResponseRecorder, health.Response) {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body health.Response
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealth_AllHealthy(t *testing.T) {
	ok := func(context.Context) error { return nil }
	h := health.NewHandler(logger.NewNopLogger(),
		health.Dependency{Name: "database", Ping: ok},
		health.Dependency{Name: "cache"},
	)

	rec, body := serve(h)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Dependencies["database"])
	assert.Equal(t, "not configured", body.Dependencies["cache"])
}

func TestHealth_Degraded(t *testing.T) {
	var logs bytes.Buffer
	dsnErr := errors.New(`dial tcp: connect to "postgres://app:s3nha@db:5432/customers" refused`)
	h := health.NewHandler(logger.NewWithWriter(&logs, "warn"),
		health.Dependency{Name: "database", Ping: func(context.Context) error { return dsnErr }},
		health.Dependency{Name: "broker", Ping: func(context.Context) error { return nil }},
	)

	rec, body := serve(h)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unhealthy", body.Dependencies["database"])
	assert.Equal(t, "healthy", body.Dependencies["broker"])

	// O detalhe vai para o log, nunca para a resposta.
	assert.NotContains(t, rec.Body.String(), "s3nha")
	assert.Contains(t, logs.String(), "s3nha")
	assert.Contains(t, logs.String(), `"dependency":"database"`)
}
