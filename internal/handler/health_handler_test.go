package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"copilot/internal/handler"
	"copilot/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(nil)

	c, w := newContext(http.MethodGet, "/healthz", nil, nil)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	records := new(mocks.MockRecordStore)
	records.On("Ping", mock.Anything).Return(nil)
	h := handler.NewHealthHandler(map[string]handler.Pinger{"records": records})

	c, w := newContext(http.MethodGet, "/readyz", nil, nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	records.AssertExpectations(t)
}

func TestHealthHandler_Readiness_DependencyDown(t *testing.T) {
	records := new(mocks.MockRecordStore)
	records.On("Ping", mock.Anything).Return(errors.New("connection refused"))
	h := handler.NewHealthHandler(map[string]handler.Pinger{"records": records})

	c, w := newContext(http.MethodGet, "/readyz", nil, nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "records not reachable", body["error"])
}
