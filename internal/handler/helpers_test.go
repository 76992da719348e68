package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"copilot/internal/domain"
	"copilot/internal/handler"
	"copilot/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSession() *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{ID: uuid.New(), CreatedAt: now, UpdatedAt: now, Standard: "india"}
}

// newContext builds a test context with sess attached, as the session
// middleware would.
func newContext(method, target string, body io.Reader, sess *domain.Session) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, body)
	if sess != nil {
		middleware.SetSession(c, sess)
	}
	return c, w
}

func jsonContext(method, target string, payload any, sess *domain.Session) (*gin.Context, *httptest.ResponseRecorder) {
	data, _ := json.Marshal(payload)
	c, w := newContext(method, target, bytes.NewReader(data), sess)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func multipartContext(target, field, fileName string, content []byte, fields map[string]string, sess *domain.Session) (*gin.Context, *httptest.ResponseRecorder) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, _ := writer.CreateFormFile(field, fileName)
		_, _ = part.Write(content)
	}
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	_ = writer.Close()

	c, w := newContext(http.MethodPost, target, body, sess)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
