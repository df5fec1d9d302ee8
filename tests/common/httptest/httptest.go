//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// executes HTTP request with optional extra headers
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		raw = b
	}
	return PerformRawRequest(t, router, method, path, raw, headers)
}

// sends the body bytes untouched, for malformed payload cases
func PerformRawRequest(t *testing.T, router *gin.Engine, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// IdempotencyHeaders builds the header map for a payment submission.
func IdempotencyHeaders(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{"X-Idempotency-Key": key}
}
