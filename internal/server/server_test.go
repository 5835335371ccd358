package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory-backend/internal/config"
	"inventory-backend/internal/models"
	"inventory-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnreachable = errors.New("server selection timeout")

// brokenStore fails every call the way an unreachable database would.
type brokenStore struct{}

func (brokenStore) List(context.Context) ([]models.ProductRecord, error) { return nil, errUnreachable }
func (brokenStore) Create(context.Context, models.Product) (models.ProductRecord, error) {
	return models.ProductRecord{}, errUnreachable
}
func (brokenStore) Update(context.Context, int64, models.Product) (models.ProductRecord, error) {
	return models.ProductRecord{}, errUnreachable
}
func (brokenStore) Delete(context.Context, int64) (models.ProductRecord, error) {
	return models.ProductRecord{}, errUnreachable
}
func (brokenStore) Ping(context.Context) error  { return errUnreachable }
func (brokenStore) Close(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		HTTPPort:     "5001",
		StoreDriver:  config.DriverMemory,
		CORSOrigins:  "http://localhost:3000, http://example.test",
		StoreTimeout: time.Second,
	}
}

func send(t *testing.T, s store.ProductStore, req *http.Request) (*http.Response, string) {
	t.Helper()
	app := New(testConfig(), s, Options{})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestStoreFailuresBecomeGenericServerErrors(t *testing.T) {
	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/product/get", ""},
		{http.MethodPost, "/product/create", `{"product":{"category":"c","price":1,"name":"n"}}`},
		{http.MethodPut, "/product/update/1", `{"product":{"category":"c","price":1,"name":"n"}}`},
		{http.MethodDelete, "/product/delete/1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			req.Header.Set("Content-Type", "application/json")

			resp, b := send(t, brokenStore{}, req)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.JSONEq(t, `{"message":"Server error"}`, b)
			assert.NotContains(t, b, errUnreachable.Error())
		})
	}
}

func TestHealth(t *testing.T) {
	resp, b := send(t, store.NewMemoryStore(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, b)

	resp, _ = send(t, brokenStore{}, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequestIDHeader(t *testing.T) {
	resp, _ := send(t, store.NewMemoryStore(), httptest.NewRequest(http.MethodGet, "/product/get", nil))
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/product/get", nil)
	req.Header.Set("Origin", "http://example.test")
	resp, _ := send(t, store.NewMemoryStore(), req)
	assert.Equal(t, "http://example.test", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsExposeRequestCounters(t *testing.T) {
	app := New(testConfig(), store.NewMemoryStore(), Options{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/product/delete/42", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `inventory_http_requests_total{method="DELETE",route="/product/delete/:id",status="404"}`)
	assert.Contains(t, string(b), `inventory_http_request_duration_seconds_bucket{route="/product/delete/:id"`)
}
