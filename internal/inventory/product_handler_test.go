package inventory_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory-backend/internal/config"
	"inventory-backend/internal/inventory"
	"inventory-backend/internal/models"
	"inventory-backend/internal/server"
	"inventory-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	cfg := &config.Config{
		HTTPPort:     "5001",
		StoreDriver:  config.DriverMemory,
		CORSOrigins:  "*",
		StoreTimeout: time.Second,
	}
	return server.New(cfg, s, server.Options{}), s
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decodeRecord(t *testing.T, b []byte) models.ProductRecord {
	t.Helper()
	var rec models.ProductRecord
	require.NoError(t, json.Unmarshal(b, &rec), string(b))
	return rec
}

func listIDs(t *testing.T, app *fiber.App) []int64 {
	t.Helper()
	code, b := do(t, app, http.MethodGet, "/product/get", "")
	require.Equal(t, http.StatusOK, code)
	var recs []models.ProductRecord
	require.NoError(t, json.Unmarshal(b, &recs))
	ids := make([]int64, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestProductLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	code, b := do(t, app, http.MethodPost, "/product/create",
		`{"product":{"category":"tools","price":9.99,"name":"Hammer"}}`)
	require.Equal(t, http.StatusCreated, code, string(b))
	assert.JSONEq(t,
		`{"id":1,"product":{"productid":1,"category":"tools","price":9.99,"name":"Hammer","instock":true}}`,
		string(b))

	code, b = do(t, app, http.MethodPost, "/product/create",
		`{"product":{"category":"hardware","price":0.05,"name":"Nails","productid":500}}`)
	require.Equal(t, http.StatusCreated, code, string(b))
	nails := decodeRecord(t, b)
	assert.Equal(t, int64(2), nails.ID)
	assert.Equal(t, int64(500), nails.Product.ProductID)

	code, b = do(t, app, http.MethodPut, "/product/update/1",
		`{"product":{"category":"tools","price":12.50,"name":"Hammer XL","instock":false}}`)
	require.Equal(t, http.StatusOK, code, string(b))
	assert.JSONEq(t,
		`{"id":1,"product":{"productid":1,"category":"tools","price":12.5,"name":"Hammer XL","instock":false}}`,
		string(b))

	code, b = do(t, app, http.MethodDelete, "/product/delete/2", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Product deleted","id":2}`, string(b))
	assert.Equal(t, []int64{1}, listIDs(t, app))

	code, b = do(t, app, http.MethodDelete, "/product/delete/99", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"message":"Product not found"}`, string(b))
	assert.Equal(t, []int64{1}, listIDs(t, app))
}

func TestListEmptyIsArray(t *testing.T) {
	app, _ := newTestApp(t)
	code, b := do(t, app, http.MethodGet, "/product/get", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(b))
}

func TestListSortedRegardlessOfInsertOrder(t *testing.T) {
	app, s := newTestApp(t)
	s.Seed(
		models.ProductRecord{ID: 9, Product: models.Product{ProductID: 9, Name: "z"}},
		models.ProductRecord{ID: 3, Product: models.Product{ProductID: 3, Name: "y"}},
		models.ProductRecord{ID: 6, Product: models.Product{ProductID: 6, Name: "x"}},
	)
	assert.Equal(t, []int64{3, 6, 9}, listIDs(t, app))
}

func TestSequentialCreatesAreStrictlyIncreasing(t *testing.T) {
	app, _ := newTestApp(t)
	var last int64
	for i := 0; i < 10; i++ {
		code, b := do(t, app, http.MethodPost, "/product/create",
			`{"product":{"category":"c","price":1,"name":"n"}}`)
		require.Equal(t, http.StatusCreated, code)
		rec := decodeRecord(t, b)
		assert.Equal(t, last+1, rec.ID)
		last = rec.ID
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		fields  []string
	}{
		{name: "empty body", body: "", message: "Product field is required"},
		{name: "no product", body: `{"item":{"name":"x"}}`, message: "Product field is required"},
		{name: "null product", body: `{"product":null}`, message: "Product field is required"},
		{name: "malformed json", body: `{"product":`, message: "Invalid request body"},
		{
			name:    "missing required fields",
			body:    `{"product":{"name":"Hammer"}}`,
			message: "Invalid product",
			fields:  []string{"product.category", "product.price"},
		},
		{
			name:    "blank name",
			body:    `{"product":{"name":"  ","category":"tools","price":1}}`,
			message: "Invalid product",
			fields:  []string{"product.name"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			code, b := do(t, app, http.MethodPost, "/product/create", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)

			var resp inventory.ValidationErrorResponse
			require.NoError(t, json.Unmarshal(b, &resp))
			assert.Equal(t, tt.message, resp.Message)
			var fields []string
			for _, fe := range resp.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.fields, fields)

			assert.Empty(t, listIDs(t, app), "no record created")
		})
	}
}

func TestCreateAcceptsZeroPrice(t *testing.T) {
	app, _ := newTestApp(t)
	code, b := do(t, app, http.MethodPost, "/product/create",
		`{"product":{"category":"free","price":0,"name":"Sticker","instock":false}}`)
	require.Equal(t, http.StatusCreated, code, string(b))
	rec := decodeRecord(t, b)
	assert.Equal(t, 0.0, rec.Product.Price)
	assert.False(t, rec.Product.InStock)
}

func TestCreateIsNotIdempotent(t *testing.T) {
	app, _ := newTestApp(t)
	body := `{"product":{"category":"tools","price":9.99,"name":"Hammer"}}`
	for i := 0; i < 2; i++ {
		code, _ := do(t, app, http.MethodPost, "/product/create", body)
		require.Equal(t, http.StatusCreated, code)
	}
	assert.Equal(t, []int64{1, 2}, listIDs(t, app))
}

func TestUpdateErrors(t *testing.T) {
	app, _ := newTestApp(t)
	code, _ := do(t, app, http.MethodPost, "/product/create",
		`{"product":{"category":"tools","price":9.99,"name":"Hammer"}}`)
	require.Equal(t, http.StatusCreated, code)

	valid := `{"product":{"category":"tools","price":1,"name":"x"}}`

	code, b := do(t, app, http.MethodPut, "/product/update/99", valid)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"message":"Product not found"}`, string(b))

	code, b = do(t, app, http.MethodPut, "/product/update/abc", valid)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"message":"Invalid product id"}`, string(b))

	code, b = do(t, app, http.MethodPut, "/product/update/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"message":"Product field is required"}`, string(b))

	code, b = do(t, app, http.MethodGet, "/product/get", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(b), `"name":"Hammer"`, "record unchanged")
}

func TestUpdateRepeatedIsStable(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/product/create", `{"product":{"category":"a","price":1,"name":"A"}}`)

	body := `{"product":{"category":"b","price":2,"name":"B","productid":77}}`
	_, first := do(t, app, http.MethodPut, "/product/update/1", body)
	_, second := do(t, app, http.MethodPut, "/product/update/1", body)
	assert.JSONEq(t, string(first), string(second))
}

func TestInvalidIDParam(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/product/create", `{"product":{"category":"a","price":1,"name":"A"}}`)

	body := `{"product":{"category":"b","price":2,"name":"B"}}`
	for _, id := range []string{"1.5", "1abc", "abc", "0x1"} {
		t.Run(id, func(t *testing.T) {
			code, b := do(t, app, http.MethodDelete, "/product/delete/"+id, "")
			assert.Equal(t, http.StatusBadRequest, code)
			assert.JSONEq(t, `{"message":"Invalid product id"}`, string(b))

			code, _ = do(t, app, http.MethodPut, "/product/update/"+id, body)
			assert.Equal(t, http.StatusBadRequest, code)
		})
	}
	assert.Equal(t, []int64{1}, listIDs(t, app))
}
