package view

import (
	"context"
	"net"
	"testing"
	"time"

	"inventory-backend/internal/config"
	"inventory-backend/internal/models"
	"inventory-backend/internal/server"
	"inventory-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startAPI serves the real product API over loopback on a memory store.
func startAPI(t *testing.T) string {
	t.Helper()
	cfg := &config.Config{
		HTTPPort:     "5001",
		StoreDriver:  config.DriverMemory,
		CORSOrigins:  "*",
		StoreTimeout: time.Second,
	}
	app := server.New(cfg, store.NewMemoryStore(), server.Options{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestClientAgainstAPI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := NewClient(startAPI(t) + "/")

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	name, cat, price := "Hammer", "tools", 9.99
	created, err := c.Create(ctx, &models.ProductInput{Name: &name, Category: &cat, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, models.ProductRecord{ID: 1, Product: models.Product{
		ProductID: 1, Category: "tools", Price: 9.99, Name: "Hammer", InStock: true,
	}}, created)

	in := models.InputFromProduct(created.Product)
	newName := "Hammer XL"
	in.Name = &newName
	updated, err := c.Update(ctx, 1, in)
	require.NoError(t, err)
	assert.Equal(t, "Hammer XL", updated.Product.Name)

	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ProductRecord{updated}, list)

	deleted, err := c.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = c.Delete(ctx, 1)
	assert.True(t, IsNotFound(err), "%v", err)

	_, err = c.Create(ctx, &models.ProductInput{Name: &name})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "Invalid product", apiErr.Message)
}

func TestClientHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient("http://127.0.0.1:1").List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInventoryScenarioOverHTTP(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := NewClient(startAPI(t))

	for _, n := range []string{"Hammer XL", "Nails"} {
		name, cat, price := n, "hardware", 1.0
		_, err := c.Create(ctx, &models.ProductInput{Name: &name, Category: &cat, Price: &price})
		require.NoError(t, err)
	}

	inv := NewInventory(c, quietLogger())
	require.NoError(t, inv.Load(ctx))
	inv.Filter("Ham")

	visible := inv.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Hammer XL", visible[0].Product.Name)
}
