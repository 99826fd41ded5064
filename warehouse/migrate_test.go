package warehouse_test

import (
	"bytes"
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xml-migrator/migrator"
	"xml-migrator/store"
	"xml-migrator/warehouse"
)

var orderedAt = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

func legacyOrder(t *testing.T) []byte {
	t.Helper()

	address := "12 Main St, Springfield"
	order := store.Order{
		ID:         42,
		CustomerID: 3,
		Customer: &store.Customer{
			ID:       3,
			Email:    "ann@example.com",
			FullName: "Ann Example",
			Address:  &address,
			IsActive: true,
		},
		Status:     store.StatusPaid,
		TotalCents: 2599,
		Items: []store.OrderItem{
			{ProductID: 7, Name: "Mug", Quantity: 2, UnitPrice: 800},
			{ProductID: 9, Name: "Tea", Quantity: 1, UnitPrice: 999},
		},
		OrderedAt: orderedAt,
	}

	data, err := xml.MarshalIndent(order, "", "  ")
	require.NoError(t, err)

	return data
}

func TestMigrateStoreOrder(t *testing.T) {
	m, err := migrator.New(migrator.WithCaster(warehouse.ParseStatus))
	require.NoError(t, err)

	s, err := migrator.For[warehouse.Order](m)
	require.NoError(t, err)

	got, err := s.Migrate(bytes.NewReader(legacyOrder(t)))
	require.NoError(t, err)

	assert.Equal(t, uint(42), got.ID)
	assert.Equal(t, uint(3), got.CustomerID)
	assert.Equal(t, warehouse.StatusPaid, got.Status)
	assert.Equal(t, int64(2599), got.TotalAmount)

	assert.Equal(t, warehouse.Customer{
		ID:        3,
		Email:     "ann@example.com",
		Name:      "Ann Example",
		Active:    true,
		Addresses: []warehouse.Address{{Line: "12 Main St, Springfield"}},
	}, got.Customer)

	assert.Equal(t, []warehouse.OrderItem{
		{ProductID: 7, Name: "Mug", Quantity: 2, UnitPrice: 800},
		{ProductID: 9, Name: "Tea", Quantity: 1, UnitPrice: 999},
	}, got.Lines)

	require.NotNil(t, got.PlacedAt)
	assert.True(t, orderedAt.Equal(*got.PlacedAt))
	assert.Nil(t, got.ShippedAt)

	d := s.Diagnostics()
	assert.Zero(t, d.Len(), d.All())

	// the snapshot is written in the current schema
	snapshot := s.Snapshot().Root()
	assert.Equal(t, "order", snapshot.Name())

	var names []string
	for _, e := range snapshot.Elements() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"customer_id", "customer", "status", "total", "lines", "placed_at"}, names)
}

func TestMigrateStoreOrderWithoutCaster(t *testing.T) {
	m, err := migrator.New()
	require.NoError(t, err)

	s, err := migrator.For[warehouse.Order](m)
	require.NoError(t, err)

	got, err := s.Migrate(bytes.NewReader(legacyOrder(t)))
	require.NoError(t, err)

	assert.Empty(t, got.Status, "upper case status is not a valid value")
	assert.Len(t, got.Lines, 2)

	d := s.Diagnostics()
	failed := d.ByCode(migrator.CodeConversionFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "/order/status", failed[0].Path)
}

func TestMigrateStoreCatalog(t *testing.T) {
	catalog := store.Catalog{Products: []store.Product{
		{ID: 1, SKU: "MUG-1", Name: "Mug", PriceCents: 800, Inventory: 12, CreatedAt: orderedAt},
		{ID: 2, SKU: "TEA-1", Name: "Tea", PriceCents: 999, Inventory: 0, CreatedAt: orderedAt},
		{ID: 3, SKU: "POT-1", Name: "Pot", Description: "Glazed", PriceCents: 2500, Inventory: 3, CreatedAt: orderedAt},
	}}

	data, err := xml.Marshal(catalog)
	require.NoError(t, err)

	m, err := migrator.New()
	require.NoError(t, err)

	got, err := migrator.Migrate[warehouse.Catalog](m, bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, got.Products, 3)
	for i, p := range got.Products {
		legacy := catalog.Products[i]

		assert.Equal(t, uint(legacy.ID), p.ID)
		assert.Equal(t, legacy.SKU, p.SKU)
		assert.Equal(t, legacy.Description, p.Description)
		assert.Equal(t, legacy.PriceCents, p.Price)
		assert.Equal(t, legacy.Inventory, p.Stock)
		assert.True(t, legacy.CreatedAt.Equal(p.CreatedAt))
	}
}

func TestParseStatus(t *testing.T) {
	for _, text := range []string{"paid", "PAID", " Paid "} {
		status, err := warehouse.ParseStatus(text)
		require.NoError(t, err)
		assert.Equal(t, warehouse.StatusPaid, status)
	}

	_, err := warehouse.ParseStatus("lost")
	require.Error(t, err)
}
