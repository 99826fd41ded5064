// Package store holds the order schema as the previous release serialized
// it. Documents written with these types are the legacy input of the
// warehouse migration.
package store

import (
	"encoding/xml"
	"time"
)

// Product represents an individual item available for sale.
// Prices are in cents.
type Product struct {
	ID          int64     `xml:"id,attr"`
	SKU         string    `xml:"sku"`
	Name        string    `xml:"name"`
	Description string    `xml:"description,omitempty"`
	PriceCents  int64     `xml:"price_cents"`
	Inventory   int       `xml:"inventory_count"`
	CreatedAt   time.Time `xml:"created_at"`
}

// Catalog is the product list export.
type Catalog struct {
	XMLName  xml.Name  `xml:"catalog"`
	Products []Product `xml:"product"`
}

// Customer represents the user placing orders.
type Customer struct {
	ID       int64   `xml:"id,attr"`
	Email    string  `xml:"email"`
	FullName string  `xml:"full_name"`
	Address  *string `xml:"address,omitempty"`
	IsActive bool    `xml:"is_active"`
}

// Order represents a transaction made by a customer.
type Order struct {
	XMLName    xml.Name    `xml:"order"`
	ID         int64       `xml:"id,attr"`
	CustomerID int64       `xml:"customer_id"`
	Customer   *Customer   `xml:"customer,omitempty"`
	Status     OrderStatus `xml:"status"`
	TotalCents int64       `xml:"total_cents"`
	Items      []OrderItem `xml:"items>item"`
	OrderedAt  time.Time   `xml:"ordered_at"`
}

// OrderItem snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64  `xml:"product_id,attr"`
	Name      string `xml:"name"`
	Quantity  int    `xml:"quantity"`
	UnitPrice int64  `xml:"unit_price"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
