// Package warehouse is the current order schema. Members renamed since the
// store release carry their old names in migrate tags.
package warehouse

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Address is one postal address line of a customer.
type Address struct {
	Kind string `xml:"kind,attr,omitempty"`
	Line string `xml:",chardata"`
}

// Customer represents a store customer.
type Customer struct {
	ID        uint      `xml:"id,attr"`
	Email     string    `xml:"email"`
	Name      string    `xml:"name" migrate:"full_name"`
	Phone     string    `xml:"phone,omitempty"`
	Active    bool      `xml:"active,attr" migrate:"is_active"`
	Addresses []Address `xml:"address_line" migrate:"address"`
}

// Product represents a sellable item. Price is in cents, weight in grams.
type Product struct {
	ID          uint      `xml:"id,attr"`
	SKU         string    `xml:"sku"`
	Name        string    `xml:"name"`
	Description string    `xml:"description,omitempty"`
	Price       int64     `xml:"price" migrate:"price_cents"`
	Stock       int       `xml:"stock" migrate:"inventory_count"`
	Weight      float64   `xml:"weight,omitempty"`
	CreatedAt   time.Time `xml:"created_at"`
}

type Catalog struct {
	XMLName  xml.Name  `xml:"catalog"`
	Products []Product `xml:"product"`
}

// Order represents a customer's purchase.
type Order struct {
	XMLName     xml.Name    `xml:"order"`
	ID          uint        `xml:"id,attr"`
	Currency    string      `xml:"currency,attr,omitempty"`
	CustomerID  uint        `xml:"customer_id"`
	Customer    Customer    `xml:"customer"`
	Status      OrderStatus `xml:"status"`
	TotalAmount int64       `xml:"total" migrate:"total_cents"`
	Lines       []OrderItem `xml:"lines>line" migrate:"items"`
	PlacedAt    *time.Time  `xml:"placed_at,omitempty" migrate:"ordered_at"`
	ShippedAt   *time.Time  `xml:"shipped_at,omitempty"`
}

// OrderItem is a line item within an order.
type OrderItem struct {
	ProductID  uint   `xml:"product,attr" migrate:"product_id"`
	Name       string `xml:"name"`
	Quantity   int    `xml:"qty" migrate:"quantity"`
	UnitPrice  int64  `xml:"unit_price"`
	TotalPrice int64  `xml:"total_price,omitempty"`
}

// OrderStatus values are lower case since the warehouse release.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus accepts both the current and the upper case store spelling.
// It is meant to be registered as a migration caster.
func ParseStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}

	return status, nil
}
