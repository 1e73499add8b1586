package transport

import (
	"encoding/json"
	"strings"
)

type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	// Pointer so a free product (price 0) passes required; presence is the
	// nil check, not the zero value.
	Price *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Sizes       []string `json:"sizes"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	Slug        string   `json:"slug"`
}

// UpdateProductRequest carries only the fields present in the request; nil
// pointers are left untouched in the stored document.
type UpdateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,min=1"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	Slug        *string  `json:"slug" validate:"omitempty,min=1"`
}

type CreateOrderItem struct {
	Product  string `json:"product" validate:"required,len=24,hexadecimal"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string            `json:"shippingAddress" validate:"required"`
	PaymentMethod   string            `json:"paymentMethod"`
	GuestName       string            `json:"guestName"`
	GuestEmail      string            `json:"guestEmail" validate:"omitempty,email"`
	GuestPhone      string            `json:"guestPhone"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// DecodeListField decodes an array-valued form field that clients send either
// as a JSON array ("[\"S\",\"M\"]") or as a comma-separated string ("S, M").
// JSON decoding is attempted first.
func DecodeListField(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
