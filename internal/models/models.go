package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name"          json:"name"`
	Email     string             `bson:"email"         json:"email"`
	Password  string             `bson:"password"      json:"-"`
	Role      string             `bson:"role"          json:"role"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title"         json:"title"`
	Description string             `bson:"description"   json:"description"`
	Price       float64            `bson:"price"         json:"price"`
	Category    string             `bson:"category"      json:"category"`
	Sizes       []string           `bson:"sizes"         json:"sizes"`
	Tags        []string           `bson:"tags"          json:"tags"`
	Images      []string           `bson:"images"        json:"images"`
	Stock       int                `bson:"stock"         json:"stock"`
	Slug        string             `bson:"slug"          json:"slug"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem snapshots the product's price at order time; later product edits
// never change historical orders.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product"  json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price"    json:"price"`
}

type Order struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"       json:"_id"`
	User            *primitive.ObjectID `bson:"user,omitempty"      json:"user,omitempty"`
	GuestName       string              `bson:"guestName,omitempty" json:"guestName,omitempty"`
	GuestEmail      string              `bson:"guestEmail,omitempty" json:"guestEmail,omitempty"`
	GuestPhone      string              `bson:"guestPhone,omitempty" json:"guestPhone,omitempty"`
	Items           []OrderItem         `bson:"items"               json:"items"`
	TotalAmount     float64             `bson:"totalAmount"         json:"totalAmount"`
	Status          string              `bson:"status"              json:"status"`
	ShippingAddress string              `bson:"shippingAddress"     json:"shippingAddress"`
	PaymentMethod   string              `bson:"paymentMethod"       json:"paymentMethod"`
	CreatedAt       time.Time           `bson:"createdAt"           json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt"           json:"updatedAt"`
}

type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name"          json:"name"`
	Email     string             `bson:"email"         json:"email"`
	Message   string             `bson:"message"       json:"message"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
