package models

import "time"

// Order and payment states.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Order struct {
	ID            string      `json:"id" yaml:"id"`
	TotalAmount   float64     `json:"total_amount" yaml:"total_amount"`
	Status        string      `json:"status" yaml:"status"`
	PaymentStatus string      `json:"payment_status" yaml:"payment_status"`
	Items         []OrderItem `json:"items" yaml:"items"`
	CreatedAt     time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
}

type OrderItem struct {
	ProductID   string  `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	ProductName string  `json:"product_name" yaml:"product_name"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Size        string  `json:"size" yaml:"size"`
	UnitPrice   float64 `json:"unit_price" yaml:"unit_price"`
}

type OrderPage struct {
	Total  int64   `json:"total" yaml:"total"`
	Page   int     `json:"page" yaml:"page"`
	Limit  int     `json:"limit" yaml:"limit"`
	Orders []Order `json:"orders" yaml:"orders"`
}

// Shipping is the delivery address captured at checkout.
type Shipping struct {
	Name       string `json:"shipping_name"`
	Phone      string `json:"shipping_phone"`
	Email      string `json:"shipping_email"`
	City       string `json:"shipping_city"`
	Address    string `json:"shipping_address"`
	Address2   string `json:"shipping_address2"`
	PostalCode string `json:"shipping_postal_code"`
	Notes      string `json:"shipping_notes"`
}

// CreateOrderRequest turns the current cart into an order. SessionID is set for guest checkouts.
type CreateOrderRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Shipping
}

type PaymentRequest struct {
	CardNumber  string `json:"card_number"`
	CardHolder  string `json:"card_holder"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

type PaymentResponse struct {
	OrderID               string `json:"order_id" yaml:"order_id"`
	PaymentStatus         string `json:"payment_status" yaml:"payment_status"`
	TransactionID         string `json:"transaction_id,omitempty" yaml:"transaction_id,omitempty"`
	Message               string `json:"message" yaml:"message"`
	ConfirmationEmailSent bool   `json:"confirmation_email_sent" yaml:"confirmation_email_sent"`
}

type Confirmation struct {
	OrderID       string      `json:"order_id" yaml:"order_id"`
	OrderDate     time.Time   `json:"order_date" yaml:"order_date"`
	TotalAmount   float64     `json:"total_amount" yaml:"total_amount"`
	Items         []OrderItem `json:"items" yaml:"items"`
	Status        string      `json:"status" yaml:"status"`
	PaymentStatus string      `json:"payment_status" yaml:"payment_status"`
	Message       string      `json:"message" yaml:"message"`
}
