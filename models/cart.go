package models

type Cart struct {
	ID         string     `json:"id" yaml:"id"`
	TotalItems int        `json:"total_items" yaml:"total_items"`
	TotalPrice float64    `json:"total_price" yaml:"total_price"`
	Items      []CartItem `json:"items" yaml:"items"`
}

type CartItem struct {
	ID          string  `json:"id" yaml:"id"`
	ProductID   string  `json:"product_id" yaml:"product_id"`
	ProductName string  `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Size        string  `json:"size" yaml:"size"`
	Price       float64 `json:"price,omitempty" yaml:"price,omitempty"`
	ImageURL    string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Message     string  `json:"message,omitempty" yaml:"message,omitempty"`
}

// AddCartItemRequest sets SessionID only for guest carts.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	SessionID string `json:"session_id,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}
