// Package models holds the wire types shared between the storefront and the
// remote TechStore API. The API identifies records by an "id_key" field; the
// client never invents ids, it only echoes the ones the server assigned.
package models

type Product struct {
	ID          int     `json:"id_key"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int     `json:"category_id"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
}

type Category struct {
	ID   int    `json:"id_key"`
	Name string `json:"name"`
}

// Client is a registered user. The API exposes both "id" and "id_key" on this
// resource; "id_key" is the one that is always populated.
type Client struct {
	ID        int    `json:"id_key"`
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	IsAdmin   bool   `json:"is_admin"`
}

type Address struct {
	ID       int    `json:"id_key"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	City     string `json:"city"`
	ClientID int    `json:"client_id"`
}

type Order struct {
	ID             int           `json:"id_key"`
	Date           string        `json:"date"`
	Total          float64       `json:"total"`
	DeliveryMethod string        `json:"delivery_method"`
	Status         string        `json:"status"`
	ClientID       int           `json:"client_id"`
	BillID         int           `json:"bill_id"`
	OrderDetails   []OrderDetail `json:"order_details,omitempty"`
}

type OrderDetail struct {
	ID        int     `json:"id_key"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
}

type Bill struct {
	ID          int     `json:"id_key"`
	BillNumber  string  `json:"bill_number"`
	Date        string  `json:"date"`
	Total       float64 `json:"total"`
	PaymentType string  `json:"payment_type"`
	ClientID    int     `json:"client_id"`
}

type Review struct {
	ID        int    `json:"id_key"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	ProductID int    `json:"product_id"`
}

// Create payloads. The order and bill endpoints take numeric codes for
// status, delivery method and payment type even though they render them back
// as strings; the codes below are the only ones this client ever sends.

const (
	PaymentTypeCard    = 1
	OrderStatusPending = 1
	DeliveryPickup     = 1
)

type ProductCreate struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int     `json:"category_id"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
}

type CategoryCreate struct {
	Name string `json:"name"`
}

type ClientCreate struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddressCreate struct {
	Street   string `json:"street"`
	Number   string `json:"number"`
	City     string `json:"city"`
	ClientID int    `json:"client_id"`
}

type OrderCreate struct {
	Total          float64 `json:"total"`
	DeliveryMethod int     `json:"delivery_method"`
	ClientID       int     `json:"client_id"`
	Status         int     `json:"status"`
	BillID         int     `json:"bill_id"`
	Date           string  `json:"date"`
}

type OrderDetailCreate struct {
	Quantity  int     `json:"quantity"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Price     float64 `json:"price"`
}

type BillCreate struct {
	BillNumber  string  `json:"bill_number"`
	Date        string  `json:"date"`
	Total       float64 `json:"total"`
	PaymentType int     `json:"payment_type"`
	ClientID    int     `json:"client_id"`
}

type ReviewCreate struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	ProductID int    `json:"product_id"`
}
