// internal/shopify/types.go
package shopify

import "time"

type Shop struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type LineItem struct {
	Title string `json:"title"`
}

type ShippingAddress struct {
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	CountryCode string `json:"country_code"`
}

type Fulfillment struct {
	TrackingNumber  string `json:"tracking_number"`
	TrackingURL     string `json:"tracking_url"`
	TrackingCompany string `json:"tracking_company"`
}

type Order struct {
	ID                int64            `json:"id"`
	OrderNumber       int              `json:"order_number"`
	Email             string           `json:"email"`
	Customer          *Customer        `json:"customer"`
	LineItems         []LineItem       `json:"line_items"`
	TotalPrice        string           `json:"total_price"`
	Currency          string           `json:"currency"`
	FulfillmentStatus string           `json:"fulfillment_status"`
	CancelledAt       *time.Time       `json:"cancelled_at"`
	CreatedAt         time.Time        `json:"created_at"`
	ShippingAddress   *ShippingAddress `json:"shipping_address"`
	Fulfillments      []Fulfillment    `json:"fulfillments"`
}

type Variant struct {
	ID                int64  `json:"id"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int    `json:"inventory_quantity"`
	InventoryItemID   int64  `json:"inventory_item_id"`
}

type Image struct {
	Src string `json:"src"`
}

type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Image    *Image    `json:"image"`
	Variants []Variant `json:"variants"`
}

type InventoryLevel struct {
	InventoryItemID int64 `json:"inventory_item_id"`
	LocationID      int64 `json:"location_id"`
	Available       int   `json:"available"`
}
