// Package catalog provides the devserver's seeded in-memory product catalog.
// Cart and wishlist entries denormalize product fields from it at add time.
package catalog

// Product is one sellable item in the catalog.
type Product struct {
	ID          string  `json:"productId"`
	Name        string  `json:"productName"`
	Price       float64 `json:"productPrice"`
	Photo       string  `json:"productPhoto,omitempty"`
	StockCount  int     `json:"stockCount"`
	Code        string  `json:"productCode,omitempty"`
	Description string  `json:"description,omitempty"`
	Active      bool    `json:"active"`
}

// Catalog is a read-only product lookup. The seeded data covers enough
// variety (stock levels, price points, an inactive product) to exercise the
// cart and wishlist flows.
type Catalog struct {
	byID map[string]Product
}

// NewSeeded creates a catalog preloaded with the development product set.
func NewSeeded() *Catalog {
	products := []Product{
		{ID: "prod-1001", Name: "Wireless Headphones", Price: 59.99, Photo: "/img/headphones.jpg", StockCount: 40, Code: "WH-1001", Description: "Over-ear wireless headphones with 30h battery", Active: true},
		{ID: "prod-1002", Name: "Mechanical Keyboard", Price: 89.50, Photo: "/img/keyboard.jpg", StockCount: 25, Code: "MK-1002", Description: "Tenkeyless mechanical keyboard, brown switches", Active: true},
		{ID: "prod-1003", Name: "USB-C Hub", Price: 34.00, Photo: "/img/hub.jpg", StockCount: 120, Code: "UH-1003", Description: "7-in-1 USB-C hub with HDMI and card reader", Active: true},
		{ID: "prod-1004", Name: "Laptop Stand", Price: 27.25, Photo: "/img/stand.jpg", StockCount: 3, Code: "LS-1004", Description: "Aluminium adjustable laptop stand", Active: true},
		{ID: "prod-1005", Name: "Webcam 1080p", Price: 45.00, Photo: "/img/webcam.jpg", StockCount: 0, Code: "WC-1005", Description: "Full HD webcam with privacy shutter", Active: true},
		{ID: "prod-1006", Name: "Discontinued Mouse", Price: 12.00, Photo: "/img/mouse.jpg", StockCount: 8, Code: "DM-1006", Description: "Legacy 3-button mouse", Active: false},
	}

	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{byID: byID}
}

// Get looks up a product by id.
func (c *Catalog) Get(productID string) (Product, bool) {
	p, ok := c.byID[productID]
	return p, ok
}

// List returns every product in the catalog.
func (c *Catalog) List() []Product {
	out := make([]Product, 0, len(c.byID))
	for _, p := range c.byID {
		out = append(out, p)
	}
	return out
}
