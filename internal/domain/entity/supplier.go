package entity

import "time"

// Supplier proveedor de mercancía para facturas de compra.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Active    bool
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
