package domain

import "time"

// Equipment is one inventory line item. UnitPrice is stored in cents to keep
// arithmetic exact.
type Equipment struct {
	ID        int64
	Name      string
	Quantity  int
	UnitPrice int64
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EquipmentMutableAttributes is the update allow-list for equipment rows.
var EquipmentMutableAttributes = []string{"name", "quantity", "unit_price", "category"}
