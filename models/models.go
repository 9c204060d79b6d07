package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Product is the inventory entity shared by the UI and the products API.
// Every field except ID may be null on the wire.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p" json:"-"`

	ID               int64            `bun:"id,pk,autoincrement" json:"id"`
	Name             *string          `bun:"name" json:"name"`
	StockKeepingUnit *string          `bun:"sku" json:"stockKeepingUnit"`
	Location         *string          `bun:"location" json:"location"`
	Price            *decimal.Decimal `bun:"price" json:"price"`
	Quantity         *int64           `bun:"quantity" json:"quantity"`
}

// NameOrEmpty returns the name, or "" when unset.
func (p Product) NameOrEmpty() string {
	return deref(p.Name)
}

// SKUOrEmpty returns the stock keeping unit, or "" when unset.
func (p Product) SKUOrEmpty() string {
	return deref(p.StockKeepingUnit)
}

// LocationOrEmpty returns the location, or "" when unset.
func (p Product) LocationOrEmpty() string {
	return deref(p.Location)
}

// PriceOrZero is the sort key for price: a missing price counts as zero.
func (p Product) PriceOrZero() decimal.Decimal {
	if p.Price == nil {
		return decimal.Zero
	}
	return *p.Price
}

// QuantityOrZero is the sort key for stock: a missing quantity counts as zero.
func (p Product) QuantityOrZero() int64 {
	if p.Quantity == nil {
		return 0
	}
	return *p.Quantity
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// AuditLog captures immutable change history for product mutations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Actor      string    `bun:"actor,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
