package ledger

import "time"

// OrderStatusPaid is the only status counted by the order collector.
const OrderStatusPaid = "paid"

// Order is a paid order joined with its per-order extension record. Amounts
// are denominated in the ledger's minor currency unit (cents); conversion to
// major units happens exactly once, at materialization time.
type Order struct {
	ID          string    `db:"id"`
	TenantID    string    `db:"tenant_id"`
	UID         int64     `db:"uid"`
	AmountCents int64     `db:"amount_cents"`
	Platform    string    `db:"platform"`
	TemplateID  string    `db:"template_id"`
	Status      string    `db:"status"`
	PaidAt      time.Time `db:"paid_at"`
}
