package work

import "time"

// Work is a content item created in the editor. Work rows in the entity
// store are the relational evidence source for the creation metric; the
// client-emitted creation event is the second, independent source.
type Work struct {
	ID         string    `db:"id"`
	TenantID   string    `db:"tenant_id"`
	UID        int64     `db:"uid"`
	TemplateID string    `db:"template_id"`
	Platform   string    `db:"platform"`
	CreatedAt  time.Time `db:"created_at"`
}
