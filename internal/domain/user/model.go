package user

import (
	"time"

	"github.com/maka2016/maka-stats/internal/types"
)

// User carries the slice of the user entity this engine needs: the
// authoritative registration date and the platform recorded at registration.
// The registration platform, not the drifting per-event platform string,
// decides a registered user's device dimension for a whole statistics run.
type User struct {
	UID              int64     `db:"uid"`
	TenantID         string    `db:"tenant_id"`
	RegisteredAt     time.Time `db:"registered_at"`
	RegisterPlatform string    `db:"register_platform"`
}

// Device returns the canonical device for the user.
func (u *User) Device() types.DeviceType {
	return types.NormalizeDevice(u.RegisterPlatform)
}
