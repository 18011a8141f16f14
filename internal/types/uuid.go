package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	UUID_PREFIX_STAT_ROW = "stat"
	UUID_PREFIX_JOB_RUN  = "run"
)

// GenerateUUID returns a plain v4 UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateUUIDWithPrefix returns a prefixed UUID of the form <prefix>_<uuid>
// with the dashes stripped to keep identifiers compact in log lines.
func GenerateUUIDWithPrefix(prefix string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	if prefix == "" {
		return id
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}
