package parcel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTrackingNumber generates a public human-facing tracking number of the
// form "PKG-<unix seconds>-<8 hex chars>". The timestamp component makes
// numbers roughly sortable by booking time; the random suffix keeps them
// unique within a second.
func NewTrackingNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("PKG-%d-%s", now.Unix(), suffix)
}
