package database

import (
	"time"

	"github.com/google/uuid"
)

// ScreeningEntry is the audit record for one screening call: the verdict,
// the list version that produced it, and who asked.
type ScreeningEntry struct {
	Id                uuid.UUID `db:"id"`
	InsertedAt        time.Time `db:"inserted_at"`
	RequestDurationMs int64     `db:"request_duration_ms"`
	Chain             string    `db:"chain"`
	Address           string    `db:"address"`
	CanonicalAddress  string    `db:"canonical_address"`
	Match             bool      `db:"match"`
	RiskScore         int       `db:"risk_score"`
	Reason            string    `db:"reason"`
	ListSource        string    `db:"list_source"`
	ListSha256        string    `db:"list_sha256"`
	IpHash            string    `db:"ip_hash"`
	Origin            string    `db:"origin"`
}
