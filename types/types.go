package types

import "time"

// Screening classification reasons, attached to every ScreenResult.
const (
	ReasonInvalidAddressSyntax = "invalid_address_syntax"
	ReasonExactMatch           = "exact_match_authoritative_sanctions_address"
	ReasonNoExactMatch         = "no_exact_match"
)

// MaxRiskScore is assigned to exact matches against an authoritative list.
// Matches are deterministic, not probabilistic, so no gradation exists.
const MaxRiskScore = 100

// ListVersion identifies the sanctions-list snapshot a verdict was produced
// against, so callers can audit which retrieval backed a decision. Never
// mutated after construction.
type ListVersion struct {
	Source      string    `json:"source"`
	RetrievedAt time.Time `json:"retrieved_at_utc"`
	SHA256      string    `json:"sha256"`
	URI         string    `json:"uri"`
}

// ListMetadata is the metadata block of a normalized list document as it
// appears on the wire. Timestamps stay strings here; parsing and defaulting
// happen in the loader.
type ListMetadata struct {
	Source      string `json:"source"`
	RetrievedAt string `json:"retrieved_at_utc"`
	SHA256      string `json:"sha256"`
	URI         string `json:"uri"`
}

// AddressEntry is one (chain, address) pair of a normalized list document.
type AddressEntry struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

// ListDocument is the normalized list format produced by the connectors and
// consumed by the screening loader.
type ListDocument struct {
	Metadata  ListMetadata   `json:"metadata"`
	Addresses []AddressEntry `json:"addresses"`
}

// ScreenRequest asks for one address to be screened.
type ScreenRequest struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

// ScreenResult is the classified outcome of screening one address. Address
// holds the input exactly as supplied. Constructed once, never mutated.
type ScreenResult struct {
	Address     string      `json:"address"`
	Chain       string      `json:"chain"`
	Match       bool        `json:"match"`
	RiskScore   int         `json:"risk_score"`
	Reason      string      `json:"reason"`
	ListVersion ListVersion `json:"list_version"`
}

type HealthResponse struct {
	Now          time.Time   `json:"time"`
	StartTime    time.Time   `json:"startTime"`
	Version      string      `json:"version"`
	ListVersion  ListVersion `json:"listVersion"`
	NumAddresses int         `json:"numAddresses"`
}
