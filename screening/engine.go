// Exact-match screening of blockchain addresses against a sanctioned set.
package screening

import (
	"github.com/sanctionwatch/screening-endpoint/types"
)

// Screen classifies one address against the sanctioned set. It is a pure
// function of its four inputs: no I/O, no internal state between calls, safe
// to invoke concurrently from many callers against a shared read-only set.
//
// A syntactically invalid address short-circuits to a non-match without ever
// consulting the set. A hit is an exact post-canonicalization match against
// an authoritative list, so the risk score is pinned to the maximum.
func Screen(chain, address string, set *SanctionedSet, version types.ListVersion) types.ScreenResult {
	result := types.ScreenResult{
		Address:     address,
		Chain:       chain,
		ListVersion: version,
	}

	if !IsSyntacticallyValid(chain, address) {
		result.Reason = types.ReasonInvalidAddressSyntax
		return result
	}

	canonical := Canonicalize(chain, address)
	if set.Contains(chain, canonical) {
		result.Match = true
		result.RiskScore = types.MaxRiskScore
		result.Reason = types.ReasonExactMatch
		return result
	}

	result.Reason = types.ReasonNoExactMatch
	return result
}
