package screening

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Compiled once at process start; pure read-only data.
var (
	btcBech32RE = regexp.MustCompile(`^(bc1|tb1|bcrt1)[a-z0-9]{20,90}$`)
	btcBase58RE = regexp.MustCompile(`^[13][a-km-zA-HJ-NP-Z1-9]{25,34}$`)
)

// IsSyntacticallyValid checks that an address is structurally plausible for
// its declared chain, before any canonicalization or lookup.
//
// EVM: optional 0x prefix followed by exactly 40 hex characters, any case.
// Bitcoin: either the bech32 form (bc1/tb1/bcrt1 prefix, compared
// case-insensitively) or the legacy base58 form (starts with 1 or 3, base58
// alphabet, length 26-35). Unknown chains are always valid: absence of a rule
// is not evidence of invalidity, and a false rejection over-blocks.
func IsSyntacticallyValid(chain, address string) bool {
	a := strings.TrimSpace(address)

	switch familyOf(chain) {
	case familyEVM:
		return common.IsHexAddress(a)
	case familyBitcoin:
		return btcBech32RE.MatchString(strings.ToLower(a)) || btcBase58RE.MatchString(a)
	default:
		return true
	}
}
