package screening

import "strings"

// bech32 human-readable prefixes: mainnet, testnet, regtest.
var bech32Prefixes = []string{"bc1", "tb1", "bcrt1"}

// Canonicalize maps a (chain, raw address) pair to the single normalized form
// used for set membership. Pure and total: every input yields a string, and
// the function is idempotent.
//
// EVM addresses are case-insensitive (mixed case is only the EIP-55 checksum
// convention), so they fold to lower-case. Bitcoin bech32 addresses are
// case-insensitive per the encoding specification and fold too; legacy base58
// addresses are case-sensitive and must pass through untouched - folding
// would corrupt them. Chains without a rule are trimmed only.
func Canonicalize(chain, address string) string {
	a := strings.TrimSpace(address)

	switch familyOf(chain) {
	case familyEVM:
		return strings.ToLower(a)
	case familyBitcoin:
		if hasBech32Prefix(a) {
			return strings.ToLower(a)
		}
		return a
	default:
		return a
	}
}

func hasBech32Prefix(address string) bool {
	lower := strings.ToLower(address)
	for _, prefix := range bech32Prefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
