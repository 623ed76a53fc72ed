// Chain-family dispatch and ticker alias resolution.
package screening

import "strings"

// chainFamily is the closed set of address-rule families. Adding support for
// a new family means extending this enum and the two switch points in
// canonical.go and validate.go, nothing else.
type chainFamily int

const (
	familyUnknown chainFamily = iota
	familyEVM
	familyBitcoin
)

// chainAliases folds tickers that name an existing chain onto its canonical
// tag. Consulted in exactly one place (ResolveChain), which both the list
// loader and the live screening path go through, so stored and screened
// entries always land on the same key.
var chainAliases = map[string]string{
	"XBT": "BTC", // legacy Bitcoin ticker used by OFAC
}

// evmChains are the chains sharing Ethereum's account model and
// case-insensitive 20-byte hex addresses.
var evmChains = map[string]bool{
	"ETH":   true,
	"EVM":   true,
	"ARB":   true,
	"OP":    true,
	"MATIC": true,
	"BSC":   true,
}

// ResolveChain maps a raw chain ticker to its canonical upper-case tag.
func ResolveChain(chain string) string {
	c := strings.ToUpper(strings.TrimSpace(chain))
	if canonical, ok := chainAliases[c]; ok {
		return canonical
	}
	return c
}

func familyOf(chain string) chainFamily {
	c := ResolveChain(chain)
	if evmChains[c] {
		return familyEVM
	}
	if c == "BTC" {
		return familyBitcoin
	}
	return familyUnknown
}

// IsKnownChain reports whether a canonicalization/validation rule exists for
// the chain. Screening an unknown chain still works - it degrades to exact
// matching on the trimmed string - but callers may want to surface a warning,
// since a misspelled chain code degrades silently otherwise.
func IsKnownChain(chain string) bool {
	return familyOf(chain) != familyUnknown
}
