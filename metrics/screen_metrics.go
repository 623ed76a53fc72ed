package metrics

import "github.com/VictoriaMetrics/metrics"

var (
	screenMatch         = metrics.NewCounter(`screenings_total{result="match"}`)
	screenNoMatch       = metrics.NewCounter(`screenings_total{result="no_match"}`)
	screenInvalidSyntax = metrics.NewCounter(`screenings_total{result="invalid_syntax"}`)
	screenCacheHit      = metrics.NewCounter("screening_cache_hits_total")
	unknownChain        = metrics.NewCounter("screening_unknown_chain_total")
)

func IncScreenMatch() {
	screenMatch.Inc()
}

func IncScreenNoMatch() {
	screenNoMatch.Inc()
}

func IncScreenInvalidSyntax() {
	screenInvalidSyntax.Inc()
}

func IncScreenCacheHit() {
	screenCacheHit.Inc()
}

func IncUnknownChainScreening() {
	unknownChain.Inc()
}
