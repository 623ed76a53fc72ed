package metrics

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

var (
	listRefreshErr      = metrics.NewCounter("list_refresh_error_total")
	sanctionedAddresses = metrics.NewGauge("sanctioned_addresses", nil)
)

func IncListRefreshErr() {
	listRefreshErr.Inc()
}

func SetSanctionedAddresses(n int) {
	sanctionedAddresses.Set(float64(n))
}

func sourceDownloadKey(source string) string {
	return fmt.Sprintf(`list_downloads_total{source="%s"}`, source)
}

func ReportSourceDownloaded(source string) {
	metrics.GetOrCreateCounter(sourceDownloadKey(source)).Inc()
}
