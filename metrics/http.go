package metrics

import "github.com/VictoriaMetrics/metrics"

// The set of statuses the screening endpoint actually emits is small, so
// fixed counters are simpler and cheaper than GetOrCreate on every request.
var (
	statusOK                  = metrics.NewCounter(`http_requests_total{status="200"}`)
	statusBadRequest          = metrics.NewCounter(`http_requests_total{status="400"}`)
	statusNotFound            = metrics.NewCounter(`http_requests_total{status="404"}`)
	statusInternalServerError = metrics.NewCounter(`http_requests_total{status="500"}`)
)

func StatusOKInc()                  { statusOK.Inc() }
func StatusBadRequestInc()          { statusBadRequest.Inc() }
func StatusNotFoundInc()            { statusNotFound.Inc() }
func StatusInternalServerErrorInc() { statusInternalServerError.Inc() }
