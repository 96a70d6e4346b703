package kvstate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	reasonUnavailable = "unavailable"
	reasonCorrupt     = "corrupt"
)

var readFallbacks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "comicverse_state_read_fallbacks_total",
		Help: "State reads that fell back to the empty default.",
	},
	[]string{"reason"},
)
