package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestor_operations_total",
			Help: "Data-access operations by entity and op",
		},
		[]string{"entity", "op"}, // customer|note|appointment|setting , create|list|get|update|delete|send|export
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		OperationsTotal,
	)
}
