package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus del servicio. Se exponen en /metrics cuando
// METRICS_ENABLED está activo.
var (
	movementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldops",
		Name:      "movements_total",
		Help:      "Movimientos de inventario registrados, por acción.",
	}, []string{"action"})

	movementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldops",
		Name:      "movements_rejected_total",
		Help:      "Movimientos rechazados por validación o conflicto, por acción.",
	}, []string{"action"})
)
