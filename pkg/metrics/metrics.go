package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores Prometheus del motor de inventario.
var (
	movementsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_submitted_total",
		Help: "Movimientos confirmados en el libro, por tipo (IN, OUT, REM).",
	}, []string{"type"})

	movementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_rejected_total",
		Help: "Envíos de movimiento rechazados, por razón (validation, insufficient_stock, conflict).",
	}, []string{"reason"})
)

// MovementSubmitted incrementa el contador de movimientos confirmados.
func MovementSubmitted(movementType string) {
	movementsSubmitted.WithLabelValues(movementType).Inc()
}

// MovementRejected incrementa el contador de rechazos.
func MovementRejected(reason string) {
	movementsRejected.WithLabelValues(reason).Inc()
}
