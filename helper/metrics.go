package helper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApartmentTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_apartment_transitions_total",
			Help: "Apartment lifecycle transitions by action and outcome",
		},
		[]string{"action", "outcome"},
	)
	FloorPlanSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_floor_plan_saves_total",
			Help: "Floor plan apartment list saves by source",
		},
		[]string{"source"},
	)
	ImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_image_uploads_total",
			Help: "Image uploads by backend, kind and outcome",
		},
		[]string{"backend", "kind", "outcome"},
	)
	EditorSessionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "estate_editor_sessions_open",
			Help: "Floor plan editor sessions currently open",
		},
	)
	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "estate_realtime_connections",
			Help: "Open websocket subscriptions",
		},
	)
)

func ObserveTransition(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	ApartmentTransitions.WithLabelValues(action, outcome).Inc()
}
