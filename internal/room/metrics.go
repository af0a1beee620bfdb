package room

import (
	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "incidentroom"

var (
	roomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rooms",
			Name:      "created_total",
			Help:      "Total incident rooms created",
		},
	)

	stageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rooms",
			Name:      "stage_transitions_total",
			Help:      "Total stage transitions by previous and new stage",
		},
		[]string{"from", "to"},
	)

	disclosureDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "disclosure",
			Name:      "decisions_total",
			Help:      "Disclosure workflow outcomes",
		},
		[]string{"outcome"},
	)

	evidenceCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evidence",
			Name:      "collected_total",
			Help:      "Evidence items collected by source and outcome",
		},
		[]string{"source", "outcome"},
	)
)

func recordRoomCreated() {
	roomsCreated.Inc()
}

func recordStageTransition(from, to domain.RoomStage) {
	stageTransitions.WithLabelValues(string(from), string(to)).Inc()
}

func recordDisclosureDecision(outcome string) {
	disclosureDecisions.WithLabelValues(outcome).Inc()
}

func recordEvidenceCollected(source, outcome string) {
	evidenceCollected.WithLabelValues(source, outcome).Inc()
}
