package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Leads created, by source",
		},
		[]string{"source"},
	)

	leadStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_status_changes_total",
			Help: "Plain status updates, by target status",
		},
		[]string{"status"},
	)

	leadConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_conversions_total",
			Help: "Lead conversion attempts, by outcome",
		},
		[]string{"outcome"},
	)
)
