package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the domain counters exported next to the HTTP metrics.
// Each server instance owns its registry so several apps can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	RecordsCreated   *prometheus.CounterVec
	RecordsDeleted   *prometheus.CounterVec
	FavoritesCreated *prometheus.CounterVec
	NotFound         *prometheus.CounterVec
}

// New creates and registers the domain counters on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RecordsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starwars_records_created_total",
				Help: "Total number of records created, by entity",
			},
			[]string{"entity"},
		),
		RecordsDeleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starwars_records_deleted_total",
				Help: "Total number of records deleted, by entity",
			},
			[]string{"entity"},
		),
		FavoritesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starwars_favorites_created_total",
				Help: "Total number of favorites created, by target kind",
			},
			[]string{"kind"},
		),
		NotFound: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starwars_not_found_total",
				Help: "Total number of lookups answered with 404, by entity",
			},
			[]string{"entity"},
		),
	}

	m.Registry.MustRegister(
		m.RecordsCreated,
		m.RecordsDeleted,
		m.FavoritesCreated,
		m.NotFound,
	)

	return m
}

// Created counts a created record of the given entity
func (m *Metrics) Created(entity string) {
	if m != nil {
		m.RecordsCreated.WithLabelValues(entity).Inc()
	}
}

// Deleted counts a deleted record of the given entity
func (m *Metrics) Deleted(entity string) {
	if m != nil {
		m.RecordsDeleted.WithLabelValues(entity).Inc()
	}
}

// Favorite counts a created favorite of the given kind
func (m *Metrics) Favorite(kind string) {
	if m != nil {
		m.FavoritesCreated.WithLabelValues(kind).Inc()
	}
}

// Missing counts a 404 lookup of the given entity
func (m *Metrics) Missing(entity string) {
	if m != nil {
		m.NotFound.WithLabelValues(entity).Inc()
	}
}
