// Package metrics defines the Prometheus collectors of the service. All
// collectors register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workforce"

// HTTPRequestsTotal counts finished requests.
// Labels: method, route (gin full path or "unmatched"), status (HTTP code).
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// EmployeeOperationsTotal counts successful employee writes.
// Label: operation (create, replace, partial_update, soft_delete).
var EmployeeOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_operations_total",
		Help:      "Total number of successful employee write operations.",
	},
	[]string{"operation"},
)

// EmployeeListCacheTotal counts list cache lookups. Label: result (hit, miss).
var EmployeeListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_list_cache_total",
		Help:      "Total number of employee list cache lookups, by result.",
	},
	[]string{"result"},
)

// OutboxEventsTotal counts outbox publish attempts. Label: result (sent, failed).
var OutboxEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_events_total",
		Help:      "Total number of outbox publish attempts, by result.",
	},
	[]string{"result"},
)
