/*
Package metrics provides Prometheus-based metric collection for the
arcbridge control plane.

# Overview

The package registers all metrics through a single Collector using the
promauto auto-registration mechanism, so no manual Registry management is
needed. Metrics are isolated by namespace and grouped with labels for
dashboarding and alerting.

# Core types

  - Collector — holds the Counter, Histogram, and Gauge vectors, grouped
    by concern.

# Metric groups

  - Signal metrics: events published per signal, listener faults.
  - Stream metrics: connected observer gauge, failed sends.
  - Registry metrics: per-registry size gauges, command and intent writes.
  - HTTP metrics: request totals and duration, grouped by method/path,
    status classified as 2xx/3xx/4xx/5xx.
*/
package metrics
