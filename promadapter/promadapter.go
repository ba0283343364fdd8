// Package promadapter exposes a pool's already-atomic counters as a
// prometheus.Collector, so a process that already scrapes Prometheus can
// observe pool health without the core pool package taking a dependency on
// the metrics stack.
package promadapter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observable is the slice of Pool a Collector needs. Pool[T] satisfies it
// for any T without either package importing the other.
type Observable interface {
	LiveCount() int
	AllocCount() int
	TargetSize() int
}

// Collector reports a pool's live/alloc/target gauges plus a claim-wait
// duration histogram fed by RecordClaimWait. Register it once per pool
// instance with a distinct constant label set if more than one pool shares
// a registry.
type Collector struct {
	pool Observable

	labelNames  []string
	labelValues []string

	liveDesc   *prometheus.Desc
	allocDesc  *prometheus.Desc
	targetDesc *prometheus.Desc

	claimWait prometheus.Histogram
}

// New builds a Collector for pool, tagging every reported series with
// labels (e.g. {"pool": "redis-conn"}).
func New(pool Observable, labels prometheus.Labels) *Collector {
	labelNames := make([]string, 0, len(labels))
	labelValues := make([]string, 0, len(labels))
	for k, v := range labels {
		labelNames = append(labelNames, k)
		labelValues = append(labelValues, v)
	}
	c := &Collector{
		pool:        pool,
		labelNames:  labelNames,
		labelValues: labelValues,
		liveDesc: prometheus.NewDesc(
			"stormpot_live_count", "Number of slots currently LIVE or CLAIMED.", labelNames, nil),
		allocDesc: prometheus.NewDesc(
			"stormpot_alloc_count_total", "Total allocation attempts made by this pool.", labelNames, nil),
		targetDesc: prometheus.NewDesc(
			"stormpot_target_size", "Configured target size of this pool.", labelNames, nil),
		claimWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "stormpot_claim_wait_seconds",
			Help:        "Time spent blocked inside Pool.Claim.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}),
	}
	return c
}

// RecordClaimWait reports how long a single Claim call blocked. Callers
// time their own Claim calls and feed the result here; the core pool
// package never measures this itself.
func (c *Collector) RecordClaimWait(d time.Duration) {
	c.claimWait.Observe(d.Seconds())
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.liveDesc
	ch <- c.allocDesc
	ch <- c.targetDesc
	c.claimWait.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.liveDesc, prometheus.GaugeValue, float64(c.pool.LiveCount()), c.labelValues...)
	ch <- prometheus.MustNewConstMetric(c.allocDesc, prometheus.CounterValue, float64(c.pool.AllocCount()), c.labelValues...)
	ch <- prometheus.MustNewConstMetric(c.targetDesc, prometheus.GaugeValue, float64(c.pool.TargetSize()), c.labelValues...)
	c.claimWait.Collect(ch)
}
