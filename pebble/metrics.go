// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "registry_store"
	statsInterval   = 10 * time.Second
	levelL0         = "l0"
	levelOther      = "l1+"
	statTombstones  = "tombstones"
	statObsoleteSST = "obsolete_table_bytes"
	statZombieSST   = "zombie_table_bytes"
	statObsoleteWAL = "obsolete_wal_bytes"
	statDiskUsage   = "disk_usage_bytes"
)

// metrics tracks the store as the registry uses it: one batch per committed
// request and point reads for queries.
type metrics struct {
	stallStart time.Time

	commits     prometheus.Counter
	commitBytes prometheus.Counter
	commit      metric.Averager
	get         metric.Averager
	stall       metric.Averager

	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge
	disk              *prometheus.GaugeVec
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_commits",
			Help:      "number of request batches committed",
		}),
		commitBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_bytes",
			Help:      "key and value bytes written by committed batches",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions by input level",
		}, []string{"level"}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "number of compactions in progress",
		}),
		disk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "disk",
			Help:      "sampled pebble disk statistics",
		}, []string{"stat"}),
	}

	errs := wrappers.Errs{}
	var err error
	m.commit, err = metric.NewAverager(namespace+"_batch_commit", "time spent committing a request batch", r)
	errs.Add(err)
	m.get, err = metric.NewAverager(namespace+"_get", "time spent reading one key", r)
	errs.Add(err)
	m.stall, err = metric.NewAverager(namespace+"_write_stall", "time writes were stalled by pebble", r)
	errs.Add(err)
	errs.Add(
		r.Register(m.commits),
		r.Register(m.commitBytes),
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
		r.Register(m.disk),
	)
	return r, m, errs.Err
}

func (m *metrics) observeCommit(size int, start time.Time) {
	m.commits.Inc()
	m.commitBytes.Add(float64(size))
	m.commit.Observe(float64(time.Since(start)))
}

func (m *metrics) sample(s *pebble.Metrics) {
	m.disk.WithLabelValues(statTombstones).Set(float64(s.Keys.TombstoneCount))
	m.disk.WithLabelValues(statObsoleteSST).Set(float64(s.Table.ObsoleteSize))
	m.disk.WithLabelValues(statZombieSST).Set(float64(s.Table.ZombieSize))
	m.disk.WithLabelValues(statObsoleteWAL).Set(float64(s.WAL.ObsoletePhysicalSize))
	m.disk.WithLabelValues(statDiskUsage).Set(float64(s.DiskSpaceUsage()))
}

func (db *Database) listener() *pebble.EventListener {
	return &pebble.EventListener{
		CompactionBegin: func(info pebble.CompactionInfo) {
			db.metrics.activeCompactions.Inc()
			level := levelOther
			if len(info.Input) > 0 && info.Input[0].Level == 0 {
				level = levelL0
			}
			db.metrics.compactions.WithLabelValues(level).Inc()
		},
		CompactionEnd: func(pebble.CompactionInfo) {
			db.metrics.activeCompactions.Dec()
		},
		WriteStallBegin: func(pebble.WriteStallBeginInfo) {
			db.metrics.stallStart = time.Now()
		},
		WriteStallEnd: func() {
			db.metrics.stall.Observe(float64(time.Since(db.metrics.stallStart)))
		},
	}
}

// sampleStats refreshes the disk gauges until the database closes.
func (db *Database) sampleStats() {
	t := time.NewTicker(statsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			db.metrics.sample(db.db.Metrics())
		case <-db.closing:
			return
		}
	}
}
