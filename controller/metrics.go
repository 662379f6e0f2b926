// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	accepted *prometheus.CounterVec
	rejected *prometheus.CounterVec

	hostCalls prometheus.Counter
	replies   prometheus.Counter
	pairs     prometheus.Gauge

	request metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	request, err := metric.NewAverager(
		"controller_request",
		"time spent executing requests",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		request: request,
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "accepted",
			Help:      "number of committed requests by action",
		}, []string{"action"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "rejected",
			Help:      "number of discarded requests by action",
		}, []string{"action"}),
		hostCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "controller",
			Name:      "host_calls",
			Help:      "number of calls issued to the host",
		}),
		replies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "controller",
			Name:      "replies",
			Help:      "number of callbacks delivered",
		}),
		pairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "controller",
			Name:      "registered_pairs",
			Help:      "net pairs registered since start",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.accepted),
		r.Register(m.rejected),
		r.Register(m.hostCalls),
		r.Register(m.replies),
		r.Register(m.pairs),
	)
	return m, errs.Err
}
