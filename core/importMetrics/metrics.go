// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package importMetrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const JobName = "idroi"

// Metrics - counters for one run. They live in their own registry so a run only ever pushes its own values
type Metrics struct {
	Registry *prometheus.Registry

	ROIsCreated      prometheus.Counter
	ROIsSkipped      prometheus.Counter
	ROIsSaved        prometheus.Counter
	ROIsRemoved      prometheus.Counter
	BatchesFailed    prometheus.Counter
	ImagesMapped     prometheus.Gauge
	BatchSaveSeconds prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ROIsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "idroi_rois_created_total",
			Help: "Number of point ROIs built from object rows.",
		}),
		ROIsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "idroi_rois_skipped_total",
			Help: "Number of ROIs not built because their image could not be found.",
		}),
		ROIsSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "idroi_rois_saved_total",
			Help: "Number of ROIs saved to OMERO.",
		}),
		ROIsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "idroi_rois_removed_total",
			Help: "Number of previously imported ROIs deleted from OMERO.",
		}),
		BatchesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "idroi_batches_failed_total",
			Help: "Number of per-image batches that failed to save or delete.",
		}),
		ImagesMapped: factory.NewGauge(prometheus.GaugeOpts{
			Name: "idroi_images_mapped",
			Help: "Number of screen images whose names mapped to a plate position.",
		}),
		BatchSaveSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "idroi_batch_save_seconds",
			Help:    "Duration of per-image ROI batch saves.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
}

// ObserveBatchSave - records how long a batch took since start
func (m *Metrics) ObserveBatchSave(start time.Time) {
	m.BatchSaveSeconds.Observe(time.Since(start).Seconds())
}

// Push - sends everything to a Pushgateway, grouped by the given labels (eg screen id)
func (m *Metrics) Push(gatewayURL string, grouping map[string]string) error {
	pusher := push.New(gatewayURL, JobName).Gatherer(m.Registry)
	for k, v := range grouping {
		pusher = pusher.Grouping(k, v)
	}

	if err := pusher.Push(); err != nil {
		return errors.Wrapf(err, "failed to push metrics to %v", gatewayURL)
	}
	return nil
}
