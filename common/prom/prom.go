package prom

import (
	"time"

	"emperror.dev/errors"
	"github.com/StikStore/stikstore.github.io/common/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var (
	ConfMetricsFile = config.RegisterOption("patreonsync.metrics_file", "Path of a node_exporter textfile collector file to write run metrics to, disabled if empty", "")

	// Registry holds only the sync metrics, the go runtime metrics of a
	// short lived process are of no use in a textfile.
	Registry = prometheus.NewRegistry()
)

var (
	APIResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "patreonsync_api_responses_total",
		Help: "Patreon api responses by status class",
	}, []string{"class"})

	PagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "patreonsync_member_pages_fetched_total",
		Help: "Member listing pages fetched",
	})

	ActiveMembers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "patreonsync_active_members",
		Help: "Active patrons seen in the last run",
	})

	Tiers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "patreonsync_tiers",
		Help: "Distinct tiers seen in the last run",
	})

	Subscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "patreonsync_subscribers",
		Help: "Subscribers written to the snapshot in the last run",
	})

	LastRunSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "patreonsync_last_run_success",
		Help: "1 if the last run completed, 0 otherwise",
	})

	LastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "patreonsync_last_success_timestamp_seconds",
		Help: "Unix time of the last completed run",
	})
)

func init() {
	Registry.MustRegister(APIResponses, PagesFetched, ActiveMembers, Tiers, Subscribers, LastRunSuccess, LastSuccess)
}

// MarkRun records the outcome of a run.
func MarkRun(success bool, t time.Time) {
	if !success {
		LastRunSuccess.Set(0)
		return
	}

	LastRunSuccess.Set(1)
	LastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes the registry to path in the text exposition format.
// The write goes through a temp file and a rename so the collector never
// reads a half written file.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}

	err := prometheus.WriteToTextfile(path, Registry)
	if err != nil {
		return errors.WithMessage(err, "prom: write textfile")
	}

	logrus.Debug("Wrote metrics to ", path)
	return nil
}
