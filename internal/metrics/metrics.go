// Package metrics exports training progress as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/born-ml/densenet/internal/nn"
)

const namespace = "densenet"

// Collector implements nn.Observer on top of Prometheus metric vectors.
// Every series is labelled with the run (network) id.
type Collector struct {
	Epochs      *prometheus.CounterVec
	Loss        *prometheus.GaugeVec
	RMSE        *prometheus.GaugeVec
	Correlation *prometheus.GaugeVec
	Evaluations *prometheus.CounterVec
}

var _ nn.Observer = (*Collector)(nil)

// NewCollector creates unregistered metric vectors.
func NewCollector() *Collector {
	return &Collector{
		Epochs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "epochs_total",
				Help:      "Training epochs completed.",
			}, []string{"run"}),
		Loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "epoch_loss",
				Help:      "Mean squared error of the last completed epoch.",
			}, []string{"run"}),
		RMSE: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "eval_rmse",
				Help:      "RMSE of the last evaluation.",
			}, []string{"run"}),
		Correlation: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "eval_correlation",
				Help:      "Pearson correlation of the last evaluation.",
			}, []string{"run"}),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Evaluations run.",
			}, []string{"run"}),
	}
}

// Register adds every vector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.Epochs, c.Loss, c.RMSE, c.Correlation, c.Evaluations} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// ObserveEpoch implements nn.Observer.
func (c *Collector) ObserveEpoch(run string, _ int, loss float64) {
	c.Epochs.WithLabelValues(run).Inc()
	c.Loss.WithLabelValues(run).Set(loss)
}

// ObserveReport implements nn.Observer.
func (c *Collector) ObserveReport(run string, r nn.Report) {
	c.Evaluations.WithLabelValues(run).Inc()
	c.RMSE.WithLabelValues(run).Set(r.RMSE)
	c.Correlation.WithLabelValues(run).Set(r.Correlation)
}
