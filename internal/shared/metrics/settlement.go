package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Settlement agrupa os coletores das execuções de liquidação
type Settlement struct {
	Settled  *prometheus.CounterVec   // apostas gravadas por modo/resultado
	Issues   *prometheus.CounterVec   // pernas que ficaram pendentes, por motivo
	Passes   *prometheus.HistogramVec // duração de cada execução
	Consumed prometheus.Counter       // eventos game_final lidos
	Errors   *prometheus.CounterVec   // erros por estágio
}

func NewSettlement(reg prometheus.Registerer) *Settlement {
	m := &Settlement{
		Settled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_bets_settled_total", Help: "apostas gravadas",
		}, []string{"mode", "result"}),
		Issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_issues_total", Help: "pernas não resolvidas por motivo",
		}, []string{"kind"}),
		Passes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "settlement_pass_duration_seconds",
			Help:    "duração das execuções",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"mode"}),
		Consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "settlement_game_final_consumed_total", Help: "eventos game_final consumidos",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_errors_total", Help: "erros por estágio",
		}, []string{"stage"}),
	}
	reg.MustRegister(m.Settled, m.Issues, m.Passes, m.Consumed, m.Errors)
	return m
}

func (m *Settlement) ObserveSettled(mode, result string) {
	m.Settled.WithLabelValues(mode, result).Inc()
}

func (m *Settlement) ObserveIssue(kind string) { m.Issues.WithLabelValues(kind).Inc() }

func (m *Settlement) ObservePass(mode string, d time.Duration) {
	m.Passes.WithLabelValues(mode).Observe(d.Seconds())
}

func (m *Settlement) ObserveError(stage string) { m.Errors.WithLabelValues(stage).Inc() }
