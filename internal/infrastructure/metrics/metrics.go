// Package metrics colectores Prometheus de la API: peticiones HTTP, transiciones de flujo,
// escaneos e importaciones. Implementa workflow.Recorder e importing.Recorder.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "labops"

// Registry agrupa los colectores sobre un registro propio (no el global).
type Registry struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	transitions  *prometheus.CounterVec
	transitionD  *prometheus.HistogramVec
	scans        *prometheus.CounterVec
	importRows   *prometheus.CounterVec
	imports      *prometheus.CounterVec
}

// New registra los colectores. withRuntime añade los de proceso y runtime de Go.
func New(withRuntime bool) *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "Peticiones HTTP atendidas por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "workflow", Name: "transitions_total",
			Help: "Transiciones start/stop de pasos por resultado.",
		}, []string{"action", "result"}),
		transitionD: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "workflow", Name: "transition_duration_seconds",
			Help:    "Duración de la transacción de una transición.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"action"}),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "workflow", Name: "scans_total",
			Help: "Códigos escaneados por acción decodificada y resultado.",
		}, []string{"action", "result"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "import", Name: "rows_total",
			Help: "Filas importadas u omitidas por tipo de archivo.",
		}, []string{"kind", "outcome"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "import", Name: "files_total",
			Help: "Archivos procesados por tipo.",
		}, []string{"kind"}),
	}
	r.reg.MustRegister(r.httpRequests, r.httpDuration, r.transitions, r.transitionD, r.scans, r.importRows, r.imports)
	if withRuntime {
		r.reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return r
}

// Handler exposición en formato texto de Prometheus.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// ObserveHTTP registra una petición. route es la plantilla de la ruta (/api/batches/:id), no la URL.
func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Registry) ObserveTransition(action, result string, elapsed time.Duration) {
	r.transitions.WithLabelValues(action, result).Inc()
	r.transitionD.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (r *Registry) ObserveScan(action, result string) {
	r.scans.WithLabelValues(action, result).Inc()
}

func (r *Registry) ObserveImport(kind string, imported, skipped int) {
	r.imports.WithLabelValues(kind).Inc()
	r.importRows.WithLabelValues(kind, "imported").Add(float64(imported))
	r.importRows.WithLabelValues(kind, "skipped").Add(float64(skipped))
}
