package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/viacerta/boleto-cnab-go/internal/infra/observability"
	"github.com/viacerta/boleto-cnab-go/internal/service"
)

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc *service.Emission, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		// Bill rendering
		r.Post("/boletos/render", renderBillHandler(svc, logger))
		r.Post("/boletos/render-batch", renderBatchHandler(svc, logger))

		// CNAB remittance files
		r.Post("/remessas", generateRemessaHandler(svc, logger))

		// Inbound barcode validation
		r.Post("/barcodes/validate", validateBarcodeHandler(svc, logger))

		// Registry and metrics
		r.Get("/banks", listBanksHandler(svc, logger))
		r.Get("/metrics/emission", emissionMetricsHandler(metrics))
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
