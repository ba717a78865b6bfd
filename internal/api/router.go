package api

import (
	"net/http"

	_ "github.com/AlexZinkM/paper-wallet/docs"
	"github.com/AlexZinkM/paper-wallet/internal/config"
	"github.com/AlexZinkM/paper-wallet/internal/display"
	"github.com/AlexZinkM/paper-wallet/internal/export"
	"github.com/AlexZinkM/paper-wallet/internal/handler"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(o *wallet.Orchestrator, p *export.Pipeline, reg *prometheus.Registry) http.Handler {
	walletHandler := handler.NewWalletHandler(o, p, display.NewFormatter(config.Get().QRSize), config.GetExportDir())

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Metrics
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Wallet endpoints
	mux.HandleFunc("/wallet/generate", walletHandler.Generate)
	mux.HandleFunc("/wallet/batch", walletHandler.Batch)
	mux.HandleFunc("/wallet/export/pdf", walletHandler.ExportPDF)
	mux.HandleFunc("/wallet/export/json", walletHandler.ExportJSON)
	mux.HandleFunc("/wallet/export/encrypted", walletHandler.ExportEncrypted)

	return mux
}
