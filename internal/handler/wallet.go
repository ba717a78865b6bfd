package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AlexZinkM/paper-wallet/internal/common"
	"github.com/AlexZinkM/paper-wallet/internal/config"
	"github.com/AlexZinkM/paper-wallet/internal/crypto"
	"github.com/AlexZinkM/paper-wallet/internal/display"
	"github.com/AlexZinkM/paper-wallet/internal/export"
	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("paperwallet/handler")

// Error codes of model.ErrorResponse
const (
	codeBadRequest = "bad_request"
	codeOutOfRange = "out_of_range"
	codeEngine     = "engine_failure"
	codeParse      = "parse_error"
	codeNoBatch    = "no_batch"
	codeBadPath    = "bad_path"
	codeFileExists = "file_exists"
	codeRender     = "render_failed"
	codeIO         = "io_failed"
	codeNoPassword = "no_password"
)

// WalletHandler serves generation, batch display and export endpoints.
type WalletHandler struct {
	orchestrator *wallet.Orchestrator
	pipeline     *export.Pipeline
	formatter    *display.Formatter
	exportDir    string
	password     func() ([]byte, error)
}

// NewWalletHandler creates a WalletHandler. Export paths are confined to
// exportDir.
func NewWalletHandler(o *wallet.Orchestrator, p *export.Pipeline, f *display.Formatter, exportDir string) *WalletHandler {
	return &WalletHandler{
		orchestrator: o,
		pipeline:     p,
		formatter:    f,
		exportDir:    exportDir,
		password:     config.GetPasswordBytes,
	}
}

// Generate handles POST /wallet/generate
// @Summary      Generate wallet batch
// @Description  Generates a new batch of addresses, replacing and wiping the current one
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateRequest  true  "Generation parameters"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	entropy := []byte(req.Entropy)
	defer clear(entropy)

	batch, err := h.orchestrator.Populate(model.GenerationRequest{
		Testnet: req.Testnet,
		ZCount:  req.ZCount,
		TCount:  req.TCount,
		Entropy: entropy,
	})
	switch {
	case err == nil:
	case model.IsValidationError(err):
		writeError(w, http.StatusBadRequest, codeOutOfRange, err)
		return
	case model.IsParseError(err):
		writeError(w, http.StatusBadGateway, codeParse, err)
		return
	default:
		writeError(w, http.StatusBadGateway, codeEngine, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet batch generated successfully",
		Count:   batch.Len(),
	})
}

// Batch handles GET /wallet/batch
// @Summary      Show current batch
// @Description  Returns every record of the current batch with wrapped text and base64 PNG QR codes
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BatchResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/batch [get]
func (h *WalletHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	_ = h.orchestrator.View(func(b *wallet.Batch) error {
		if b.Empty() {
			writeError(w, http.StatusNotFound, codeNoBatch, model.ErrEmptyBatch)
			return nil
		}

		cards := h.formatter.Cards(b)
		defer display.DestroyCards(cards)

		records := b.Records()
		resp := model.BatchResponse{
			Network:   model.NetworkName(b.Testnet()),
			CreatedAt: b.CreatedAt().UTC().Format(time.RFC3339),
			Count:     len(cards),
			Wallets:   make([]model.WalletView, 0, len(cards)),
		}
		for i, c := range cards {
			resp.Wallets = append(resp.Wallets, model.WalletView{
				Index:           c.Index,
				Type:            c.Kind,
				Address:         c.Address,
				AddressLines:    c.AddressLines,
				AddressQR:       c.AddressQR,
				PrivateKey:      string(records[i].PrivateKey.Bytes()),
				PrivateKeyLines: string(c.PrivateKeyLines.Bytes()),
				PrivateKeyQR:    string(c.PrivateKeyQR.Bytes()),
				Path:            c.Path,
			})
		}
		writeJSON(w, http.StatusOK, resp)
		return nil
	})
}

// ExportPDF handles POST /wallet/export/pdf
// @Summary      Export batch as PDF
// @Description  Renders the current batch to a PDF file inside the export directory
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExportRequest  true  "Destination file"
// @Success      200      {object}  model.ExportResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /wallet/export/pdf [post]
func (h *WalletHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, func(b *wallet.Batch, path string) error {
		return h.pipeline.ExportPDF(b, path)
	})
}

// ExportJSON handles POST /wallet/export/json
// @Summary      Export batch as JSON
// @Description  Writes the engine payload of the current batch verbatim, replacing any existing file
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExportRequest  true  "Destination file"
// @Success      200      {object}  model.ExportResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /wallet/export/json [post]
func (h *WalletHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, func(b *wallet.Batch, path string) error {
		return h.pipeline.ExportJSON(b, path)
	})
}

// ExportEncrypted handles POST /wallet/export/encrypted
// @Summary      Export batch as encrypted .cwt
// @Description  Encrypts the engine payload with the password entered at startup (serve --encrypt)
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExportRequest  true  "Destination .cwt file"
// @Success      200      {object}  model.ExportResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /wallet/export/encrypted [post]
func (h *WalletHandler) ExportEncrypted(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, func(b *wallet.Batch, path string) error {
		// Get password as []byte, use it, then zero it immediately
		passwordBytes, err := h.password()
		if err != nil {
			return &noPasswordError{err: err}
		}
		defer clear(passwordBytes)

		return h.pipeline.ExportEncrypted(b, path, passwordBytes)
	})
}

type noPasswordError struct {
	err error
}

func (e *noPasswordError) Error() string {
	return e.err.Error()
}

// export decodes the request, confines the path and runs fn under the
// orchestrator's read lock.
func (h *WalletHandler) export(w http.ResponseWriter, r *http.Request, fn func(b *wallet.Batch, path string) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	path, err := common.ResolveInside(h.exportDir, req.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadPath, err)
		return
	}

	err = h.orchestrator.View(func(b *wallet.Batch) error {
		if b.Empty() {
			return model.ErrEmptyBatch
		}
		return fn(b, path)
	})

	var npe *noPasswordError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, model.ExportResponse{Success: true, Path: path})
	case errors.Is(err, model.ErrEmptyBatch):
		writeError(w, http.StatusNotFound, codeNoBatch, err)
	case errors.As(err, &npe):
		writeError(w, http.StatusBadRequest, codeNoPassword, err)
	case common.IsFileExistsError(err):
		writeError(w, http.StatusConflict, codeFileExists, err)
	case errors.Is(err, crypto.ErrBadExtension):
		writeError(w, http.StatusBadRequest, codeBadPath, err)
	case errors.Is(err, model.ErrRenderFailed):
		writeError(w, http.StatusInternalServerError, codeRender, err)
	default:
		writeError(w, http.StatusInternalServerError, codeIO, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}
