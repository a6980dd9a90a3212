package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/arcbridge/rho2"
	"github.com/BaSui01/arcbridge/types"
)

// SigningHandler exposes the dev signer over HTTP so federation tooling can
// sign and verify payloads without linking the signer. Dev convenience only;
// see the rho2 package doc for what this is not.
type SigningHandler struct {
	signer rho2.Signer
	logger *zap.Logger
}

// NewSigningHandler creates a signing handler.
func NewSigningHandler(signer rho2.Signer, logger *zap.Logger) *SigningHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SigningHandler{
		signer: signer,
		logger: logger.With(zap.String("component", "signing_handler")),
	}
}

// signRequest is the POST /api/rho2/sign body.
type signRequest struct {
	Payload map[string]any `json:"payload"`
}

// HandleSign serves POST /api/rho2/sign.
func (h *SigningHandler) HandleSign(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req signRequest
	if derr := DecodeJSONBody(w, r, &req); derr != nil {
		WriteError(w, derr, h.logger)
		return
	}
	if req.Payload == nil {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "payload is required", h.logger)
		return
	}

	sig, err := h.signer.Sign(req.Payload)
	if err != nil {
		WriteError(w, types.NewError(types.ErrInternalError, "signing failed").WithCause(err), h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"signature": sig})
}

// verifyRequest is the POST /api/rho2/verify body.
type verifyRequest struct {
	Payload   map[string]any `json:"payload"`
	Signature string         `json:"signature"`
}

// HandleVerify serves POST /api/rho2/verify.
func (h *SigningHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req verifyRequest
	if derr := DecodeJSONBody(w, r, &req); derr != nil {
		WriteError(w, derr, h.logger)
		return
	}
	if req.Payload == nil || req.Signature == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrMissingField, "payload and signature are required", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"valid": h.signer.Verify(req.Payload, req.Signature),
	})
}
