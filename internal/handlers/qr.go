package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// RoomQR renders a PNG QR code pointing at the room's join URL, for showing
// on a shared screen.
func (h *Handler) RoomQR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	sess, err := h.store.Get(code)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	joinURL := fmt.Sprintf("%s/room/%s", h.baseURL(r), sess.Code)
	png, err := generateQRCode(joinURL)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write(png)
}

// baseURL prefers the configured public base URL and falls back to the
// request host, honouring reverse-proxy headers.
func (h *Handler) baseURL(r *http.Request) string {
	if h.cfg.Server.PublicBaseURL != "" {
		return h.cfg.Server.PublicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}
	return scheme + "://" + host
}

// generateQRCode encodes url as a PNG QR code.
func generateQRCode(url string) ([]byte, error) {
	qrc, err := qrcode.NewWith(url,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// The standard writer wants a file; render into a temp file and read
	// it back.
	tmpFile := fmt.Sprintf("%s/qr_%d.png", os.TempDir(), time.Now().UnixNano())
	defer os.Remove(tmpFile)

	wr, err := standard.New(tmpFile,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer: %w", err)
	}
	if err := qrc.Save(wr); err != nil {
		return nil, fmt.Errorf("failed to save QR code: %w", err)
	}

	return os.ReadFile(tmpFile)
}
