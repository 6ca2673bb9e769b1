package bot

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ulandresort/ulandbot/internal/line"
)

// LINE caps webhook bodies well below this.
const maxBodyBytes = 1 << 20

// Webhook handles POST /webhook. Rejected deliveries get 400; everything else
// gets 200 because LINE redelivers on non-2xx and failed sends are not
// retried here.
func (d *Dispatcher) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		d.logger.Warn("webhook: failed to read body", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res, err := d.Handle(r.Context(), body, r.Header.Get(line.SignatureHeader))
	switch KindOf(err) {
	case KindSignatureInvalid:
		d.logger.Warn("webhook: invalid signature", "remote_ip", r.RemoteAddr)
		http.Error(w, "Invalid signature", http.StatusBadRequest)
		return
	case KindMalformedPayload:
		d.logger.Warn("webhook: malformed payload", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err != nil {
		d.logger.Error("webhook: delivery processed with failures",
			"received", res.Received, "failed", res.Failed, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
