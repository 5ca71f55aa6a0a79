package handlers

import (
	"fmt"
	"net/http"
	"time"
)

// heartbeat streams alternating '0' and '1' bytes until the client goes away.
func (h *handler) heartbeat(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.error(w, r, fmt.Errorf("streaming not supported"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentTypeOctetStream)
	w.WriteHeader(http.StatusOK)

	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	beat := byte('0')
	for {
		if _, err := w.Write([]byte{beat}); err != nil {
			return
		}
		flusher.Flush()
		beat ^= 1

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
