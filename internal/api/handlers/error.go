package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func (h *handler) error(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	type errorJSON struct {
		Error      string
		StatusCode int
	}
	e := errorJSON{
		Error:      err.Error(),
		StatusCode: statusCode,
	}

	entry := h.logger(r).WithField("status", statusCode)

	b, errMarshal := json.Marshal(e)
	if errMarshal != nil {
		msg := fmt.Sprintf(`{"Error": "Failed to marshal error - %s", "StatusCode": 500}`, err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(msg))
		entry.Error(msg)
		return
	}

	w.Header().Set("Content-Type", ContentTypeApplicationJSON)
	w.WriteHeader(statusCode)
	w.Write(b)

	if statusCode >= http.StatusInternalServerError {
		entry.Error(err)
		return
	}
	entry.Warn(err)
}
