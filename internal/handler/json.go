package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/farmasys/orcamento-api/internal/apperr"
	"github.com/farmasys/orcamento-api/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError converts any error into the structured JSON error body. PDF and
// HTML endpoints use it too: their failure bodies are JSON even though their
// success bodies are not, which is part of the existing contract.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	reqID := middleware.RequestIDFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: %v (request %s)", err, reqID)
	}

	body := map[string]string{"error": err.Error()}
	if reqID != "" {
		body["request_id"] = reqID
	}
	writeJSON(w, status, body)
}
