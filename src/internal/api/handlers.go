package api

import (
	"encoding/json"
	"net/http"

	"github.com/maksimkurb/ipnorm/src/internal/config"
)

// maxRejections caps the rejections listed in a normalize response.
const maxRejections = 1000

// Handler manages all API endpoints and dependencies.
type Handler struct {
	cfg     *config.Config
	version VersionInfo
}

// NewHandler creates a new API handler. The configuration supplies the default
// exclude filter, the output template and the body size limit.
func NewHandler(cfg *config.Config, version VersionInfo) *Handler {
	return &Handler{
		cfg:     cfg,
		version: version,
	}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes JSON from the request body.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
