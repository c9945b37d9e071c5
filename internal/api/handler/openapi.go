package handler

import (
	"fmt"
	"net/http"

	"sigs.k8s.io/yaml"

	"github.com/daap14/heroes/internal/api/middleware"
)

// OpenAPIHandler serves the OpenAPI document, authored in YAML, as JSON.
type OpenAPIHandler struct {
	doc []byte
}

// NewOpenAPIHandler converts the YAML document to JSON once, so a malformed
// document is reported at startup rather than on the first request.
func NewOpenAPIHandler(yamlDoc []byte) (*OpenAPIHandler, error) {
	doc, err := yaml.YAMLToJSON(yamlDoc)
	if err != nil {
		return nil, fmt.Errorf("converting OpenAPI document to JSON: %w", err)
	}
	return &OpenAPIHandler{doc: doc}, nil
}

// ServeHTTP writes the JSON document.
func (h *OpenAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.doc); err != nil {
		middleware.Logger(r.Context()).Error("failed to write OpenAPI response", "error", err)
	}
}
