package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"aadhaar_insights/analysis"
	"aadhaar_insights/gemini"
	"aadhaar_insights/store"
)

// Package-level collaborators, wired once at startup by Init. The store and
// analyzer are read-only after that, so handlers need no locking.
var (
	analyzer   *analysis.Analyzer
	dataStore  *store.Store
	chatClient *gemini.Client
)

// Init wires the loaded store, analyzer and chat client into the handler
// package.
func Init(s *store.Store, a *analysis.Analyzer, c *gemini.Client) {
	dataStore = s
	analyzer = a
	chatClient = c
}

// queryFilters extracts the common state/district selectors. "All" is the
// dashboard's sentinel for an untouched dropdown; the engine treats it the
// same as absent, so it passes through unchanged.
func queryFilters(r *http.Request) (state, district string) {
	return r.URL.Query().Get("state"), r.URL.Query().Get("district")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
