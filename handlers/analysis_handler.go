package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"aadhaar_insights/analysis"
	"aadhaar_insights/models"
)

// GetSummary returns the headline totals for the active filters.
func GetSummary(w http.ResponseWriter, r *http.Request) {
	state, district := queryFilters(r)
	writeJSON(w, http.StatusOK, analyzer.Summary(state, district))
}

// GetIdea runs one of the ten insight analyses. An out-of-range id is the one
// engine error surfaced to callers.
func GetIdea(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid idea id")
		return
	}
	state, district := queryFilters(r)

	envelope, err := analyzer.Idea(id, state, district)
	if err != nil {
		if errors.Is(err, analysis.ErrUnknownIdea) {
			writeError(w, http.StatusBadRequest, "Invalid idea id")
			return
		}
		log.Printf("GetIdea: analysis %d failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, envelope)
}

// GetCategory returns the category-level dashboard report.
func GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	state, district := queryFilters(r)

	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, analyzer.CategoryAnalysis(category, state, district))
}

// GetRegionContext returns the per-age-band totals behind a clicked chart
// label.
func GetRegionContext(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	region := r.URL.Query().Get("region")
	if region == "" {
		writeError(w, http.StatusBadRequest, "Missing region parameter")
		return
	}
	state, district := queryFilters(r)

	writeJSON(w, http.StatusOK, analyzer.RegionalContext(category, region, state, district))
}

// GetCenters lists service-center hubs for the map view.
func GetCenters(w http.ResponseWriter, r *http.Request) {
	state, district := queryFilters(r)
	pincode := r.URL.Query().Get("pincode")
	query := r.URL.Query().Get("q")

	centers := analyzer.Centers(state, district, pincode, query)
	writeJSON(w, http.StatusOK, map[string]interface{}{"centers": centers})
}
