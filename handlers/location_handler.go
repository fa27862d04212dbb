package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"aadhaar_insights/config"
)

type StatesResponse struct {
	States []string `json:"states"`
}

type DistrictsResponse struct {
	Districts []string `json:"districts"`
}

// GetStates returns the distinct states for the dashboard dropdown. The list
// is fixed once the datasets are loaded, so it is served from cache.
func GetStates(w http.ResponseWriter, r *http.Request) {
	key := config.GetCacheKey("states")
	if cached, found := config.LocationCache.Get(key); found {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	response := StatesResponse{States: dataStore.States()}
	config.LocationCache.SetDefault(key, response)

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, response)
}

// GetDistricts returns the distinct districts of a state.
func GetDistricts(w http.ResponseWriter, r *http.Request) {
	state := mux.Vars(r)["state"]

	key := config.GetCacheKey("districts", state)
	if cached, found := config.LocationCache.Get(key); found {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	response := DistrictsResponse{Districts: dataStore.Districts(state)}
	config.LocationCache.SetDefault(key, response)

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, response)
}
