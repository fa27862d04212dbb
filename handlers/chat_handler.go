package handlers

import (
	"crypto/sha256"
	"fmt"
	"log"
	"net/http"
	"strings"

	"aadhaar_insights/analysis"
	"aadhaar_insights/config"
	"aadhaar_insights/models"
	"aadhaar_insights/utils"
)

// Chat answers a free-text question about the datasets. The real numbers are
// computed here and injected into the prompt so the model grounds its answer
// in actual data instead of inventing figures.
func Chat(w http.ResponseWriter, r *http.Request) {
	message := r.FormValue("message")
	if message == "" {
		writeError(w, http.StatusBadRequest, "No message provided")
		return
	}
	language := r.FormValue("language")
	if language == "" {
		language = "en"
	}

	if !chatClient.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "Chat assistant is not configured")
		return
	}

	cacheKey := config.GetCacheKey("chat", fmt.Sprintf("%x", sha256.Sum256([]byte(language+"|"+message))))
	if cached, found := config.ChatCache.Get(cacheKey); found {
		writeJSON(w, http.StatusOK, map[string]string{"response": cached.(string)})
		return
	}

	response, err := chatClient.ChatResponse(message, buildDataContext(message), language)
	if err != nil {
		log.Printf("Chat: gemini call failed: %v", err)
		writeError(w, http.StatusBadGateway, "Chat assistant unavailable")
		return
	}

	config.ChatCache.SetDefault(cacheKey, response)
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

// buildDataContext assembles the statistics block for the prompt: national
// totals, top states and districts, plus deeper blocks for any state or
// district the message mentions by name.
func buildDataContext(message string) string {
	states := analysis.SumBy(dataStore.Enrolment, analysis.LevelState, models.Record.TotalCount)
	totalEnrolment := states.Total()
	statesCount := states.Len()
	states.SortDesc().Head(10)

	var b strings.Builder
	fmt.Fprintf(&b, "*** REAL DATA FROM LOADED DATASETS ***\n\n")
	fmt.Fprintf(&b, "Total National Enrolment: %s\n", utils.FormatInt(int(totalEnrolment)))
	fmt.Fprintf(&b, "Total States: %d\n\n", statesCount)

	b.WriteString("Top 10 States by Enrolment:\n| State | Total Enrolment |\n|---|---|\n")
	for _, s := range states.Keys() {
		fmt.Fprintf(&b, "| %s | %s |\n", s, utils.FormatInt(int(states.Value(s))))
	}

	districts := analysis.SumBy(dataStore.Enrolment, analysis.LevelDistrict, models.Record.TotalCount)
	districtState := make(map[string]string)
	for _, r := range dataStore.Enrolment {
		if _, ok := districtState[r.District]; !ok {
			districtState[r.District] = r.State
		}
	}
	districts.SortDesc().Head(5)

	b.WriteString("\nTop 5 Districts by Enrolment:\n| District | State | Total Enrolment |\n|---|---|---|\n")
	for _, d := range districts.Keys() {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", d, districtState[d], utils.FormatInt(int(districts.Value(d))))
	}

	// Entity-specific drill-downs for anything the question names directly.
	msg := strings.ToLower(message)
	for _, state := range dataStore.States() {
		if !strings.Contains(msg, strings.ToLower(state)) {
			continue
		}
		writeEntityBlock(&b, "STATE", state, analyzer.Summary(state, ""), "")
	}
	for district, state := range districtState {
		if !strings.Contains(msg, strings.ToLower(district)) {
			continue
		}
		writeEntityBlock(&b, "DISTRICT", district, analyzer.Summary("", district), state)
	}

	return b.String()
}

func writeEntityBlock(b *strings.Builder, kind, name string, s *analysis.Summary, parentState string) {
	fmt.Fprintf(b, "\n--- SPECIFIC DATA FOR %s: %s ---\n", kind, name)
	if parentState != "" {
		fmt.Fprintf(b, "State: %s\n", parentState)
	}
	fmt.Fprintf(b, "Enrolment: Total=%s\n", utils.FormatInt(int(s.TotalEnrolment)))
	fmt.Fprintf(b, "Demographic Updates: Total=%s\n", utils.FormatInt(int(s.TotalDemographicUpdates)))
	fmt.Fprintf(b, "Biometric Updates: Total=%s\n", utils.FormatInt(int(s.TotalBiometricUpdates)))
}
