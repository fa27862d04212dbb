package store

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"aadhaar_insights/models"
)

// Dataset subdirectories, as shipped by the UIDAI data portal dumps.
const (
	enrolmentDir   = "aadhar_enrolment"
	demographicDir = "aadhar_demographic"
	biometricDir   = "aadhar_biometric"
)

// Column-name aliases seen across the yearly CSV dumps. Everything is mapped
// onto the canonical age_0_5 / age_5_17 / age_18_above trio.
var columnAliases = map[string]string{
	"age_18_greater":    "age_18_above",
	"age_18_plus":       "age_18_above",
	"demo_age_5_17":     "age_5_17",
	"demo_age_17_":      "age_18_above",
	"demo_age_18_above": "age_18_above",
	"bio_age_5_17":      "age_5_17",
	"bio_age_17_":       "age_18_above",
	"bio_age_18_above":  "age_18_above",
}

// State names whose raw spellings collapse to the same entity. Keyed by the
// lower-cased alphanumeric form of the raw value.
var canonicalStates = map[string]string{
	"westbengal":       "West Bengal",
	"uttarpradesh":     "Uttar Pradesh",
	"andhrapradesh":    "Andhra Pradesh",
	"tamilnadu":        "Tamil Nadu",
	"telangana":        "Telangana",
	"telengana":        "Telangana",
	"chhattisgarh":     "Chhattisgarh",
	"chattisgarh":      "Chhattisgarh",
	"madhyapradesh":    "Madhya Pradesh",
	"arunachalpradesh": "Arunachal Pradesh",
	"himachalpradesh":  "Himachal Pradesh",
	"jk":               "Jammu And Kashmir",
	"jammuandkashmir":  "Jammu And Kashmir",
	"dadraandnagarhavelianddamananddiu": "Dadra And Nagar Haveli And Daman And Diu",
	"dnhanddd":                          "Dadra And Nagar Haveli And Daman And Diu",
}

// Load reads every CSV under the three dataset subdirectories of dataDir and
// returns a fully normalized Store. Unreadable files are logged and skipped;
// an entirely missing subdirectory yields an empty collection, not an error.
func Load(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("store: data directory not configured")
	}

	s := &Store{}

	log.Printf("Loading enrolment data from %s", filepath.Join(dataDir, enrolmentDir))
	s.Enrolment = loadDir(filepath.Join(dataDir, enrolmentDir))

	log.Printf("Loading demographic data from %s", filepath.Join(dataDir, demographicDir))
	s.Demographic = loadDir(filepath.Join(dataDir, demographicDir))

	log.Printf("Loading biometric data from %s", filepath.Join(dataDir, biometricDir))
	s.Biometric = loadDir(filepath.Join(dataDir, biometricDir))

	log.Printf("Data loading complete: %d enrolment, %d demographic, %d biometric records",
		len(s.Enrolment), len(s.Demographic), len(s.Biometric))

	return s, nil
}

func loadDir(dir string) []models.Record {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		log.Printf("Error listing %s: %v", dir, err)
		return nil
	}

	var records []models.Record
	for _, file := range files {
		rows, err := loadFile(file)
		if err != nil {
			log.Printf("Error reading %s: %v", file, err)
			continue
		}
		records = append(records, rows...)
	}
	return records
}

func loadFile(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	cols := headerIndex(header)

	var records []models.Record
	for {
		row, err := reader.Read()
		if err != nil {
			break
		}
		records = append(records, parseRow(row, cols))
	}
	return records, nil
}

// headerIndex maps canonical column names to their positions, applying the
// alias table first.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		cols[name] = i
	}
	return cols
}

func parseRow(row []string, cols map[string]int) models.Record {
	return models.Record{
		Date:       field(row, cols, "date"),
		State:      CanonicalState(field(row, cols, "state")),
		District:   titleCase(field(row, cols, "district")),
		Pincode:    field(row, cols, "pincode"),
		Age0To5:    numeric(field(row, cols, "age_0_5")),
		Age5To17:   numeric(field(row, cols, "age_5_17")),
		Age18Above: numeric(field(row, cols, "age_18_above")),
	}
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// numeric coerces a counter cell to a non-negative float. Missing or
// unparseable values count as zero.
func numeric(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// CanonicalState normalizes a raw state spelling: known variants collapse via
// the canonical table, anything else is Title-cased.
func CanonicalState(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var clean strings.Builder
	for _, c := range strings.ToLower(raw) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			clean.WriteRune(c)
		}
	}
	if canonical, ok := canonicalStates[clean.String()]; ok {
		return canonical
	}
	return titleCase(raw)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
