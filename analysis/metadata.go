package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"aadhaar_insights/models"
)

// IdeaMetadata is the static dashboard copy attached to an analysis: title,
// problem statement and the government action plan. It is configuration, not
// computed output.
type IdeaMetadata struct {
	Title       string `yaml:"title" json:"title"`
	Problem     string `yaml:"problem" json:"problem"`
	Solution    string `yaml:"solution" json:"solution"`
	ReasonsHigh string `yaml:"reasons_high" json:"reasons_high"`
	ReasonsLow  string `yaml:"reasons_low" json:"reasons_low"`
}

// DefaultMetadata returns the built-in metadata table for analyses 1..10.
func DefaultMetadata() map[int]IdeaMetadata {
	return map[int]IdeaMetadata{
		1: {
			Title:       "District-Level Activity Insights",
			Problem:     "Uneven distribution of Aadhaar services leads to resource mismanagement and long wait times for citizens.",
			Solution:    "GOV SOLUTION: Deploy 500+ mobile Aadhaar vans in high-impact districts. Implement 'Aadhaar on Wheels' for remote clusters to ensure no citizen travels >5km for services.",
			ReasonsHigh: "High urbanization, seasonal migration for labor, and the presence of major industrial hubs.",
			ReasonsLow:  "Geographical terrain challenges, lower digital literacy, and sparse population density in rural borders.",
		},
		2: {
			Title:       "Biometric Update Camps",
			Problem:     "Citizens in specific areas are failing to update biometrics, leading to authentication failures in welfare schemes.",
			Solution:    "GOV SOLUTION: Launch 'Sanjeevani Biometric Camps' integrated with PDS shops. Provide 100% subsidy for biometric updates for senior citizens and BPL families.",
			ReasonsHigh: "Proactive local administration and high awareness through community health workers.",
			ReasonsLow:  "Outdated equipment at local centers and lack of awareness regarding the 10-year update cycle.",
		},
		3: {
			Title:       "Zero-Knowledge Age Verifier",
			Problem:     "Requirement for secure, privacy-preserving age verification for first-time voters without exposing full Aadhaar details.",
			Solution:    "GOV SOLUTION: Deploy ZKP-Verifier as a standard for all government portals. This protects privacy while enabling instant 'Proof of Age' for youth services.",
			ReasonsHigh: "Large demographic dividend and rapid digital adoption among the 18-25 age group.",
			ReasonsLow:  "Delayed birth registrations in previous decades and limited access to smart devices for digital verification.",
		},
		4: {
			Title:       "The Ghost Child Indicator",
			Problem:     "Low child enrollment (0-5 years) indicates potential gaps in birth-registration-linked Aadhaar saturation.",
			Solution:    "GOV SOLUTION: Mandate 'Aadhaar-at-Birth' in all government hospitals. Link newborn enrollment with Anganwadi nutrition benefits to ensure 100% child saturation.",
			ReasonsHigh: "Strong institutional delivery rates and active Anganwadi networks.",
			ReasonsLow:  "High rate of home deliveries in remote areas and lack of awareness about the 'Blue Aadhaar' for children.",
		},
		5: {
			Title:       "System Integrity Shield",
			Problem:     "Unusual spikes in demographic updates might signal systematic data manipulation or internal process breaches.",
			Solution:    "GOV SOLUTION: Implement AI-driven anomaly detection. Centers showing >300% spike in address changes will trigger an automatic 24-hour suspension and audit.",
			ReasonsHigh: "Real estate booms in specific zones or targeted fraud attempts by unverified operators.",
			ReasonsLow:  "Stable residential patterns and high compliance with periodic audit protocols.",
		},
		6: {
			Title:       "Financial Inclusion Score",
			Problem:     "Gaps in digital facility updates hinder the transition to a direct benefit transfer (DBT) enabled economy.",
			Solution:    "GOV SOLUTION: Incentivize Banks to integrate Aadhaar seeding at the doorstep. Offer 'Digital Mitra' rewards for centers achieving 100% DBT linking in their village.",
			ReasonsHigh: "Strong presence of regional rural banks and aggressive financial literacy campaigns.",
			ReasonsLow:  "Limited banking infrastructure and preference for cash-based transactions in weekly local markets.",
		},
		7: {
			Title:       "Demographic & Enrollment Activity",
			Problem:     "High enrollment states often face language barriers, leading to data entry errors by non-native operators.",
			Solution:    "GOV SOLUTION: Multi-lingual Aadhaar SDK deployment. Ensure all 22 official languages are supported at every enrollment station to minimize data correction costs.",
			ReasonsHigh: "State-sponsored infrastructure support and dense network of Common Service Centers (CSCs).",
			ReasonsLow:  "Language isolation in hilly areas and lack of trained bi-lingual operators.",
		},
		8: {
			Title:       "Service Center Health Monitor",
			Problem:     "Persistent demographic updates with zero biometric updates indicate faulty fingerprint/iris scanners at centers.",
			Solution:    "GOV SOLUTION: 'Asset Health' IoT sensors for scanners. Automatically dispatch repair technicians when a scanner fails more than 5 consecutive attempts.",
			ReasonsHigh: "Regular maintenance schedules and availability of backup hardware in urban hubs.",
			ReasonsLow:  "Extreme climate conditions (humidity/dust) affecting sensor sensitivity and lack of local repair shops.",
		},
		9: {
			Title:       "Disaster Relief Planning",
			Problem:     "Lack of real-time data on population displacement during natural disasters like floods or cyclones.",
			Solution:    "GOV SOLUTION: 'Crisis Aadhaar Tracker'. Use address update spikes to identify migration routes during floods to redirect food and medical supplies in real-time.",
			ReasonsHigh: "Frequent exposure to climate risks and high community resilience through digital tracking.",
			ReasonsLow:  "Infrastructure collapse during disasters preventing citizens from reaching digital update points.",
		},
		10: {
			Title:       "Easy Life in Cities",
			Problem:     "Extreme overcrowding at urban Aadhaar Seva Kendras (ASKs) leads to citizen dissatisfaction and administrative strain.",
			Solution:    "GOV SOLUTION: 'Aadhaar-on-Demand' appointment system with dynamic pricing (free for morning slots). Open 24/7 hyper-centers in Metro stations.",
			ReasonsHigh: "Rapid migration for white-collar jobs and high density of student population.",
			ReasonsLow:  "Effective implementation of appointment-only systems and decentralized neighborhood kiosks.",
		},
	}
}

// DefaultPincodeNames returns the built-in pincode → locality table used for
// display formatting. Absent pincodes fall back to the raw code.
func DefaultPincodeNames() map[string]string {
	return map[string]string{
		"380001": "Lal Darwaja", "380002": "Kalupur", "380003": "Maju", "380004": "Shahibaug",
		"380005": "Sabarmati", "380006": "Ellisbridge", "380007": "Paldi", "380008": "Maninagar",
		"380009": "Navrangpura", "380013": "Naranpura", "380015": "Ambawadi", "380019": "Ghatlodia",
		"380021": "Bapunagar", "380022": "Naroda", "380024": "Bapunagar Ind.", "380026": "Amraiwadi",
		"380028": "Vejalpur", "380050": "Ghodasar", "380051": "Jivraj Park", "380052": "Thaltej",
		"380054": "Bodakdev", "380055": "Jodhpur", "380058": "Sarkhej", "380059": "Gota",
		"380060": "Science City", "380061": "Ghatlodia",
		"382010": "Gandhinagar", "382330": "Naroda", "382340": "Naroda Road", "382345": "India Colony",
	}
}

// DefaultLanguages returns the state → recommended interface language table.
func DefaultLanguages() map[string]string {
	return map[string]string{
		"Karnataka": "Kannada", "Maharashtra": "Marathi", "Gujarat": "Gujarati",
		"Tamil Nadu": "Tamil", "Kerala": "Malayalam", "Uttar Pradesh": "Hindi",
		"Bihar": "Hindi", "West Bengal": "Bengali", "Andhra Pradesh": "Telugu",
		"Telangana": "Telugu", "Punjab": "Punjabi", "Odisha": "Odia",
	}
}

// Districts with recurring flood/cyclone exposure; the disaster-relief view
// restricts to these when no state filter narrows the scope.
var disasterDistricts = []string{
	"Cuddalore", "Nagapattinam", "Puri", "Kendrapara",
	"Darbhanga", "Gorakhpur", "Wayanad", "Chamoli",
}

// Metro districts used by the urban-traffic view when unfiltered.
var urbanDistricts = []string{
	"Bengaluru", "Mumbai", "Pune", "Chennai", "Hyderabad",
	"Ahmedabad", "Gurgaon", "Noida", "Kolkata", "Delhi",
}

// categorySolutions holds the per-category government action plan shown on the
// category dashboard.
var categorySolutions = map[models.Category]string{
	models.CategoryEnrolment:   "Strategically deploy mobile Aadhaar vans and increase operator strength in identified high-activity districts to ensure 100% service coverage.",
	models.CategoryDemographic: "Mandatory deployment of multi-lingual support interfaces and local language translators at regional hubs to reduce error rates.",
	models.CategoryBiometric:   "Organize Mandatory Biometric Update Camps synchronized with local fair-price shops and schools in low-compliance areas.",
}

// categoryMetricLabels names the measure shown for each category.
var categoryMetricLabels = map[models.Category]string{
	models.CategoryEnrolment:   "Total Enrolment",
	models.CategoryDemographic: "Demographic Updates",
	models.CategoryBiometric:   "Biometric Updates",
}

// metadataFile is the on-disk shape of a metadata override file.
type metadataFile struct {
	Analyses  map[int]IdeaMetadata `yaml:"analyses"`
	Pincodes  map[string]string    `yaml:"pincodes"`
	Languages map[string]string    `yaml:"languages"`
}

// LoadMetadataFile reads a YAML override file and merges it over the built-in
// tables. Only the fields present in the file replace their defaults, so a
// deployment can reword a single title without restating everything.
func LoadMetadataFile(path string, meta map[int]IdeaMetadata, pincodes, languages map[string]string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read metadata file: %w", err)
	}

	var file metadataFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse metadata file %s: %w", path, err)
	}

	for id, override := range file.Analyses {
		merged := meta[id]
		if override.Title != "" {
			merged.Title = override.Title
		}
		if override.Problem != "" {
			merged.Problem = override.Problem
		}
		if override.Solution != "" {
			merged.Solution = override.Solution
		}
		if override.ReasonsHigh != "" {
			merged.ReasonsHigh = override.ReasonsHigh
		}
		if override.ReasonsLow != "" {
			merged.ReasonsLow = override.ReasonsLow
		}
		meta[id] = merged
	}
	for pin, name := range file.Pincodes {
		pincodes[pin] = name
	}
	for state, lang := range file.Languages {
		languages[state] = lang
	}
	return nil
}
