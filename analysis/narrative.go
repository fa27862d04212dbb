package analysis

import (
	"fmt"
	"strings"

	"aadhaar_insights/models"
	"aadhaar_insights/utils"
)

// Candidate reason sentences per category and polarity. The pick is
// deterministic (see pickReason), so identical inputs always narrate the same
// way — a requirement for reproducible exports.
var categoryReasons = map[models.Category]struct{ High, Low []string }{
	models.CategoryEnrolment: {
		High: []string{
			"Optimized resource allocation and high institutional delivery rates in this region.",
			"Successful 100% saturation of 'Aadhaar at Birth' through localized hospital partnerships.",
			"Aggressive awareness campaigns in high-density urban clusters driving enrollment.",
		},
		Low: []string{
			"Near 100% saturation reached; remaining population consists primarily of new births.",
			"Severe geographical constraints in remote terrain limiting the mobility of enrollment vans.",
			"Temporary suspension of enrollment activities due to local administrative realignments.",
		},
	},
	models.CategoryDemographic: {
		High: []string{
			"Large-scale workforce migration for industrial projects requiring address and mobile updates.",
			"Intensive verification drives for central and state-level welfare scheme eligibility.",
			"High digital literacy levels leading to proactive periodic data correction by residents.",
		},
		Low: []string{
			"Stable demographic patterns with low inter-region migration or displacement.",
			"Limited access to digital update facilities in rural outskirts or border districts.",
			"Network latency and infrastructure downtime affecting the update throughput at centers.",
		},
	},
	models.CategoryBiometric: {
		High: []string{
			"Strong compliance with the mandatory 10-year biometric update cycle.",
			"Strategic deployment of biometric update camps across educational institutions and post offices.",
			"Incentivized programs successfully targeting senior citizens for pension verification.",
		},
		Low: []string{
			"High incidence of biometric capture failures due to manual labor-induced skin wear.",
			"Outdated biometric hardware at local centers causing significant rejection rates.",
			"Low awareness in rural clusters regarding the necessity of biometric updates for minors.",
		},
	},
}

// pickReason selects one candidate sentence, seeded from the entity name so
// the choice is stable across calls. Explicit byte-sum hash, no PRNG state.
func pickReason(candidates []string, entityName string) string {
	if len(candidates) == 0 {
		return ""
	}
	var seed int
	for _, b := range []byte(entityName) {
		seed += int(b)
	}
	return candidates[seed%len(candidates)]
}

// PerformerReason builds the explanation attached to a top or bottom
// performer. Deviation against the mean escalates the base sentence:
// a >2.5x peak is called out as critical, a <0.2x laggard as an efficiency
// gap, and literal zero as an operational halt.
func (a *Analyzer) PerformerReason(category models.Category, entityName string, value, mean float64, isHigh bool) string {
	var deviation float64
	if mean > 0 {
		deviation = value / mean
	}

	reasons := categoryReasons[category]
	if isHigh {
		base := pickReason(reasons.High, entityName)
		if deviation > 2.5 {
			return fmt.Sprintf("Critical Peak: %s Regional volume is %.1fx higher than the state average.", base, deviation)
		}
		return base
	}

	base := pickReason(reasons.Low, entityName)
	if value == 0 {
		return "Operational Halt: Zero activity recorded. Suggests a total system blackout or synchronization delay."
	}
	if deviation < 0.2 {
		return fmt.Sprintf("Efficiency Gap: %s Operational metrics are significantly below the expected threshold.", base)
	}
	return base
}

// AreaName renders a pincode for display as "Locality (pincode)", falling
// back to the raw code when the locality table has no entry.
func (a *Analyzer) AreaName(pincode string) string {
	pincode = strings.TrimSpace(pincode)
	if name, ok := a.pincodeNames[pincode]; ok {
		return fmt.Sprintf("%s (%s)", name, pincode)
	}
	return pincode
}

// DisplayName formats a grouping key for presentation: pincodes go through
// the locality table, state and district names are used verbatim.
func (a *Analyzer) DisplayName(level GroupLevel, key string) string {
	if level == LevelPincode {
		return a.AreaName(key)
	}
	return key
}

// ParseRegionName reverses DisplayName for pincode labels: "Kalupur (380002)"
// yields "380002". Labels without a parenthesized code pass through.
func ParseRegionName(display string) string {
	open := strings.LastIndex(display, "(")
	end := strings.LastIndex(display, ")")
	if open >= 0 && end > open {
		return strings.TrimSpace(display[open+1 : end])
	}
	return display
}

// Narrate produces the insight sentence for a ranked aggregate: the extremes,
// how far the peak sits from the mean, and what the spread implies. The
// result is fully determined by its inputs.
func (a *Analyzer) Narrate(agg *Aggregate, level GroupLevel, context string) string {
	highKey, highVal, ok := agg.Max()
	if !ok {
		return EmptyInsight
	}
	lowKey, lowVal, _ := agg.Min()

	mean := agg.Mean()
	variation := "moderate"
	if highVal > 2*mean {
		variation = "significant"
	}

	return fmt.Sprintf(
		"%s reports the highest %s (%s), showing %s deviation from the average (%s). "+
			"In contrast, %s reports the lowest (%s). "+
			"This disparity suggests uneven resource allocation or demand patterns in the %s range.",
		a.DisplayName(level, highKey), context, utils.FormatInt(int(highVal)), variation,
		utils.FormatInt(int(mean)),
		a.DisplayName(level, lowKey), utils.FormatInt(int(lowVal)),
		variation,
	)
}
