package analysis

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"aadhaar_insights/models"
	"aadhaar_insights/store"
	"aadhaar_insights/utils"
)

// ErrUnknownIdea is returned for an analysis id outside 1..10. It is the one
// engine condition the HTTP layer turns into a rejected request; everything
// else resolves to a well-defined (possibly empty) result.
var ErrUnknownIdea = errors.New("analysis: unknown idea id")

// Analyzer runs the aggregation and insight analyses over a loaded record
// store. It holds only immutable configuration next to the read-only store,
// so any number of analyses may run concurrently.
type Analyzer struct {
	store        *store.Store
	metadata     map[int]IdeaMetadata
	pincodeNames map[string]string
	languages    map[string]string
}

// Option customizes an Analyzer at construction.
type Option func(*Analyzer)

// WithMetadata replaces the built-in analysis metadata table.
func WithMetadata(meta map[int]IdeaMetadata) Option {
	return func(a *Analyzer) { a.metadata = meta }
}

// WithPincodeNames replaces the built-in pincode locality table.
func WithPincodeNames(names map[string]string) Option {
	return func(a *Analyzer) { a.pincodeNames = names }
}

// WithLanguages replaces the built-in state language table.
func WithLanguages(langs map[string]string) Option {
	return func(a *Analyzer) { a.languages = langs }
}

// New builds an Analyzer over a store with the built-in configuration tables,
// then applies options.
func New(s *store.Store, opts ...Option) *Analyzer {
	a := &Analyzer{
		store:        s,
		metadata:     DefaultMetadata(),
		pincodeNames: DefaultPincodeNames(),
		languages:    DefaultLanguages(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Metadata returns the static metadata for an analysis id.
func (a *Analyzer) Metadata(id int) (IdeaMetadata, bool) {
	m, ok := a.metadata[id]
	return m, ok
}

// Summary computes the headline totals for the current filters.
func (a *Analyzer) Summary(state, district string) *Summary {
	enrol := FilterRecords(a.store.Enrolment, state, district)
	demo := FilterRecords(a.store.Demographic, state, district)
	bio := FilterRecords(a.store.Biometric, state, district)

	s := &Summary{}
	states := make(map[string]bool)
	districts := make(map[string]bool)
	for _, r := range enrol {
		s.TotalEnrolment += r.TotalCount()
		states[r.State] = true
		districts[r.District] = true
	}
	for _, r := range demo {
		s.TotalDemographicUpdates += r.UpdateCount()
	}
	for _, r := range bio {
		s.TotalBiometricUpdates += r.UpdateCount()
	}
	s.StatesCount = len(states)
	s.DistrictsCount = len(districts)
	return s
}

// Idea dispatches an analysis id to its implementation. Unknown ids return
// ErrUnknownIdea.
func (a *Analyzer) Idea(id int, state, district string) (*Envelope, error) {
	switch id {
	case 1:
		return a.ideaServiceVolume(state, district), nil
	case 2:
		return a.ideaBiometricCamps(state, district), nil
	case 3:
		return a.ideaAgeVerifier(state, district), nil
	case 4:
		return a.ideaGhostChild(state, district), nil
	case 5:
		return a.ideaIntegrityShield(state, district), nil
	case 6:
		return a.ideaFinancialInclusion(state, district), nil
	case 7:
		return a.ideaLanguageSupport(state, district), nil
	case 8:
		return a.ideaCenterHealth(state, district), nil
	case 9:
		return a.ideaDisasterRelief(state, district), nil
	case 10:
		return a.ideaUrbanTraffic(state, district), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownIdea, id)
	}
}

// labelsFor renders aggregate keys for display at a level.
func (a *Analyzer) labelsFor(agg *Aggregate, level GroupLevel) []string {
	labels := make([]string, 0, agg.Len())
	for _, k := range agg.Keys() {
		labels = append(labels, a.DisplayName(level, k))
	}
	return labels
}

// drillDistrictOrPincode is the reduced drill-down used by analyses that
// never show the national state view: district level unless a district filter
// drills to pincodes.
func drillDistrictOrPincode(district string) GroupLevel {
	if hasFilter(district) {
		return LevelPincode
	}
	return LevelDistrict
}

// Idea 1: overall service volume. Enrolment, demographic and biometric
// activity combined into one composite aggregate at the resolved level.
func (a *Analyzer) ideaServiceVolume(state, district string) *Envelope {
	level := ResolveScope(state, district)

	enrol := SumBy(FilterRecords(a.store.Enrolment, state, district), level, models.Record.TotalCount)
	demo := SumBy(FilterRecords(a.store.Demographic, state, district), level, models.Record.UpdateCount)
	bio := SumBy(FilterRecords(a.store.Biometric, state, district), level, models.Record.UpdateCount)

	total := enrol.Add(demo).Add(bio)
	if total.Len() == 0 {
		return a.emptyEnvelope(1, "")
	}
	total.SortDesc()

	// Narrative covers the full distribution, the chart only the head.
	insight := a.Narrate(total, level, "overall service volume")
	top := total.Head(DisplayLimit)

	return a.assemble(1, a.labelsFor(top, level), top.Values(), insight, nil)
}

// Idea 2: biometric camp targeting. Areas with the worst biometric-to-
// demographic update ratio, gated by the per-level activity floor.
func (a *Analyzer) ideaBiometricCamps(state, district string) *Envelope {
	level := drillDistrictOrPincode(district)

	demo := SumBy(FilterRecords(a.store.Demographic, state, district), level, models.Record.UpdateCount)
	bio := SumBy(FilterRecords(a.store.Biometric, state, district), level, models.Record.UpdateCount)

	ratios := RatioRank(demo, bio, ActivityFloor(level))
	if ratios.Len() == 0 {
		return a.emptyEnvelope(2, "")
	}
	target := ratios.SortAsc().Head(DisplayLimit)

	insight := fmt.Sprintf("Bottom performing %ss identified. %s",
		strings.ToLower(level.Label()), a.Narrate(target, level, "biometric update efficiency"))

	data := make([]float64, 0, target.Len())
	for _, v := range target.Values() {
		data = append(data, utils.RoundTo2(v))
	}
	return a.assemble(2, a.labelsFor(target, level), data, insight, nil)
}

// Idea 3: first-voter potential from fresh 18+ enrolments.
func (a *Analyzer) ideaAgeVerifier(state, district string) *Envelope {
	level := ResolveScope(state, district)

	agg := SumBy(FilterRecords(a.store.Enrolment, state, district), level,
		func(r models.Record) float64 { return r.Age18Above })
	if agg.Len() == 0 {
		return a.emptyEnvelope(3, "")
	}
	top := agg.SortDesc().Head(DisplayLimit)

	insight := a.Narrate(top, level, "new 18+ enrolment")
	return a.assemble(3, a.labelsFor(top, level), top.Values(), insight, nil)
}

// Idea 4: ghost-child indicator. Areas whose 0-5 enrolment falls below half
// the mean are saturation gaps in birth-linked enrolment.
func (a *Analyzer) ideaGhostChild(state, district string) *Envelope {
	level := drillDistrictOrPincode(district)

	agg := SumBy(FilterRecords(a.store.Enrolment, state, district), level,
		func(r models.Record) float64 { return r.Age0To5 })
	if agg.Len() == 0 {
		return a.emptyEnvelope(4, "")
	}
	mean := agg.Mean()

	low := LowActivityGap(agg, LowGapFraction, DisplayLimit)
	if low.Len() == 0 {
		return a.emptyEnvelope(4, fmt.Sprintf(
			"No %ss below 50%% of the average child enrolment (%s).",
			strings.ToLower(level.Label()), utils.FormatInt(int(mean))))
	}

	lowestKey := low.Keys()[0]
	insight := fmt.Sprintf("Critical Gap: %d %ss have less than 50%% of the average child enrolment (%s). Lowest being %s (%s).",
		low.Len(), strings.ToLower(level.Label()), utils.FormatInt(int(mean)),
		a.DisplayName(level, lowestKey), utils.FormatInt(int(low.Value(lowestKey))))

	return a.assemble(4, a.labelsFor(low, level), low.Values(), insight, nil)
}

// Idea 5: integrity shield. Daily demographic-update spikes per pincode
// against the mean-derived threshold. Always pincode granularity: spikes wash
// out at coarser levels.
func (a *Analyzer) ideaIntegrityShield(state, district string) *Envelope {
	records := FilterRecords(a.store.Demographic, state, district)

	spikes, threshold := DailySpikes(records, LevelPincode, SpikeFixedFloor, SpikeMultiplier, DisplayLimit)

	labels := make([]string, 0, len(spikes))
	data := make([]float64, 0, len(spikes))
	for _, s := range spikes {
		labels = append(labels, fmt.Sprintf("%s (%s)", a.AreaName(s.Key), s.Date))
		data = append(data, s.Count)
	}

	highest := "None"
	if len(labels) > 0 {
		highest = labels[0]
	}
	insight := fmt.Sprintf("Detected %d instances of unusual spikes (> %d daily ops). Highest spike at %s.",
		len(spikes), int(threshold), highest)

	return a.assemble(5, labels, data, insight, nil)
}

// Idea 6: financial inclusion. Areas with the thinnest update footprint are
// candidates for doorstep DBT-seeding campaigns.
func (a *Analyzer) ideaFinancialInclusion(state, district string) *Envelope {
	level := drillDistrictOrPincode(district)

	agg := CountBy(FilterRecords(a.store.Demographic, state, district), level)
	if agg.Len() == 0 {
		return a.emptyEnvelope(6, "")
	}
	low := agg.SortAsc().Head(DisplayLimit)

	insight := "Areas with lowest digital footprint updates, candidates for Jan Dhan linkage campaigns."
	return a.assemble(6, a.labelsFor(low, level), low.Values(), insight, nil)
}

// Idea 7: language support. Highest-volume areas annotated with the
// recommended interface language for the active state.
func (a *Analyzer) ideaLanguageSupport(state, district string) *Envelope {
	level := ResolveScope(state, district)

	agg := CountBy(FilterRecords(a.store.Enrolment, state, district), level)
	if agg.Len() == 0 {
		return a.emptyEnvelope(7, "")
	}
	top := agg.SortDesc().Head(DisplayLimit)

	language := "Local/Hindi"
	if hasFilter(state) {
		if lang, ok := a.languages[state]; ok {
			language = lang
		}
	}

	labels := a.labelsFor(top, level)
	extra := make([]string, len(labels))
	for i := range extra {
		extra[i] = language
	}

	insight := fmt.Sprintf("High volume %ss requiring %s support interfaces.",
		strings.ToLower(level.Label()), language)
	return a.assemble(7, labels, top.Values(), insight, extra)
}

// Idea 8: center health. Pincodes with steady demographic traffic but almost
// no biometric updates point at dead capture hardware.
func (a *Analyzer) ideaCenterHealth(state, district string) *Envelope {
	demo := CountBy(FilterRecords(a.store.Demographic, state, district), LevelPincode)
	bio := CountBy(FilterRecords(a.store.Biometric, state, district), LevelPincode)

	faulty := FaultyCenters(demo, bio, 20, 2, DisplayLimit)

	insight := fmt.Sprintf("Identified %d pincodes with high 'Demographic-Only' updates, suggesting biometric device failure.",
		faulty.Len())
	return a.assemble(8, a.labelsFor(faulty, LevelPincode), faulty.Values(), insight, nil)
}

// Idea 9: disaster relief. Update volume inside known disaster-prone
// districts approximates displacement pressure.
func (a *Analyzer) ideaDisasterRelief(state, district string) *Envelope {
	records := FilterRecords(a.store.Demographic, state, district)
	if !hasFilter(state) {
		records = keepDistricts(records, disasterDistricts)
	}
	if len(records) == 0 {
		return a.emptyEnvelope(9, "No filtered disaster districts found.")
	}

	level := drillDistrictOrPincode(district)
	agg := SumBy(records, level, models.Record.UpdateCount)
	top := agg.SortDesc().Head(DisplayLimit)

	labels := a.labelsFor(top, level)
	insight := "No significant movement."
	if len(labels) > 0 {
		insight = fmt.Sprintf("Highest displacement/update activity observed in %s.", labels[0])
	}
	return a.assemble(9, labels, top.Values(), insight, nil)
}

// Idea 10: urban traffic. All three datasets combined, always at pincode
// granularity, restricted to metro districts when unfiltered.
func (a *Analyzer) ideaUrbanTraffic(state, district string) *Envelope {
	merged := make([]models.Record, 0,
		len(a.store.Enrolment)+len(a.store.Demographic)+len(a.store.Biometric))
	merged = append(merged, a.store.Enrolment...)
	merged = append(merged, a.store.Demographic...)
	merged = append(merged, a.store.Biometric...)

	records := FilterRecords(merged, state, district)
	if !hasFilter(state) && !hasFilter(district) {
		records = keepDistricts(records, urbanDistricts)
	}

	agg := CountBy(records, LevelPincode)
	top := agg.SortDesc().Head(DisplayLimit)

	labels := a.labelsFor(top, LevelPincode)
	highest := "N/A"
	if len(labels) > 0 {
		highest = labels[0]
	}
	insight := fmt.Sprintf("Highest traffic density observed in %s.", highest)
	return a.assemble(10, labels, top.Values(), insight, nil)
}

func keepDistricts(records []models.Record, allowed []string) []models.Record {
	set := make(map[string]bool, len(allowed))
	for _, d := range allowed {
		set[d] = true
	}
	var out []models.Record
	for _, r := range records {
		if set[r.District] {
			out = append(out, r)
		}
	}
	return out
}

// CategoryAnalysis computes the category-level dashboard: total volume,
// top and bottom performer with deterministic reasons, and the top-10 chart.
// The bottom performer is the strict global argmin over the aggregate.
func (a *Analyzer) CategoryAnalysis(category models.Category, state, district string) *CategoryReport {
	records := FilterRecords(a.store.Records(category), state, district)
	level := ResolveScope(state, district)

	report := &CategoryReport{
		Category:    category.Title(),
		MetricLabel: categoryMetricLabels[category],
		EntityLabel: level.Label(),
		Solution:    categorySolutions[category],
		ChartLabels: []string{},
		ChartData:   []float64{},
	}

	agg := SumBy(records, level, category.Measure)
	if agg.Len() == 0 {
		return report
	}
	agg.SortDesc()

	report.TotalVolume = agg.Total()
	report.ActiveRegions = agg.Len()
	mean := agg.Mean()

	topKey, topVal, _ := agg.Max()
	bottomKey, bottomVal, _ := agg.Min()

	report.TopPerformer = Performer{
		Name:   a.DisplayName(level, topKey),
		Value:  topVal,
		Reason: a.PerformerReason(category, topKey, topVal, mean, true),
	}
	report.BottomPerformer = Performer{
		Name:   a.DisplayName(level, bottomKey),
		Value:  bottomVal,
		Reason: a.PerformerReason(category, bottomKey, bottomVal, mean, false),
	}

	chart := agg.Head(10)
	report.ChartLabels = a.labelsFor(chart, level)
	report.ChartData = chart.Values()
	return report
}

// RegionalContext resolves a clicked chart label back to its region and
// returns per-age-band totals, used to ground follow-up chat answers.
// Pincode labels arrive as "Locality (pincode)" and are parsed back first.
func (a *Analyzer) RegionalContext(category models.Category, region, state, district string) *RegionContext {
	records := a.store.Records(category)
	level := ResolveScope(state, district)

	ctx := &RegionContext{
		Region:   region,
		Level:    level.Label(),
		Category: category.Title(),
		Metrics:  map[string]float64{"age_0_5": 0, "age_5_17": 0, "age_18_above": 0},
	}

	key := region
	if level == LevelPincode {
		key = ParseRegionName(region)
	}

	for _, r := range records {
		if level.KeyOf(r) != key {
			continue
		}
		ctx.Metrics["age_0_5"] += r.Age0To5
		ctx.Metrics["age_5_17"] += r.Age5To17
		ctx.Metrics["age_18_above"] += r.Age18Above
	}
	ctx.Total = ctx.Metrics["age_0_5"] + ctx.Metrics["age_5_17"] + ctx.Metrics["age_18_above"]
	return ctx
}

// Center is a synthesized service-center entry for the map view. The source
// datasets carry no coordinates, so stable mock positions are derived from
// the pincode.
type Center struct {
	Name     string  `json:"name"`
	State    string  `json:"state"`
	District string  `json:"district"`
	Pincode  string  `json:"pincode"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Activity int     `json:"activity"`
}

// Base map coordinates per state; anything unknown centers on India.
var stateBaseCoords = map[string][2]float64{
	"Gujarat":       {23.0225, 72.5714},
	"Karnataka":     {12.9716, 77.5946},
	"Maharashtra":   {19.0760, 72.8777},
	"Uttar Pradesh": {26.8467, 80.9462},
	"Delhi":         {28.6139, 77.2090},
	"Rajasthan":     {26.9124, 75.7873},
}

var defaultBaseCoords = [2]float64{20.5937, 78.9629}

// Centers lists enrolment hubs grouped by (state, district, pincode), ordered
// by activity, optionally narrowed by filters or a free-text query.
func (a *Analyzer) Centers(state, district, pincode, query string) []Center {
	type hub struct {
		state, district, pincode string
		activity                 int
	}

	index := make(map[[3]string]int)
	var hubs []hub
	q := strings.ToLower(strings.TrimSpace(query))

	for _, r := range FilterRecords(a.store.Enrolment, state, district) {
		if pincode != "" && r.Pincode != pincode {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.State), q) &&
			!strings.Contains(strings.ToLower(r.District), q) &&
			!strings.Contains(r.Pincode, q) {
			continue
		}
		key := [3]string{r.State, r.District, r.Pincode}
		if i, ok := index[key]; ok {
			hubs[i].activity++
			continue
		}
		index[key] = len(hubs)
		hubs = append(hubs, hub{state: r.State, district: r.District, pincode: r.Pincode, activity: 1})
	}

	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].activity > hubs[j].activity })
	if len(hubs) > 100 {
		hubs = hubs[:100]
	}

	centers := make([]Center, 0, len(hubs))
	for _, h := range hubs {
		base, ok := stateBaseCoords[h.state]
		if !ok {
			base = defaultBaseCoords
		}
		hash := pincodeHash(h.pincode)
		phonePrefix := h.pincode
		if len(phonePrefix) > 4 {
			phonePrefix = phonePrefix[:4]
		}
		centers = append(centers, Center{
			Name:     fmt.Sprintf("Aadhaar Center - %s", a.AreaName(h.pincode)),
			State:    h.state,
			District: h.district,
			Pincode:  h.pincode,
			Lat:      base[0] + float64(hash%1000)/5000.0,
			Lng:      base[1] + float64((hash/1000)%1000)/5000.0,
			Address:  fmt.Sprintf("Main Seva Kendra, Near Post Office, %s, %s - %s", h.district, h.state, h.pincode),
			Phone:    fmt.Sprintf("1800-300-%s", phonePrefix),
			Activity: h.activity,
		})
	}
	return centers
}

// pincodeHash gives a stable non-negative hash for coordinate jitter.
func pincodeHash(pincode string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(pincode))
	return h.Sum32()
}
