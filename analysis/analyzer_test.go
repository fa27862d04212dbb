package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aadhaar_insights/models"
	"aadhaar_insights/store"
)

func rec(date, state, district, pin string, a05, a517, a18 float64) models.Record {
	return models.Record{
		Date: date, State: state, District: district, Pincode: pin,
		Age0To5: a05, Age5To17: a517, Age18Above: a18,
	}
}

// fixtureStore builds a small but busy dataset: two states, one metro district
// (Ahmedabad), one disaster-prone district (Wayanad), and a pincode whose
// heavy demographic traffic has no biometric counterpart.
func fixtureStore() *store.Store {
	s := &store.Store{
		Enrolment: []models.Record{
			rec("01-01-2024", "Gujarat", "Ahmedabad", "380001", 10, 20, 30),
			rec("01-01-2024", "Gujarat", "Ahmedabad", "380002", 2, 3, 5),
			rec("02-01-2024", "Gujarat", "Surat", "395001", 20, 30, 50),
			rec("01-01-2024", "Kerala", "Wayanad", "673121", 5, 5, 10),
		},
	}
	for i := 0; i < 25; i++ {
		s.Demographic = append(s.Demographic, rec("01-01-2024", "Gujarat", "Ahmedabad", "380002", 0, 2, 2))
	}
	for i := 0; i < 3; i++ {
		s.Demographic = append(s.Demographic, rec("02-01-2024", "Kerala", "Wayanad", "673121", 0, 1, 1))
	}
	for i := 0; i < 5; i++ {
		s.Biometric = append(s.Biometric, rec("01-01-2024", "Gujarat", "Ahmedabad", "380001", 0, 1, 1))
	}
	for i := 0; i < 2; i++ {
		s.Biometric = append(s.Biometric, rec("02-01-2024", "Kerala", "Wayanad", "673121", 0, 1, 1))
	}
	return s
}

func TestSummary(t *testing.T) {
	a := New(fixtureStore())

	s := a.Summary("", "")
	assert.Equal(t, 190.0, s.TotalEnrolment)
	assert.Equal(t, 106.0, s.TotalDemographicUpdates)
	assert.Equal(t, 14.0, s.TotalBiometricUpdates)
	assert.Equal(t, 2, s.StatesCount)
	assert.Equal(t, 3, s.DistrictsCount)

	filtered := a.Summary("Kerala", "")
	assert.Equal(t, 20.0, filtered.TotalEnrolment)
	assert.Equal(t, 6.0, filtered.TotalDemographicUpdates)
	assert.Equal(t, 1, filtered.StatesCount)
}

func TestIdeaUnknownID(t *testing.T) {
	a := New(fixtureStore())

	for _, id := range []int{0, 11, -3} {
		_, err := a.Idea(id, "", "")
		assert.True(t, errors.Is(err, ErrUnknownIdea), "id %d", id)
	}
}

func TestIdeaServiceVolume(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(1, "", "")
	require.NoError(t, err)

	// Gujarat: 170 enrolment + 100 demographic + 10 biometric updates.
	assert.Equal(t, []string{"Gujarat", "Kerala"}, env.Labels)
	assert.Equal(t, []float64{280, 30}, env.Data)
	assert.Contains(t, env.Insight, "Gujarat reports the highest overall service volume (280)")
	assert.Equal(t, "District-Level Activity Insights", env.Title)
}

func TestIdeaServiceVolumeEmpty(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(1, "Goa", "")
	require.NoError(t, err)
	assert.Equal(t, EmptyInsight, env.Insight)
	assert.Empty(t, env.Labels)
	assert.Empty(t, env.Data)
}

func TestIdeaBiometricCamps(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(2, "", "")
	require.NoError(t, err)

	// Only Ahmedabad clears the district activity floor; Wayanad's 6 updates
	// do not, so its ratio never competes.
	assert.Equal(t, []string{"Ahmedabad"}, env.Labels)
	assert.Equal(t, []float64{0.1}, env.Data)
	assert.Contains(t, env.Insight, "Bottom performing districts identified.")
}

func TestIdeaAgeVerifier(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(3, "Kerala", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wayanad"}, env.Labels)
	assert.Equal(t, []float64{10}, env.Data)
}

func TestIdeaGhostChild(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(4, "Gujarat", "Ahmedabad")
	require.NoError(t, err)

	// Pincode drill: 0-5 enrolment is 10 at 380001 and 2 at 380002, mean 6.
	// Only 380002 falls under half the mean.
	assert.Equal(t, []string{"Kalupur (380002)"}, env.Labels)
	assert.Equal(t, []float64{2}, env.Data)
	assert.Equal(t,
		"Critical Gap: 1 pincodes have less than 50% of the average child enrolment (6). Lowest being Kalupur (380002) (2).",
		env.Insight)
}

func TestIdeaGhostChildNoGap(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(4, "Kerala", "Wayanad")
	require.NoError(t, err)
	assert.Empty(t, env.Labels)
	assert.Contains(t, env.Insight, "No pincodes below 50% of the average child enrolment")
}

func TestIdeaIntegrityShieldNoSpikes(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(5, "", "")
	require.NoError(t, err)

	// 25 and 3 daily rows give a scaled threshold of 42, below the fixed
	// floor of 50, so nothing spikes.
	assert.Empty(t, env.Labels)
	assert.Equal(t, "Detected 0 instances of unusual spikes (> 50 daily ops). Highest spike at None.", env.Insight)
}

func TestIdeaIntegrityShieldWithSpike(t *testing.T) {
	s := fixtureStore()
	for i := 0; i < 60; i++ {
		s.Demographic = append(s.Demographic, rec("03-01-2024", "Gujarat", "Ahmedabad", "380001", 0, 1, 1))
	}
	// Quiet trailing days keep the mean-scaled threshold below the fixed
	// floor, so the floor of 50 governs and only the 60-row day spikes.
	for _, date := range []string{"04-01-2024", "05-01-2024", "06-01-2024", "07-01-2024", "08-01-2024"} {
		s.Demographic = append(s.Demographic, rec(date, "Gujarat", "Ahmedabad", "380001", 0, 1, 1))
	}
	a := New(s)

	env, err := a.Idea(5, "", "")
	require.NoError(t, err)

	require.NotEmpty(t, env.Labels)
	assert.Equal(t, "Lal Darwaja (380001) (03-01-2024)", env.Labels[0])
	assert.Equal(t, 60.0, env.Data[0])
	assert.Contains(t, env.Insight, "Highest spike at Lal Darwaja (380001) (03-01-2024).")
}

func TestIdeaFinancialInclusion(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(6, "", "")
	require.NoError(t, err)

	// Row counts ascending: Wayanad 3, Ahmedabad 25.
	assert.Equal(t, []string{"Wayanad", "Ahmedabad"}, env.Labels)
	assert.Equal(t, []float64{3, 25}, env.Data)
}

func TestIdeaLanguageSupport(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(7, "Gujarat", "")
	require.NoError(t, err)

	require.Len(t, env.ExtraInfo, len(env.Labels))
	for _, lang := range env.ExtraInfo {
		assert.Equal(t, "Gujarati", lang)
	}
	assert.Contains(t, env.Insight, "requiring Gujarati support interfaces")
}

func TestIdeaCenterHealth(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(8, "", "")
	require.NoError(t, err)

	// 380002 sees 25 demographic rows and zero biometric rows.
	assert.Equal(t, []string{"Kalupur (380002)"}, env.Labels)
	assert.Equal(t, []float64{25}, env.Data)
	assert.Contains(t, env.Insight, "Identified 1 pincodes")
}

func TestIdeaDisasterRelief(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(9, "", "")
	require.NoError(t, err)

	// Unfiltered view restricts to disaster-prone districts: only Wayanad.
	assert.Equal(t, []string{"Wayanad"}, env.Labels)
	assert.Equal(t, []float64{6}, env.Data)
	assert.Equal(t, "Highest displacement/update activity observed in Wayanad.", env.Insight)
}

func TestIdeaDisasterReliefEmpty(t *testing.T) {
	s := fixtureStore()
	s.Demographic = nil
	a := New(s)

	env, err := a.Idea(9, "", "")
	require.NoError(t, err)
	assert.Equal(t, "No filtered disaster districts found.", env.Insight)
}

func TestIdeaUrbanTraffic(t *testing.T) {
	a := New(fixtureStore())

	env, err := a.Idea(10, "", "")
	require.NoError(t, err)

	// Metro restriction keeps Ahmedabad only. Pincode 380002 carries 1
	// enrolment + 25 demographic rows, 380001 carries 1 + 5 biometric.
	assert.Equal(t, []string{"Kalupur (380002)", "Lal Darwaja (380001)"}, env.Labels)
	assert.Equal(t, []float64{26, 6}, env.Data)
	assert.Equal(t, "Highest traffic density observed in Kalupur (380002).", env.Insight)
}

func TestAllIdeasProduceParallelSeries(t *testing.T) {
	a := New(fixtureStore())

	for id := 1; id <= 10; id++ {
		env, err := a.Idea(id, "", "")
		require.NoError(t, err, "idea %d", id)
		assert.Len(t, env.Data, len(env.Labels), "idea %d", id)
		if env.ExtraInfo != nil {
			assert.Len(t, env.ExtraInfo, len(env.Labels), "idea %d", id)
		}
		assert.NotEmpty(t, env.Insight, "idea %d", id)
	}
}

func TestCategoryAnalysis(t *testing.T) {
	a := New(fixtureStore())

	report := a.CategoryAnalysis(models.CategoryEnrolment, "", "")

	assert.Equal(t, "Enrolment", report.Category)
	assert.Equal(t, "Total Enrolment", report.MetricLabel)
	assert.Equal(t, "State", report.EntityLabel)
	assert.Equal(t, 190.0, report.TotalVolume)
	assert.Equal(t, 2, report.ActiveRegions)

	assert.Equal(t, "Gujarat", report.TopPerformer.Name)
	assert.Equal(t, 170.0, report.TopPerformer.Value)
	assert.NotEmpty(t, report.TopPerformer.Reason)

	assert.Equal(t, "Kerala", report.BottomPerformer.Name)
	assert.Equal(t, 20.0, report.BottomPerformer.Value)
	assert.NotEmpty(t, report.BottomPerformer.Reason)

	assert.Equal(t, []string{"Gujarat", "Kerala"}, report.ChartLabels)
	assert.Equal(t, []float64{170, 20}, report.ChartData)

	// Performer reasons are seeded from the entity name, so reruns agree.
	again := a.CategoryAnalysis(models.CategoryEnrolment, "", "")
	assert.Equal(t, report.TopPerformer.Reason, again.TopPerformer.Reason)
	assert.Equal(t, report.BottomPerformer.Reason, again.BottomPerformer.Reason)
}

func TestCategoryAnalysisEmpty(t *testing.T) {
	a := New(fixtureStore())

	report := a.CategoryAnalysis(models.CategoryBiometric, "Goa", "")
	assert.Equal(t, 0.0, report.TotalVolume)
	assert.Equal(t, 0, report.ActiveRegions)
	assert.NotNil(t, report.ChartLabels)
	assert.NotNil(t, report.ChartData)
	assert.Empty(t, report.ChartLabels)
}

func TestRegionalContextPincode(t *testing.T) {
	a := New(fixtureStore())

	ctx := a.RegionalContext(models.CategoryDemographic, "Kalupur (380002)", "Gujarat", "Ahmedabad")

	assert.Equal(t, "Kalupur (380002)", ctx.Region)
	assert.Equal(t, "Pincode", ctx.Level)
	assert.Equal(t, 50.0, ctx.Metrics["age_5_17"])
	assert.Equal(t, 50.0, ctx.Metrics["age_18_above"])
	assert.Equal(t, 0.0, ctx.Metrics["age_0_5"])
	assert.Equal(t, 100.0, ctx.Total)
}

func TestRegionalContextState(t *testing.T) {
	a := New(fixtureStore())

	ctx := a.RegionalContext(models.CategoryEnrolment, "Kerala", "", "")
	assert.Equal(t, "State", ctx.Level)
	assert.Equal(t, 5.0, ctx.Metrics["age_0_5"])
	assert.Equal(t, 20.0, ctx.Total)
}

func TestCenters(t *testing.T) {
	a := New(fixtureStore())

	centers := a.Centers("Gujarat", "", "", "")
	require.Len(t, centers, 3)

	byPin := make(map[string]Center)
	for _, c := range centers {
		byPin[c.Pincode] = c
	}
	surat := byPin["395001"]
	assert.Equal(t, "Surat", surat.District)
	assert.Equal(t, "1800-300-3950", surat.Phone)
	assert.Contains(t, surat.Address, "Surat, Gujarat - 395001")

	// Jitter stays within the state's neighborhood of the base coordinate.
	assert.InDelta(t, 23.0225, surat.Lat, 0.2)
	assert.InDelta(t, 72.5714, surat.Lng, 0.2)
}

func TestCentersQueryFilter(t *testing.T) {
	a := New(fixtureStore())

	centers := a.Centers("", "", "", "surat")
	require.Len(t, centers, 1)
	assert.Equal(t, "395001", centers[0].Pincode)

	centers = a.Centers("", "", "380001", "")
	require.Len(t, centers, 1)
	assert.Equal(t, "Aadhaar Center - Lal Darwaja (380001)", centers[0].Name)
}

func TestMetadataLookup(t *testing.T) {
	a := New(fixtureStore())

	meta, ok := a.Metadata(5)
	assert.True(t, ok)
	assert.Equal(t, "System Integrity Shield", meta.Title)

	_, ok = a.Metadata(99)
	assert.False(t, ok)
}
