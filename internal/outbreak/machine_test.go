package outbreak

import (
	"testing"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func newReported(t *testing.T) models.OutbreakAggregate {
	t.Helper()
	agg, err := New(models.Outbreak{
		RegionCode:       "ET0412",
		ReporterName:     "Kebede",
		SpeciesAffected:  []string{"Cattle"},
		InitialComplaint: "Lameness and vesicles in several herds",
	}, now)
	require.NoError(t, err)
	return agg
}

func apply(t *testing.T, agg models.OutbreakAggregate, ev Event) models.OutbreakAggregate {
	t.Helper()
	tr, err := Apply(agg, ev, now)
	require.NoError(t, err)
	return tr.Aggregate
}

func submission() SubmitInvestigation {
	fmd := "FMD"
	return SubmitInvestigation{
		Date:        now,
		DiseaseCode: &fmd,
		Cases: []models.OutbreakCase{
			{Species: "Cattle", Susceptible: 200, Cases: 30, Deaths: 5, ObservedOn: now},
		},
		Samples: []models.Sample{
			{FieldID: "S-001", SampleType: "Epithelium"},
			{FieldID: "S-002", SampleType: "Serum"},
		},
	}
}

func TestNew_RequiresRegionAndComplaint(t *testing.T) {
	_, err := New(models.Outbreak{InitialComplaint: "x"}, now)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "region_code", verr.Field)

	_, err = New(models.Outbreak{RegionCode: "ET0412", InitialComplaint: "  "}, now)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "initial_complaint", verr.Field)

	agg := newReported(t)
	assert.Equal(t, models.StatusUnassigned, agg.Outbreak.Status)
	assert.Equal(t, now, agg.Outbreak.ReportDate)
	assert.Equal(t, 1, agg.Outbreak.Version)
}

func TestAssignSubmitPositive_EndsConfirmed(t *testing.T) {
	// Подготовка
	agg := newReported(t)

	// Действие
	agg = apply(t, agg, Assign{Investigator: "Dr. Almaz"})
	agg = apply(t, agg, submission())
	tr, err := Apply(agg, RecordSampleResult{FieldID: "S-001", Result: models.ResultPositive}, now)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, tr.From)
	assert.Equal(t, models.StatusConfirmed, tr.To)
	assert.True(t, tr.Promoted)
	assert.Equal(t, models.StatusConfirmed, tr.Aggregate.Outbreak.Status)
	require.NotNil(t, tr.Aggregate.Outbreak.ConfirmationDate)
	require.NotNil(t, tr.ChangedSample)
	assert.Equal(t, models.SampleResultsAvailable, tr.ChangedSample.Status)
	assert.Equal(t, "FMD", *tr.Aggregate.Outbreak.DiseaseCode)
}

func TestAssignTwice_Fails(t *testing.T) {
	agg := apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"})

	_, err := Apply(agg, Assign{Investigator: "Dr. Tesfaye"}, now)

	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, EventAssign, terr.Transition)
	assert.Equal(t, models.StatusAssigned, terr.From)
	assert.Contains(t, err.Error(), "Assign")
	assert.Contains(t, err.Error(), "Assigned")
	assert.Equal(t, models.StatusAssigned, agg.Outbreak.Status)
	assert.Equal(t, "Dr. Almaz", *agg.Outbreak.InvestigatorName)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	agg := apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"})

	tr, err := Apply(agg, submission(), now)

	require.NoError(t, err)
	assert.Empty(t, agg.Cases)
	assert.Empty(t, agg.Samples)
	assert.Equal(t, models.StatusAssigned, agg.Outbreak.Status)
	assert.Len(t, tr.NewCases, 1)
	assert.Len(t, tr.NewSamples, 2)
	for _, c := range tr.Aggregate.Cases {
		assert.Equal(t, agg.Outbreak.ID, c.OutbreakID)
	}
	for _, s := range tr.Aggregate.Samples {
		assert.Equal(t, models.SampleCollected, s.Status)
	}
}

func TestStartInvestigation(t *testing.T) {
	agg := apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"})
	started := now.Add(-24 * time.Hour)

	agg = apply(t, agg, StartInvestigation{Date: started})
	assert.Equal(t, models.StatusInProgress, agg.Outbreak.Status)

	sub := submission()
	sub.Date = time.Time{}
	agg = apply(t, agg, sub)
	assert.Equal(t, models.StatusCompleted, agg.Outbreak.Status)
	assert.Equal(t, started, *agg.Outbreak.InvestigationDate)

	_, err := Apply(newReported(t), StartInvestigation{}, now)
	assert.True(t, models.IsInvalidTransition(err))
}

func TestSubmitInvestigation_Validation(t *testing.T) {
	agg := apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"})

	sub := submission()
	sub.Cases[0].Cases = 300
	_, err := Apply(agg, sub, now)
	assert.True(t, models.IsValidation(err))

	sub = submission()
	sub.Cases[0].Deaths = -1
	_, err = Apply(agg, sub, now)
	assert.True(t, models.IsValidation(err))

	sub = submission()
	sub.Samples[1].FieldID = "S-001"
	_, err = Apply(agg, sub, now)
	assert.True(t, models.IsValidation(err))

	_, err = Apply(newReported(t), submission(), now)
	assert.True(t, models.IsInvalidTransition(err))
}

func TestPositiveResult_PromotesFromAnyOpenStatus(t *testing.T) {
	completed := apply(t, apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"}), submission())

	closed := apply(t, completed, Close{Reason: "duplicate report"})
	require.Equal(t, models.StatusRejected, closed.Outbreak.Status)

	tr, err := Apply(closed, RecordSampleResult{FieldID: "S-002", Result: models.ResultPositive}, now)
	require.NoError(t, err)
	assert.True(t, tr.Promoted)
	assert.Equal(t, models.StatusConfirmed, tr.To)
	assert.Empty(t, tr.Aggregate.Outbreak.CloseReason)

	// повторный положительный результат не меняет статус
	tr, err = Apply(tr.Aggregate, RecordSampleResult{FieldID: "S-001", Result: models.ResultPositive}, now)
	require.NoError(t, err)
	assert.False(t, tr.Promoted)
	assert.False(t, tr.StatusChanged())
}

func TestPositiveResult_ResolvedStaysResolved(t *testing.T) {
	agg := apply(t, apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"}), submission())
	agg = apply(t, agg, RecordSampleResult{FieldID: "S-001", Result: models.ResultPositive})
	agg = apply(t, agg, Resolve{})
	require.Equal(t, models.StatusResolved, agg.Outbreak.Status)

	tr, err := Apply(agg, RecordSampleResult{FieldID: "S-002", Result: models.ResultPositive}, now)

	require.NoError(t, err)
	assert.False(t, tr.Promoted)
	assert.Equal(t, models.StatusResolved, tr.To)

	_, err = Apply(tr.Aggregate, Resolve{}, now)
	assert.True(t, models.IsInvalidTransition(err))
	_, err = Apply(tr.Aggregate, Close{Reason: "x"}, now)
	assert.True(t, models.IsInvalidTransition(err))
}

func TestAllSamplesRejected_RejectsOutbreak(t *testing.T) {
	agg := apply(t, apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"}), submission())

	agg = apply(t, agg, RecordSampleResult{FieldID: "S-001", Result: models.ResultRejected, Detail: "haemolysed"})
	assert.Equal(t, models.StatusCompleted, agg.Outbreak.Status)

	tr, err := Apply(agg, UpdateSampleStatus{FieldID: "S-002", Status: models.SampleRejected}, now)

	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, tr.To)
	assert.Equal(t, ReasonAllSamplesRejected, tr.Aggregate.Outbreak.CloseReason)
	require.NotNil(t, tr.ChangedSample)
	require.NotNil(t, tr.ChangedSample.Result)
	assert.Equal(t, models.ResultRejected, *tr.ChangedSample.Result)
	require.NotNil(t, tr.ChangedSample.ResultDate)
	assert.True(t, now.Equal(*tr.ChangedSample.ResultDate))
	idx, _ := tr.Aggregate.SampleByFieldID("S-002")
	require.NotNil(t, tr.Aggregate.Samples[idx].ResultDate)
}

func TestUpdateSampleStatus_ForwardOnly(t *testing.T) {
	agg := apply(t, apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"}), submission())

	agg = apply(t, agg, UpdateSampleStatus{FieldID: "S-001", Status: models.SampleReceived})
	idx, _ := agg.SampleByFieldID("S-001")
	assert.Equal(t, models.SampleReceived, agg.Samples[idx].Status)

	_, err := Apply(agg, UpdateSampleStatus{FieldID: "S-001", Status: models.SampleInTransit}, now)
	assert.True(t, models.IsInvalidTransition(err))

	_, err = Apply(agg, UpdateSampleStatus{FieldID: "S-001", Status: models.SampleResultsAvailable}, now)
	assert.True(t, models.IsValidation(err))

	_, err = Apply(agg, UpdateSampleStatus{FieldID: "S-404", Status: models.SampleTesting}, now)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRecordSampleResult_Twice(t *testing.T) {
	agg := apply(t, apply(t, newReported(t), Assign{Investigator: "Dr. Almaz"}), submission())
	agg = apply(t, agg, RecordSampleResult{FieldID: "S-001", Result: models.ResultNegative})

	_, err := Apply(agg, RecordSampleResult{FieldID: "S-001", Result: models.ResultPositive}, now)
	assert.True(t, models.IsInvalidTransition(err))

	_, err = Apply(agg, RecordSampleResult{FieldID: "S-002", Result: "Maybe"}, now)
	assert.True(t, models.IsValidation(err))
}

func TestClose(t *testing.T) {
	agg := newReported(t)

	_, err := Apply(agg, Close{}, now)
	assert.True(t, models.IsValidation(err))

	agg = apply(t, agg, Close{Reason: "not a notifiable disease"})
	assert.Equal(t, models.StatusRejected, agg.Outbreak.Status)

	_, err = Apply(agg, Assign{Investigator: "Dr. Almaz"}, now)
	assert.True(t, models.IsInvalidTransition(err))
}

func TestCanTrace(t *testing.T) {
	assert.True(t, CanTrace(models.StatusConfirmed))
	assert.True(t, CanTrace(models.StatusResolved))
	assert.False(t, CanTrace(models.StatusAssigned))
	assert.False(t, CanTrace(models.StatusCompleted))
	assert.False(t, CanTrace(models.StatusRejected))
}
