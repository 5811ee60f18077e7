package nutrition

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observations(ws ...float64) []WeightObservation {
	out := make([]WeightObservation, 0, len(ws))
	for i, w := range ws {
		out = append(out, WeightObservation{
			RecordedAt: testToday.Add(time.Duration(i) * 24 * time.Hour),
			WeightKg:   w,
		})
	}
	return out
}

func TestProject_Empty(t *testing.T) {
	c := Project(nil, DefaultChartArea)
	assert.True(t, c.Empty())
	assert.Equal(t, "", c.Polyline())
}

func TestProject_SinglePointCentered(t *testing.T) {
	area := ChartArea{Width: 300, Height: 160, Padding: 20}
	c := Project(observations(7.5), area)
	require.Len(t, c.Points, 1)
	assert.Equal(t, 150.0, c.Points[0].X)
	// rango 0 => se usa 1; el punto queda abajo del área útil
	assert.Equal(t, 140.0, c.Points[0].Y)
}

func TestProject_FlatSeriesSharesHeight(t *testing.T) {
	c := Project(observations(5, 5, 5), DefaultChartArea)
	require.Len(t, c.Points, 3)
	for _, p := range c.Points {
		assert.Equal(t, c.Points[0].Y, p.Y)
	}
}

func TestProject_IndexSpacingAndScale(t *testing.T) {
	obs := []WeightObservation{
		{RecordedAt: testToday, WeightKg: 10},
		{RecordedAt: testToday.Add(1 * time.Hour), WeightKg: 12},
		// salto irregular en el tiempo: no cambia el espaciado horizontal
		{RecordedAt: testToday.Add(90 * 24 * time.Hour), WeightKg: 11},
	}
	area := ChartArea{Width: 240, Height: 140, Padding: 20}

	got := Project(obs, area)

	want := Chart{
		Points: []ChartPoint{
			{X: 20, Y: 120, Observation: obs[0]},
			{X: 120, Y: 20, Observation: obs[1]},
			{X: 220, Y: 70, Observation: obs[2]},
		},
		Gridlines: []float64{45, 70, 95},
		Min:       10,
		Max:       12,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("Project() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "20,120 120,20 220,70", got.Polyline())
}
