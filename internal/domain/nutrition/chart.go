package nutrition

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// WeightObservation es un registro del historial de peso.
type WeightObservation struct {
	RecordedAt time.Time
	WeightKg   float64
}

// ChartArea describe el lienzo. Padding se descuenta de ambos lados.
type ChartArea struct {
	Width   float64
	Height  float64
	Padding float64
}

// DefaultChartArea replica el gráfico del perfil (alto 160, margen 20).
var DefaultChartArea = ChartArea{Width: 300, Height: 160, Padding: 20}

type ChartPoint struct {
	X, Y        float64
	Observation WeightObservation
}

type Chart struct {
	Points []ChartPoint

	// Gridlines son las Y de las líneas horizontales al 25/50/75%.
	Gridlines []float64

	Min, Max float64
}

// Empty => el caller oculta el gráfico.
func (c Chart) Empty() bool { return len(c.Points) == 0 }

// Polyline devuelve "x,y x,y ..." para un <polyline points="...">.
func (c Chart) Polyline() string {
	parts := make([]string, 0, len(c.Points))
	for _, p := range c.Points {
		parts = append(parts, formatCoord(p.X)+","+formatCoord(p.Y))
	}
	return strings.Join(parts, " ")
}

// Project ubica las observaciones en el área, en el orden recibido.
// X se reparte por índice (no por tiempo transcurrido); un único punto va al centro.
// Y es lineal entre el mínimo (abajo) y el máximo (arriba); con rango 0 se usa 1.
func Project(obs []WeightObservation, area ChartArea) Chart {
	if len(obs) == 0 {
		return Chart{}
	}

	usableW := area.Width - area.Padding*2
	usableH := area.Height - area.Padding*2

	minW, maxW := obs[0].WeightKg, obs[0].WeightKg
	for _, o := range obs[1:] {
		minW = math.Min(minW, o.WeightKg)
		maxW = math.Max(maxW, o.WeightKg)
	}
	span := maxW - minW
	if span == 0 {
		span = 1
	}

	n := len(obs)
	stepX := 0.0
	if n > 1 {
		stepX = usableW / float64(n-1)
	}

	points := make([]ChartPoint, 0, n)
	for i, o := range obs {
		x := area.Padding + float64(i)*stepX
		if n == 1 {
			x = area.Padding + usableW/2
		}
		y := area.Padding + usableH - (o.WeightKg-minW)/span*usableH
		points = append(points, ChartPoint{X: x, Y: y, Observation: o})
	}

	grid := make([]float64, 0, 3)
	for _, f := range []float64{0.25, 0.5, 0.75} {
		grid = append(grid, area.Padding+usableH*f)
	}

	return Chart{Points: points, Gridlines: grid, Min: minW, Max: maxW}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
