// Package forecast produces short-horizon price projections from a daily
// series. The model is a least-squares trend over the most recent window,
// which is deliberately simple: the output feeds a chat answer, not a
// trading decision.
package forecast

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
)

// DefaultWindow is how many trailing rows feed the regression.
const DefaultWindow = 30

// Horizon is how many days ahead Predict projects.
const Horizon = 7

// Prediction is the projected price path for the coming days.
type Prediction struct {
	Symbol string
	Unit   string
	Days   []Point
	Trend  Trend
}

// Point is one projected day.
type Point struct {
	Date  time.Time
	Price float64
}

// Trend summarises the regression slope.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

// Predict fits a linear trend to the tail of rows and extrapolates Horizon
// days past the last row. It needs at least two rows.
func Predict(symbol, unit string, rows []fetch.Row) (Prediction, error) {
	if len(rows) < 2 {
		return Prediction{}, fmt.Errorf("forecast: need at least 2 rows for %s, have %d", symbol, len(rows))
	}

	window := rows
	if len(window) > DefaultWindow {
		window = window[len(window)-DefaultWindow:]
	}

	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, row := range window {
		xs[i] = float64(i)
		ys[i] = row.Close
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	last := rows[len(rows)-1]
	pred := Prediction{Symbol: symbol, Unit: unit, Trend: classify(beta, last.Close)}
	for d := 1; d <= Horizon; d++ {
		price := alpha + beta*float64(len(window)-1+d)
		if price < 0 {
			price = 0
		}
		pred.Days = append(pred.Days, Point{
			Date:  last.GregorianDate.AddDate(0, 0, d),
			Price: price,
		})
	}
	return pred, nil
}

// classify treats a daily drift below 0.05% of the last price as flat.
func classify(beta, lastClose float64) Trend {
	if lastClose <= 0 {
		lastClose = 1
	}
	switch rel := beta / lastClose; {
	case math.Abs(rel) < 0.0005:
		return TrendFlat
	case rel > 0:
		return TrendUp
	default:
		return TrendDown
	}
}
