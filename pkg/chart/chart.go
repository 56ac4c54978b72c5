// Package chart turns a daily price series into a renderable payload. The
// package does not draw anything itself; callers hand the payload to a
// Renderer (the bot ships a text renderer, web frontends plot the points).
package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
)

// Point is one plotted day.
type Point struct {
	Date       time.Time `json:"date"`
	JalaliDate string    `json:"jalaliDate"`
	Close      float64   `json:"close"`
}

// Payload is a ready-to-plot line series.
type Payload struct {
	Title  string  `json:"title"`
	Symbol string  `json:"symbol"`
	Unit   string  `json:"unit"`
	Points []Point `json:"points"`
}

// Renderer draws a payload into some concrete representation.
type Renderer interface {
	Render(p Payload) (string, error)
}

// Build slices rows to the [from, now] window and wraps them for plotting.
// It fails when no row falls inside the window.
func Build(symbol, unit string, rows []fetch.Row, from time.Time) (Payload, error) {
	p := Payload{
		Title:  fmt.Sprintf("نمودار قیمت %s", symbol),
		Symbol: symbol,
		Unit:   unit,
	}
	for _, row := range rows {
		if row.GregorianDate.Before(from) {
			continue
		}
		p.Points = append(p.Points, Point{
			Date:       row.GregorianDate,
			JalaliDate: row.JalaliDate,
			Close:      row.Close,
		})
	}
	if len(p.Points) == 0 {
		return Payload{}, fmt.Errorf("chart: no rows for %s since %s", symbol, from.Format("2006-01-02"))
	}
	return p, nil
}

// TextRenderer renders a payload as a unicode sparkline with a range line,
// suitable for chat surfaces that cannot display images.
type TextRenderer struct{}

var sparks = []rune("▁▂▃▄▅▆▇█")

func (TextRenderer) Render(p Payload) (string, error) {
	if len(p.Points) == 0 {
		return "", fmt.Errorf("chart: empty payload")
	}

	min, max := p.Points[0].Close, p.Points[0].Close
	for _, pt := range p.Points[1:] {
		if pt.Close < min {
			min = pt.Close
		}
		if pt.Close > max {
			max = pt.Close
		}
	}

	var line strings.Builder
	span := max - min
	for _, pt := range p.Points {
		idx := 0
		if span > 0 {
			idx = int((pt.Close - min) / span * float64(len(sparks)-1))
		}
		line.WriteRune(sparks[idx])
	}

	last := p.Points[len(p.Points)-1]
	return fmt.Sprintf("%s\n%s\nکمترین: %s %s | بیشترین: %s %s | آخرین: %s %s",
		p.Title, line.String(),
		fetch.FormatNumber(min, 0), p.Unit,
		fetch.FormatNumber(max, 0), p.Unit,
		fetch.FormatNumber(last.Close, 0), p.Unit), nil
}
