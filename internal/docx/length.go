package docx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Length is a distance in English Metric Units (EMU), the native unit of
// DrawingML. Page geometry in WordprocessingML is stored in twips and
// converted on the way in and out.
type Length int64

// Unit sizes in EMU.
const (
	EMUPerInch = 914400
	EMUPerMm   = 36000
	EMUPerPt   = 12700
	EMUPerTwip = 635
)

// Mm returns the Length of v millimetres.
func Mm(v float64) Length {
	return Length(math.Round(v * EMUPerMm))
}

// Inches returns the Length of v inches.
func Inches(v float64) Length {
	return Length(math.Round(v * EMUPerInch))
}

// Twips returns the Length of v twips (1/1440 inch).
func Twips(v int) Length {
	return Length(int64(v) * EMUPerTwip)
}

// EMU returns the length in English Metric Units.
func (l Length) EMU() int64 { return int64(l) }

// Mm returns the length in millimetres.
func (l Length) Mm() float64 { return float64(l) / EMUPerMm }

// Inches returns the length in inches.
func (l Length) Inches() float64 { return float64(l) / EMUPerInch }

// Twips returns the length rounded to the nearest twip.
func (l Length) Twips() int {
	return int(math.Round(float64(l) / EMUPerTwip))
}

// Pixels returns the length in pixels at the given DPI, truncated toward zero.
func (l Length) Pixels(dpi int) int {
	return int(math.Floor(l.Inches() * float64(dpi)))
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Mm(), 'f', 2, 64) + "mm"
}

// parseTwipsMeasure parses an ST_TwipsMeasure / ST_SignedTwipsMeasure value.
// Transitional documents store bare twips ("11906"); strict documents may
// carry a universal measure with a unit suffix ("210mm", "8.5in").
func parseTwipsMeasure(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty measure")
	}

	units := []struct {
		suffix string
		emu    float64
	}{
		{"mm", EMUPerMm},
		{"cm", EMUPerMm * 10},
		{"in", EMUPerInch},
		{"pt", EMUPerPt},
		{"pc", EMUPerPt * 12},
		{"pi", EMUPerPt * 12},
	}
	for _, u := range units {
		if num, ok := strings.CutSuffix(s, u.suffix); ok {
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid measure %q: %w", s, err)
			}
			return Length(math.Round(v * u.emu)), nil
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid measure %q: %w", s, err)
	}
	return Length(math.Round(v * EMUPerTwip)), nil
}
