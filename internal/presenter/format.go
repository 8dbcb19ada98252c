// Package presenter turns game records into display-ready values. Every
// function is pure and total.
package presenter

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Tone partitions lucky scores for styling.
type Tone string

const (
	Favorable   Tone = "favorable"
	Unfavorable Tone = "unfavorable"
)

// FormatCurrency renders whole US dollars with thousands separators, e.g. "$2,500".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	whole := math.Round(amount)
	if whole == 0 {
		return "$0"
	}
	if whole < 0 {
		return "-$" + printer.Sprintf("%.0f", -whole)
	}
	return "$" + printer.Sprintf("%.0f", whole)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// ScoreTone is Favorable iff score > 0.
func ScoreTone(score float64) Tone {
	if score > 0 {
		return Favorable
	}
	return Unfavorable
}

// FormatScore renders a lucky score with two decimals. Exact halves round
// away from zero, so 0.125 renders as "0.13".
func FormatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return strconv.FormatFloat(score, 'f', 2, 64)
	}
	r := new(big.Rat).SetFloat64(math.Abs(score))
	r.Mul(r, big.NewRat(100, 1))
	r.Add(r, big.NewRat(1, 2))
	hundredths := new(big.Int).Quo(r.Num(), r.Denom())

	digits := hundredths.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if score < 0 {
		out = "-" + out
	}
	return out
}

// FormatOdds renders overall odds as "1:N".
func FormatOdds(overallOdds float64) string {
	return "1:" + strconv.FormatFloat(overallOdds, 'f', -1, 64)
}

// PrizeFillRatio parses the upstream remaining-prize percentage. Values are
// not clamped; anything that does not parse as a finite number yields 0.
func PrizeFillRatio(r games.Result) float64 {
	raw := strings.TrimSuffix(strings.TrimSpace(r.PrizeRemainingPercent), "%")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ProgressWidth is PrizeFillRatio clipped to [0,100] for layout.
func ProgressWidth(r games.Result) float64 {
	return math.Min(100, math.Max(0, PrizeFillRatio(r)))
}
