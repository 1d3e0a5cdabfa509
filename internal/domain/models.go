package domain

import "time"

// DatetimeLayout is the wall-clock format used for indicator timestamps.
const DatetimeLayout = "2006-01-02 15:04:05"

// Indicator is one persisted SLO judgment. Records are append-only; IsBad is
// always the policy's verdict for Value and is never set on its own.
type Indicator struct {
	Datetime time.Time `json:"datetime"`
	Name     string    `json:"name"`
	SLO      float64   `json:"slo"`
	Value    float64   `json:"value"`
	IsBad    bool      `json:"is_bad"`
}

// DatetimeString renders Datetime in UTC using DatetimeLayout.
func (i Indicator) DatetimeString() string {
	return FormatDatetime(i.Datetime)
}

func FormatDatetime(t time.Time) string {
	return t.UTC().Format(DatetimeLayout)
}

// IndicatorSummary aggregates records of one indicator over a window.
type IndicatorSummary struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
	Bad   int64  `json:"bad"`
}

// Compliance is the share of good records, 1 when nothing was recorded.
func (s IndicatorSummary) Compliance() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Total-s.Bad) / float64(s.Total)
}
