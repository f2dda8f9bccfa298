// Package freshness derives expiration urgency from inventory records.
// Every function is pure: results depend only on the records and the
// supplied current time.
package freshness

import (
	"sort"
	"time"

	"frigo-service/internal/domain"
)

// Color is the traffic-light urgency of a record
type Color string

const (
	Red    Color = "red"
	Orange Color = "orange"
	Green  Color = "green"
)

// Urgency thresholds in days, inclusive
const (
	RedThreshold    = 3
	OrangeThreshold = 7
)

// RankedRecord is a record annotated with its freshness
type RankedRecord struct {
	Record              domain.InventoryRecord
	DaysUntilExpiration int
	UrgencyColor        Color
	Expired             bool
}

// Options tunes the expiring-soon view
type Options struct {
	// IncludeExpired keeps records whose date has passed, flagged as expired
	IncludeExpired bool
	// Limit truncates the view; 0 means no limit
	Limit int
}

// Summary counts records per urgency
type Summary struct {
	Total   int `json:"total"`
	Red     int `json:"red"`
	Orange  int `json:"orange"`
	Green   int `json:"green"`
	Expired int `json:"expired"`
	Undated int `json:"undated"`
}

// DaysUntil returns the number of calendar days from now to expiration.
// This is the ceiling of the elapsed time in days: an item expiring at the
// start of tomorrow is one day out at any time today.
func DaysUntil(expiration, now time.Time) int {
	ny, nm, nd := now.Date()
	ey, em, ed := expiration.Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	day := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today) / (24 * time.Hour))
}

// DaysUntilExpiration computes the days left for a record. ok is false when
// the record has no usable expiration date.
func DaysUntilExpiration(record domain.InventoryRecord, now time.Time) (days int, ok bool) {
	expiration, ok := record.Expiration()
	if !ok {
		return 0, false
	}
	return DaysUntil(expiration, now), true
}

// Urgency maps days until expiration to a color
func Urgency(days int) Color {
	switch {
	case days <= RedThreshold:
		return Red
	case days <= OrangeThreshold:
		return Orange
	default:
		return Green
	}
}

// Rank annotates a single record. ok is false for records without a usable date.
func Rank(record domain.InventoryRecord, now time.Time) (RankedRecord, bool) {
	days, ok := DaysUntilExpiration(record, now)
	if !ok {
		return RankedRecord{}, false
	}
	return RankedRecord{
		Record:              record,
		DaysUntilExpiration: days,
		UrgencyColor:        Urgency(days),
		Expired:             days < 0,
	}, true
}

// ExpiringSoon returns dated records sorted by days until expiration,
// soonest first. Records with equal days keep their input order. Expired
// records are dropped unless opts.IncludeExpired is set.
func ExpiringSoon(records []domain.InventoryRecord, now time.Time, opts Options) []RankedRecord {
	ranked := make([]RankedRecord, 0, len(records))
	for _, record := range records {
		r, ok := Rank(record, now)
		if !ok {
			continue
		}
		if r.Expired && !opts.IncludeExpired {
			continue
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DaysUntilExpiration < ranked[j].DaysUntilExpiration
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	return ranked
}

// Summarize counts records per urgency. Expired records are counted apart
// from the colors; records without a usable date count as undated.
func Summarize(records []domain.InventoryRecord, now time.Time) Summary {
	summary := Summary{Total: len(records)}
	for _, record := range records {
		r, ok := Rank(record, now)
		switch {
		case !ok:
			summary.Undated++
		case r.Expired:
			summary.Expired++
		case r.UrgencyColor == Red:
			summary.Red++
		case r.UrgencyColor == Orange:
			summary.Orange++
		default:
			summary.Green++
		}
	}
	return summary
}
