// Package nettime holds the pure time arithmetic behind shift staffing
// computations: gross and net durations for "HH:MM" wall-clock segments,
// overnight handling, and break-adjusted net factors. All functions are
// total; malformed time components degrade to 0 instead of erroring.
package nettime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

const minutesPerDay = 1440

// TimeToMinutes parses an "HH:MM" string into minutes since midnight.
// Missing or non-numeric components count as 0, so "7" parses as 420 and
// garbage parses as 0.
func TimeToMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)

	hours := 0
	if len(parts) > 0 {
		if h, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			hours = h
		}
	}

	minutes := 0
	if len(parts) > 1 {
		if m, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			minutes = m
		}
	}

	return hours*60 + minutes
}

// SegmentGrossMinutes returns the minutes between two wall-clock times on a
// single shift occurrence. end <= start is read as crossing midnight.
func SegmentGrossMinutes(start, end string) int {
	s := TimeToMinutes(start)
	e := TimeToMinutes(end)

	if e <= s {
		return minutesPerDay - s + e
	}
	return e - s
}

func SegmentGrossHours(start, end string) float64 {
	return float64(SegmentGrossMinutes(start, end)) / 60
}

// AddHoursToTime shifts a wall-clock time by a possibly fractional, possibly
// negative number of hours, wrapping modulo 24h.
func AddHoursToTime(t string, hours float64) string {
	total := int(math.Round(float64(TimeToMinutes(t)) + hours*60))
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay

	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ShiftGrossMinutes is the overnight-aware gross duration of a whole shift.
func ShiftGrossMinutes(shiftStart, shiftEnd string) int {
	return SegmentGrossMinutes(shiftStart, shiftEnd)
}

// NetFactor expresses what fraction of gross clock time is net working time
// after unpaid break deduction and paid-break addback. A nil rule or a
// non-positive gross duration yields 1.
func NetFactor(rule *domain.ShiftRule) float64 {
	if rule == nil {
		return 1
	}

	gross := ShiftGrossMinutes(rule.ShiftStart, rule.ShiftEnd)
	if gross <= 0 {
		return 1
	}

	factor := float64(gross-rule.BreakMinutes+rule.PaidBreakMinutes) / float64(gross)
	if factor < 0 {
		return 0
	}
	if factor > 1 {
		return 1
	}
	return factor
}

// NetShiftHours is the break-adjusted working duration of a whole shift.
func NetShiftHours(rule *domain.ShiftRule) float64 {
	if rule == nil {
		return 0
	}
	gross := ShiftGrossMinutes(rule.ShiftStart, rule.ShiftEnd)
	return float64(gross-rule.BreakMinutes+rule.PaidBreakMinutes) / 60
}

func SegmentNetHours(start, end string, netFactor float64) float64 {
	return float64(SegmentGrossMinutes(start, end)) * netFactor / 60
}

// RangesOverlap reports whether two wall-clock ranges overlap, each range
// being overnight-aware. A wrapping range is split at midnight into two
// sub-intervals which are pairwise tested for strict overlap.
func RangesOverlap(start1, end1, start2, end2 string) bool {
	first := splitAtMidnight(TimeToMinutes(start1), TimeToMinutes(end1))
	second := splitAtMidnight(TimeToMinutes(start2), TimeToMinutes(end2))

	for _, a := range first {
		for _, b := range second {
			if a.start < b.end && b.start < a.end {
				return true
			}
		}
	}
	return false
}

type interval struct {
	start, end int
}

func splitAtMidnight(start, end int) []interval {
	if end <= start {
		return []interval{
			{start: start, end: minutesPerDay},
			{start: 0, end: end},
		}
	}
	return []interval{{start: start, end: end}}
}
