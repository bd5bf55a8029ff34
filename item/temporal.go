package item

import "time"

// DurationCategory distinguishes the three duration families the
// spec recognizes. Comparing durations across incompatible families
// is an error (see Compare in compare.go); within a family they
// compare by total milliseconds (day-time) or total months
// (year-month). Combined durations carry both components; year-month
// is not normalized to an approximate day-time span, so combined
// durations only compare against other combined durations (months
// first, then milliseconds).
type DurationCategory int

const (
	DurationYearMonth DurationCategory = iota
	DurationDayTime
	DurationCombined
)

// Duration is the JSONiq duration item. Months holds the year-month
// component (meaningful for DurationYearMonth and DurationCombined);
// Millis holds the day-time component in milliseconds (meaningful for
// DurationDayTime and DurationCombined).
type Duration struct {
	base
	Category DurationCategory
	Months   int64
	Millis   int64
}

func (Duration) Kind() Kind     { return KindDuration }
func (Duration) IsAtomic() bool { return true }
func (d Duration) String() string {
	switch d.Category {
	case DurationYearMonth:
		return formatYearMonth(d.Months)
	case DurationDayTime:
		return formatDayTime(d.Millis)
	default:
		return formatYearMonth(d.Months) + formatDayTimeTail(d.Millis)
	}
}

func NewYearMonthDuration(months int64) Duration {
	return Duration{Category: DurationYearMonth, Months: months}
}

func NewDayTimeDuration(millis int64) Duration {
	return Duration{Category: DurationDayTime, Millis: millis}
}

func NewCombinedDuration(months, millis int64) Duration {
	return Duration{Category: DurationCombined, Months: months, Millis: millis}
}

func formatYearMonth(months int64) string {
	sign := ""
	if months < 0 {
		sign = "-"
		months = -months
	}
	years := months / 12
	rem := months % 12
	return sign + "P" + formatInt64(years) + "Y" + formatInt64(rem) + "M"
}

func formatDayTime(millis int64) string {
	sign := ""
	if millis < 0 {
		sign = "-"
		millis = -millis
	}
	secs := millis / 1000
	days := secs / 86400
	secs %= 86400
	hours := secs / 3600
	secs %= 3600
	mins := secs / 60
	secs %= 60
	return sign + "P" + formatInt64(days) + "DT" + formatInt64(hours) + "H" + formatInt64(mins) + "M" + formatInt64(secs) + "S"
}

func formatDayTimeTail(millis int64) string {
	s := formatDayTime(millis)
	// drop the leading "P" so it tails onto the year-month prefix
	return s[1:]
}

// TemporalPrecision distinguishes dateTime/date/time.
type TemporalPrecision int

const (
	PrecisionDateTime TemporalPrecision = iota
	PrecisionDate
	PrecisionTime
)

// Temporal is the JSONiq dateTime/date/time item. HasZone records
// whether the lexical form carried a timezone offset; when false, the
// item is "local" and still compares chronologically by its encoded
// instant (time.Time's zero-offset default).
type Temporal struct {
	base
	Precision TemporalPrecision
	Value     time.Time
	HasZone   bool
}

func (t Temporal) Kind() Kind {
	switch t.Precision {
	case PrecisionDate:
		return KindDate
	case PrecisionTime:
		return KindTime
	default:
		return KindDateTime
	}
}

func (Temporal) IsAtomic() bool { return true }

func (t Temporal) String() string {
	switch t.Precision {
	case PrecisionDate:
		return t.Value.Format("2006-01-02")
	case PrecisionTime:
		return t.Value.Format("15:04:05.999999999")
	default:
		return t.Value.Format(time.RFC3339Nano)
	}
}

func NewDateTime(v time.Time, hasZone bool) Temporal {
	return Temporal{Precision: PrecisionDateTime, Value: v, HasZone: hasZone}
}

func NewDate(v time.Time, hasZone bool) Temporal {
	return Temporal{Precision: PrecisionDate, Value: v, HasZone: hasZone}
}

func NewTime(v time.Time, hasZone bool) Temporal {
	return Temporal{Precision: PrecisionTime, Value: v, HasZone: hasZone}
}
