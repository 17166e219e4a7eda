// Package date provides a day-granularity Date value type.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// StatementFormat is the day-first layout used by broker statements, e.g. 01.02.2021.
const StatementFormat = "02.01.2006"

// StatementTimeFormat is the time-of-day layout used by broker statements, e.g. 17:01:05.
const StatementTimeFormat = "15:04:05"

const Day = 24 * time.Hour

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.time().Month() }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time { return d.time() }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the day of t, in t's own location.
func Of(t time.Time) Date { return New(t.Date()) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 whether d is before, equal or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// DaysSince returns the number of days from x to d, negative if d is before x.
func (d Date) DaysSince(x Date) int { return int(d.time().Sub(x.time()) / Day) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	// We use a slightly more permisive format for read, to support 2025-7-1 instead of 2025-07-01
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// ParseStatement parses a day-first statement date like "01.02.2021".
func ParseStatement(str string) (Date, error) {
	on, err := time.Parse(StatementFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, StatementFormat, err)
	}
	return New(on.Date()), nil
}

// ParseStatementTime combines a statement date "01.02.2021" and time "17:01:05".
//
// Statements carry no timezone, the result is expressed in UTC.
func ParseStatementTime(day, clock string) (time.Time, error) {
	t, err := time.Parse(StatementFormat+" "+StatementTimeFormat, day+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q %q want format %q %q: %w", day, clock, StatementFormat, StatementTimeFormat, err)
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Min returns the earliest of the given dates, or the zero Date if none.
func Min(dates ...Date) Date {
	var m Date
	for i, d := range dates {
		if i == 0 || d.Before(m) {
			m = d
		}
	}
	return m
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}
func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
