package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var monthKeyRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// MonthKey identifies a calendar month and doubles as the scoping root for all
// per-month records (classes and signups). Its string form "YYYY-MM" is the
// primary key of the months table.
type MonthKey struct {
	year  int
	month time.Month
}

// MonthOf returns the MonthKey containing t.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{year: t.Year(), month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" selector. Values outside month 01..12 are
// rejected.
func ParseMonth(s string) (MonthKey, error) {
	m := monthKeyRe.FindStringSubmatch(s)
	if m == nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: want YYYY-MM", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("invalid month key %q: month out of range", s)
	}
	return MonthKey{year: year, month: time.Month(month)}, nil
}

// Year returns the calendar year.
func (k MonthKey) Year() int { return k.year }

// Month returns the calendar month.
func (k MonthKey) Month() time.Month { return k.month }

// IsZero reports whether k is the zero value, which is never a valid scope.
func (k MonthKey) IsZero() bool { return k.year == 0 }

// String formats the key as "YYYY-MM".
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.year, int(k.month))
}

// Thursdays returns the dates of every Thursday in the month, in increasing
// order. It scans forward from the 1st to the first Thursday, then steps a
// week at a time while still inside the month.
func (k MonthKey) Thursdays() []Date {
	cur := time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC)
	for cur.Weekday() != time.Thursday {
		cur = cur.AddDate(0, 0, 1)
	}
	var days []Date
	for cur.Month() == k.month {
		days = append(days, DateOf(cur))
		cur = cur.AddDate(0, 0, 7)
	}
	return days
}

// MarshalJSON renders the key as its "YYYY-MM" identity string.
func (k MonthKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON parses a "YYYY-MM" string.
func (k *MonthKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
