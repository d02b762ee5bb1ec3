package model

import "fmt"

// Day identifies one of the six board columns.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Weekend   Day = "weekend"
)

// Days lists the board columns in display order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Weekend}

// Valid reports whether d is one of the six board days.
func (d Day) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Weekend:
		return true
	}
	return false
}

// String returns the lowercase day name used as the column label.
func (d Day) String() string { return string(d) }

// ParseDay converts a raw string into a Day.
func ParseDay(s string) (Day, error) {
	d := Day(s)
	if !d.Valid() {
		return "", fmt.Errorf("invalid day %q", s)
	}
	return d, nil
}
