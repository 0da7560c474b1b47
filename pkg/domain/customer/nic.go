package customer

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrCannotDeriveBirthDetails is returned when a NIC does not encode a valid
// date of birth.
var ErrCannotDeriveBirthDetails = errors.New("cannot derive birth details from NIC")

var (
	legacyNICPattern = regexp.MustCompile(`^\d{9}[VvXx]$`)
	newNICPattern    = regexp.MustCompile(`^\d{12}$`)
)

// IsValidNIC reports whether the identifier matches either NIC shape:
// nine digits followed by V or X, or exactly twelve digits.
func IsValidNIC(nic string) bool {
	return legacyNICPattern.MatchString(nic) || newNICPattern.MatchString(nic)
}

// BirthDetails derives the date of birth and gender encoded in a NIC.
//
// Legacy NICs encode a two-digit year (1900+YY) and a three-digit day-of-year
// in positions 3-5; twelve-digit NICs carry a four-digit year and the
// day-of-year in positions 5-7. A day-of-year above 500 marks Female and 500
// is subtracted. The remaining value is decremented by two and converted with
// a leap-aware month table, re-adding one when placing the day within the
// month, so the net correction against the 1-indexed day-of-year is minus
// one. Values that land outside the calendar yield
// ErrCannotDeriveBirthDetails.
func BirthDetails(nic string) (time.Time, Gender, error) {
	var year, dayOfYear int
	switch {
	case legacyNICPattern.MatchString(nic):
		year = 1900 + mustAtoi(nic[:2])
		dayOfYear = mustAtoi(nic[2:5])
	case newNICPattern.MatchString(nic):
		year = mustAtoi(nic[:4])
		dayOfYear = mustAtoi(nic[4:7])
	default:
		return time.Time{}, "", ErrCannotDeriveBirthDetails
	}

	gender := Male
	if dayOfYear > 500 {
		gender = Female
		dayOfYear -= 500
	}
	if dayOfYear > 0 {
		dayOfYear -= 2
	}

	total := 0
	for i, days := range monthLengths(year) {
		if dayOfYear < total+days {
			day := dayOfYear - total + 1
			if day < 1 {
				return time.Time{}, "", ErrCannotDeriveBirthDetails
			}
			dob := time.Date(year, time.Month(i+1), day, 0, 0, 0, 0, time.UTC)
			return dob, gender, nil
		}
		total += days
	}
	return time.Time{}, "", ErrCannotDeriveBirthDetails
}

func monthLengths(year int) [12]int {
	feb := 28
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		feb = 29
	}
	return [12]int{31, feb, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
}

// mustAtoi is only called on regexp-verified digit runs.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
