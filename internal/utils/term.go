package utils

import (
	"fmt"
	"time"
)

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateDifference represents the difference between two dates
type DateDifference struct {
	Months int
	Days   int
}

// ToDate converts a time.Time to a Date, dropping the time component.
func ToDate(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// CalculateDateDifference computes the difference between two dates
// Returns (months, days) where both start and end dates are included
func CalculateDateDifference(startDate, endDate Date) (DateDifference, error) {
	if endDate.Year < startDate.Year ||
		(endDate.Year == startDate.Year && endDate.Month < startDate.Month) ||
		(endDate.Year == startDate.Year && endDate.Month == startDate.Month && endDate.Day < startDate.Day) {
		return DateDifference{}, fmt.Errorf("end date must be >= start date")
	}

	years := endDate.Year - startDate.Year
	months := endDate.Month - startDate.Month
	days := endDate.Day - startDate.Day + 1 // +1 to include both ends

	// If days < 0, borrow from months
	if days < 0 {
		months -= 1
		prevMonth := endDate.Month - 1
		prevYear := endDate.Year
		if prevMonth < 1 {
			prevMonth = 12
			prevYear -= 1
		}
		days = DaysInMonth(prevYear, prevMonth) + days
	}

	// If months are negative, borrow from years
	if months < 0 {
		years -= 1
		months += 12
	}

	months += 12 * years

	return DateDifference{Months: months, Days: days}, nil
}

// LeaseTermMonths validates a lease term and returns its length in whole
// months, rounding a partial month up. A term shorter than one month is
// rejected.
func LeaseTermMonths(startDate, endDate time.Time) (int, error) {
	diff, err := CalculateDateDifference(ToDate(startDate), ToDate(endDate))
	if err != nil {
		return 0, err
	}

	if diff.Months == 0 && diff.Days < DaysInMonth(startDate.Year(), int(startDate.Month())) {
		return 0, fmt.Errorf("lease term must be at least one month")
	}

	months := diff.Months
	if diff.Days > 0 {
		months++
	}
	return months, nil
}
