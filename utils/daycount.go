package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/mathfinance/errs"
)

// Basis is a spreadsheet day-count basis.
type Basis int

const (
	BasisNASD         Basis = iota // US (NASD) 30/360
	BasisActualActual              // Actual/actual
	BasisActual360                 // Actual/360
	BasisActual365                 // Actual/365
	BasisEuropean                  // European 30/360
)

func (b Basis) String() string {
	switch b {
	case BasisNASD:
		return "30/360"
	case BasisActualActual:
		return "ACT/ACT"
	case BasisActual360:
		return "ACT/360"
	case BasisActual365:
		return "ACT/365"
	case BasisEuropean:
		return "30E/360"
	default:
		return fmt.Sprintf("Basis(%d)", int(b))
	}
}

// ParseBasis accepts the usual market spellings of each basis.
func ParseBasis(s string) (Basis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "30/360", "NASD", "US":
		return BasisNASD, nil
	case "ACT/ACT", "ACTUAL/ACTUAL":
		return BasisActualActual, nil
	case "ACT/360", "ACTUAL/360":
		return BasisActual360, nil
	case "ACT/365", "ACT/365F", "ACTUAL/365":
		return BasisActual365, nil
	case "30E/360", "EUROPEAN":
		return BasisEuropean, nil
	}
	return 0, errs.E("utils.ParseBasis", errs.InvalidArgument, "unknown day count basis %q", s)
}

// DaysDifference returns the number of days between two dates under basis.
func DaysDifference(start, end time.Time, basis Basis) (int, error) {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()

	switch basis {
	case BasisNASD:
		if d2 == 31 && (d1 == 30 || d1 == 31) {
			d2 = 30
		}
		if d1 == 31 {
			d1 = 30
		}
		return days360(y1, int(m1), d1, y2, int(m2), d2), nil
	case BasisActualActual, BasisActual360, BasisActual365:
		return DaysBetween(start, end), nil
	case BasisEuropean:
		return days360(y1, int(m1), d1, y2, int(m2), d2), nil
	}
	return 0, errs.E("utils.DaysDifference", errs.InvalidArgument, "unknown day count basis %d", int(basis))
}

// DaysPerYear returns the length of year under basis.
func DaysPerYear(year int, basis Basis) (int, error) {
	switch basis {
	case BasisNASD, BasisActual360, BasisEuropean:
		return 360, nil
	case BasisActualActual:
		if IsLeapYear(year) {
			return 366, nil
		}
		return 365, nil
	case BasisActual365:
		return 365, nil
	}
	return 0, errs.E("utils.DaysPerYear", errs.InvalidArgument, "unknown day count basis %d", int(basis))
}

// YearFraction computes the year fraction between two dates, using the year
// of start for ACT/ACT.
func YearFraction(start, end time.Time, basis Basis) (float64, error) {
	days, err := DaysDifference(start, end, basis)
	if err != nil {
		return 0, err
	}
	perYear, err := DaysPerYear(start.Year(), basis)
	if err != nil {
		return 0, err
	}
	return float64(days) / float64(perYear), nil
}

func days360(y1, m1, d1, y2, m2, d2 int) int {
	return 360*(y2-y1) + 30*(m2-m1) + (d2 - d1)
}
