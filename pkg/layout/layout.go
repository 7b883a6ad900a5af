// Package layout holds the row and column arithmetic for a program table.
// Everything here is pure; the sheet itself is never touched.
package layout

// Fixed structure of a program table:
//
//	row 1      header (labels in columns B..J)
//	rows 2-4   bootstrap weeks -3..-1, seed history for the estimates
//	row 5+2k   Estimated row for week k
//	row 6+2k   Actual row for week k
const (
	HeaderRow      = 1
	BootstrapStart = 2
	BootstrapWeeks = 3
	FirstWeekRow   = 5
)

// Column positions, 1-based as the Sheets API counts them.
const (
	ColumnType  = 1
	ColumnWeek  = 2
	ColumnSun   = 3
	ColumnSat   = 9
	ColumnTotal = 10
	ColumnCount = 10
)

// ActualRow returns the row holding week's actual values. Negative weeks are
// the bootstrap rows. Callers never pass weeks below -3.
func ActualRow(week int) int {
	if week < 0 {
		return week + 5
	}
	return 6 + 2*week
}

// EstimatedRow returns the row holding week's estimated values, week >= 0.
func EstimatedRow(week int) int {
	return 5 + 2*week
}

// LastThreeActualRows returns the actual rows for the three weeks preceding
// week, most recent first. Only meaningful for week >= 0; the bootstrap block
// guarantees three predecessors exist.
func LastThreeActualRows(week int) (int, int, int) {
	return ActualRow(week - 1), ActualRow(week - 2), ActualRow(week - 3)
}

// WeeksFromLastRow derives how many week blocks a table holds from its last
// populated row. The table must be fully initialized (header plus bootstrap,
// lastRow >= 4); the result is meaningless otherwise.
func WeeksFromLastRow(lastRow int) int {
	return (lastRow - FirstWeekRow + 1) / 2
}

// ColumnLetter converts a 1-based column number to its spreadsheet name:
// 1 -> A, 26 -> Z, 27 -> AA.
func ColumnLetter(col int) string {
	var s string
	for col > 0 {
		col--
		s = string(rune('A'+col%26)) + s
		col /= 26
	}
	return s
}
