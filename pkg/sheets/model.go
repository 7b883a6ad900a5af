package sheets

// Table is the storage capability a program builder works against: one named
// rectangular grid addressed by 1-based row and column.
type Table interface {
	// Ensure creates the backing sheet if it does not exist yet.
	Ensure() error
	// WriteRange writes values (or formula strings) into the rectangle whose
	// top-left cell is (row, col).
	WriteRange(row, col int, values [][]interface{}) error
	// StyleRange applies style to the rectangle at (row, col) spanning
	// rowSpan x colSpan cells.
	StyleRange(row, col, rowSpan, colSpan int, style RangeStyle) error
	// LastRow returns the last populated row number, 0 for an empty sheet.
	LastRow() (int, error)
}

// RangeStyle describes the formatting applied to a cell rectangle. Empty
// alignment fields leave the existing alignment untouched.
type RangeStyle struct {
	HorizontalAlign string // CENTER, LEFT, RIGHT
	VerticalAlign   string // TOP, MIDDLE, BOTTOM
	OuterBorder     bool   // solid border around the rectangle, no interior lines
}
