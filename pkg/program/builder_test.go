package program

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"trainsheet/pkg/layout"
	"trainsheet/pkg/sheets"
)

func TestInitializeEmpty(t *testing.T) {
	table := newMockTable()
	b := NewBuilder(table)

	err := b.Initialize(0)
	assert.Nil(t, err)

	// Header labels in B1..J1.
	assert.Equal(t, "Week", table.cell(1, layout.ColumnWeek))
	assert.Equal(t, "Sun", table.cell(1, layout.ColumnSun))
	assert.Equal(t, "Sat", table.cell(1, layout.ColumnSat))
	assert.Equal(t, "Total", table.cell(1, layout.ColumnTotal))

	// Bootstrap weeks -3..-1 in rows 2-4, label plus own-row total only.
	for row, week := range map[int]int{2: -3, 3: -2, 4: -1} {
		assert.Equal(t, week, table.cell(row, layout.ColumnWeek))
		assert.Equal(t, fmt.Sprintf(`=IFERROR(SUM(C%d:I%d), "")`, row, row),
			table.cell(row, layout.ColumnTotal))
		assert.Equal(t, "", table.cell(row, layout.ColumnSun))
		assert.Equal(t, "", table.cell(row, layout.ColumnType))
	}

	// Header + bootstrap only, no week blocks.
	lastRow, err := table.LastRow()
	assert.Nil(t, err)
	assert.Equal(t, 4, lastRow)

	weeks, err := b.CurrentWeeks()
	assert.Nil(t, err)
	assert.Equal(t, 0, weeks)
}

func TestInitializeRejectsNegative(t *testing.T) {
	table := newMockTable()
	b := NewBuilder(table)

	err := b.Initialize(-1)
	assert.Error(t, err)
	assert.Empty(t, table.Cells)
	assert.Empty(t, table.StyleCalls)
}

func TestInitializeThenAddWeeks(t *testing.T) {
	table := newMockTable()
	b := NewBuilder(table)

	assert.Nil(t, b.Initialize(2))

	weeks, err := b.CurrentWeeks()
	assert.Nil(t, err)
	assert.Equal(t, 2, weeks)

	assert.Nil(t, b.AddWeeks(weeks, 1))

	// Week k: Estimated at 5+2k, Actual at 6+2k, contiguous.
	for week := 0; week < 3; week++ {
		estRow := 5 + 2*week
		assert.Equal(t, "Estimated", table.cell(estRow, layout.ColumnType), "week %d", week)
		assert.Equal(t, week, table.cell(estRow, layout.ColumnWeek))
		assert.Equal(t, "Actual", table.cell(estRow+1, layout.ColumnType))
		assert.Equal(t, week, table.cell(estRow+1, layout.ColumnWeek))

		// Each row totals its own seven day columns.
		assert.Equal(t, fmt.Sprintf(`=IFERROR(SUM(C%d:I%d), "")`, estRow, estRow),
			table.cell(estRow, layout.ColumnTotal))
		assert.Equal(t, fmt.Sprintf(`=IFERROR(SUM(C%d:I%d), "")`, estRow+1, estRow+1),
			table.cell(estRow+1, layout.ColumnTotal))

		// Actual day cells stay blank for manual entry.
		for col := layout.ColumnSun; col <= layout.ColumnSat; col++ {
			assert.Equal(t, "", table.cell(estRow+1, col))
		}
	}

	// Last populated row is week 2's Actual row.
	lastRow, err := table.LastRow()
	assert.Nil(t, err)
	assert.Equal(t, 10, lastRow)
}

func TestEstimateReferencesTrailingHistory(t *testing.T) {
	table := newMockTable()
	b := NewBuilder(table)
	assert.Nil(t, b.Initialize(2))

	// Week 0 averages the bootstrap rows 4, 3, 2.
	for col := layout.ColumnSun; col <= layout.ColumnSat; col++ {
		c := layout.ColumnLetter(col)
		want := fmt.Sprintf(`=IFERROR(AVERAGE(%s4,%s3,%s2)*1.2, "")`, c, c, c)
		assert.Equal(t, want, table.cell(5, col))
	}

	// Week 1 averages week 0's actual row plus two bootstrap rows.
	assert.Equal(t, `=IFERROR(AVERAGE(C6,C4,C3)*1.2, "")`, table.cell(7, layout.ColumnSun))
}

func TestAddWeeksDerivedCountGrows(t *testing.T) {
	table := newMockTable()
	b := NewBuilder(table)
	assert.Nil(t, b.Initialize(0))

	assert.Nil(t, b.AddWeeks(0, 5))
	weeks, err := b.CurrentWeeks()
	assert.Nil(t, err)
	assert.Equal(t, 5, weeks)

	assert.Nil(t, b.AddWeeks(weeks, 3))
	weeks, err = b.CurrentWeeks()
	assert.Nil(t, err)
	assert.Equal(t, 8, weeks)

	// All eight blocks contiguous, header and bootstrap untouched.
	for week := 0; week < 8; week++ {
		assert.Equal(t, "Estimated", table.cell(5+2*week, layout.ColumnType), "week %d", week)
	}
	assert.Equal(t, "Week", table.cell(1, layout.ColumnWeek))
	assert.Equal(t, -3, table.cell(2, layout.ColumnWeek))
}

func TestAddWeeksRejectsNonPositive(t *testing.T) {
	table := newMockTable()
	b := NewBuilder(table)
	assert.Nil(t, b.Initialize(1))
	before := len(table.Cells)

	assert.Error(t, b.AddWeeks(1, 0))
	assert.Error(t, b.AddWeeks(1, -2))
	assert.Equal(t, before, len(table.Cells))
}

func TestBlockStyling(t *testing.T) {
	table := newMockTable()
	b := NewBuilder(table)
	assert.Nil(t, b.Initialize(1))

	var borders []styleCall
	var alignments []styleCall
	for _, call := range table.StyleCalls {
		if call.Style.OuterBorder {
			borders = append(borders, call)
		} else {
			alignments = append(alignments, call)
		}
	}

	// One border around the bootstrap block, one per week block.
	assert.Equal(t, []styleCall{
		{Row: 2, Col: 1, RowSpan: 3, ColSpan: 10, Style: sheets.RangeStyle{OuterBorder: true}},
		{Row: 5, Col: 1, RowSpan: 2, ColSpan: 10, Style: sheets.RangeStyle{OuterBorder: true}},
	}, borders)

	// One alignment pass over the full populated rectangle.
	assert.Equal(t, []styleCall{
		{Row: 1, Col: 1, RowSpan: 6, ColSpan: 10, Style: sheets.RangeStyle{
			HorizontalAlign: "CENTER",
			VerticalAlign:   "MIDDLE",
		}},
	}, alignments)
}

func TestWriteFailurePropagates(t *testing.T) {
	table := newMockTable()
	table.WriteErr = fmt.Errorf("storage unavailable")
	table.FailOnWrite = 2
	b := NewBuilder(table)

	err := b.Initialize(1)
	assert.Error(t, err)
	// Header landed, bootstrap did not: accepted partial state, no rollback.
	assert.Equal(t, "Week", table.cell(1, layout.ColumnWeek))
	assert.Nil(t, table.cell(2, layout.ColumnWeek))
}

func TestLookup(t *testing.T) {
	tests := []struct {
		kind    string
		want    string
		wantErr bool
	}{
		{"walking", "Walking Program", false},
		{"running", "Running Program", false},
		{"swimming", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		cfg, err := Lookup(tt.kind)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Lookup(%q) expected error", tt.kind)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", tt.kind, err)
		}
		if cfg.TableName != tt.want {
			t.Errorf("Lookup(%q).TableName = %q, want %q", tt.kind, cfg.TableName, tt.want)
		}
	}
}
