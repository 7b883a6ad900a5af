// Package program builds and extends weekly activity-tracking tables. A table
// starts with a header row and three bootstrap weeks of seed history, then
// grows by two-row week blocks: an Estimated row whose targets are 120% of
// the trailing three-week average, and an Actual row filled in by hand.
package program

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"trainsheet/pkg/layout"
	"trainsheet/pkg/sheets"
)

var headerRow = []interface{}{
	"Week",
	"Sun",
	"Mon",
	"Tue",
	"Wed",
	"Thu",
	"Fri",
	"Sat",
	"Total",
}

// Builder writes one program's table. It holds no row-count state of its own;
// the table is always the source of truth.
type Builder struct {
	table sheets.Table
}

func NewBuilder(table sheets.Table) *Builder {
	return &Builder{table: table}
}

// Initialize lays out a fresh table: header, bootstrap block, weekCount week
// blocks starting at week 0, then a full-table alignment pass. Not safe to
// call on a non-empty table; the caller gates on that.
func (b *Builder) Initialize(weekCount int) error {
	if weekCount < 0 {
		return fmt.Errorf("week count must not be negative, got %d", weekCount)
	}
	if err := b.writeHeader(); err != nil {
		return err
	}
	if err := b.writeBootstrap(); err != nil {
		return err
	}
	for week := 0; week < weekCount; week++ {
		if err := b.writeWeekBlock(week); err != nil {
			return err
		}
	}
	log.Infof("Initialized table with %d weeks", weekCount)
	return b.applyAlignment()
}

// AddWeeks appends addCount week blocks after the existing existingWeeks
// blocks. existingWeeks comes from CurrentWeeks; passing anything else
// collides with rows already written.
func (b *Builder) AddWeeks(existingWeeks, addCount int) error {
	if addCount < 1 {
		return fmt.Errorf("must add at least one week, got %d", addCount)
	}
	for i := 0; i < addCount; i++ {
		if err := b.writeWeekBlock(existingWeeks + i); err != nil {
			return err
		}
	}
	log.Infof("Added %d weeks after week %d", addCount, existingWeeks-1)
	return b.applyAlignment()
}

// CurrentWeeks derives the number of week blocks from the table's populated
// rows. The table must be initialized first.
func (b *Builder) CurrentWeeks() (int, error) {
	lastRow, err := b.table.LastRow()
	if err != nil {
		return 0, err
	}
	return layout.WeeksFromLastRow(lastRow), nil
}

func (b *Builder) writeHeader() error {
	return b.table.WriteRange(layout.HeaderRow, layout.ColumnWeek, [][]interface{}{headerRow})
}

// writeBootstrap seeds weeks -3..-1: a week label and an own-row total, no
// day values. These rows give week 0 its three-week history.
func (b *Builder) writeBootstrap() error {
	rows := make([][]interface{}, layout.BootstrapWeeks)
	for i := range rows {
		week := i - layout.BootstrapWeeks
		row := layout.ActualRow(week)
		rows[i] = blankRow()
		rows[i][layout.ColumnWeek-1] = week
		rows[i][layout.ColumnTotal-1] = totalFormula(row)
	}
	if err := b.table.WriteRange(layout.BootstrapStart, 1, rows); err != nil {
		return err
	}
	return b.table.StyleRange(layout.BootstrapStart, 1, layout.BootstrapWeeks, layout.ColumnCount,
		sheets.RangeStyle{OuterBorder: true})
}

func (b *Builder) writeWeekBlock(week int) error {
	estRow := layout.EstimatedRow(week)
	actRow := layout.ActualRow(week)

	est := blankRow()
	est[layout.ColumnType-1] = "Estimated"
	est[layout.ColumnWeek-1] = week
	for col := layout.ColumnSun; col <= layout.ColumnSat; col++ {
		est[col-1] = estimateFormula(col, week)
	}
	est[layout.ColumnTotal-1] = totalFormula(estRow)

	act := blankRow()
	act[layout.ColumnType-1] = "Actual"
	act[layout.ColumnWeek-1] = week
	act[layout.ColumnTotal-1] = totalFormula(actRow)

	if err := b.table.WriteRange(estRow, 1, [][]interface{}{est, act}); err != nil {
		return err
	}
	return b.table.StyleRange(estRow, 1, 2, layout.ColumnCount,
		sheets.RangeStyle{OuterBorder: true})
}

// applyAlignment centers every populated cell, headers included.
func (b *Builder) applyAlignment() error {
	lastRow, err := b.table.LastRow()
	if err != nil {
		return err
	}
	return b.table.StyleRange(layout.HeaderRow, 1, lastRow, layout.ColumnCount, sheets.RangeStyle{
		HorizontalAlign: "CENTER",
		VerticalAlign:   "MIDDLE",
	})
}

func blankRow() []interface{} {
	row := make([]interface{}, layout.ColumnCount)
	for i := range row {
		row[i] = ""
	}
	return row
}

// estimateFormula targets 120% of the average of the three most recent actual
// values in col. IFERROR blanks the cell while history is still empty.
func estimateFormula(col, week int) string {
	r1, r2, r3 := layout.LastThreeActualRows(week)
	c := layout.ColumnLetter(col)
	return fmt.Sprintf(`=IFERROR(AVERAGE(%s%d,%s%d,%s%d)*1.2, "")`, c, r1, c, r2, c, r3)
}

// totalFormula sums row's seven day columns, blanking on error.
func totalFormula(row int) string {
	return fmt.Sprintf(`=IFERROR(SUM(%s%d:%s%d), "")`,
		layout.ColumnLetter(layout.ColumnSun), row,
		layout.ColumnLetter(layout.ColumnSat), row,
	)
}
