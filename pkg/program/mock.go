package program

import "trainsheet/pkg/sheets"

type styleCall struct {
	Row, Col, RowSpan, ColSpan int
	Style                      sheets.RangeStyle
}

// mockTable applies writes to an in-memory grid so LastRow behaves like the
// real sheet: blank cells do not count as populated.
type mockTable struct {
	Cells        map[[2]int]interface{}
	StyleCalls   []styleCall
	EnsureCalled bool
	WriteErr     error
	FailOnWrite  int // 1-based write call to start failing on, 0 for never
	writeCalls   int
}

func newMockTable() *mockTable {
	return &mockTable{Cells: map[[2]int]interface{}{}}
}

func (m *mockTable) Ensure() error {
	m.EnsureCalled = true
	return nil
}

func (m *mockTable) WriteRange(row, col int, values [][]interface{}) error {
	m.writeCalls++
	if m.FailOnWrite > 0 && m.writeCalls >= m.FailOnWrite {
		return m.WriteErr
	}
	for i, r := range values {
		for j, v := range r {
			m.Cells[[2]int{row + i, col + j}] = v
		}
	}
	return nil
}

func (m *mockTable) StyleRange(row, col, rowSpan, colSpan int, style sheets.RangeStyle) error {
	m.StyleCalls = append(m.StyleCalls, styleCall{row, col, rowSpan, colSpan, style})
	return nil
}

func (m *mockTable) LastRow() (int, error) {
	last := 0
	for coord, v := range m.Cells {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		if coord[0] > last {
			last = coord[0]
		}
	}
	return last, nil
}

func (m *mockTable) cell(row, col int) interface{} {
	return m.Cells[[2]int{row, col}]
}
