package api

import "trainsheet/pkg/sheets"

type writeCall struct {
	Row, Col int
	Values   [][]interface{}
}

type mockTable struct {
	WriteCalls   []writeCall
	StyleCalls   int
	EnsureCalled bool
	EnsureErr    error
	LastRowValue int
}

func (m *mockTable) Ensure() error {
	m.EnsureCalled = true
	return m.EnsureErr
}

func (m *mockTable) WriteRange(row, col int, values [][]interface{}) error {
	m.WriteCalls = append(m.WriteCalls, writeCall{Row: row, Col: col, Values: values})
	return nil
}

func (m *mockTable) StyleRange(row, col, rowSpan, colSpan int, style sheets.RangeStyle) error {
	m.StyleCalls++
	return nil
}

func (m *mockTable) LastRow() (int, error) {
	return m.LastRowValue, nil
}
