package sheets

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"trainsheet/pkg/layout"
)

const (
	maxRetries = 15
	maxBackoff = 60 * time.Second
)

// SheetClient implements Table against one sheet of a Google spreadsheet.
type SheetClient struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64
	ensured       bool
}

func NewSheetClient(jsonPath, spreadsheetID, sheetName string) (*SheetClient, error) {
	ctx := context.Background()
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(jsonPath))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	return &SheetClient{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// withBackoff retries fn on Sheets rate-limit responses with exponential
// backoff. Any other error aborts immediately.
func withBackoff(op string, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if gErr, ok := err.(*googleapi.Error); ok && (gErr.Code == 429 || gErr.Code == 403) {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			log.Printf("Rate limited by Google Sheets API, retrying %s in %v...", op, backoff)
			time.Sleep(backoff)
			continue
		}
		return err
	}
	return fmt.Errorf("%s failed after %d retries: %w", op, maxRetries, err)
}

// Ensure looks the sheet up by title and creates it when missing, caching its
// numeric sheet ID for later formatting requests.
func (s *SheetClient) Ensure() error {
	if s.ensured {
		return nil
	}
	ctx := context.Background()
	ss, err := s.service.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties.Title == s.sheetName {
			s.sheetID = sh.Properties.SheetId
			s.ensured = true
			return nil
		}
	}
	addSheetReq := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: s.sheetName,
			},
		},
	}
	resp, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{addSheetReq},
	}).Context(ctx).Do()
	if err != nil {
		return err
	}
	s.sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	s.ensured = true
	log.Infof("Created sheet %q", s.sheetName)
	return nil
}

func (s *SheetClient) WriteRange(row, col int, values [][]interface{}) error {
	if len(values) == 0 {
		return nil
	}
	colSpan := 0
	for _, r := range values {
		if len(r) > colSpan {
			colSpan = len(r)
		}
	}
	rangeA1 := fmt.Sprintf("'%s'!%s%d:%s%d",
		s.sheetName,
		layout.ColumnLetter(col), row,
		layout.ColumnLetter(col+colSpan-1), row+len(values)-1,
	)
	ctx := context.Background()
	return withBackoff("write "+rangeA1, func() error {
		_, err := s.service.Spreadsheets.Values.Update(
			s.spreadsheetID,
			rangeA1,
			&sheets.ValueRange{Values: values},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		return err
	})
}

func (s *SheetClient) StyleRange(row, col, rowSpan, colSpan int, style RangeStyle) error {
	gridRange := &sheets.GridRange{
		SheetId:          s.sheetID,
		StartRowIndex:    int64(row - 1),
		EndRowIndex:      int64(row - 1 + rowSpan),
		StartColumnIndex: int64(col - 1),
		EndColumnIndex:   int64(col - 1 + colSpan),
	}

	var requests []*sheets.Request
	if style.HorizontalAlign != "" || style.VerticalAlign != "" {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: gridRange,
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						HorizontalAlignment: style.HorizontalAlign,
						VerticalAlignment:   style.VerticalAlign,
					},
				},
				Fields: "userEnteredFormat(horizontalAlignment,verticalAlignment)",
			},
		})
	}
	if style.OuterBorder {
		solid := &sheets.Border{Style: "SOLID"}
		requests = append(requests, &sheets.Request{
			UpdateBorders: &sheets.UpdateBordersRequest{
				Range:  gridRange,
				Top:    solid,
				Bottom: solid,
				Left:   solid,
				Right:  solid,
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}

	ctx := context.Background()
	return withBackoff("style", func() error {
		_, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: requests,
		}).Context(ctx).Do()
		return err
	})
}

func (s *SheetClient) LastRow() (int, error) {
	ctx := context.Background()
	rangeA1 := fmt.Sprintf("'%s'!A:%s", s.sheetName, layout.ColumnLetter(layout.ColumnCount))
	var resp *sheets.ValueRange
	err := withBackoff("read "+rangeA1, func() error {
		var err error
		resp, err = s.service.Spreadsheets.Values.Get(s.spreadsheetID, rangeA1).Context(ctx).Do()
		return err
	})
	if err != nil {
		return 0, err
	}
	return len(resp.Values), nil
}
