// Package sheets appends accepted listings to a Google Sheet. Column
// order and the highlight rules are presentation only; the row carries
// the same values as the persisted record plus the derived fields.
package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"bookingsaver/internal/models"
)

var headerTitles = []interface{}{
	"Name",
	"Address",
	"Distance",
	"Review Score",
	"Reviews Count",
	"Nights & Adults",
	"Price",
	"Price per Night",
	"Unit",
	"Cancellation",
	"Google Rating",
	"Google Reviews",
	"Overall Score",
	"Check-in",
	"Check-out",
	"Maps",
}

type Appender struct {
	logger  *logrus.Logger
	svc     *sheetsapi.Service
	sheetID string
}

// NewAppender builds a Sheets client from service-account credentials,
// given either as raw JSON or as a path to the JSON file.
func NewAppender(ctx context.Context, logger *logrus.Logger, sheetID, credentials string) (*Appender, error) {
	var opt option.ClientOption
	if _, err := os.Stat(credentials); err == nil {
		opt = option.WithCredentialsFile(credentials)
	} else {
		opt = option.WithCredentialsJSON([]byte(credentials))
	}

	svc, err := sheetsapi.NewService(ctx, opt, option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &Appender{
		logger:  logger,
		svc:     svc,
		sheetID: sheetID,
	}, nil
}

// InitSheet writes the header row, bolds and freezes it, and installs
// the highlight rules: review score <7 red, 7-8 yellow, >8 green;
// reviews count <10 red, 10-75 yellow, >75 green.
func (a *Appender) InitSheet(ctx context.Context) error {
	_, err := a.svc.Spreadsheets.Values.Update(a.sheetID, "A1", &sheetsapi.ValueRange{
		Values: [][]interface{}{headerTitles},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	meta, err := a.svc.Spreadsheets.Get(a.sheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}
	if len(meta.Sheets) == 0 {
		return fmt.Errorf("spreadsheet %s has no sheets", a.sheetID)
	}
	gridID := meta.Sheets[0].Properties.SheetId

	red := &sheetsapi.Color{Red: 1, Green: 0.8, Blue: 0.8}
	yellow := &sheetsapi.Color{Red: 1, Green: 1, Blue: 0.6}
	green := &sheetsapi.Color{Red: 0.8, Green: 1, Blue: 0.8}

	requests := []*sheetsapi.Request{
		{
			RepeatCell: &sheetsapi.RepeatCellRequest{
				Range: &sheetsapi.GridRange{SheetId: gridID, StartRowIndex: 0, EndRowIndex: 1},
				Cell: &sheetsapi.CellData{
					UserEnteredFormat: &sheetsapi.CellFormat{
						TextFormat:      &sheetsapi.TextFormat{Bold: true},
						BackgroundColor: &sheetsapi.Color{Red: 0.9, Green: 0.9, Blue: 0.9},
					},
				},
				Fields: "userEnteredFormat(textFormat,backgroundColor)",
			},
		},
		{
			UpdateSheetProperties: &sheetsapi.UpdateSheetPropertiesRequest{
				Properties: &sheetsapi.SheetProperties{
					SheetId:        gridID,
					GridProperties: &sheetsapi.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
		// Review Score (column D)
		conditionalRule(gridID, 3, 0, "NUMBER_LESS", []string{"7"}, red),
		conditionalRule(gridID, 3, 1, "NUMBER_BETWEEN", []string{"7", "8"}, yellow),
		conditionalRule(gridID, 3, 2, "NUMBER_GREATER", []string{"8"}, green),
		// Reviews Count (column E)
		conditionalRule(gridID, 4, 3, "NUMBER_LESS", []string{"10"}, red),
		conditionalRule(gridID, 4, 4, "NUMBER_BETWEEN", []string{"10", "75"}, yellow),
		conditionalRule(gridID, 4, 5, "NUMBER_GREATER", []string{"75"}, green),
	}

	_, err = a.svc.Spreadsheets.BatchUpdate(a.sheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to apply sheet formatting: %w", err)
	}

	a.logger.Info("Sheet initialized")
	return nil
}

// AppendRow appends one listing as a formatted row. The name cell links
// to the listing; nullable fields become empty cells.
func (a *Appender) AppendRow(ctx context.Context, l *models.Listing) error {
	row := []interface{}{
		fmt.Sprintf(`=HYPERLINK(%q, %q)`, l.Link, l.Name),
		l.Address,
		l.Distance,
		numberCell(l.ReviewScore),
		intCell(l.ReviewsCount),
		l.NightsAdults,
		l.Price,
		numberCell(l.PricePerNight),
		l.Unit,
		cancellationCell(l.Cancellation),
		numberCell(l.GoogleReviewScore),
		intCell(l.GoogleReviewsCount),
		numberCell(l.OverallScore),
		l.Checkin,
		l.Checkout,
		stringCell(l.GoogleMapsURL),
	}

	_, err := a.svc.Spreadsheets.Values.Append(a.sheetID, "A2", &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}

	a.logger.WithField("name", l.Name).Info("Appended listing to sheet")
	return nil
}

func conditionalRule(gridID int64, column int64, index int64, condType string, values []string, color *sheetsapi.Color) *sheetsapi.Request {
	condValues := make([]*sheetsapi.ConditionValue, len(values))
	for i, v := range values {
		condValues[i] = &sheetsapi.ConditionValue{UserEnteredValue: v}
	}

	return &sheetsapi.Request{
		AddConditionalFormatRule: &sheetsapi.AddConditionalFormatRuleRequest{
			Rule: &sheetsapi.ConditionalFormatRule{
				Ranges: []*sheetsapi.GridRange{{
					SheetId:          gridID,
					StartRowIndex:    1,
					StartColumnIndex: column,
					EndColumnIndex:   column + 1,
				}},
				BooleanRule: &sheetsapi.BooleanRule{
					Condition: &sheetsapi.BooleanCondition{Type: condType, Values: condValues},
					Format:    &sheetsapi.CellFormat{BackgroundColor: color},
				},
			},
			Index: index,
		},
	}
}

func numberCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func intCell(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func stringCell(v *string) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func cancellationCell(c models.CancellationPolicy) string {
	switch c {
	case models.CancellationFree:
		return "Free cancellation"
	case models.CancellationNone:
		return "No"
	default:
		return ""
	}
}
