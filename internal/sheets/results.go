package sheets

import (
	"fmt"
	"strings"

	"tipster-bot/internal/models"
)

const SheetResults = "Results"

// LatestWeeklyResult returns the last filled row of the Results sheet
// (week, wins, losses, accuracy). Nil when the sheet holds no data rows.
func (c *Client) LatestWeeklyResult() (*models.WeeklyResult, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, SheetResults+"!A:D").Do()
	if err != nil {
		return nil, err
	}
	// header row at index 0
	for i := len(resp.Values) - 1; i >= 1; i-- {
		row := resp.Values[i]
		if len(row) == 0 || strings.TrimSpace(get(row, 0)) == "" {
			continue
		}
		return &models.WeeklyResult{
			Week:     get(row, 0),
			Wins:     get(row, 1),
			Losses:   get(row, 2),
			Accuracy: get(row, 3),
		}, nil
	}
	return nil, nil
}

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
