package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

// Dataset is tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

var planHeaders = []string{"term", "subject", "weekday", "start", "finish", "term_credits", "term_score"}

func clock(hhmm int) string {
	return fmt.Sprintf("%02d:%02d", hhmm/100, hhmm%100)
}

// PlanDataset lists one row per meeting slot, term by term and subject
// code order within a term.
func PlanDataset(plan domain.RankedPlan) Dataset {
	data := Dataset{Headers: planHeaders}
	for _, t := range plan.Terms {
		for _, code := range slices.Sorted(maps.Keys(t.Sections)) {
			for _, slot := range t.Sections[code].Sorted() {
				data.Rows = append(data.Rows, map[string]string{
					"term":         t.Term.String(),
					"subject":      code,
					"weekday":      slot.Weekday.String(),
					"start":        clock(slot.Start),
					"finish":       clock(slot.Finish),
					"term_credits": strconv.Itoa(t.Credits),
					"term_score":   strconv.FormatFloat(t.Score, 'f', 4, 64),
				})
			}
		}
	}
	return data
}

// RenderCSV encodes the dataset with a header row.
func RenderCSV(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
