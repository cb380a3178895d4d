package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

type Format string

const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatPDF:
		return f, nil
	case "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q (expected txt, csv or pdf)", s)
}

// Render encodes one plan in the given format.
func Render(plan domain.RankedPlan, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		var buf bytes.Buffer
		if err := RenderPlanText(&buf, plan); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatCSV:
		return RenderCSV(PlanDataset(plan))
	case FormatPDF:
		return RenderPDF(plan)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// WritePlans writes plan-<rank>.<format> files into dir, creating it when
// needed, and returns the paths written.
func WritePlans(dir string, plans []domain.RankedPlan, format Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	paths := make([]string, 0, len(plans))
	for _, plan := range plans {
		data, err := Render(plan, format)
		if err != nil {
			return paths, fmt.Errorf("rendering plan %d: %w", plan.Rank, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("plan-%d.%s", plan.Rank, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
