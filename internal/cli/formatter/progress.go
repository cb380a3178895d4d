package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoad draws how much of the per-term credit cap a term uses, like
// [██████░░] 18/24. Terms at the cap are green; lighter terms fade to dim.
func RenderLoad(credits, maxCredits, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if maxCredits > 0 {
		pct = min(max(float64(credits)/float64(maxCredits), 0), 1)
	}
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.5:
		style = StyleDim
	case pct < 0.9:
		style = StyleBlue
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), credits, maxCredits)
}
