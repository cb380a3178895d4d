package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

// termValue is a pflag.Value for terms written as "1s2024".
type termValue struct {
	term *domain.Term
}

var _ pflag.Value = (*termValue)(nil)

func newTermValue(t *domain.Term) *termValue {
	return &termValue{term: t}
}

func (v *termValue) String() string {
	if v.term == nil || v.term.IsZero() {
		return ""
	}
	return v.term.String()
}

func (v *termValue) Set(s string) error {
	t, err := domain.ParseTerm(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*v.term = t
	return nil
}

func (v *termValue) Type() string { return "term" }

// parseSubjectRefs reads "INSTITUTE:CODE" references separated by commas
// or whitespace.
func parseSubjectRefs(raw []string) ([]domain.Subject, error) {
	var out []domain.Subject
	for _, chunk := range raw {
		for _, ref := range strings.FieldsFunc(chunk, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' }) {
			s, err := domain.ParseSubjectRef(ref)
			if err != nil {
				return nil, fmt.Errorf("subject %q: %w", ref, err)
			}
			out = append(out, s)
		}
	}
	return out, nil
}
