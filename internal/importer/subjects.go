package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

// LoadSubjectList reads a file of INSTITUTE:CODE lines.
func LoadSubjectList(path string) ([]domain.Subject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSubjectList(f)
}

// ParseSubjectList parses one INSTITUTE:CODE per line. Blank lines and
// lines starting with # are skipped. Every bad line is reported.
func ParseSubjectList(r io.Reader) ([]domain.Subject, error) {
	var (
		subjects []domain.Subject
		errs     []error
	)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, err := domain.ParseSubjectRef(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", n, err))
			continue
		}
		subjects = append(subjects, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading subject list: %w", err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return subjects, nil
}
