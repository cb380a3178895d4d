package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var subjectCodePattern = regexp.MustCompile(`^[A-Z][A-Z ]{0,4}[0-9][0-9A-Z]{1,4}$`)

// Subject is a course identified by its code and the institute offering it.
type Subject struct {
	Code      string
	Institute string
}

// ParseSubjectRef parses "INSTITUTE:CODE" (e.g. "IC:MC102").
func ParseSubjectRef(ref string) (Subject, error) {
	inst, code, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		return Subject{}, fmt.Errorf("subject %q must look like INSTITUTE:CODE", ref)
	}
	s := Subject{
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Institute: strings.ToUpper(strings.TrimSpace(inst)),
	}
	if err := s.Validate(); err != nil {
		return Subject{}, err
	}
	return s, nil
}

// Validate checks the code and institute are present and well formed.
func (s Subject) Validate() error {
	if s.Code == "" {
		return fmt.Errorf("subject code is required")
	}
	if s.Institute == "" {
		return fmt.Errorf("subject %s: institute is required", s.Code)
	}
	if !subjectCodePattern.MatchString(s.Code) {
		return fmt.Errorf("subject code %q must be uppercase letters followed by digits (e.g. MC102)", s.Code)
	}
	return nil
}

func (s Subject) String() string {
	return s.Institute + ":" + s.Code
}

// ValidateSubjects checks every subject and rejects duplicate codes. Codes
// key every table the planner builds, so two institutes offering the same
// code cannot be told apart.
func ValidateSubjects(subjects []Subject) error {
	var errs []error
	seen := make(map[string]string, len(subjects))
	for _, s := range subjects {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if inst, dup := seen[s.Code]; dup {
			errs = append(errs, fmt.Errorf("subject code %s listed twice (%s and %s)", s.Code, inst, s.Institute))
			continue
		}
		seen[s.Code] = s.Institute
	}
	return errors.Join(errs...)
}
