package intake

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spigell/talentscout/internal/record"
)

const (
	minExperience         = 0
	maxExperience         = 50
	minWorkExperienceRune = 10
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s-]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,15}$`)
)

// RejectionError is returned when an answer does not satisfy the stage rules.
// The reason is meant to be shown to the candidate as is.
type RejectionError struct {
	Stage  Stage
	Reason string
}

func (e *RejectionError) Error() string { return e.Reason }

// Rule is a single check applied to a raw answer.
type Rule struct {
	Check  func(input string) bool
	Reason string
}

var notEmpty = Rule{
	Check:  func(in string) bool { return strings.TrimSpace(in) != "" },
	Reason: "Input cannot be empty",
}

var rules = map[Stage][]Rule{
	StageGreeting: {{
		Check:  namePattern.MatchString,
		Reason: "Name must only contain letters, spaces, or hyphens",
	}},
	StageEmail: {{
		Check:  func(in string) bool { return strings.Contains(in, "@") },
		Reason: "Please enter a valid email address",
	}},
	StagePhone: {{
		Check:  func(in string) bool { return phonePattern.MatchString(strings.TrimSpace(in)) },
		Reason: "Please enter a valid phone number (e.g., +91 1234567890)",
	}},
	StageExperience: {
		{
			Check: func(in string) bool {
				_, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
				return err == nil
			},
			Reason: "Please enter a valid number for years of experience",
		},
		{
			Check: func(in string) bool {
				v, _ := strconv.ParseFloat(strings.TrimSpace(in), 64)
				return v >= minExperience && v <= maxExperience
			},
			Reason: "Experience must be between 0 and 50 years",
		},
	},
	StageWorkExperience: {{
		Check:  func(in string) bool { return utf8.RuneCountInString(strings.TrimSpace(in)) >= minWorkExperienceRune },
		Reason: "Please provide more detailed work experience",
	}},
	StageResumeLink: {{
		Check:  func(in string) bool { return strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://") },
		Reason: "Please provide a valid HTTP/HTTPS URL for your resume",
	}},
	StagePosition: {{
		Check:  record.IsPosition,
		Reason: "Please select from available positions: " + strings.Join(record.Positions, ", "),
	}},
}

// Validate checks input against the rules of stage. The first failing rule wins.
// It returns nil or a *RejectionError.
func Validate(stage Stage, input string) error {
	checks := append([]Rule{notEmpty}, rules[stage]...)
	for _, rule := range checks {
		if !rule.Check(input) {
			return &RejectionError{Stage: stage, Reason: rule.Reason}
		}
	}
	return nil
}
