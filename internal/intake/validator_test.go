package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		stage  Stage
		input  string
		reason string
	}{
		{"empty", StageLocation, "   ", "Input cannot be empty"},
		{"name ok", StageGreeting, "Anne-Marie Smith", ""},
		{"name digits", StageGreeting, "John123", "Name must only contain letters, spaces, or hyphens"},
		{"name punctuation", StageGreeting, "O'Brien", "Name must only contain letters, spaces, or hyphens"},
		{"email ok", StageEmail, "jane@x.com", ""},
		{"email missing at", StageEmail, "jane.x.com", "Please enter a valid email address"},
		{"phone ok", StagePhone, " +91 1234567890 ", ""},
		{"phone short", StagePhone, "12345", "Please enter a valid phone number (e.g., +91 1234567890)"},
		{"phone letters", StagePhone, "+1 234 567 89ab", "Please enter a valid phone number (e.g., +91 1234567890)"},
		{"experience zero", StageExperience, "0", ""},
		{"experience upper bound", StageExperience, "50", ""},
		{"experience fractional", StageExperience, " 2.5 ", ""},
		{"experience above", StageExperience, "50.1", "Experience must be between 0 and 50 years"},
		{"experience negative", StageExperience, "-1", "Experience must be between 0 and 50 years"},
		{"experience nan", StageExperience, "NaN", "Experience must be between 0 and 50 years"},
		{"experience text", StageExperience, "three", "Please enter a valid number for years of experience"},
		{"work ok", StageWorkExperience, "  Shipped two apps ", ""},
		{"work short", StageWorkExperience, "tiny", "Please provide more detailed work experience"},
		{"resume https", StageResumeLink, "https://example.com/cv.pdf", ""},
		{"resume http", StageResumeLink, "http://example.com/cv.pdf", ""},
		{"resume ftp", StageResumeLink, "ftp://example.com/cv.pdf", "Please provide a valid HTTP/HTTPS URL for your resume"},
		{"resume leading space", StageResumeLink, " https://example.com", "Please provide a valid HTTP/HTTPS URL for your resume"},
		{"position case insensitive", StagePosition, "  Machine Learning ", ""},
		{"position unknown", StagePosition, "golang developer", "Please select from available positions: python developer, machine learning, data analyst"},
		{"location anything", StageLocation, "Remote", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.stage, tt.input)
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}

			var rejection *RejectionError
			require.True(t, errors.As(err, &rejection), "expected RejectionError, got %v", err)
			require.Equal(t, tt.stage, rejection.Stage)
			require.Equal(t, tt.reason, rejection.Reason)
		})
	}
}

func TestValidateEmptyWinsOverStageRules(t *testing.T) {
	err := Validate(StageGreeting, "")
	require.EqualError(t, err, "Input cannot be empty")
}
