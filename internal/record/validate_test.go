package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRecord() *Record {
	return &Record{
		Name:           "Jane Doe",
		Email:          "jane@x.com",
		Phone:          "+1 2345678901",
		Experience:     3,
		Location:       "Remote",
		Position:       "python developer",
		TechStack:      []string{"python", "django"},
		WorkExperience: "Built internal tools for 3 years at Acme",
		ResumeLink:     "https://example.com/resume",
		Answers:        "Q1: What is a list?\nA: A mutable ordered sequence",
		Questions:      []string{"What is a list?"},
		Timestamp:      "2026-10-14T09:30:00Z",
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	require.NoError(t, Validate(validRecord()))
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(r *Record)
		message string
	}{
		{"email without domain", func(r *Record) { r.Email = "jane@" }, "email must be a valid email address"},
		{"coarse email", func(r *Record) { r.Email = "@" }, "email must be a valid email address"},
		{"name with digits", func(r *Record) { r.Name = "Jane123" }, "name must only contain letters"},
		{"short phone", func(r *Record) { r.Phone = "12345" }, "phone must be a valid phone number"},
		{"experience too high", func(r *Record) { r.Experience = 50.5 }, "experience must be between 0 and 50 years"},
		{"negative experience", func(r *Record) { r.Experience = -1 }, "experience must be between 0 and 50 years"},
		{"empty location", func(r *Record) { r.Location = "" }, "location is required"},
		{"unknown position", func(r *Record) { r.Position = "designer" }, "position must be one of"},
		{"empty stack", func(r *Record) { r.TechStack = nil }, "tech_stack is required"},
		{"blank stack entry", func(r *Record) { r.TechStack = []string{"go", ""} }, "tech_stack[1] is required"},
		{"short work experience", func(r *Record) { r.WorkExperience = "coding" }, "work_experience must be at least 10 characters"},
		{"ftp resume", func(r *Record) { r.ResumeLink = "ftp://x.com/cv" }, "resume_link must be a valid HTTP/HTTPS URL"},
		{"bare resume", func(r *Record) { r.ResumeLink = "example.com" }, "resume_link must be a valid HTTP/HTTPS URL"},
		{"idk answer", func(r *Record) { r.Answers = "Q1: What?\nA: idk" }, "answers must be meaningful"},
		{"i don't know answer", func(r *Record) { r.Answers = "Q1: What?\nA: I don't know" }, "answers must be meaningful"},
		{"empty answers", func(r *Record) { r.Answers = "" }, "answers is required"},
		{"missing timestamp", func(r *Record) { r.Timestamp = "" }, "timestamp is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(rec)

			err := Validate(rec)
			require.Error(t, err)
			require.True(t, IsValidationError(err))
			require.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestValidateCollectsEveryMessage(t *testing.T) {
	rec := validRecord()
	rec.Email = "nope"
	rec.Phone = "abc"

	err := Validate(rec)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Messages, 2)
}

func TestValidateNil(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	require.False(t, IsValidationError(err))
}

func TestIsPosition(t *testing.T) {
	require.True(t, IsPosition("  Data Analyst "))
	require.False(t, IsPosition("data"))
}

func TestMeaningfulAnswersIgnoresQuestionLines(t *testing.T) {
	block := strings.Join([]string{"Q1: Short?", "A: A sufficiently long answer", "", "Q2: x", "A: Another long answer"}, "\n")
	require.True(t, meaningfulAnswers(block))
}
