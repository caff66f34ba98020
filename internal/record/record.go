package record

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Record is the persisted snapshot of a finished intake.
type Record struct {
	Name           string   `json:"name" validate:"required,personname"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone" validate:"required,phone"`
	Experience     float64  `json:"experience" validate:"gte=0,lte=50"`
	Location       string   `json:"location" validate:"required"`
	Position       string   `json:"position" validate:"required,position"`
	TechStack      []string `json:"tech_stack" validate:"required,min=1,dive,required"`
	WorkExperience string   `json:"work_experience" validate:"required,min=10"`
	ResumeLink     string   `json:"resume_link" validate:"required,url,httpscheme"`
	Answers        string   `json:"answers" validate:"required,qaanswers"`
	Questions      []string `json:"questions"`
	Timestamp      string   `json:"timestamp" validate:"required"`
}

// QA is one technical question with the candidate's answer.
type QA struct {
	Question string
	Answer   string
}

// draft mirrors the intake answers, keyed by stage name.
type draft struct {
	Name           string  `mapstructure:"greeting"`
	Email          string  `mapstructure:"email"`
	Phone          string  `mapstructure:"phone"`
	Experience     float64 `mapstructure:"experience"`
	Location       string  `mapstructure:"location"`
	Position       string  `mapstructure:"position"`
	TechStack      string  `mapstructure:"tech_stack"`
	WorkExperience string  `mapstructure:"work_experience"`
	ResumeLink     string  `mapstructure:"resume_link"`
}

// FromAnswers assembles a Record from stage answers and the technical Q&A.
// Name and location are title-cased, position and tech stack lower-cased.
func FromAnswers(answers map[string]string, pairs []QA, at time.Time) (*Record, error) {
	var d draft
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &d,
	})
	if err != nil {
		return nil, fmt.Errorf("create answers decoder: %w", err)
	}

	if err := decoder.Decode(answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}

	questions := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		questions = append(questions, pair.Question)
	}

	stack := SplitTechStack(d.TechStack)
	for i, tech := range stack {
		stack[i] = strings.ToLower(tech)
	}

	return &Record{
		Name:           titleCase(d.Name),
		Email:          strings.TrimSpace(d.Email),
		Phone:          strings.TrimSpace(d.Phone),
		Experience:     d.Experience,
		Location:       titleCase(d.Location),
		Position:       strings.ToLower(strings.TrimSpace(d.Position)),
		TechStack:      stack,
		WorkExperience: strings.TrimSpace(d.WorkExperience),
		ResumeLink:     strings.TrimSpace(d.ResumeLink),
		Answers:        FormatAnswers(pairs),
		Questions:      questions,
		Timestamp:      at.Format(time.RFC3339),
	}, nil
}

// SplitTechStack splits a comma separated list, dropping blank entries.
func SplitTechStack(raw string) []string {
	var out []string
	for _, tech := range strings.Split(raw, ",") {
		if tech = strings.TrimSpace(tech); tech != "" {
			out = append(out, tech)
		}
	}
	return out
}

// FormatAnswers renders the Q/A block stored in the record.
func FormatAnswers(pairs []QA) string {
	var b strings.Builder
	for i, pair := range pairs {
		fmt.Fprintf(&b, "Q%d: %s\nA: %s\n\n", i+1, pair.Question, pair.Answer)
	}
	return strings.TrimSpace(b.String())
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
