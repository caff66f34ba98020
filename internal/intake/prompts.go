package intake

import (
	"fmt"
	"strings"
)

const (
	welcomeMessage = "Welcome! Type 'start' to begin."

	farewellTemplate = "Thank you for your time! We'll review your information and get back to you soon. " +
		"We'll contact you at %s if your profile matches our requirements."

	closingMessage     = "Thank you for your responses. We will review and get back to you."
	noTechMessage      = "No valid technologies provided. "
	unexpectedMessage  = "An unexpected error occurred. Please try again."
	firstQuestionIntro = "Please answer the following questions one by one:\n\n"
)

var prompts = map[Stage]string{
	StageStart:              welcomeMessage,
	StageGreeting:           "Hello! I'm the TalentScout AI Hiring Assistant. Could you please share your full name?",
	StageEmail:              "Great! Could you please provide your email address?",
	StagePhone:              "What's your contact number?",
	StageExperience:         "How many years of professional experience do you have? [e.g. 2.5]",
	StageLocation:           "Where are you currently located?",
	StagePosition:           "Which position are you interested in?\nAvailable positions:\n- Python Developer\n- Machine Learning\n- Data Analyst",
	StageTechStack:          "Please list your technical skills relevant to the position (programming languages, frameworks, tools), separated by commas:",
	StageWorkExperience:     "Please describe your relevant work experience and key projects:",
	StageResumeLink:         "Please provide a link to your resume (must start with http:// or https://):",
	StageTechnicalQuestions: "Based on your position, here are some technical questions: [press enter to begin]",
}

// Welcome is the message shown before the first turn.
func Welcome() string { return welcomeMessage }

func farewell(email string) string {
	return fmt.Sprintf(farewellTemplate, strings.TrimSpace(email))
}

func questionMessage(index int, question string) string {
	return fmt.Sprintf("Question %d:\n%s", index+1, question)
}

func rejectionMessage(reason string) string {
	return fmt.Sprintf("Invalid input: %s. Please try again.", reason)
}
