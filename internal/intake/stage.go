package intake

// Stage is a named step of the intake conversation.
type Stage string

const (
	StageStart              Stage = "start"
	StageGreeting           Stage = "greeting"
	StageEmail              Stage = "email"
	StagePhone              Stage = "phone"
	StageExperience         Stage = "experience"
	StageLocation           Stage = "location"
	StagePosition           Stage = "position"
	StageTechStack          Stage = "tech_stack"
	StageWorkExperience     Stage = "work_experience"
	StageResumeLink         Stage = "resume_link"
	StageTechnicalQuestions Stage = "technical_questions"
	StageFarewell           Stage = "farewell"
)

var stages = []Stage{
	StageStart,
	StageGreeting,
	StageEmail,
	StagePhone,
	StageExperience,
	StageLocation,
	StagePosition,
	StageTechStack,
	StageWorkExperience,
	StageResumeLink,
	StageTechnicalQuestions,
	StageFarewell,
}

// Stages returns the fixed stage order.
func Stages() []Stage {
	return append([]Stage(nil), stages...)
}

// Index returns the position of s in the stage order, or -1 for unknown stages.
func (s Stage) Index() int {
	for i, stage := range stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Next returns the stage after s. The last stage is its own successor.
func (s Stage) Next() Stage {
	i := s.Index()
	if i < 0 || i >= len(stages)-1 {
		return StageFarewell
	}
	return stages[i+1]
}

func (s Stage) String() string { return string(s) }
