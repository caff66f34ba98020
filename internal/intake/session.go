package intake

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/questions"
	"github.com/spigell/talentscout/internal/record"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionGenerator produces the technical questions asked at the end of the intake.
type QuestionGenerator interface {
	Generate(ctx context.Context, position string, stack []string) []string
}

// RecordWriter persists the finished candidate record and returns where it went.
type RecordWriter interface {
	Persist(rec *record.Record) (string, error)
}

var errNoWriter = errors.New("record writer is not configured")

// Session is one candidate's conversation. It is not safe for concurrent use;
// callers own a session exclusively for its lifetime.
type Session struct {
	id        string
	generator QuestionGenerator
	writer    RecordWriter
	logger    *zap.Logger
	now       func() time.Time

	state state
}

type state struct {
	stage           Stage
	answers         map[Stage]string
	questions       []string
	questionAnswers []string
	questionIndex   int
	questionsAsked  bool
	recordPath      string
	persistErr      error
}

func (s state) clone() state {
	c := s
	c.answers = make(map[Stage]string, len(s.answers))
	for k, v := range s.answers {
		c.answers[k] = v
	}
	c.questions = append([]string(nil), s.questions...)
	c.questionAnswers = append([]string(nil), s.questionAnswers...)
	return c
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithID(id string) Option {
	return func(s *Session) {
		if id = strings.TrimSpace(id); id != "" {
			s.id = id
		}
	}
}

// NewSession starts a conversation at the start stage. A nil generator serves
// the static fallback questions.
func NewSession(generator QuestionGenerator, writer RecordWriter, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		writer: writer,
		logger: zap.NewNop(),
		now:    time.Now,
		state: state{
			stage:   StageStart,
			answers: make(map[Stage]string),
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = logger.WithSession(s.logger, s.id)

	if generator == nil {
		generator = questions.New(nil, s.logger)
	}
	s.generator = generator

	return s
}

// Advance processes one candidate message and returns the reply.
// A failing turn leaves the session exactly as it was before the call.
func (s *Session) Advance(ctx context.Context, input string) (reply string) {
	snapshot := s.state.clone()
	log := s.logger.With(logger.Stage(s.state.stage.String()))

	defer func() {
		if r := recover(); r != nil {
			s.state = snapshot
			log.Error("turn failed", zap.Any("panic", r), zap.Stack("stack"))
			reply = unexpectedMessage
		}
	}()

	log.Debug("processing input", zap.Int("input_length", len(input)))

	switch {
	case s.state.stage == StageStart && strings.EqualFold(input, "start"):
		s.state.stage = StageGreeting
		return prompts[StageGreeting]
	case s.state.stage == StageTechnicalQuestions:
		return s.technicalTurn(ctx, log, input)
	default:
		return s.ordinaryTurn(log, input)
	}
}

func (s *Session) ordinaryTurn(log *zap.Logger, input string) string {
	if err := Validate(s.state.stage, input); err != nil {
		reason := err.Error()
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			reason = rejection.Reason
		}
		log.Info("input rejected", zap.String("reason", reason))
		return rejectionMessage(reason)
	}

	s.state.answers[s.state.stage] = strings.TrimSpace(input)
	s.state.stage = s.state.stage.Next()

	log.Debug("stage advanced", zap.String("next_stage", s.state.stage.String()))
	return s.prompt(s.state.stage)
}

func (s *Session) technicalTurn(ctx context.Context, log *zap.Logger, input string) string {
	if !s.state.questionsAsked {
		s.state.questionsAsked = true
		return s.startQuestions(ctx, log)
	}

	s.state.questionAnswers = append(s.state.questionAnswers, strings.TrimSpace(input))

	if s.state.questionIndex < len(s.state.questions)-1 {
		s.state.questionIndex++
		return questionMessage(s.state.questionIndex, s.state.questions[s.state.questionIndex])
	}

	return s.finish(log)
}

func (s *Session) startQuestions(ctx context.Context, log *zap.Logger) string {
	stack := record.SplitTechStack(s.state.answers[StageTechStack])
	if len(stack) == 0 {
		log.Info("skipping technical questions", zap.String("reason", "empty tech stack"))
		s.state.stage = StageFarewell
		return noTechMessage + farewell(s.state.answers[StageEmail])
	}

	generated := s.generator.Generate(ctx, s.state.answers[StagePosition], stack)
	if len(generated) == 0 {
		log.Warn("skipping technical questions", zap.String("reason", "no questions generated"))
		s.state.stage = StageFarewell
		return closingMessage
	}

	s.state.questions = append([]string(nil), generated...)
	s.state.questionIndex = 0
	s.state.questionAnswers = nil

	log.Info("technical questions ready", zap.Int("count", len(s.state.questions)))
	return firstQuestionIntro + questionMessage(0, s.state.questions[0])
}

func (s *Session) finish(log *zap.Logger) string {
	s.state.stage = StageFarewell

	path, err := s.persist()
	if err != nil {
		s.state.persistErr = err
		log.Warn("candidate record was not stored", zap.Error(err))
		return closingMessage
	}

	s.state.recordPath = path
	log.Info("intake completed", zap.String("record", path))
	return farewell(s.state.answers[StageEmail])
}

func (s *Session) persist() (string, error) {
	if s.writer == nil {
		return "", errNoWriter
	}

	pairs := make([]record.QA, len(s.state.questions))
	for i, q := range s.state.questions {
		pairs[i] = record.QA{Question: q, Answer: s.state.questionAnswers[i]}
	}

	answers := make(map[string]string, len(s.state.answers))
	for stage, answer := range s.state.answers {
		answers[stage.String()] = answer
	}

	rec, err := record.FromAnswers(answers, pairs, s.now())
	if err != nil {
		return "", err
	}

	return s.writer.Persist(rec)
}

func (s *Session) prompt(stage Stage) string {
	if stage == StageFarewell {
		return farewell(s.state.answers[StageEmail])
	}
	return prompts[stage]
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.state.stage }

// Terminal reports whether the conversation reached the farewell stage.
func (s *Session) Terminal() bool { return s.state.stage == StageFarewell }

// Answers returns a copy of the accepted answers keyed by stage.
func (s *Session) Answers() map[Stage]string {
	return s.state.clone().answers
}

// Questions returns the generated technical questions.
func (s *Session) Questions() []string {
	return append([]string(nil), s.state.questions...)
}

// QuestionAnswers returns the answers given to the technical questions so far.
func (s *Session) QuestionAnswers() []string {
	return append([]string(nil), s.state.questionAnswers...)
}

// QuestionIndex returns the cursor into Questions.
func (s *Session) QuestionIndex() int { return s.state.questionIndex }

// RecordPath returns where the finished record was stored, if it was.
func (s *Session) RecordPath() string { return s.state.recordPath }

// PersistErr returns why the finished record could not be stored, if it could not.
func (s *Session) PersistErr() error { return s.state.persistErr }
