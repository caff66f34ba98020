package questions

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"

	_ "embed"

	"github.com/spigell/talentscout/internal/ai"

	"go.uber.org/zap"
)

// Tier is a difficulty level used to shape generated questions.
type Tier string

const (
	Basic        Tier = "basic"
	Intermediate Tier = "intermediate"
	Advanced     Tier = "advanced"
)

// Tiers lists difficulty levels in the order their questions are asked.
var Tiers = []Tier{Basic, Intermediate, Advanced}

const (
	// QuestionCount is the number of questions handed to the candidate.
	QuestionCount = 5
	perTier       = 3

	defaultTemperature = 0.7
	defaultMaxTokens   = 500

	systemPrompt = `You are an AI hiring assistant for TalentScout, a tech recruitment agency.
Your role is to gather candidate information and assess their technical skills.
Be professional but friendly, and ensure responses are relevant to the candidate's chosen position.`
)

//go:embed prompt.md
var promptTemplate string

var guidelines = map[Tier]string{
	Basic:        "Focus on fundamental concepts and basic implementation questions.",
	Intermediate: "Include questions about best practices and common use cases.",
	Advanced:     "Cover complex scenarios, optimization, and architectural decisions.",
}

var fallbacks = map[Tier][]string{
	Basic: {
		"What are the key concepts in your field?",
		"Explain version control basics",
		"How do you approach debugging?",
	},
	Intermediate: {
		"Describe a challenging project",
		"How do you ensure code quality?",
		"Explain your testing strategy",
	},
	Advanced: {
		"How do you handle scalability?",
		"Explain system design principles",
		"How do you optimize performance?",
	},
}

var listMarker = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s+`)

type cacheKey struct {
	position string
	stack    string
	tier     Tier
}

// Generator produces technical interview questions for a position and tech stack.
// Per-tier results, fallbacks included, are cached for the generator's lifetime.
type Generator struct {
	text        ai.TextGenerator
	logger      *zap.Logger
	temperature float64
	maxTokens   int

	mu    sync.Mutex
	cache map[cacheKey][]string
}

type Option func(*Generator)

func WithTemperature(t float64) Option {
	return func(g *Generator) {
		if t > 0 {
			g.temperature = t
		}
	}
}

func WithMaxTokens(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// New creates a Generator. A nil text generator makes every tier use its fallback list.
func New(text ai.TextGenerator, logger *zap.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{
		text:        text,
		logger:      logger,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		cache:       make(map[cacheKey][]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns up to QuestionCount questions ordered basic, intermediate, advanced.
// It never fails: tiers whose request errors are served from static fallbacks.
func (g *Generator) Generate(ctx context.Context, position string, stack []string) []string {
	position = strings.ToLower(strings.TrimSpace(position))

	normalized := make([]string, 0, len(stack))
	for _, tech := range stack {
		if tech = strings.ToLower(strings.TrimSpace(tech)); tech != "" {
			normalized = append(normalized, tech)
		}
	}

	skills := strings.Join(normalized, ", ")
	if skills == "" {
		skills = position
	}

	var out []string
	for _, tier := range Tiers {
		out = append(out, g.forTier(ctx, position, skills, tier)...)
	}

	if len(out) > QuestionCount {
		out = out[:QuestionCount]
	}
	return out
}

func (g *Generator) forTier(ctx context.Context, position, skills string, tier Tier) []string {
	key := cacheKey{position: position, stack: skills, tier: tier}

	g.mu.Lock()
	cached, ok := g.cache[key]
	g.mu.Unlock()
	if ok {
		g.logger.Debug("question cache hit", zap.String("tier", string(tier)), zap.String("position", position))
		return append([]string(nil), cached...)
	}

	questions := g.request(ctx, position, skills, tier)

	g.mu.Lock()
	g.cache[key] = questions
	g.mu.Unlock()

	return append([]string(nil), questions...)
}

func (g *Generator) request(ctx context.Context, position, skills string, tier Tier) []string {
	if g.text == nil {
		return fallback(tier)
	}

	raw, err := g.text.Generate(ctx, ai.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(position, skills, tier),
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		g.logger.Warn("question generation failed, using fallback questions",
			zap.String("tier", string(tier)),
			zap.String("position", position),
			zap.Error(err),
		)
		return fallback(tier)
	}

	questions := parseQuestions(raw)
	g.logger.Debug("questions generated",
		zap.String("tier", string(tier)),
		zap.Int("count", len(questions)),
	)
	return questions
}

func buildPrompt(position, skills string, tier Tier) string {
	replacer := strings.NewReplacer(
		"{{COUNT}}", strconv.Itoa(perTier),
		"{{LEVEL}}", string(tier),
		"{{POSITION}}", position,
		"{{TECH_STACK}}", skills,
		"{{GUIDELINES}}", guidelines[tier],
	)
	return strings.TrimSpace(replacer.Replace(promptTemplate))
}

// parseQuestions splits a response into one question per non-empty line.
func parseQuestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(strings.TrimSpace(line), ""))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func fallback(tier Tier) []string {
	list, ok := fallbacks[tier]
	if !ok {
		list = fallbacks[Basic]
	}
	return append([]string(nil), list...)
}
