package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/spigell/talentscout/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingGenerator answers with three numbered questions per tier and fails
// for the tiers listed in failing.
type countingGenerator struct {
	mu      sync.Mutex
	failing map[Tier]bool
	prompts []string
	reqs    []ai.Request
}

func (c *countingGenerator) Generate(_ context.Context, req ai.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, req.Prompt)
	c.reqs = append(c.reqs, req)

	tier := tierOf(req.Prompt)
	if c.failing[tier] {
		return "", errors.New("service unavailable")
	}
	return fmt.Sprintf("1. %[1]s one\n2. %[1]s two\n\n3. %[1]s three\n", tier), nil
}

func (c *countingGenerator) Model() string { return "counting" }

func (c *countingGenerator) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

func tierOf(prompt string) Tier {
	for _, tier := range Tiers {
		if strings.Contains(prompt, " "+string(tier)+" technical") {
			return tier
		}
	}
	return ""
}

func TestGenerateTierOrderAndTruncation(t *testing.T) {
	text := &countingGenerator{}
	g := New(text, zap.NewNop())

	got := g.Generate(context.Background(), "data analyst", []string{"Python", "SQL"})

	require.Equal(t, []string{
		"basic one", "basic two", "basic three",
		"intermediate one", "intermediate two",
	}, got)
	require.Equal(t, 3, text.calls())

	for _, prompt := range text.prompts {
		assert.Contains(t, prompt, "for a data analyst position")
		assert.Contains(t, prompt, "Technical skills: python, sql")
		assert.Contains(t, prompt, "Return exactly 3 questions, one per line.")
	}

	req := text.reqs[0]
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Equal(t, 500, req.MaxTokens)
	assert.NotEmpty(t, req.System)
}

func TestGenerateAlwaysFiveQuestionsWhateverFails(t *testing.T) {
	cases := map[string]map[Tier]bool{
		"none failing":      {},
		"basic failing":     {Basic: true},
		"middle failing":    {Intermediate: true},
		"advanced failing":  {Advanced: true},
		"basic and middle":  {Basic: true, Intermediate: true},
		"everything failed": {Basic: true, Intermediate: true, Advanced: true},
	}

	for name, failing := range cases {
		t.Run(name, func(t *testing.T) {
			g := New(&countingGenerator{failing: failing}, zap.NewNop())

			got := g.Generate(context.Background(), "data analyst", []string{"Python", "SQL"})
			require.Len(t, got, QuestionCount)

			want := append(tierQuestions(Basic, failing[Basic]), tierQuestions(Intermediate, failing[Intermediate])...)
			require.Equal(t, want[:QuestionCount], got)
		})
	}
}

func tierQuestions(tier Tier, failed bool) []string {
	if failed {
		return append([]string(nil), fallbacks[tier]...)
	}
	return []string{string(tier) + " one", string(tier) + " two", string(tier) + " three"}
}

func TestGenerateCachesPerTier(t *testing.T) {
	text := &countingGenerator{failing: map[Tier]bool{Advanced: true}}
	g := New(text, zap.NewNop())

	first := g.Generate(context.Background(), "Python Developer", []string{"Python", "Django"})
	second := g.Generate(context.Background(), "python developer", []string{" python ", "DJANGO"})

	require.Equal(t, first, second)
	require.Equal(t, 3, text.calls(), "identical requests must be served from cache")

	g.Generate(context.Background(), "python developer", []string{"go"})
	require.Equal(t, 6, text.calls(), "a different stack is a different cache key")
}

func TestGenerateReturnsCopies(t *testing.T) {
	g := New(&countingGenerator{}, zap.NewNop())

	first := g.Generate(context.Background(), "machine learning", []string{"pytorch"})
	first[0] = "mutated"

	second := g.Generate(context.Background(), "machine learning", []string{"pytorch"})
	require.Equal(t, "basic one", second[0])
}

func TestGenerateEmptyStackUsesPosition(t *testing.T) {
	text := &countingGenerator{}
	g := New(text, zap.NewNop())

	g.Generate(context.Background(), "Machine Learning", nil)

	require.Contains(t, text.prompts[0], "Technical skills: machine learning")
}

func TestGenerateWithoutTextGeneratorUsesFallbacks(t *testing.T) {
	g := New(nil, nil)

	got := g.Generate(context.Background(), "data analyst", []string{"sql"})

	require.Equal(t, append(append([]string{}, fallbacks[Basic]...), fallbacks[Intermediate][:2]...), got)
}

func TestGenerateToleratesShortResponses(t *testing.T) {
	g := New(shortGenerator{}, zap.NewNop())

	got := g.Generate(context.Background(), "data analyst", []string{"sql"})

	require.Equal(t, []string{"only one", "only one", "only one"}, got)
}

type shortGenerator struct{}

func (shortGenerator) Generate(context.Context, ai.Request) (string, error) {
	return "\n  only one  \n\n", nil
}

func (shortGenerator) Model() string { return "short" }

func TestGenerateLogsFallback(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	g := New(ai.Unavailable{}, zap.New(core))

	g.Generate(context.Background(), "data analyst", []string{"sql"})

	entries := observed.FilterMessage("question generation failed, using fallback questions").All()
	require.Len(t, entries, len(Tiers))
	require.Equal(t, "basic", entries[0].ContextMap()["tier"])
}

func TestParseQuestionsStripsListMarkers(t *testing.T) {
	got := parseQuestions("1. First?\n2) Second?\n- Third?\n* Fourth?\n  Fifth?  \n")
	require.Equal(t, []string{"First?", "Second?", "Third?", "Fourth?", "Fifth?"}, got)
}
