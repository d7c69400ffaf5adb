package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(mode Mode, limit int) (*Session, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSession(mode, limit,
		WithRand(rand.New(rand.NewSource(42))),
		WithClock(clock.now),
	)
	return s, clock
}

// typeWord feeds the session the reverse of its current word plus the
// committing space.
func typeWord(s *Session) {
	s.Input(Reverse(s.CurrentWord()) + " ")
}

func TestReverseRoundTrip(t *testing.T) {
	for _, w := range allWords() {
		assert.Equal(t, w, Reverse(Reverse(w)), "word %q", w)
	}
}

func TestNewSessionWordCounts(t *testing.T) {
	s, _ := newTestSession(ModeTime, 30)
	assert.Len(t, s.Words(), 50)

	s, _ = newTestSession(ModeWords, 20)
	assert.Len(t, s.Words(), 20)
}

func TestIdleUntilFirstInput(t *testing.T) {
	s, _ := newTestSession(ModeTime, 30)
	assert.Equal(t, StateIdle, s.State())

	s.Input("x")
	assert.Equal(t, StateActive, s.State())
}

func TestAccuracyDefaultsTo100(t *testing.T) {
	s, _ := newTestSession(ModeTime, 30)
	assert.Equal(t, float64(100), s.Accuracy())
}

func TestWPMZeroAtZeroElapsed(t *testing.T) {
	s, _ := newTestSession(ModeTime, 30)
	assert.Equal(t, 0, s.WPM())
}

func TestCorrectWordAdvancesCounters(t *testing.T) {
	s, clock := newTestSession(ModeWords, 5)
	word := s.CurrentWord()

	typeWord(s)
	assert.Equal(t, 1, s.WordsCompleted())
	assert.Equal(t, float64(100), s.Accuracy())

	// a mismatch grows the denominator but not the completed count
	s.Input("wrong ")
	assert.Equal(t, 1, s.WordsCompleted())
	expected := float64(len(word)) / float64(len(word)+len("wrong")) * 100
	assert.InDelta(t, expected, s.Accuracy(), 1.0)

	clock.advance(30 * time.Second)
	s.Tick()
	assert.Equal(t, 2, s.WPM()) // round(1/30*60)
}

func TestWordsModeFinishesAtLimit(t *testing.T) {
	s, clock := newTestSession(ModeWords, 3)
	for i := 0; i < 3; i++ {
		typeWord(s)
		clock.advance(2 * time.Second)
		s.Tick()
	}
	require.Equal(t, StateFinished, s.State())

	res := s.Result()
	require.NotNil(t, res)
	assert.Equal(t, 3, res.WordsCompleted)
	assert.Equal(t, ModeWords, res.Mode)
	assert.Equal(t, 3, res.Target)
	assert.Equal(t, float64(100), res.Accuracy)

	// finished is terminal until reset
	typeWord(s)
	assert.Equal(t, 3, res.WordsCompleted)
}

func TestTimeModeFinishesOnPoll(t *testing.T) {
	s, clock := newTestSession(ModeTime, 30)
	typeWord(s)

	clock.advance(29 * time.Second)
	s.Tick()
	assert.Equal(t, StateActive, s.State())

	clock.advance(2 * time.Second)
	s.Tick()
	require.Equal(t, StateFinished, s.State())

	res := s.Result()
	require.NotNil(t, res)
	assert.Equal(t, 31, res.TimeElapsed)
	assert.Equal(t, ModeTime, res.Mode)
	assert.Equal(t, 30, res.Target)
	// wpm = round(1 / 31 * 60)
	assert.Equal(t, 2, res.WPM)
}

func TestTimeModeRefillsWords(t *testing.T) {
	s, _ := newTestSession(ModeTime, 120)
	initial := len(s.Words())

	// burn through enough words to cross the refill trigger
	for i := 0; i < initial-4; i++ {
		typeWord(s)
	}
	assert.Greater(t, len(s.Words()), initial)
	assert.NotEmpty(t, s.CurrentWord())
}

func TestResetReturnsToIdle(t *testing.T) {
	s, clock := newTestSession(ModeWords, 2)
	typeWord(s)
	typeWord(s)
	require.Equal(t, StateFinished, s.State())

	s.Reset()
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 0, s.WordsCompleted())
	assert.Equal(t, float64(100), s.Accuracy())
	assert.Equal(t, 0, s.WPM())
	assert.Nil(t, s.Result())
	assert.Len(t, s.Words(), 2)

	clock.advance(time.Second)
	s.Tick()
	assert.Equal(t, StateIdle, s.State())
}

func TestAccuracyBounds(t *testing.T) {
	s, _ := newTestSession(ModeWords, 10)
	inputs := []string{"garbage ", "", "nope ", "x "}
	for _, in := range inputs {
		s.Input(in)
		acc := s.Accuracy()
		assert.GreaterOrEqual(t, acc, float64(0))
		assert.LessOrEqual(t, acc, float64(100))
	}
}

func TestSampleWordsWrapsPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := len(allWords()) + 10
	words := SampleWords(rng, n)
	assert.Len(t, words, n)
	for _, w := range words {
		assert.NotEmpty(t, w)
	}
}
