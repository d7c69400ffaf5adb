// Package game implements the reverse-typing session engine: word
// sequencing, keystroke scoring against reversed targets, and the running
// speed/accuracy metrics. It is the reference implementation of the scoring
// rules the API trusts clients to follow.
package game

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"
)

type Mode string

const (
	ModeTime  Mode = "time"
	ModeWords Mode = "words"
)

type State int

const (
	StateIdle State = iota
	StateActive
	StateFinished
)

const (
	// time mode pre-generates a fixed pool and refills in batches so the
	// player never runs out
	timePoolSize  = 50
	refillBatch   = 20
	refillTrigger = 5

	// PollInterval is the clock resolution for time-mode finish checks.
	PollInterval = 100 * time.Millisecond
)

// Result is the immutable outcome emitted when a session finishes.
type Result struct {
	WPM            int     `json:"wpm"`
	Accuracy       float64 `json:"accuracy"`
	TimeElapsed    int     `json:"timeElapsed"`
	WordsCompleted int     `json:"wordsCompleted"`
	Mode           Mode    `json:"mode"`
	Target         int     `json:"target"` // seconds for time mode, words for words mode
}

// Session is a single typing run. Not safe for concurrent use; it models
// the cooperative single-threaded loop of the client.
type Session struct {
	mode      Mode
	timeLimit int // seconds, time mode
	wordLimit int // words, words mode

	words     []string
	wordIndex int

	state     State
	startedAt time.Time
	elapsed   float64

	correctChars   int
	totalChars     int
	wordsCompleted int

	result *Result

	rng *rand.Rand
	now func() time.Time
}

// Option customizes a Session, mainly for tests.
type Option func(*Session)

// WithRand injects a deterministic word source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession creates an Idle session with a pre-generated word list. For
// ModeTime the limit is seconds and the pool holds 50 words; for ModeWords
// the limit is the exact word count.
func NewSession(mode Mode, limit int, opts ...Option) *Session {
	s := &Session{
		mode: mode,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
	if mode == ModeWords {
		s.wordLimit = limit
	} else {
		s.timeLimit = limit
	}
	for _, opt := range opts {
		opt(s)
	}
	s.generateWords()
	return s
}

func (s *Session) generateWords() {
	count := timePoolSize
	if s.mode == ModeWords {
		count = s.wordLimit
	}
	s.words = SampleWords(s.rng, count)
}

func (s *Session) State() State    { return s.state }
func (s *Session) Words() []string { return s.words }

// CurrentWord returns the word currently displayed to the player. The
// expected input is its reverse.
func (s *Session) CurrentWord() string {
	if s.wordIndex >= len(s.words) {
		return ""
	}
	return s.words[s.wordIndex]
}

func (s *Session) WordsCompleted() int { return s.wordsCompleted }

// Accuracy returns the running accuracy percentage, 100 before any
// characters have been committed.
func (s *Session) Accuracy() float64 {
	if s.totalChars == 0 {
		return 100
	}
	return math.Round(float64(s.correctChars) / float64(s.totalChars) * 100)
}

// WPM returns the running words-per-minute, 0 at zero elapsed time.
func (s *Session) WPM() int {
	if s.elapsed <= 0 {
		return 0
	}
	return int(math.Round(float64(s.wordsCompleted) / s.elapsed * 60))
}

// Input processes an input-box change. The first non-empty value activates
// the session; a trailing space commits the trimmed token against the
// reversed current word. It reports whether the input box should clear.
func (s *Session) Input(value string) bool {
	if s.state == StateFinished {
		return false
	}

	if s.state == StateIdle && len(value) > 0 {
		s.state = StateActive
		s.startedAt = s.now()
	}

	if !strings.HasSuffix(value, " ") {
		return false
	}

	typed := strings.TrimSpace(value)
	target := Reverse(s.CurrentWord())

	if typed == target {
		s.correctChars += len(typed)
		s.wordsCompleted++
	}
	s.totalChars += len(typed)

	// keep time mode supplied with words
	if s.mode == ModeTime && s.wordIndex >= len(s.words)-refillTrigger {
		s.words = append(s.words, SampleWords(s.rng, refillBatch)...)
	}
	s.wordIndex++

	if s.mode == ModeWords && s.wordsCompleted >= s.wordLimit {
		s.finish()
	}
	return true
}

// Tick advances the clock and, in time mode, finishes the session once the
// limit is reached. Callers drive it from a fixed-interval poll.
func (s *Session) Tick() {
	if s.state != StateActive {
		return
	}
	s.elapsed = s.now().Sub(s.startedAt).Seconds()
	if s.mode == ModeTime && s.elapsed >= float64(s.timeLimit) {
		s.finish()
	}
}

func (s *Session) finish() {
	if s.state == StateFinished {
		return
	}
	if s.state == StateActive {
		s.elapsed = s.now().Sub(s.startedAt).Seconds()
	}
	s.state = StateFinished

	target := s.timeLimit
	if s.mode == ModeWords {
		target = s.wordLimit
	}
	s.result = &Result{
		WPM:            s.WPM(),
		Accuracy:       s.Accuracy(),
		TimeElapsed:    int(math.Round(s.elapsed)),
		WordsCompleted: s.wordsCompleted,
		Mode:           s.mode,
		Target:         target,
	}
}

// Result returns the finished outcome, or nil while the session is running.
func (s *Session) Result() *Result { return s.result }

// Reset returns the session to Idle with zeroed counters and a fresh word
// list.
func (s *Session) Reset() {
	s.wordIndex = 0
	s.state = StateIdle
	s.startedAt = time.Time{}
	s.elapsed = 0
	s.correctChars = 0
	s.totalChars = 0
	s.wordsCompleted = 0
	s.result = nil
	s.generateWords()
}

// Run polls the session clock until it finishes or ctx is canceled. The
// ticker is always released; canceling ctx is the teardown path that keeps
// timers from leaking.
func (s *Session) Run(ctx context.Context) *Result {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.result
		case <-ticker.C:
			s.Tick()
			if s.state == StateFinished {
				return s.result
			}
		}
	}
}
