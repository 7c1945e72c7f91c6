// Package reading coordinates a single reading from card selection through
// art generation and interpretation to a savable result.
//
// A reading moves through explicit phases. Art generation and interpretation
// are the two external calls; each failure lands in its own recoverable error
// phase so the user can retry one step without repeating the other.
package reading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hollyoak/arcanum/internal/almanac"
	"github.com/hollyoak/arcanum/internal/imagecache"
	"github.com/hollyoak/arcanum/internal/inference"
	"github.com/hollyoak/arcanum/internal/journal"
	"github.com/hollyoak/arcanum/internal/tarot"
)

// ErrSuperseded reports that a reading was reset or restarted while an
// external call was still in flight, so its completion was discarded.
var ErrSuperseded = errors.New("reading was superseded")

type Phase string

const (
	PhaseDashboard           Phase = "dashboard"
	PhaseGeneratingImages    Phase = "generatingImages"
	PhaseLoading             Phase = "loading"
	PhaseResult              Phase = "result"
	PhaseImageError          Phase = "imageError"
	PhaseInterpretationError Phase = "interpretationError"
)

// State is the tagged union of reading phases. Each variant carries exactly
// the data valid in its phase.
type State interface {
	Phase() Phase
}

type Dashboard struct{}

func (Dashboard) Phase() Phase { return PhaseDashboard }

type draw struct {
	Cards    []tarot.DrawnCard
	Spread   tarot.Spread
	Question string
}

type GeneratingImages struct{ draw }

func (GeneratingImages) Phase() Phase { return PhaseGeneratingImages }

type Loading struct{ draw }

func (Loading) Phase() Phase { return PhaseLoading }

type Result struct {
	draw
	Interpretation inference.Interpretation
}

func (Result) Phase() Phase { return PhaseResult }

type ImageError struct {
	draw
	Message string
}

func (ImageError) Phase() Phase { return PhaseImageError }

type InterpretationError struct {
	draw
	Message string
}

func (InterpretationError) Phase() Phase { return PhaseInterpretationError }

// Session runs one reading at a time. At most one reading is in flight;
// starting or resetting supersedes any outstanding external call.
type Session struct {
	client   inference.Client
	images   *imagecache.Store
	journal  *journal.Store
	snapshot func(time.Time) almanac.Info
	now      func() time.Time

	state      State
	generation int
}

type Option func(*Session)

// WithClock overrides the session clock.
func WithClock(now func() time.Time) Option {
	return func(session *Session) {
		session.now = now
	}
}

// WithAlmanac overrides the almanac snapshot used as interpretation context.
func WithAlmanac(snapshot func(time.Time) almanac.Info) Option {
	return func(session *Session) {
		session.snapshot = snapshot
	}
}

func NewSession(client inference.Client, images *imagecache.Store, journalStore *journal.Store, options ...Option) *Session {
	session := &Session{
		client:   client,
		images:   images,
		journal:  journalStore,
		snapshot: almanac.Snapshot,
		now:      time.Now,
		state:    Dashboard{},
	}
	for _, option := range options {
		option(session)
	}
	return session
}

func (session *Session) State() State {
	return session.state
}

// Start validates the draw and enters the art-generation phase, replacing any
// reading already in flight.
func (session *Session) Start(cards []tarot.DrawnCard, spread tarot.Spread, question string) error {
	if len(cards) == 0 {
		return fmt.Errorf("a reading needs at least one card")
	}
	for i, drawn := range cards {
		if drawn.Card.ID == "" {
			return fmt.Errorf("position %d has no card", i+1)
		}
	}
	if err := spread.Validate(); err != nil {
		return err
	}
	if spread.CardCount != len(cards) {
		return fmt.Errorf("spread %q needs %d cards, got %d", spread.Name, spread.CardCount, len(cards))
	}

	session.generation++
	session.state = GeneratingImages{draw{
		Cards:    append([]tarot.DrawnCard(nil), cards...),
		Spread:   spread,
		Question: question,
	}}
	return nil
}

// GenerateImages runs the art step: each card's art comes from the cache when
// present, and is generated and written through to the cache otherwise. The
// first failure aborts to the image-error phase; art already cached from
// earlier cards is kept for reuse.
func (session *Session) GenerateImages(ctx context.Context) error {
	state, ok := session.state.(GeneratingImages)
	if !ok {
		return fmt.Errorf("cannot generate images in phase %q", session.state.Phase())
	}
	generation := session.generation

	cards := append([]tarot.DrawnCard(nil), state.Cards...)
	for i, drawn := range cards {
		if drawn.ImageURL != "" {
			continue
		}
		if cached, ok := session.images.Get(drawn.Card.ID); ok {
			cards[i].ImageURL = cached
			continue
		}

		dataURL, err := session.client.GenerateCardArt(ctx, drawn.Card)
		if err != nil {
			if session.generation != generation {
				return ErrSuperseded
			}
			session.state = ImageError{state.draw, inference.UserMessageFor(err)}
			return nil
		}
		if err := session.images.Put(drawn.Card.ID, dataURL); err != nil {
			return fmt.Errorf("images.Put(%s) > %w", drawn.Card.ID, err)
		}
		cards[i].ImageURL = dataURL
	}

	if session.generation != generation {
		return ErrSuperseded
	}
	session.state = Loading{draw{Cards: cards, Spread: state.Spread, Question: state.Question}}
	return nil
}

// SkipImages resolves the art step without generating anything, leaving every
// card on its default artwork.
func (session *Session) SkipImages() error {
	state, ok := session.state.(GeneratingImages)
	if !ok {
		return fmt.Errorf("cannot skip images in phase %q", session.state.Phase())
	}
	session.state = Loading{state.draw}
	return nil
}

// Interpret runs the interpretation step with the drawn cards, the spread,
// the question, and an almanac snapshot for the current moment.
func (session *Session) Interpret(ctx context.Context) error {
	state, ok := session.state.(Loading)
	if !ok {
		return fmt.Errorf("cannot interpret in phase %q", session.state.Phase())
	}
	generation := session.generation

	interpretation, err := session.client.GenerateInterpretation(ctx, inference.InterpretationRequest{
		Cards:    state.Cards,
		Spread:   state.Spread,
		Question: state.Question,
		Almanac:  session.snapshot(session.now()),
	})
	if session.generation != generation {
		return ErrSuperseded
	}
	if err != nil {
		session.state = InterpretationError{state.draw, inference.UserMessageFor(err)}
		return nil
	}

	session.state = Result{draw: state.draw, Interpretation: interpretation}
	return nil
}

// RetryImages re-enters the art phase from an image failure. The art step
// consults the cache first, so cards that already succeeded are not
// re-requested.
func (session *Session) RetryImages() error {
	state, ok := session.state.(ImageError)
	if !ok {
		return fmt.Errorf("cannot retry images in phase %q", session.state.Phase())
	}
	session.state = GeneratingImages{state.draw}
	return nil
}

// ContinueWithoutArt proceeds to interpretation from an image failure,
// leaving cards without generated art on their default artwork.
func (session *Session) ContinueWithoutArt() error {
	state, ok := session.state.(ImageError)
	if !ok {
		return fmt.Errorf("cannot continue without art in phase %q", session.state.Phase())
	}
	session.state = Loading{state.draw}
	return nil
}

// RetryInterpretation re-enters the interpretation phase after a failure.
// Retries are user-triggered and unlimited.
func (session *Session) RetryInterpretation() error {
	state, ok := session.state.(InterpretationError)
	if !ok {
		return fmt.Errorf("cannot retry interpretation in phase %q", session.state.Phase())
	}
	session.state = Loading{state.draw}
	return nil
}

// Abandon discards a failed interpretation and returns to the dashboard.
func (session *Session) Abandon() error {
	if _, ok := session.state.(InterpretationError); !ok {
		return fmt.Errorf("cannot abandon in phase %q", session.state.Phase())
	}
	session.Reset()
	return nil
}

// Save writes the finished reading into the journal with the given impression
// and tags, then returns to the dashboard.
func (session *Session) Save(impression string, tags []string) (journal.Entry, error) {
	state, ok := session.state.(Result)
	if !ok {
		return journal.Entry{}, fmt.Errorf("cannot save in phase %q", session.state.Phase())
	}

	now := session.now()
	entry := journal.Entry{
		ID:             uuid.NewString(),
		CreatedAt:      now,
		DateISO:        journal.LocalDateISO(now),
		Spread:         state.Spread,
		DrawnCards:     state.Cards,
		Interpretation: state.Interpretation,
		Question:       state.Question,
		Impression:     impression,
		Tags:           tags,
	}
	if err := session.journal.Add(entry); err != nil {
		return journal.Entry{}, fmt.Errorf("journal.Add() > %w", err)
	}

	session.Reset()
	return entry, nil
}

// Reset unconditionally returns to the dashboard, discarding any in-flight or
// unsaved reading.
func (session *Session) Reset() {
	session.generation++
	session.state = Dashboard{}
}
