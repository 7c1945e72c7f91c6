// Package inference defines the contract with the generative-AI service used
// for interpretations, card artwork, and card identification.
package inference

import (
	"context"

	"github.com/hollyoak/arcanum/internal/almanac"
	"github.com/hollyoak/arcanum/internal/tarot"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client is the AI surface the reading lifecycle depends on. All three calls
// are single network requests; retry policy belongs to the caller.
type Client interface {
	// GenerateInterpretation produces the layered reading for a completed draw.
	GenerateInterpretation(ctx context.Context, params InterpretationRequest) (Interpretation, error)

	// GenerateCardArt produces artwork for one card and returns it as a data URL.
	GenerateCardArt(ctx context.Context, card tarot.Card) (string, error)

	// IdentifyCard names the Tarot card visible in a photo. It returns an
	// empty name with a nil error when no card is recognized with confidence.
	IdentifyCard(ctx context.Context, image []byte) (string, error)
}

// InterpretationRequest holds everything the prompt needs for one reading.
type InterpretationRequest struct {
	Cards    []tarot.DrawnCard
	Spread   tarot.Spread
	Question string
	Almanac  almanac.Info
}

// Interpretation is the AI-produced reading: an overall narrative plus one
// meaning per drawn card. Once saved into a journal entry it is immutable
// history.
type Interpretation struct {
	Overall string               `json:"overall" validate:"required"`
	Cards   []CardInterpretation `json:"cards" validate:"required,dive"`
}

// CardInterpretation is the meaning of a single card within the spread.
type CardInterpretation struct {
	CardName string `json:"cardName" validate:"required"`
	Meaning  string `json:"meaning" validate:"required"`
}
