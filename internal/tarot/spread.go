package tarot

import "fmt"

// SpreadPosition is a single slot in a spread layout.
type SpreadPosition struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// Spread is a reading template. Built-in spreads are static; user-defined
// spreads are managed by the spreads store and must satisfy the same
// position-count invariant.
type Spread struct {
	ID          string           `json:"id" validate:"required"`
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	CardCount   int              `json:"cardCount" validate:"required,min=1"`
	Positions   []SpreadPosition `json:"positions" validate:"required,dive"`
}

// Validate checks the invariant that a spread declares exactly as many
// positions as cards.
func (s Spread) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("spread is missing an id")
	}
	if s.Name == "" {
		return fmt.Errorf("spread %q is missing a name", s.ID)
	}
	if s.CardCount < 1 {
		return fmt.Errorf("spread %q must use at least one card", s.Name)
	}
	if len(s.Positions) != s.CardCount {
		return fmt.Errorf("spread %q declares %d cards but %d positions", s.Name, s.CardCount, len(s.Positions))
	}
	return nil
}

// SpreadCardOfTheDay is the spread used by the daily draw.
const SpreadCardOfTheDay = "single-card"

// BuiltinSpreads returns the static spread templates shipped with the app.
func BuiltinSpreads() []Spread {
	return []Spread{
		{
			ID:          SpreadCardOfTheDay,
			Name:        "Card of the Day",
			Description: "A single card for daily focus and guidance.",
			CardCount:   1,
			Positions: []SpreadPosition{
				{Title: "Card of the Day", Description: "The central theme or energy for the day."},
			},
		},
		{
			ID:          "past-present-future",
			Name:        "Past, Present, Future",
			Description: "A three-card spread to understand the flow of events.",
			CardCount:   3,
			Positions: []SpreadPosition{
				{Title: "Past", Description: "Past influences and events that have led to the present."},
				{Title: "Present", Description: "The current situation and your state of being."},
				{Title: "Future", Description: "The potential outcome or direction things are heading."},
			},
		},
		{
			ID:          "situation-obstacle-advice",
			Name:        "Situation, Obstacle, Advice",
			Description: "Get clarity on a specific challenge.",
			CardCount:   3,
			Positions: []SpreadPosition{
				{Title: "The Situation", Description: "Represents the core of the matter or your current position."},
				{Title: "The Obstacle", Description: "Highlights the primary challenge or block you are facing."},
				{Title: "Advice", Description: "Suggests a course of action or approach to resolve the issue."},
			},
		},
		{
			ID:          "mind-body-spirit",
			Name:        "Mind, Body, Spirit",
			Description: "A check-in for your personal alignment and well-being.",
			CardCount:   3,
			Positions: []SpreadPosition{
				{Title: "Mind", Description: "Your current thoughts, beliefs, and mental state."},
				{Title: "Body", Description: "Your physical health, energy, and connection to the material world."},
				{Title: "Spirit", Description: "Your spiritual path, intuition, and higher self."},
			},
		},
		{
			ID:          "four-elements",
			Name:        "Four Elements Check-In",
			Description: "Assess balance across the four key areas of your life.",
			CardCount:   4,
			Positions: []SpreadPosition{
				{Title: "Earth (Body)", Description: "Represents your physical health, finances, and material world."},
				{Title: "Air (Mind)", Description: "Represents your thoughts, communication, and intellectual state."},
				{Title: "Fire (Spirit)", Description: "Represents your passion, creativity, energy, and actions."},
				{Title: "Water (Heart)", Description: "Represents your emotions, relationships, and intuition."},
			},
		},
		{
			ID:          "relationship-spread",
			Name:        "Relationship Spread",
			Description: "Explore the dynamics between you and another person.",
			CardCount:   5,
			Positions: []SpreadPosition{
				{Title: "You", Description: "Your energy and perspective in the relationship."},
				{Title: "The Other", Description: "The other person's energy and perspective."},
				{Title: "The Connection", Description: "The current state and nature of the relationship itself."},
				{Title: "The Challenge", Description: "An obstacle or area for growth within the connection."},
				{Title: "The Potential", Description: "The possible future direction of the relationship."},
			},
		},
		{
			ID:          "career-path",
			Name:        "Career Path",
			Description: "Gain insight into your professional life and future direction.",
			CardCount:   5,
			Positions: []SpreadPosition{
				{Title: "Current Situation", Description: "Where you are now in your career."},
				{Title: "Your Strengths", Description: "The skills and talents you should leverage."},
				{Title: "Hidden Obstacles", Description: "What might be blocking your progress, internally or externally."},
				{Title: "Actionable Advice", Description: "A suggested course of action to move forward."},
				{Title: "Long-Term Potential", Description: "The potential outcome or future of your career path."},
			},
		},
		{
			ID:          "the-week-ahead",
			Name:        "The Week Ahead",
			Description: "A 7-card spread for an overview of the upcoming week.",
			CardCount:   7,
			Positions: []SpreadPosition{
				{Title: "Overall Theme", Description: "The main energy or theme for the week."},
				{Title: "Challenge", Description: "An obstacle you may face this week."},
				{Title: "Work & Productivity", Description: "Guidance related to your career or projects."},
				{Title: "Relationships", Description: "Insight into your connections with others."},
				{Title: "Personal Growth", Description: "An area for self-improvement or introspection."},
				{Title: "Unexpected Event", Description: "Something to be aware of that you may not see coming."},
				{Title: "Key Lesson", Description: "The primary lesson to learn by the end of the week."},
			},
		},
		{
			ID:          "celtic-cross",
			Name:        "Celtic Cross",
			Description: "A comprehensive 10-card spread for deep insight into a complex situation.",
			CardCount:   10,
			Positions: []SpreadPosition{
				{Title: "1. The Heart of the Matter", Description: "The core of the situation, your current state."},
				{Title: "2. The Challenge", Description: "The immediate obstacle or crossing influence."},
				{Title: "3. The Foundation", Description: "The underlying basis or root cause."},
				{Title: "4. The Recent Past", Description: "Events that have just passed but still influence you."},
				{Title: "5. The Crown", Description: "Your conscious awareness, goals, or the best possible outcome."},
				{Title: "6. The Near Future", Description: "What lies immediately ahead."},
				{Title: "7. Your Attitude", Description: "Your own feelings and perspective on the situation."},
				{Title: "8. External Influences", Description: "The environment, other people, or external factors."},
				{Title: "9. Hopes and Fears", Description: "Your inner hopes or fears regarding the outcome."},
				{Title: "10. The Final Outcome", Description: "The likely long-term result if things continue on their current path."},
			},
		},
	}
}

// FindSpread resolves a spread by ID, searching built-ins first and then the
// provided custom spreads.
func FindSpread(id string, custom []Spread) (Spread, bool) {
	for _, s := range BuiltinSpreads() {
		if s.ID == id {
			return s, true
		}
	}
	for _, s := range custom {
		if s.ID == id {
			return s, true
		}
	}
	return Spread{}, false
}
