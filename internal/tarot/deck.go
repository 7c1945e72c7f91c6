package tarot

import (
	"fmt"
	"strings"
	"sync"
)

var (
	deckOnce sync.Once
	deck     []Card
)

// Deck returns the full 78-card catalog: 22 Major arcana followed by the four
// Minor suits in Wands, Cups, Swords, Pentacles order. The catalog is built
// once and shared; callers must not mutate the returned slice.
func Deck() []Card {
	deckOnce.Do(func() {
		deck = buildDeck()
	})
	return deck
}

type cardSpec struct {
	name     string
	upright  []string
	reversed []string
}

func kw(words ...string) []string { return words }

var majorArcana = []cardSpec{
	{"The Fool", kw("new beginnings", "innocence", "spontaneity"), kw("recklessness", "naivety", "hesitation")},
	{"The Magician", kw("manifestation", "willpower", "skill"), kw("manipulation", "untapped talent", "illusions")},
	{"The High Priestess", kw("intuition", "mystery", "inner wisdom"), kw("secrets", "disconnection", "repressed feelings")},
	{"The Empress", kw("abundance", "nurturing", "fertility"), kw("dependence", "smothering", "creative block")},
	{"The Emperor", kw("authority", "structure", "stability"), kw("domination", "rigidity", "lack of discipline")},
	{"The Hierophant", kw("tradition", "guidance", "belief"), kw("rebellion", "dogma", "unconventionality")},
	{"The Lovers", kw("love", "harmony", "choices"), kw("disharmony", "imbalance", "misaligned values")},
	{"The Chariot", kw("determination", "victory", "control"), kw("lack of direction", "aggression", "obstacles")},
	{"Strength", kw("courage", "compassion", "inner strength"), kw("self-doubt", "weakness", "raw emotion")},
	{"The Hermit", kw("introspection", "solitude", "guidance"), kw("isolation", "loneliness", "withdrawal")},
	{"Wheel of Fortune", kw("change", "cycles", "destiny"), kw("bad luck", "resistance to change", "disruption")},
	{"Justice", kw("fairness", "truth", "accountability"), kw("injustice", "dishonesty", "avoidance")},
	{"The Hanged Man", kw("surrender", "new perspective", "pause"), kw("stalling", "indecision", "resistance")},
	{"Death", kw("endings", "transformation", "transition"), kw("fear of change", "stagnation", "holding on")},
	{"Temperance", kw("balance", "moderation", "patience"), kw("excess", "imbalance", "impatience")},
	{"The Devil", kw("attachment", "temptation", "materialism"), kw("release", "breaking free", "reclaiming power")},
	{"The Tower", kw("sudden upheaval", "revelation", "awakening"), kw("disaster avoided", "fear of change", "delayed collapse")},
	{"The Star", kw("hope", "renewal", "inspiration"), kw("despair", "disconnection", "lost faith")},
	{"The Moon", kw("illusion", "intuition", "the subconscious"), kw("confusion lifting", "fear released", "clarity")},
	{"The Sun", kw("joy", "success", "vitality"), kw("temporary gloom", "pessimism", "diminished energy")},
	{"Judgement", kw("reckoning", "awakening", "renewal"), kw("self-doubt", "harsh judgement", "ignoring the call")},
	{"The World", kw("completion", "wholeness", "accomplishment"), kw("incompletion", "loose ends", "delayed closure")},
}

var minorRanks = []string{
	"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King",
}

// minorKeywords maps suit -> 14 upright/reversed keyword pairs, Ace first.
var minorKeywords = map[Suit][][2][]string{
	SuitWands: {
		{kw("inspiration", "new opportunity", "potential"), kw("delays", "false starts", "lack of motivation")},
		{kw("planning", "decisions", "discovery"), kw("fear of change", "playing it safe", "bad planning")},
		{kw("expansion", "foresight", "progress"), kw("obstacles", "delays", "lack of foresight")},
		{kw("celebration", "harmony", "homecoming"), kw("instability", "transience", "lack of support")},
		{kw("competition", "conflict", "tension"), kw("avoiding conflict", "resolution", "compromise")},
		{kw("victory", "recognition", "confidence"), kw("egotism", "fall from grace", "lack of recognition")},
		{kw("perseverance", "defensiveness", "standing ground"), kw("exhaustion", "giving up", "overwhelm")},
		{kw("swift action", "movement", "momentum"), kw("delays", "frustration", "scattered energy")},
		{kw("resilience", "persistence", "last stand"), kw("fatigue", "paranoia", "burnout")},
		{kw("burden", "responsibility", "hard work"), kw("release", "delegation", "collapse under pressure")},
		{kw("enthusiasm", "exploration", "free spirit"), kw("haste", "lack of direction", "superficiality")},
		{kw("passion", "adventure", "impulsiveness"), kw("recklessness", "scattered energy", "frustration")},
		{kw("confidence", "warmth", "determination"), kw("jealousy", "insecurity", "demanding nature")},
		{kw("leadership", "vision", "boldness"), kw("impulsiveness", "ruthlessness", "overbearing nature")},
	},
	SuitCups: {
		{kw("new feelings", "compassion", "creativity"), kw("emotional loss", "blocked creativity", "emptiness")},
		{kw("partnership", "mutual attraction", "connection"), kw("imbalance", "broken bond", "tension")},
		{kw("friendship", "celebration", "community"), kw("overindulgence", "gossip", "isolation")},
		{kw("apathy", "contemplation", "reevaluation"), kw("renewed interest", "acceptance", "moving on")},
		{kw("loss", "grief", "disappointment"), kw("acceptance", "forgiveness", "moving forward")},
		{kw("nostalgia", "memories", "innocence"), kw("living in the past", "rose-tinted views", "stagnation")},
		{kw("choices", "imagination", "illusion"), kw("clarity", "decision made", "overwhelm lifting")},
		{kw("walking away", "disillusionment", "seeking deeper meaning"), kw("fear of moving on", "stagnation", "avoidance")},
		{kw("contentment", "satisfaction", "wishes fulfilled"), kw("smugness", "dissatisfaction", "unfulfilled wishes")},
		{kw("emotional fulfillment", "family", "harmony"), kw("broken home", "disharmony", "misaligned values")},
		{kw("curiosity", "intuitive messages", "creative beginnings"), kw("emotional immaturity", "escapism", "creative block")},
		{kw("romance", "charm", "idealism"), kw("moodiness", "unrealistic expectations", "disappointment")},
		{kw("emotional maturity", "compassion", "calm"), kw("insecurity", "dependence", "emotional manipulation")},
		{kw("emotional balance", "diplomacy", "wisdom"), kw("coldness", "moodiness", "repressed emotions")},
	},
	SuitSwords: {
		{kw("clarity", "breakthrough", "truth"), kw("confusion", "brutality", "clouded judgement")},
		{kw("stalemate", "difficult choice", "avoidance"), kw("indecision lifting", "information revealed", "release")},
		{kw("heartbreak", "sorrow", "painful truth"), kw("recovery", "forgiveness", "releasing pain")},
		{kw("rest", "recovery", "contemplation"), kw("restlessness", "burnout", "stagnation")},
		{kw("conflict", "defeat", "hollow victory"), kw("reconciliation", "making amends", "past resentment")},
		{kw("transition", "moving on", "gradual change"), kw("resistance to change", "unfinished business", "rough waters")},
		{kw("deception", "strategy", "acting alone"), kw("coming clean", "conscience", "self-deceit")},
		{kw("restriction", "feeling trapped", "victim mentality"), kw("freedom", "new perspective", "self-acceptance")},
		{kw("anxiety", "worry", "sleepless nights"), kw("hope returning", "reaching out", "despair easing")},
		{kw("painful ending", "rock bottom", "betrayal"), kw("recovery", "regeneration", "lessons learned")},
		{kw("curiosity", "vigilance", "new ideas"), kw("gossip", "haste", "scattered thinking")},
		{kw("ambition", "directness", "swift action"), kw("impulsiveness", "burnout", "recklessness")},
		{kw("perceptiveness", "independence", "clear boundaries"), kw("coldness", "bitterness", "harsh judgement")},
		{kw("intellect", "authority", "truth"), kw("manipulation", "cruelty", "abuse of power")},
	},
	SuitPentacles: {
		{kw("opportunity", "prosperity", "new venture"), kw("missed chance", "scarcity mindset", "poor planning")},
		{kw("balance", "adaptability", "juggling priorities"), kw("overcommitment", "disorganization", "overwhelm")},
		{kw("teamwork", "craftsmanship", "learning"), kw("disharmony", "lack of teamwork", "mediocrity")},
		{kw("security", "conservation", "control"), kw("greed", "hoarding", "letting go of control")},
		{kw("hardship", "insecurity", "isolation"), kw("recovery", "spiritual growth", "help accepted")},
		{kw("generosity", "charity", "support"), kw("strings attached", "inequality", "one-sided giving")},
		{kw("patience", "long-term view", "assessment"), kw("impatience", "wasted effort", "poor returns")},
		{kw("diligence", "skill-building", "dedication"), kw("perfectionism", "lack of focus", "uninspired work")},
		{kw("self-sufficiency", "luxury", "rewards"), kw("overspending", "hustling without rest", "superficial success")},
		{kw("legacy", "wealth", "family stability"), kw("financial loss", "family disputes", "instability")},
		{kw("ambition", "study", "new skills"), kw("procrastination", "lack of progress", "distraction")},
		{kw("reliability", "hard work", "routine"), kw("boredom", "stagnation", "perfectionism")},
		{kw("practicality", "nurturing abundance", "groundedness"), kw("self-neglect", "work-home imbalance", "smothering")},
		{kw("wealth", "discipline", "security"), kw("greed", "stubbornness", "obsession with status")},
	},
}

func buildDeck() []Card {
	cards := make([]Card, 0, 78)
	for _, spec := range majorArcana {
		id := slugify(spec.name)
		cards = append(cards, Card{
			ID:               id,
			Name:             spec.name,
			Arcana:           ArcanaMajor,
			Suit:             SuitNone,
			UprightKeywords:  spec.upright,
			ReversedKeywords: spec.reversed,
			ImageURL:         defaultImageURL(id),
		})
	}
	for _, suit := range []Suit{SuitWands, SuitCups, SuitSwords, SuitPentacles} {
		keywords := minorKeywords[suit]
		for i, rank := range minorRanks {
			name := fmt.Sprintf("%s of %s", rank, suit)
			id := slugify(name)
			cards = append(cards, Card{
				ID:               id,
				Name:             name,
				Arcana:           ArcanaMinor,
				Suit:             suit,
				UprightKeywords:  keywords[i][0],
				ReversedKeywords: keywords[i][1],
				ImageURL:         defaultImageURL(id),
			})
		}
	}
	return cards
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func defaultImageURL(id string) string {
	return "assets/cards/" + id + ".svg"
}
