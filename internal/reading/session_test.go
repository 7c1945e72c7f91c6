package reading

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hollyoak/arcanum/internal/almanac"
	"github.com/hollyoak/arcanum/internal/imagecache"
	"github.com/hollyoak/arcanum/internal/inference"
	"github.com/hollyoak/arcanum/internal/journal"
	mock_inference "github.com/hollyoak/arcanum/internal/mocks/inference"
	"github.com/hollyoak/arcanum/internal/storage"
	"github.com/hollyoak/arcanum/internal/tarot"
)

type fixture struct {
	client  *mock_inference.MockClient
	images  *imagecache.Store
	journal *journal.Store
	session *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	backend, err := storage.NewFileBackend(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	images, err := imagecache.NewStore(backend)
	require.NoError(t, err)
	journalStore, err := journal.NewStore(backend)
	require.NoError(t, err)

	client := mock_inference.NewMockClient(ctrl)
	session := NewSession(client, images, journalStore,
		WithClock(func() time.Time {
			return time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)
		}),
		WithAlmanac(func(time.Time) almanac.Info {
			return almanac.Info{LunarPhase: "Full Moon", Season: "Spring"}
		}),
	)
	return &fixture{client: client, images: images, journal: journalStore, session: session}
}

func mustCard(t *testing.T, name string) tarot.Card {
	t.Helper()
	card, ok := tarot.FindCardByName(name)
	require.True(t, ok)
	return card
}

func singleCardDraw(t *testing.T) ([]tarot.DrawnCard, tarot.Spread) {
	t.Helper()
	spread, ok := tarot.FindSpread(tarot.SpreadCardOfTheDay, nil)
	require.True(t, ok)
	return []tarot.DrawnCard{{Card: mustCard(t, "The Fool")}}, spread
}

func threeCardDraw(t *testing.T) ([]tarot.DrawnCard, tarot.Spread) {
	t.Helper()
	spread, ok := tarot.FindSpread("past-present-future", nil)
	require.True(t, ok)
	cards := []tarot.DrawnCard{
		{Card: mustCard(t, "The Fool")},
		{Card: mustCard(t, "The Magician"), IsReversed: true},
		{Card: mustCard(t, "The Sun")},
	}
	return cards, spread
}

func serviceError(cause inference.ErrorCause) error {
	return inference.NewServiceError(cause, "boom", nil)
}

func TestSession_Start(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cards []tarot.DrawnCard, spread tarot.Spread) ([]tarot.DrawnCard, tarot.Spread)
		wantErr bool
	}{
		{
			name: "valid draw enters the art phase",
			mutate: func(cards []tarot.DrawnCard, spread tarot.Spread) ([]tarot.DrawnCard, tarot.Spread) {
				return cards, spread
			},
		},
		{
			name: "no cards",
			mutate: func(_ []tarot.DrawnCard, spread tarot.Spread) ([]tarot.DrawnCard, tarot.Spread) {
				return nil, spread
			},
			wantErr: true,
		},
		{
			name: "unresolved card",
			mutate: func(cards []tarot.DrawnCard, spread tarot.Spread) ([]tarot.DrawnCard, tarot.Spread) {
				cards[1] = tarot.DrawnCard{}
				return cards, spread
			},
			wantErr: true,
		},
		{
			name: "card count does not match the spread",
			mutate: func(cards []tarot.DrawnCard, spread tarot.Spread) ([]tarot.DrawnCard, tarot.Spread) {
				return cards[:2], spread
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newFixture(t)
			cards, spread := threeCardDraw(t)
			cards, spread = tt.mutate(cards, spread)

			err := fixture.session.Start(cards, spread, "What should I focus on?")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, PhaseDashboard, fixture.session.State().Phase())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, PhaseGeneratingImages, fixture.session.State().Phase())
		})
	}
}

func TestSession_GenerateImages(t *testing.T) {
	t.Run("generates and caches art for every card", func(t *testing.T) {
		fixture := newFixture(t)
		cards, spread := threeCardDraw(t)
		for _, drawn := range cards {
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), drawn.Card).
				Return("data:image/png;base64,"+drawn.Card.ID, nil)
		}

		require.NoError(t, fixture.session.Start(cards, spread, ""))
		require.NoError(t, fixture.session.GenerateImages(context.Background()))

		state, ok := fixture.session.State().(Loading)
		require.True(t, ok)
		for _, drawn := range state.Cards {
			assert.Equal(t, "data:image/png;base64,"+drawn.Card.ID, drawn.ImageURL)
			cached, ok := fixture.images.Get(drawn.Card.ID)
			require.True(t, ok)
			assert.Equal(t, drawn.ImageURL, cached)
		}
	})

	t.Run("cached art is never re-requested", func(t *testing.T) {
		fixture := newFixture(t)
		cards, spread := singleCardDraw(t)
		fixture.client.EXPECT().
			GenerateCardArt(gomock.Any(), cards[0].Card).
			Return("data:image/png;base64,once", nil).
			Times(1)

		require.NoError(t, fixture.session.Start(cards, spread, ""))
		require.NoError(t, fixture.session.GenerateImages(context.Background()))
		fixture.session.Reset()

		require.NoError(t, fixture.session.Start(cards, spread, ""))
		require.NoError(t, fixture.session.GenerateImages(context.Background()))

		state, ok := fixture.session.State().(Loading)
		require.True(t, ok)
		assert.Equal(t, "data:image/png;base64,once", state.Cards[0].ImageURL)
	})

	t.Run("first failure aborts but keeps earlier cache writes", func(t *testing.T) {
		fixture := newFixture(t)
		cards, spread := threeCardDraw(t)
		gomock.InOrder(
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), cards[0].Card).
				Return("data:image/png;base64,fool", nil),
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), cards[1].Card).
				Return("", serviceError(inference.CauseServer)),
		)

		require.NoError(t, fixture.session.Start(cards, spread, ""))
		require.NoError(t, fixture.session.GenerateImages(context.Background()))

		state, ok := fixture.session.State().(ImageError)
		require.True(t, ok)
		assert.NotEmpty(t, state.Message)

		cached, ok := fixture.images.Get(cards[0].Card.ID)
		require.True(t, ok, "a partial success stays cached")
		assert.Equal(t, "data:image/png;base64,fool", cached)
		_, ok = fixture.images.Get(cards[1].Card.ID)
		assert.False(t, ok)
	})

	t.Run("retry re-attempts only uncached cards", func(t *testing.T) {
		fixture := newFixture(t)
		cards, spread := threeCardDraw(t)
		gomock.InOrder(
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), cards[0].Card).
				Return("data:image/png;base64,fool", nil),
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), cards[1].Card).
				Return("", serviceError(inference.CauseNetwork)),
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), cards[1].Card).
				Return("data:image/png;base64,magician", nil),
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), cards[2].Card).
				Return("data:image/png;base64,sun", nil),
		)

		require.NoError(t, fixture.session.Start(cards, spread, ""))
		require.NoError(t, fixture.session.GenerateImages(context.Background()))
		require.Equal(t, PhaseImageError, fixture.session.State().Phase())

		require.NoError(t, fixture.session.RetryImages())
		require.NoError(t, fixture.session.GenerateImages(context.Background()))
		assert.Equal(t, PhaseLoading, fixture.session.State().Phase())
	})

	t.Run("rejected outside the art phase", func(t *testing.T) {
		fixture := newFixture(t)
		assert.Error(t, fixture.session.GenerateImages(context.Background()))
	})
}

func TestSession_SkipImages(t *testing.T) {
	fixture := newFixture(t)
	cards, spread := singleCardDraw(t)

	require.NoError(t, fixture.session.Start(cards, spread, ""))
	require.NoError(t, fixture.session.SkipImages())

	state, ok := fixture.session.State().(Loading)
	require.True(t, ok)
	assert.Empty(t, state.Cards[0].ImageURL)
	assert.Zero(t, fixture.images.Len(), "skipping never touches the cache")
}

func TestSession_ContinueWithoutArt(t *testing.T) {
	fixture := newFixture(t)
	cards, spread := threeCardDraw(t)
	fixture.client.EXPECT().
		GenerateCardArt(gomock.Any(), cards[0].Card).
		Return("", serviceError(inference.CauseRateLimited))

	require.NoError(t, fixture.session.Start(cards, spread, ""))
	require.NoError(t, fixture.session.GenerateImages(context.Background()))
	require.Equal(t, PhaseImageError, fixture.session.State().Phase())

	require.NoError(t, fixture.session.ContinueWithoutArt())
	state, ok := fixture.session.State().(Loading)
	require.True(t, ok)
	for _, drawn := range state.Cards {
		assert.Empty(t, drawn.ImageURL, "cards fall back to their default artwork")
	}
}

func TestSession_Interpret(t *testing.T) {
	startLoading := func(t *testing.T, fixture *fixture, question string) {
		t.Helper()
		cards, spread := singleCardDraw(t)
		fixture.client.EXPECT().
			GenerateCardArt(gomock.Any(), gomock.Any()).
			Return("data:image/png;base64,fool", nil)
		require.NoError(t, fixture.session.Start(cards, spread, question))
		require.NoError(t, fixture.session.GenerateImages(context.Background()))
	}

	t.Run("success reaches the result phase with almanac context", func(t *testing.T) {
		fixture := newFixture(t)
		startLoading(t, fixture, "What should I focus on?")

		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params inference.InterpretationRequest) (inference.Interpretation, error) {
				assert.Equal(t, "What should I focus on?", params.Question)
				assert.Equal(t, "Full Moon", params.Almanac.LunarPhase)
				assert.Len(t, params.Cards, 1)
				return inference.Interpretation{
					Overall: "X",
					Cards:   []inference.CardInterpretation{{CardName: "The Fool", Meaning: "Y"}},
				}, nil
			})

		require.NoError(t, fixture.session.Interpret(context.Background()))
		state, ok := fixture.session.State().(Result)
		require.True(t, ok)
		assert.Equal(t, "X", state.Interpretation.Overall)
	})

	t.Run("failure lands in the interpretation-error phase", func(t *testing.T) {
		fixture := newFixture(t)
		startLoading(t, fixture, "")

		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			Return(inference.Interpretation{}, serviceError(inference.CauseTimeout))

		require.NoError(t, fixture.session.Interpret(context.Background()))
		state, ok := fixture.session.State().(InterpretationError)
		require.True(t, ok)
		assert.NotEmpty(t, state.Message)
	})

	t.Run("retry re-invokes with the same draw", func(t *testing.T) {
		fixture := newFixture(t)
		startLoading(t, fixture, "Same question")

		gomock.InOrder(
			fixture.client.EXPECT().
				GenerateInterpretation(gomock.Any(), gomock.Any()).
				Return(inference.Interpretation{}, serviceError(inference.CauseServer)),
			fixture.client.EXPECT().
				GenerateInterpretation(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params inference.InterpretationRequest) (inference.Interpretation, error) {
					assert.Equal(t, "Same question", params.Question)
					return inference.Interpretation{
						Overall: "X",
						Cards:   []inference.CardInterpretation{{CardName: "The Fool", Meaning: "Y"}},
					}, nil
				}),
		)

		require.NoError(t, fixture.session.Interpret(context.Background()))
		require.Equal(t, PhaseInterpretationError, fixture.session.State().Phase())
		require.NoError(t, fixture.session.RetryInterpretation())
		require.NoError(t, fixture.session.Interpret(context.Background()))
		assert.Equal(t, PhaseResult, fixture.session.State().Phase())
	})

	t.Run("abandon returns to the dashboard", func(t *testing.T) {
		fixture := newFixture(t)
		startLoading(t, fixture, "")
		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			Return(inference.Interpretation{}, serviceError(inference.CauseUnknown))

		require.NoError(t, fixture.session.Interpret(context.Background()))
		require.NoError(t, fixture.session.Abandon())
		assert.Equal(t, PhaseDashboard, fixture.session.State().Phase())
	})
}

func TestSession_Save(t *testing.T) {
	fixture := newFixture(t)
	cards, spread := singleCardDraw(t)
	fixture.client.EXPECT().
		GenerateCardArt(gomock.Any(), gomock.Any()).
		Return("data:image/png;base64,fool", nil)
	fixture.client.EXPECT().
		GenerateInterpretation(gomock.Any(), gomock.Any()).
		Return(inference.Interpretation{
			Overall: "X",
			Cards:   []inference.CardInterpretation{{CardName: "The Fool", Meaning: "Y"}},
		}, nil)

	require.NoError(t, fixture.session.Start(cards, spread, "What now?"))
	require.NoError(t, fixture.session.GenerateImages(context.Background()))
	require.NoError(t, fixture.session.Interpret(context.Background()))

	entry, err := fixture.session.Save("felt hopeful", []string{"hope"})
	require.NoError(t, err)
	assert.Equal(t, PhaseDashboard, fixture.session.State().Phase())

	saved, err := fixture.journal.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Card of the Day", saved.Spread.Name)
	assert.Equal(t, "What now?", saved.Question)
	assert.Equal(t, "felt hopeful", saved.Impression)
	assert.Equal(t, []string{"hope"}, saved.Tags)
	assert.Equal(t, "X", saved.Interpretation.Overall)
	assert.Equal(t, "2025-03-03", saved.DateISO)

	t.Run("save requires a result", func(t *testing.T) {
		_, err := fixture.session.Save("again", nil)
		assert.Error(t, err)
	})
}

func TestSession_Reset(t *testing.T) {
	fixture := newFixture(t)
	cards, spread := singleCardDraw(t)

	require.NoError(t, fixture.session.Start(cards, spread, ""))
	fixture.session.Reset()
	assert.Equal(t, PhaseDashboard, fixture.session.State().Phase())
}
