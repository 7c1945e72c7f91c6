package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hollyoak/arcanum/internal/almanac"
	"github.com/hollyoak/arcanum/internal/imagecache"
	"github.com/hollyoak/arcanum/internal/inference"
	"github.com/hollyoak/arcanum/internal/journal"
	mock_inference "github.com/hollyoak/arcanum/internal/mocks/inference"
	"github.com/hollyoak/arcanum/internal/reading"
	"github.com/hollyoak/arcanum/internal/storage"
	"github.com/hollyoak/arcanum/internal/tarot"
)

type cliFixture struct {
	client  *mock_inference.MockClient
	journal *journal.Store
	cli     *ReadingCLI
	stdout  *bytes.Buffer
}

func newCLIFixture(t *testing.T, stdin string, withArt bool) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	backend, err := storage.NewFileBackend(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	images, err := imagecache.NewStore(backend)
	require.NoError(t, err)
	journalStore, err := journal.NewStore(backend)
	require.NoError(t, err)

	client := mock_inference.NewMockClient(ctrl)
	session := reading.NewSession(client, images, journalStore,
		reading.WithClock(func() time.Time {
			return time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)
		}),
		reading.WithAlmanac(func(time.Time) almanac.Info {
			return almanac.Info{LunarPhase: "Full Moon", Season: "Spring"}
		}),
	)

	stdout := &bytes.Buffer{}
	readingCLI := NewReadingCLI(session, withArt)
	readingCLI.stdinReader = bufio.NewReader(strings.NewReader(stdin))
	readingCLI.stdoutWriter = stdout
	readingCLI.bold = color.New()
	readingCLI.italic = color.New()

	return &cliFixture{client: client, journal: journalStore, cli: readingCLI, stdout: stdout}
}

func singleCardDraw(t *testing.T) ([]tarot.DrawnCard, tarot.Spread) {
	t.Helper()
	card, ok := tarot.FindCardByName("The Fool")
	require.True(t, ok)
	spread, ok := tarot.FindSpread(tarot.SpreadCardOfTheDay, nil)
	require.True(t, ok)
	return []tarot.DrawnCard{{Card: card}}, spread
}

func interpretation() inference.Interpretation {
	return inference.Interpretation{
		Overall: "A fresh start is on the table.",
		Cards:   []inference.CardInterpretation{{CardName: "The Fool", Meaning: "Leap with open eyes."}},
	}
}

func TestReadingCLI_Run(t *testing.T) {
	t.Run("full reading saved to the journal", func(t *testing.T) {
		fixture := newCLIFixture(t, "felt hopeful\nhope, renewal\ny\n", true)
		cards, spread := singleCardDraw(t)
		fixture.client.EXPECT().
			GenerateCardArt(gomock.Any(), cards[0].Card).
			Return("data:image/png;base64,fool", nil)
		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			Return(interpretation(), nil)

		require.NoError(t, fixture.cli.Run(context.Background(), cards, spread, "What now?"))

		require.Equal(t, 1, fixture.journal.Len())
		entry := fixture.journal.Entries()[0]
		assert.Equal(t, "felt hopeful", entry.Impression)
		assert.Equal(t, []string{"hope", "renewal"}, entry.Tags)
		assert.Equal(t, "What now?", entry.Question)

		output := fixture.stdout.String()
		assert.Contains(t, output, "Leap with open eyes.")
		assert.Contains(t, output, "A fresh start is on the table.")
		assert.Contains(t, output, "Saved to your journal")
	})

	t.Run("without art the service is never asked for images", func(t *testing.T) {
		fixture := newCLIFixture(t, "\n\n\n", false)
		cards, spread := singleCardDraw(t)
		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			Return(interpretation(), nil)

		require.NoError(t, fixture.cli.Run(context.Background(), cards, spread, ""))
		assert.Equal(t, 1, fixture.journal.Len())
	})

	t.Run("discarding leaves the journal untouched", func(t *testing.T) {
		fixture := newCLIFixture(t, "meh\n\nn\n", false)
		cards, spread := singleCardDraw(t)
		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			Return(interpretation(), nil)

		require.NoError(t, fixture.cli.Run(context.Background(), cards, spread, ""))
		assert.Zero(t, fixture.journal.Len())
		assert.Contains(t, fixture.stdout.String(), "Reading discarded.")
	})

	t.Run("art failure offers continue without art", func(t *testing.T) {
		fixture := newCLIFixture(t, "c\n\n\ny\n", true)
		cards, spread := singleCardDraw(t)
		fixture.client.EXPECT().
			GenerateCardArt(gomock.Any(), cards[0].Card).
			Return("", inference.NewServiceError(inference.CauseRateLimited, "quota", nil))
		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			Return(interpretation(), nil)

		require.NoError(t, fixture.cli.Run(context.Background(), cards, spread, ""))
		assert.Equal(t, 1, fixture.journal.Len())
	})

	t.Run("art failure can be retried", func(t *testing.T) {
		fixture := newCLIFixture(t, "r\n\n\ny\n", true)
		cards, spread := singleCardDraw(t)
		gomock.InOrder(
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), cards[0].Card).
				Return("", inference.NewServiceError(inference.CauseNetwork, "offline", nil)),
			fixture.client.EXPECT().
				GenerateCardArt(gomock.Any(), cards[0].Card).
				Return("data:image/png;base64,fool", nil),
		)
		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			Return(interpretation(), nil)

		require.NoError(t, fixture.cli.Run(context.Background(), cards, spread, ""))
		assert.Equal(t, 1, fixture.journal.Len())
	})

	t.Run("interpretation failure can be abandoned", func(t *testing.T) {
		fixture := newCLIFixture(t, "q\n", false)
		cards, spread := singleCardDraw(t)
		fixture.client.EXPECT().
			GenerateInterpretation(gomock.Any(), gomock.Any()).
			Return(inference.Interpretation{}, inference.NewServiceError(inference.CauseServer, "boom", nil))

		require.NoError(t, fixture.cli.Run(context.Background(), cards, spread, ""))
		assert.Zero(t, fixture.journal.Len())
	})

	t.Run("rejects a mismatched draw before starting", func(t *testing.T) {
		fixture := newCLIFixture(t, "", true)
		cards, _ := singleCardDraw(t)
		spread, ok := tarot.FindSpread("past-present-future", nil)
		require.True(t, ok)

		assert.Error(t, fixture.cli.Run(context.Background(), cards, spread, ""))
	})
}

func TestReadingCLI_PromptCards(t *testing.T) {
	t.Run("fuzzy-matches typos and reads reversals", func(t *testing.T) {
		fixture := newCLIFixture(t, "ten of wand\ny\n", true)
		spread, ok := tarot.FindSpread(tarot.SpreadCardOfTheDay, nil)
		require.True(t, ok)

		drawn, err := fixture.cli.PromptCards(spread, tarot.Deck(), true)
		require.NoError(t, err)
		require.Len(t, drawn, 1)
		assert.Equal(t, "Ten of Wands", drawn[0].Card.Name)
		assert.True(t, drawn[0].IsReversed)
	})

	t.Run("re-prompts on an unrecognized name", func(t *testing.T) {
		fixture := newCLIFixture(t, "Xyzzy\nThe Fool\n", true)
		spread, ok := tarot.FindSpread(tarot.SpreadCardOfTheDay, nil)
		require.True(t, ok)

		drawn, err := fixture.cli.PromptCards(spread, tarot.Deck(), false)
		require.NoError(t, err)
		require.Len(t, drawn, 1)
		assert.Equal(t, "The Fool", drawn[0].Card.Name)
		assert.Contains(t, fixture.stdout.String(), "No card matches")
	})
}
