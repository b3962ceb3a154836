package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-report/internal/config"
	"channel-report/internal/domain/entity"
)

func TestService_GroupsPresentEvenWhenEmpty(t *testing.T) {
	src := newFakeSource()
	src.histories["chA"] = []entity.Message{
		{Channel: "chA", ID: 1, PostedAt: at(2025, 1, 1, 10, 0), Text: "release out"},
	}

	groups := []config.Group{
		{Name: "Tech", Channels: []string{"chA"}},
		{Name: "Silence", Channels: nil},
	}
	window := entity.NewWindow(day(2025, 1, 1), day(2025, 1, 2))

	svc := NewService(src)
	results, stats, err := svc.Run(context.Background(), groups, window, patterns("release"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Tech", "Silence"}, results.Groups())
	assert.Len(t, results.Entries("Tech"), 1)
	assert.Empty(t, results.Entries("Silence"), "a group without matches still has a section")
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 0, stats.ChannelErrors)
}

func TestService_ChannelFailureIsolated(t *testing.T) {
	src := newFakeSource()
	src.histories["good"] = []entity.Message{
		{Channel: "good", ID: 1, PostedAt: at(2025, 1, 1, 10, 0), Text: "release one"},
	}
	src.openErr["broken"] = errors.New("flood wait")
	src.histories["later"] = []entity.Message{
		{Channel: "later", ID: 2, PostedAt: at(2025, 1, 1, 11, 0), Text: "release two"},
	}

	groups := []config.Group{
		{Name: "Tech", Channels: []string{"good", "broken", "later"}},
	}
	window := entity.NewWindow(day(2025, 1, 1), day(2025, 1, 2))

	svc := NewService(src)
	results, stats, err := svc.Run(context.Background(), groups, window, patterns("release"))
	require.NoError(t, err, "a single failing channel must not abort the run")

	entries := results.Entries("Tech")
	require.Len(t, entries, 2, "channels after the failing one are still scanned")
	assert.Equal(t, int64(1), entries[0].MessageID)
	assert.Equal(t, int64(2), entries[1].MessageID)
	assert.Equal(t, 1, stats.ChannelErrors)
	assert.Equal(t, 3, stats.Channels)
}

func TestService_MidChannelFailureKeepsEarlierMatches(t *testing.T) {
	src := newFakeSource()
	src.histories["flaky"] = []entity.Message{
		{Channel: "flaky", ID: 1, PostedAt: at(2025, 1, 1, 9, 0), Text: "release early"},
		{Channel: "flaky", ID: 2, PostedAt: at(2025, 1, 1, 10, 0), Text: "release late"},
	}
	failing := &failingSource{inner: src, failAfter: 1, err: errors.New("timeout")}

	groups := []config.Group{{Name: "Tech", Channels: []string{"flaky"}}}
	window := entity.NewWindow(day(2025, 1, 1), day(2025, 1, 2))

	svc := NewService(failing)
	results, stats, err := svc.Run(context.Background(), groups, window, patterns("release"))
	require.NoError(t, err)

	require.Len(t, results.Entries("Tech"), 1, "matches made before the failure survive")
	assert.Equal(t, 1, stats.ChannelErrors)
}

func TestService_KeywordScenario(t *testing.T) {
	src := newFakeSource()
	src.histories["chX"] = []entity.Message{
		{Channel: "chX", ID: 10, PostedAt: at(2025, 1, 1, 8, 0), Text: "New release out\nChangelog inside."},
		{Channel: "chX", ID: 11, PostedAt: at(2025, 1, 3, 8, 0), Text: "release notes follow-up"},
	}

	groups := []config.Group{{Name: "Tech", Channels: []string{"chX"}}}
	window := entity.NewWindow(day(2025, 1, 1), day(2025, 1, 2))

	svc := NewService(src)
	results, _, err := svc.Run(context.Background(), groups, window, patterns("release"))
	require.NoError(t, err)

	entries := results.Entries("Tech")
	require.Len(t, entries, 1, "the message past the window is excluded")
	assert.Equal(t, "New release out", entries[0].Title)
	assert.Equal(t, "Changelog inside.", entries[0].Content)
	assert.Equal(t, "01.01.2025 08:00", entries[0].Date)
}

func TestService_Idempotent(t *testing.T) {
	src := newFakeSource()
	src.histories["chA"] = []entity.Message{
		{Channel: "chA", ID: 1, PostedAt: at(2025, 1, 1, 10, 0), Text: "security advisory"},
		{Channel: "chA", ID: 2, PostedAt: at(2025, 1, 2, 10, 0), Text: "release cut"},
	}
	groups := []config.Group{{Name: "Tech", Channels: []string{"chA"}}}
	window := entity.NewWindow(day(2025, 1, 1), day(2025, 1, 2))
	pats := patterns("security", "release")

	svc := NewService(src)
	first, _, err := svc.Run(context.Background(), groups, window, pats)
	require.NoError(t, err)
	second, _, err := svc.Run(context.Background(), groups, window, pats)
	require.NoError(t, err)

	type snapshot struct {
		Groups  []string
		Entries map[string][]entity.MatchedEntry
	}
	capture := func(r *entity.GroupedResults) snapshot {
		s := snapshot{Groups: r.Groups(), Entries: make(map[string][]entity.MatchedEntry)}
		for _, g := range r.Groups() {
			s.Entries[g] = r.Entries(g)
		}
		return s
	}
	if diff := cmp.Diff(capture(first), capture(second)); diff != "" {
		t.Errorf("repeated runs over the same history diverged (-first +second):\n%s", diff)
	}
}

func TestService_CancellationAbortsRun(t *testing.T) {
	src := newFakeSource()
	src.histories["chA"] = []entity.Message{
		{Channel: "chA", ID: 1, PostedAt: at(2025, 1, 1, 10, 0), Text: "release"},
	}
	groups := []config.Group{{Name: "Tech", Channels: []string{"chA", "chB"}}}
	window := entity.NewWindow(day(2025, 1, 1), day(2025, 1, 2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(src)
	_, _, err := svc.Run(ctx, groups, window, patterns("release"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_StatsDuration(t *testing.T) {
	src := newFakeSource()
	groups := []config.Group{{Name: "Empty", Channels: []string{"chA"}}}
	window := entity.NewWindow(day(2025, 1, 1), day(2025, 1, 1))

	svc := NewService(src)
	_, stats, err := svc.Run(context.Background(), groups, window, patterns("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Groups)
	assert.GreaterOrEqual(t, stats.Duration, time.Duration(0))
}
