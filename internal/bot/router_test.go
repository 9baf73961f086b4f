package bot

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenfyi/serumbot/internal/config"
	"github.com/tokenfyi/serumbot/internal/serum"
)

// fakePriceSource serves quotes keyed by market address, standing in for
// the shared Serum client.
type fakePriceSource struct {
	quotes map[string]string
	err    error
}

func (f *fakePriceSource) FetchBestBid(_ context.Context, marketAddress string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	quote, ok := f.quotes[marketAddress]
	if !ok {
		return "", serum.ErrPriceUnavailable
	}
	return quote, nil
}

func testSession(meta config.BotConfig, price PriceSource) *Session {
	return &Session{
		meta:  meta,
		price: price,
		log:   slog.New(slog.DiscardHandler),
	}
}

func TestAccepts_ChannelScoping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		preferredChannel string
		inv              invocation
		expected         bool
	}{
		{
			name:     "No restriction answers any channel",
			inv:      invocation{subcommand: "price", channelID: "123"},
			expected: true,
		},
		{
			name:             "Matching channel accepted",
			preferredChannel: "123",
			inv:              invocation{subcommand: "price", channelID: "123"},
			expected:         true,
		},
		{
			name:             "Other channel dropped silently",
			preferredChannel: "123",
			inv:              invocation{subcommand: "price", channelID: "456"},
			expected:         false,
		},
		{
			name:     "Missing subcommand dropped",
			inv:      invocation{channelID: "123"},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := testSession(config.BotConfig{
				TokenSymbol:        "ABC",
				PreferredChannelID: tc.preferredChannel,
			}, &fakePriceSource{})

			if got := s.accepts(tc.inv); got != tc.expected {
				t.Errorf("accepts(%+v) = %v, want %v", tc.inv, got, tc.expected)
			}
		})
	}
}

func TestReplyFor_Price(t *testing.T) {
	t.Parallel()

	s := testSession(config.BotConfig{
		TokenSymbol:   "ABC",
		MarketAddress: "marketA",
	}, &fakePriceSource{quotes: map[string]string{"marketA": "1.24"}})

	reply, ok := s.replyFor(context.Background(), "price")
	require.True(t, ok)
	assert.Equal(t, "ABC: $1.24", reply)
}

func TestReplyFor_PriceUnavailable(t *testing.T) {
	t.Parallel()

	s := testSession(config.BotConfig{
		TokenSymbol:   "ABC",
		MarketAddress: "marketA",
	}, &fakePriceSource{err: errors.New("rpc down")})

	reply, ok := s.replyFor(context.Background(), "price")
	require.True(t, ok)
	assert.Equal(t, "ABC: price unavailable", reply)
}

func TestReplyFor_MoonIsIdempotent(t *testing.T) {
	t.Parallel()

	s := testSession(config.BotConfig{TokenSymbol: "ABC"}, &fakePriceSource{})

	first, ok := s.replyFor(context.Background(), "moon")
	require.True(t, ok)

	for range 10 {
		reply, ok := s.replyFor(context.Background(), "moon")
		require.True(t, ok)
		assert.Equal(t, first, reply)
	}
}

func TestReplyFor_UnknownSubcommand(t *testing.T) {
	t.Parallel()

	s := testSession(config.BotConfig{TokenSymbol: "ABC"}, &fakePriceSource{})

	reply, ok := s.replyFor(context.Background(), "lambo")
	assert.False(t, ok)
	assert.Empty(t, reply)
}

func TestSessions_ShareOnePriceSourceIndependently(t *testing.T) {
	t.Parallel()

	shared := &fakePriceSource{quotes: map[string]string{
		"marketA": "1.24",
		"marketB": "987.65",
	}}

	a := testSession(config.BotConfig{TokenSymbol: "AAA", MarketAddress: "marketA"}, shared)
	b := testSession(config.BotConfig{TokenSymbol: "BBB", MarketAddress: "marketB"}, shared)

	replyA, ok := a.replyFor(context.Background(), "price")
	require.True(t, ok)
	replyB, ok := b.replyFor(context.Background(), "price")
	require.True(t, ok)

	assert.Equal(t, "AAA: $1.24", replyA)
	assert.Equal(t, "BBB: $987.65", replyB)
}
