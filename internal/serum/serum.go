// Package serum reads best-bid prices from Serum v3 order books over a
// shared Solana RPC connection.
package serum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/serum"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// ErrPriceUnavailable is returned whenever a best-bid quote cannot be
// produced: malformed market address, RPC failure, account that is not a
// Serum v3 market, or an order book with no bids. Callers log it and carry
// on; the next tick or invocation is a fresh attempt.
var ErrPriceUnavailable = errors.New("price unavailable")

// Serum DEX program v3.
var serumV3Program = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")

// errFoundBest aborts the slab walk after the first (best) bid level.
var errFoundBest = errors.New("found best bid")

// Client is a read-only Serum market reader. A single Client is shared by
// every bot session in the process; it holds no mutable state beyond the
// underlying RPC connection, so concurrent use needs no coordination.
type Client struct {
	rpc *rpc.Client
	log *slog.Logger
}

// NewClient creates a Serum client over one RPC connection to the given
// endpoint.
func NewClient(endpoint string, log *slog.Logger) *Client {
	return &Client{
		rpc: rpc.New(endpoint),
		log: log.With("component", "serum"),
	}
}

// FetchBestBid returns the current top-of-book bid for the given market,
// formatted with exactly two decimal places. Each call is one best-effort
// attempt: no retries, no caching.
func (c *Client) FetchBestBid(ctx context.Context, marketAddress string) (string, error) {
	marketKey, err := solana.PublicKeyFromBase58(marketAddress)
	if err != nil {
		return "", fmt.Errorf("%w: invalid market address %q: %v", ErrPriceUnavailable, marketAddress, err)
	}

	market, err := c.loadMarket(ctx, marketKey)
	if err != nil {
		return "", err
	}

	bestLots, err := c.bestBidLots(ctx, market.Bids)
	if err != nil {
		return "", err
	}

	baseDecimals, quoteDecimals, err := c.mintDecimals(ctx, market.BaseMint, market.QuoteMint)
	if err != nil {
		return "", err
	}

	price := priceLotsToNumber(bestLots, uint64(market.BaseLotSize), uint64(market.QuoteLotSize), baseDecimals, quoteDecimals)
	quote := formatQuote(price)

	c.log.Debug("fetched best bid",
		"market", marketAddress,
		"price", quote)

	return quote, nil
}

// loadMarket fetches and decodes the market account, verifying it is owned
// by the Serum v3 program.
func (c *Client) loadMarket(ctx context.Context, marketKey solana.PublicKey) (*serum.MarketV2, error) {
	res, err := c.rpc.GetAccountInfo(ctx, marketKey)
	if err != nil {
		return nil, fmt.Errorf("%w: market account %s: %v", ErrPriceUnavailable, marketKey, err)
	}
	if res.Value == nil {
		return nil, fmt.Errorf("%w: market account %s not found", ErrPriceUnavailable, marketKey)
	}
	if !res.Value.Owner.Equals(serumV3Program) {
		return nil, fmt.Errorf("%w: account %s is not a Serum v3 market", ErrPriceUnavailable, marketKey)
	}

	market := &serum.MarketV2{}
	if err := bin.NewBinDecoder(res.Value.Data.GetBinary()).Decode(market); err != nil {
		return nil, fmt.Errorf("%w: decoding market %s: %v", ErrPriceUnavailable, marketKey, err)
	}

	return market, nil
}

// bestBidLots fetches the bid side of the book and returns the price lots of
// its highest level. An empty book is a PriceUnavailable failure, not a
// zero price.
func (c *Client) bestBidLots(ctx context.Context, bidsKey solana.PublicKey) (*big.Int, error) {
	res, err := c.rpc.GetAccountInfo(ctx, bidsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: bids account %s: %v", ErrPriceUnavailable, bidsKey, err)
	}
	if res.Value == nil {
		return nil, fmt.Errorf("%w: bids account %s not found", ErrPriceUnavailable, bidsKey)
	}

	book := &serum.Orderbook{}
	if err := bin.NewBinDecoder(res.Value.Data.GetBinary()).Decode(book); err != nil {
		return nil, fmt.Errorf("%w: decoding bids %s: %v", ErrPriceUnavailable, bidsKey, err)
	}

	var best *serum.SlabLeafNode
	err = book.Items(true, func(node *serum.SlabLeafNode) error {
		best = node
		return errFoundBest
	})
	if err != nil && !errors.Is(err, errFoundBest) {
		return nil, fmt.Errorf("%w: walking bids %s: %v", ErrPriceUnavailable, bidsKey, err)
	}
	if best == nil {
		return nil, fmt.Errorf("%w: order book %s has no bids", ErrPriceUnavailable, bidsKey)
	}

	return best.GetPrice(), nil
}

// mintDecimals resolves the decimal counts of the base and quote mints in a
// single RPC round trip.
func (c *Client) mintDecimals(ctx context.Context, baseMint, quoteMint solana.PublicKey) (uint8, uint8, error) {
	res, err := c.rpc.GetMultipleAccounts(ctx, baseMint, quoteMint)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: mint accounts: %v", ErrPriceUnavailable, err)
	}
	if len(res.Value) != 2 || res.Value[0] == nil || res.Value[1] == nil {
		return 0, 0, fmt.Errorf("%w: mint accounts not found", ErrPriceUnavailable)
	}

	var decimals [2]uint8
	for i, acc := range res.Value {
		mint := &token.Mint{}
		if err := bin.NewBinDecoder(acc.Data.GetBinary()).Decode(mint); err != nil {
			return 0, 0, fmt.Errorf("%w: decoding mint: %v", ErrPriceUnavailable, err)
		}
		decimals[i] = mint.Decimals
	}

	return decimals[0], decimals[1], nil
}
