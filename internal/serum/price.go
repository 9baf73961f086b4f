package serum

import "math/big"

// priceLotsToNumber converts a Serum price expressed in lots to the human
// price, following the DEX client conversion:
//
//	price = lots * quoteLotSize * 10^baseDecimals / (baseLotSize * 10^quoteDecimals)
func priceLotsToNumber(lots *big.Int, baseLotSize, quoteLotSize uint64, baseDecimals, quoteDecimals uint8) *big.Float {
	num := new(big.Int).Mul(lots, new(big.Int).SetUint64(quoteLotSize))
	num.Mul(num, pow10(baseDecimals))

	den := new(big.Int).Mul(new(big.Int).SetUint64(baseLotSize), pow10(quoteDecimals))

	// The quotient is rounded to a 53-bit mantissa so the result carries
	// float64 semantics, matching formatQuote's documented tie behavior.
	return new(big.Float).SetPrec(53).Quo(
		new(big.Float).SetInt(num),
		new(big.Float).SetInt(den),
	)
}

// formatQuote renders a price with exactly two decimal places, rounding to
// the nearest representable value. Decimal ties resolve through the 53-bit
// binary representation: 1.235 sits just below the tie and formats as "1.23".
func formatQuote(price *big.Float) string {
	return price.Text('f', 2)
}

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
