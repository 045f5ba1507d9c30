package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/RamiMonso/rsi-csv/internal/types"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

// dailySeries builds a series of daily bars starting 2024-01-02 with the
// given closing prices.
func dailySeries(closes ...float64) types.PriceSeries {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	series := make(types.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = types.PricePoint{Time: base.AddDate(0, 0, i), Close: c}
	}

	return series
}

func (suite *RSITestSuite) TestEmptySeries() {
	out, err := NewRSI().Compute(nil)
	suite.NoError(err)
	suite.Empty(out)

	out, err = NewRSI().Compute(types.PriceSeries{})
	suite.NoError(err)
	suite.Empty(out)
}

func (suite *RSITestSuite) TestOutputParallelToInput() {
	series := dailySeries(100, 101, 99.5, 102, 101.25, 103)

	out, err := NewRSI().Compute(series)
	suite.NoError(err)
	suite.Len(out, len(series))

	for i := range series {
		suite.Equal(series[i].Time, out[i].Time, "timestamp mismatch at index %d", i)
	}
}

// Twenty bars climbing one unit per step: the first thirteen bars have no
// full window and are zero-filled, every bar from index 13 onward is a pure
// uptrend window and pins to exactly 100.
func (suite *RSITestSuite) TestMonotonicUptrend() {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	out, err := NewRSI().Compute(dailySeries(closes...))
	suite.NoError(err)
	suite.Len(out, 20)

	for i := 0; i < 13; i++ {
		suite.True(out[i].Value.IsSome(), "index %d should be zero-filled, not no-signal", i)
		suite.Equal(0.0, out[i].Value.Unwrap(), "index %d", i)
	}

	for i := 13; i < 20; i++ {
		suite.True(out[i].Value.IsSome(), "index %d", i)
		suite.Equal(100.0, out[i].Value.Unwrap(), "index %d", i)
	}
}

func (suite *RSITestSuite) TestMonotonicDowntrend() {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}

	out, err := NewRSI().Compute(dailySeries(closes...))
	suite.NoError(err)

	// A pure downtrend has zero average gain: rs = 0, rsi = 0. The values
	// are numeric zeros, never the no-signal sentinel.
	for i := 13; i < 20; i++ {
		suite.True(out[i].Value.IsSome(), "index %d", i)
		suite.Equal(0.0, out[i].Value.Unwrap(), "index %d", i)
	}
}

// Fifteen identical prices: indices 0-12 are zero-filled for missing history,
// indices 13 and 14 have a live window with zero movement and carry the
// no-signal sentinel.
func (suite *RSITestSuite) TestFlatSeries() {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 50.0
	}

	out, err := NewRSI().Compute(dailySeries(closes...))
	suite.NoError(err)
	suite.Len(out, 15)

	for i := 0; i < 13; i++ {
		suite.True(out[i].Value.IsSome(), "index %d", i)
		suite.Equal(0.0, out[i].Value.Unwrap(), "index %d", i)
	}

	for i := 13; i < 15; i++ {
		suite.True(out[i].Value.IsNone(), "index %d should be the no-signal sentinel", i)
	}
}

func (suite *RSITestSuite) TestShorterThanPeriod() {
	out, err := NewRSI().Compute(dailySeries(10, 11, 9, 12, 13))
	suite.NoError(err)
	suite.Len(out, 5)

	for i, p := range out {
		suite.True(p.Value.IsSome(), "index %d", i)
		suite.Equal(0.0, p.Value.Unwrap(), "index %d", i)
	}
}

func (suite *RSITestSuite) TestMixedSeriesBounded() {
	closes := []float64{
		100, 102, 101, 104, 103.5, 105, 104, 106, 107, 105.5,
		108, 107, 109, 110, 108.5, 111, 110, 112, 113, 111.5,
	}

	out, err := NewRSI().Compute(dailySeries(closes...))
	suite.NoError(err)

	for i := 13; i < len(out); i++ {
		suite.True(out[i].Value.IsSome(), "index %d", i)

		v := out[i].Value.Unwrap()
		suite.GreaterOrEqual(v, 0.0, "index %d", i)
		suite.LessOrEqual(v, 100.0, "index %d", i)
		// Mixed movement keeps the oscillator strictly inside the bounds
		suite.NotEqual(0.0, v, "index %d", i)
		suite.NotEqual(100.0, v, "index %d", i)
	}
}

func (suite *RSITestSuite) TestIrregularSamplingAllowed() {
	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	// Hourly bars with a gap over the market close
	series := types.PriceSeries{
		{Time: base, Close: 100},
		{Time: base.Add(1 * time.Hour), Close: 101},
		{Time: base.Add(2 * time.Hour), Close: 100.5},
		{Time: base.Add(18 * time.Hour), Close: 102},
		{Time: base.Add(19 * time.Hour), Close: 101.5},
	}

	out, err := NewRSI().Compute(series)
	suite.NoError(err)
	suite.Len(out, len(series))

	for i := range series {
		suite.Equal(series[i].Time, out[i].Time)
	}
}

func (suite *RSITestSuite) TestCustomPeriod() {
	rsi := NewRSI()
	suite.NoError(rsi.Config(2))

	out, err := rsi.Compute(dailySeries(10, 11, 12, 13))
	suite.NoError(err)

	// period 2: only index 0 lacks history, uptrend pins the rest to 100
	suite.Equal(0.0, out[0].Value.Unwrap())

	for i := 1; i < 4; i++ {
		suite.Equal(100.0, out[i].Value.Unwrap(), "index %d", i)
	}
}

func (suite *RSITestSuite) TestPeriodOne() {
	rsi := NewRSI()
	suite.NoError(rsi.Config(1))

	out, err := rsi.Compute(dailySeries(10, 10, 11))
	suite.NoError(err)

	// index 0 has no delta at all and is zero-filled
	suite.Equal(0.0, out[0].Value.Unwrap())
	// flat step: no-signal
	suite.True(out[1].Value.IsNone())
	// upward step: forced to 100
	suite.Equal(100.0, out[2].Value.Unwrap())
}

func (suite *RSITestSuite) TestIdempotence() {
	closes := []float64{
		100, 102, 101, 104, 103.5, 105, 104, 106, 107, 105.5,
		108, 107, 109, 110, 108.5, 111, 110, 112,
	}
	series := dailySeries(closes...)
	rsi := NewRSI()

	first, err := rsi.Compute(series)
	suite.NoError(err)

	second, err := rsi.Compute(series)
	suite.NoError(err)

	suite.Equal(first, second)
}

func (suite *RSITestSuite) TestInputNotMutated() {
	series := dailySeries(100, 101, 99, 102)
	snapshot := make(types.PriceSeries, len(series))
	copy(snapshot, series)

	_, err := NewRSI().Compute(series)
	suite.NoError(err)
	suite.Equal(snapshot, series)
}
