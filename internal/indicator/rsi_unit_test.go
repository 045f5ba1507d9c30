package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/RamiMonso/rsi-csv/internal/types"
	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

type RSIUnitTestSuite struct {
	suite.Suite
}

func TestRSIUnitSuite(t *testing.T) {
	suite.Run(t, new(RSIUnitTestSuite))
}

func (suite *RSIUnitTestSuite) TestNewRSI() {
	rsi := NewRSI()
	suite.NotNil(rsi)

	// Cast to *RSI to check default values
	rsiImpl := rsi.(*RSI)
	suite.Equal(14, rsiImpl.period)
	suite.Equal(14, rsiImpl.Period())
}

func (suite *RSIUnitTestSuite) TestName() {
	rsi := NewRSI()
	suite.Equal(types.IndicatorTypeRSI, rsi.Name())
}

func (suite *RSIUnitTestSuite) TestConfigValidPeriod() {
	rsi := NewRSI()
	rsiImpl := rsi.(*RSI)

	err := rsi.Config(21)
	suite.NoError(err)
	suite.Equal(21, rsiImpl.period)
}

func (suite *RSIUnitTestSuite) TestConfigNoParams() {
	rsi := NewRSI()
	err := rsi.Config()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *RSIUnitTestSuite) TestConfigInvalidPeriodType() {
	rsi := NewRSI()
	err := rsi.Config("invalid")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *RSIUnitTestSuite) TestConfigInvalidPeriodValue() {
	rsi := NewRSI()

	err := rsi.Config(0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = rsi.Config(-5)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	// Failed Config must not clobber the configured period
	suite.Equal(14, rsi.(*RSI).period)
}
