package exitengine

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

type SpreadModelTestSuite struct {
	suite.Suite
	model SpreadModel
}

func TestSpreadModelSuite(t *testing.T) {
	suite.Run(t, new(SpreadModelTestSuite))
}

func (suite *SpreadModelTestSuite) SetupTest() {
	suite.model = DefaultSpreadModel()
}

func (suite *SpreadModelTestSuite) TestStockQuotes() {
	suite.InDelta(100.01, suite.model.Ask(100.0, types.InstrumentStock), 1e-9)
	suite.InDelta(99.99, suite.model.Bid(100.0, types.InstrumentStock), 1e-9)
}

func (suite *SpreadModelTestSuite) TestCryptoQuotes() {
	suite.InDelta(100.05, suite.model.Ask(100.0, types.InstrumentCrypto), 1e-9)
	suite.InDelta(99.95, suite.model.Bid(100.0, types.InstrumentCrypto), 1e-9)
}

func (suite *SpreadModelTestSuite) TestFor() {
	suite.Equal(StockSpread, suite.model.For(types.InstrumentStock))
	suite.Equal(CryptoSpread, suite.model.For(types.InstrumentCrypto))
}

// A buy-then-sell at unchanged mid realizes a loss that grows with the
// spread: zero spread breaks even, crypto loses more than stock.
func (suite *SpreadModelTestSuite) TestRoundTripCostOrdering() {
	roundTrip := func(model SpreadModel, class types.InstrumentClass) float64 {
		entry := model.Ask(100.0, class)
		exit := model.Bid(100.0, class)

		return (exit - entry) / entry
	}

	free := roundTrip(SpreadModel{}, types.InstrumentStock)
	stock := roundTrip(suite.model, types.InstrumentStock)
	crypto := roundTrip(suite.model, types.InstrumentCrypto)

	suite.Equal(0.0, free)
	suite.Greater(free, stock)
	suite.Greater(stock, crypto)
}

func (suite *SpreadModelTestSuite) TestValidate() {
	suite.NoError(suite.model.Validate())
	suite.NoError(SpreadModel{}.Validate())

	err := SpreadModel{Stock: -0.01, Crypto: 0.001}.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSpread))

	err = SpreadModel{Stock: 0.0002, Crypto: 1.0}.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSpread))
}
