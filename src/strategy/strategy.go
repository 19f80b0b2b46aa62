package strategy

import (
	"sextant/src/frame"
	"sextant/src/models"
)

// Strategy is the minimal contract a trading rule must satisfy: declare its
// parameters and turn prices into signals. By convention signals are 1=long,
// 0=flat, -1=short, but arbitrary real values are allowed.
//
// The remaining pipeline stages have default implementations; a strategy
// overrides one by implementing the corresponding optional interface below.
type Strategy interface {
	Params() *Params
	PricesToSignals(prices *frame.PriceTable) (*frame.Frame, error)
}

// WeightAllocator turns signals into target capital allocation weights.
// The default evenly divides each bar's capital among its nonzero signals so
// the absolute weights sum to 1.
type WeightAllocator interface {
	SignalsToTargetWeights(signals *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error)
}

// PositionShifter turns target weights into simulated positions. The default
// shifts weights by one bar: positions are entered the bar after the weights
// are assigned.
type PositionShifter interface {
	TargetWeightsToPositions(weights *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error)
}

// ReturnSimulator turns positions into gross returns. The default multiplies
// the percent change of the Close by the prior bar's position.
type ReturnSimulator interface {
	PositionsToGrossReturns(positions *frame.Frame, prices *frame.PriceTable) (*frame.Frame, error)
}

// PositionLimiter declares maximum long and short quantities per instrument.
// Nil frames mean unconstrained.
type PositionLimiter interface {
	LimitPositionSizes(prices *frame.PriceTable) (*models.PositionLimits, error)
}

// OrderFinalizer attaches broker fields to order stubs. The default produces
// market orders, day time-in-force, SMART exchange.
type OrderFinalizer interface {
	OrderStubsToOrders(stubs []*models.OrderStub, prices *frame.PriceTable) ([]*models.Order, error)
}

// ResultsSaver exposes extra named series recorded during signal generation;
// they are appended to the backtest results.
type ResultsSaver interface {
	SavedResults() map[string]*frame.Frame
}

// DefaultExchange is stamped on orders by the default finalizer.
const DefaultExchange = "SMART"

func defaultOrderStubsToOrders(stubs []*models.OrderStub) []*models.Order {
	orders := make([]*models.Order, 0, len(stubs))
	for _, stub := range stubs {
		orders = append(orders, &models.Order{
			OrderStub: *stub,
			Exchange:  DefaultExchange,
			OrderType: models.OrderTypeMarket,
			Tif:       models.OrderDurationDay,
		})
	}
	return orders
}
