package models

type OrderAction string

const (
	OrderActionBuy  OrderAction = "BUY"
	OrderActionSell OrderAction = "SELL"
)

type OrderType string

const (
	OrderTypeMarket OrderType = "MKT"
	OrderTypeLimit  OrderType = "LMT"
)

type OrderDuration string

const (
	OrderDurationDay OrderDuration = "DAY"
	OrderDurationGTC OrderDuration = "GTC"
)

// OrderStub is the minimal description of a trade produced by the order
// generator, before broker-specific fields are attached.
type OrderStub struct {
	Sid           string      `json:"sid" csv:"Sid"`
	Account       string      `json:"account" csv:"Account"`
	Action        OrderAction `json:"action" csv:"Action"`
	OrderRef      string      `json:"order_ref" csv:"OrderRef"`
	TotalQuantity float64     `json:"total_quantity" csv:"TotalQuantity"`
}

// Order is an OrderStub plus the broker fields attached by an order
// finalizer.
type Order struct {
	OrderStub
	Exchange   string        `json:"exchange" csv:"Exchange"`
	OrderType  OrderType     `json:"order_type" csv:"OrderType"`
	Tif        OrderDuration `json:"tif" csv:"Tif"`
	LimitPrice *float64      `json:"limit_price,omitempty" csv:"-"`
}
