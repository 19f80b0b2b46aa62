package models

import "strings"

const (
	SecTypeStock   = "STK"
	SecTypeFutures = "FUT"
	SecTypeCash    = "CASH"
)

// SecurityRecord is one row of reference data per instrument, loaded once per
// run and immutable thereafter.
type SecurityRecord struct {
	Sid            string   `csv:"Sid"`
	Symbol         string   `csv:"Symbol"`
	SecType        string   `csv:"SecType"`
	Exchange       string   `csv:"Exchange"`
	Currency       string   `csv:"Currency"`
	Multiplier     *float64 `csv:"Multiplier"`
	PriceMagnifier *float64 `csv:"PriceMagnifier"`
	Timezone       string   `csv:"Timezone"`
	Nlv            *float64 `csv:"-"`
}

// GetMultiplier returns the contract multiplier, defaulting to 1.
func (s *SecurityRecord) GetMultiplier() float64 {
	if s.Multiplier == nil || *s.Multiplier == 0 {
		return 1
	}
	return *s.Multiplier
}

// GetPriceMagnifier returns the price magnifier, defaulting to 1.
func (s *SecurityRecord) GetPriceMagnifier() float64 {
	if s.PriceMagnifier == nil || *s.PriceMagnifier == 0 {
		return 1
	}
	return *s.PriceMagnifier
}

// TradeCurrency returns the currency orders for this instrument settle in.
// For cash/FX pairs the quote currency is embedded in the symbol
// (EUR.USD -> USD); for everything else it is the Currency field.
func (s *SecurityRecord) TradeCurrency() string {
	if s.SecType == SecTypeCash {
		if idx := strings.Index(s.Symbol, "."); idx >= 0 {
			return s.Symbol[idx+1:]
		}
	}
	return s.Currency
}

// SecGroup identifies a commission group. Classification is treated as
// time-invariant over the backtest window.
type SecGroup struct {
	SecType  string
	Exchange string
	Currency string
}

func (g SecGroup) String() string {
	return g.SecType + "|" + g.Exchange + "|" + g.Currency
}

// GroupOf returns the commission group a security belongs to.
func GroupOf(s *SecurityRecord) SecGroup {
	return SecGroup{
		SecType:  s.SecType,
		Exchange: s.Exchange,
		Currency: s.Currency,
	}
}
