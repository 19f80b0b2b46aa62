package models

// AccountAllocations maps account id to the fraction of account equity
// allocated to the strategy.
type AccountAllocations map[string]float64

func (a AccountAllocations) Validate() error {
	if len(a) == 0 {
		return NewParameterErrorf("at least one account allocation is required")
	}

	for account, allocation := range a {
		if allocation <= 0 {
			return NewParameterErrorf("allocation for account %s must be positive, got %v", account, allocation)
		}
	}

	return nil
}

func (a AccountAllocations) Accounts() []string {
	accounts := make([]string, 0, len(a))
	for account := range a {
		accounts = append(accounts, account)
	}
	return accounts
}

// AccountBalance is one account's equity snapshot in its base currency.
type AccountBalance struct {
	Account  string  `csv:"Account"`
	Balance  float64 `csv:"Balance"`
	Currency string  `csv:"Currency"`
}

// CurrencyPair keys an exchange rate from a base currency to a quote
// currency.
type CurrencyPair struct {
	Base  string
	Quote string
}

// PositionKey identifies a holding per instrument and account.
type PositionKey struct {
	Sid     string
	Account string
}
