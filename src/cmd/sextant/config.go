package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sextant/src/commission"
	"sextant/src/models"
	"sextant/src/strategy"
)

// StrategyConfig is the yaml declaration of a demo run: strategy parameters
// plus the static account/broker fixtures used in trade mode.
type StrategyConfig struct {
	Code        string             `yaml:"code"`
	Window      int                `yaml:"window"`
	Sids        []string           `yaml:"sids"`
	NLV         map[string]float64 `yaml:"nlv"`
	SlippageBPS float64            `yaml:"slippage_bps"`
	Benchmark   string             `yaml:"benchmark"`
	Timezone    string             `yaml:"timezone"`

	Commission *CommissionConfig `yaml:"commission"`

	Rebalance *float64 `yaml:"rebalance_threshold"`

	Accounts []AccountConfig `yaml:"accounts"`
}

type CommissionConfig struct {
	Type            string  `yaml:"type"` // percentage | per_share | futures | none
	Rate            float64 `yaml:"rate"`
	PerShare        float64 `yaml:"per_share"`
	PerContract     float64 `yaml:"per_contract"`
	ExchangeFeeRate float64 `yaml:"exchange_fee_rate"`
	MinCommission   float64 `yaml:"min_commission"`
}

type AccountConfig struct {
	Account    string  `yaml:"account"`
	Allocation float64 `yaml:"allocation"`
	Balance    float64 `yaml:"balance"`
	Currency   string  `yaml:"currency"`
}

func LoadStrategyConfig(path string) (*StrategyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy config %s: %w", path, err)
	}

	var config StrategyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse strategy config %s: %w", path, err)
	}

	if config.Code == "" {
		return nil, fmt.Errorf("strategy config %s: code is required", path)
	}

	return &config, nil
}

func (c *StrategyConfig) buildCommission() (commission.Commission, error) {
	if c.Commission == nil {
		return nil, nil
	}

	switch c.Commission.Type {
	case "", "none":
		return commission.NoCommission{}, nil
	case "percentage":
		return commission.PercentageCommission{
			Rate:            c.Commission.Rate,
			ExchangeFeeRate: c.Commission.ExchangeFeeRate,
			MinCommission:   c.Commission.MinCommission,
		}, nil
	case "per_share":
		return commission.PerShareCommission{
			PerShare:      c.Commission.PerShare,
			MinCommission: c.Commission.MinCommission,
		}, nil
	case "futures":
		return commission.FuturesCommission{
			PerContract:            c.Commission.PerContract,
			ExchangeFeePerContract: c.Commission.ExchangeFeeRate,
		}, nil
	}

	return nil, fmt.Errorf("unknown commission type %s", c.Commission.Type)
}

// BuildStrategy assembles the demo strategy from its yaml declaration.
func (c *StrategyConfig) BuildStrategy() (strategy.Strategy, error) {
	commissionModel, err := c.buildCommission()
	if err != nil {
		return nil, err
	}

	rebalance := models.AllowRebalance()
	if c.Rebalance != nil {
		if *c.Rebalance == 0 {
			rebalance = models.SuppressRebalance()
		} else {
			rebalance = models.RebalanceThreshold(*c.Rebalance)
		}
	}

	params := &strategy.Params{
		Code:        c.Code,
		Sids:        c.Sids,
		NLV:         c.NLV,
		Commission:  commissionModel,
		SlippageBPS: c.SlippageBPS,
		Benchmark:   c.Benchmark,
		Timezone:    c.Timezone,
		Rebalance:   rebalance,
	}

	return NewMovingAverageStrategy(params, c.Window), nil
}

func (c *StrategyConfig) Allocations() models.AccountAllocations {
	allocations := make(models.AccountAllocations)
	for _, account := range c.Accounts {
		allocations[account.Account] = account.Allocation
	}
	return allocations
}

func (c *StrategyConfig) Balances() map[string]*models.AccountBalance {
	balances := make(map[string]*models.AccountBalance)
	for _, account := range c.Accounts {
		balances[account.Account] = &models.AccountBalance{
			Account:  account.Account,
			Balance:  account.Balance,
			Currency: account.Currency,
		}
	}
	return balances
}
