package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sextant/src/models"
	"sextant/src/services"
	"sextant/src/strategy"
	"sextant/src/utils"
)

const priceCacheTTL = 15 * time.Minute

var (
	configPath string
	pricesPath string
	masterPath string
)

var rootCmd = &cobra.Command{
	Use:   "sextant",
	Short: "Run vectorized strategy backtests and generate live orders",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		projectDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		return utils.InitEnvironmentVariables(projectDir)
	},
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Simulate the strategy over historical prices and print a performance summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDateFlag(cmd, "start")
		if err != nil {
			return err
		}
		end, err := parseDateFlag(cmd, "end")
		if err != nil {
			return err
		}
		allocation, err := cmd.Flags().GetFloat64("allocation")
		if err != nil {
			return err
		}
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return err
		}

		config, strat, engine, err := setup()
		if err != nil {
			return err
		}

		results, err := engine.Backtest(cmd.Context(), strat, strategy.BacktestOptions{
			Start:      start,
			End:        end,
			NLV:        config.NLV,
			Allocation: allocation,
			NoCache:    noCache,
		})
		if err != nil {
			return err
		}

		summary, err := results.Summary()
		if err != nil {
			return err
		}

		renderSummary(os.Stdout, config.Code, summary)
		return nil
	},
}

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Generate the orders needed to bring accounts to the strategy's target positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		reviewDate, err := parseDateFlag(cmd, "review-date")
		if err != nil {
			return err
		}

		config, strat, engine, err := setup()
		if err != nil {
			return err
		}

		if len(config.Accounts) == 0 {
			return fmt.Errorf("trade mode requires at least one account in the strategy config")
		}

		engine.Accounts = &services.StaticAccountService{Balances: config.Balances()}
		engine.Broker = &services.StaticBrokerService{}

		var review *time.Time
		if !reviewDate.IsZero() {
			review = &reviewDate
		}

		orders, err := engine.Trade(cmd.Context(), strat, config.Allocations(), review)
		if err != nil {
			return err
		}

		renderOrders(os.Stdout, orders)

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		if output != "" && len(orders) > 0 {
			if err := services.WriteOrdersCSV(output, orders); err != nil {
				return err
			}
			log.Infof("wrote %d orders to %s", len(orders), output)
		}

		return nil
	},
}

func setup() (*StrategyConfig, strategy.Strategy, *strategy.Engine, error) {
	config, err := LoadStrategyConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	strat, err := config.BuildStrategy()
	if err != nil {
		return nil, nil, nil, err
	}

	marketData := services.NewCachedMarketData(services.NewCSVMarketData(pricesPath), priceCacheTTL)
	engine := strategy.NewEngine(marketData, services.NewCSVMaster(masterPath))

	return config, strat, engine, nil
}

func parseDateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return time.Time{}, err
	}
	if raw == "" {
		return time.Time{}, nil
	}

	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, models.NewParameterErrorf("invalid --%s %s: expected YYYY-MM-DD", name, raw)
	}
	return ts, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "strategy.yaml", "strategy config file")
	rootCmd.PersistentFlags().StringVar(&pricesPath, "prices", "prices.csv", "price bars CSV file")
	rootCmd.PersistentFlags().StringVar(&masterPath, "master", "master.csv", "securities master CSV file")

	backtestCmd.Flags().String("start", "", "backtest start date (YYYY-MM-DD)")
	backtestCmd.Flags().String("end", "", "backtest end date (YYYY-MM-DD)")
	backtestCmd.Flags().Float64("allocation", 1.0, "fraction of capital allocated to the strategy")
	backtestCmd.Flags().Bool("no-cache", false, "bypass the price cache")

	tradeCmd.Flags().String("review-date", "", "generate orders as of this date instead of today (YYYY-MM-DD)")
	tradeCmd.Flags().String("output", "", "write generated orders to this CSV file")

	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(tradeCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
