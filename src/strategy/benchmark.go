package strategy

import (
	"context"
	"fmt"

	"sextant/src/frame"
	"sextant/src/models"
)

// getBenchmark extracts the benchmark price series carried alongside
// results. When a separate benchmark database is declared the series is
// always end-of-day and query failures are wrapped with the database name;
// otherwise the series is cross-sectioned out of the strategy's own price
// table.
func (e *Engine) getBenchmark(ctx context.Context, r *run, dailyResults bool) (*frame.Frame, error) {
	params := r.params

	if params.BenchmarkDB != "" {
		if e.Benchmarks == nil {
			return nil, models.NewParameterErrorf("a benchmark database is declared but no benchmark service is configured")
		}

		index := r.prices.Index()
		benchmark, err := e.Benchmarks.GetBenchmarkPrices(ctx, params.BenchmarkDB, params.Benchmark, index[0], index[len(index)-1])
		if err != nil {
			return nil, &models.ExternalError{
				Service: fmt.Sprintf("benchmark database %s", params.BenchmarkDB),
				Err:     fmt.Errorf("failed to query benchmark %s: %w", params.Benchmark, err),
			}
		}
		return benchmark, nil
	}

	_, priceFrame, found := r.prices.FirstAvailableField(frame.ContractValuePriorityFields)
	if !found {
		return nil, models.NewParameterErrorf(
			"can't extract benchmark without one of Close, Open, Bid, Ask, High, Low")
	}

	if !priceFrame.HasColumn(params.Benchmark) {
		return nil, models.NewParameterErrorf("benchmark instrument %s not present in prices", params.Benchmark)
	}

	benchmark := priceFrame.SelectColumns([]string{params.Benchmark})

	if r.prices.IsIntraday() && dailyResults {
		if params.BenchmarkTime == "" {
			return nil, models.NewParameterErrorf(
				"a benchmark time must be declared to extract a daily benchmark from intraday prices")
		}

		crossSection, err := benchmark.CrossSectionAtTime(params.BenchmarkTime)
		if err != nil {
			return nil, models.NewParameterErrorf("benchmark time %s: %v", params.BenchmarkTime, err)
		}
		benchmark = crossSection
	}

	return benchmark, nil
}
