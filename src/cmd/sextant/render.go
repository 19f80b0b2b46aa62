package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"sextant/src/models"
	"sextant/src/strategy"
)

func renderSummary(w io.Writer, code string, summary *strategy.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Strategy", "Bars", "Cumulative Return", "CAGR", "Sharpe", "Max Drawdown"})
	table.Append([]string{
		code,
		fmt.Sprintf("%d", summary.Bars),
		fmt.Sprintf("%.2f%%", summary.CumulativeReturn*100),
		fmt.Sprintf("%.2f%%", summary.CAGR*100),
		fmt.Sprintf("%.2f", summary.SharpeRatio),
		fmt.Sprintf("%.2f%%", summary.MaxDrawdown*100),
	})
	table.Render()
}

func renderOrders(w io.Writer, orders []*models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders to place.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Sid", "Account", "Action", "Qty", "Type", "Tif", "Exchange", "Order Ref"})
	for _, order := range orders {
		table.Append([]string{
			order.Sid,
			order.Account,
			string(order.Action),
			fmt.Sprintf("%.0f", order.TotalQuantity),
			string(order.OrderType),
			string(order.Tif),
			order.Exchange,
			order.OrderRef,
		})
	}
	table.Render()
}
