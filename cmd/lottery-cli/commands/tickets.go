package commands

import (
	"receiptlottery/cmd/lottery-cli/globals"
	"receiptlottery/cmd/lottery-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ticketsCmd)
}

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Lists the receipt history of the account in LOTTERY_EMAIL.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := globals.Get(cmd.Context()).Client

		session, err := utils.Login(cmd.Context(), client)
		if err != nil {
			utils.Fatal("failed to login", err)
		}
		rows, err := client.GetTickets(cmd.Context(), session)
		if err != nil {
			utils.Fatal("failed to get tickets", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Id", "Date", "Amount", "Purchase order", "Code", "Special"})
		for _, row := range rows {
			t.AppendRow(table.Row{
				row.Id,
				row.Date.Format("2006-01-02"),
				row.AmountValue,
				row.PurchaseOrderNumber,
				row.Code,
				row.Special,
			})
		}
		t.Render()
	},
}
