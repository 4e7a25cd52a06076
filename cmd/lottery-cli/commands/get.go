package commands

import (
	"receiptlottery/cmd/lottery-cli/globals"
	"receiptlottery/cmd/lottery-cli/utils"
	"receiptlottery/lib/platforms/lottery"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

func renderTicket(ticket lottery.TicketResult) {
	t := utils.NewTable()
	t.AppendRows([]table.Row{
		{"Id", ticket.Id},
		{"Code", ticket.Code},
		{"Point of sale", ticket.PointOfSale},
		{"Tax number", ticket.TaxRegistrationNumber},
		{"Purchase order", ticket.PurchaseOrderNumber},
		{"Date", ticket.Date.Format("2006-01-02")},
		{"Amount", ticket.Amount.Value + " " + string(ticket.Amount.Currency)},
		{"Trade", ticket.Trade},
		{"Special", ticket.Special},
	})
	t.Render()
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Shows a receipt of the account in LOTTERY_EMAIL.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := globals.Get(cmd.Context()).Client

		session, err := utils.Login(cmd.Context(), client)
		if err != nil {
			utils.Fatal("failed to login", err)
		}
		ticket, err := client.GetTicket(cmd.Context(), session, args[0])
		if err != nil {
			utils.Fatal("failed to get ticket", err)
		}
		renderTicket(ticket)
	},
}
