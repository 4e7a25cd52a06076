package commands

import (
	"receiptlottery/cmd/lottery-cli/globals"
	"receiptlottery/cmd/lottery-cli/utils"

	"github.com/spf13/cobra"
)

var updateDetails detailsFlags

func init() {
	updateDetails = addDetailsFlags(updateCmd.Flags())
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update <id> --date <YYYY-MM-DD> --amount <value> [flags]",
	Short: "Changes a receipt of the account in LOTTERY_EMAIL.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		value := globals.Get(cmd.Context())
		client := value.Client

		details, err := updateDetails.details(value.Clock.Location())
		if err != nil {
			utils.Fatal("invalid receipt", err)
		}

		session, err := utils.Login(cmd.Context(), client)
		if err != nil {
			utils.Fatal("failed to login", err)
		}
		ticket, err := client.UpdateTicket(cmd.Context(), session, args[0], details)
		if err != nil {
			utils.Fatal("failed to update ticket", err)
		}
		renderTicket(ticket)
	},
}
