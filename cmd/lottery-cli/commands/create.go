package commands

import (
	"os"

	"receiptlottery/cmd/lottery-cli/globals"
	"receiptlottery/cmd/lottery-cli/utils"
	"receiptlottery/lib/platforms/lottery"

	"github.com/spf13/cobra"
)

var (
	createDetails   detailsFlags
	createEffigy    *bool
	createAgreement *bool
)

func init() {
	createDetails = addDetailsFlags(createCmd.Flags())
	createAgreement = createCmd.Flags().Bool("accept", false, "Accept the terms of service and personal data processing.")
	createEffigy = createCmd.Flags().Bool("effigy", false, "Allow the use of the participant's image.")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create --date <YYYY-MM-DD> --amount <value> [flags]",
	Short: "Registers a new receipt for the email in LOTTERY_EMAIL.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		value := globals.Get(cmd.Context())
		client := value.Client

		details, err := createDetails.details(value.Clock.Location())
		if err != nil {
			utils.Fatal("invalid receipt", err)
		}

		ticket, err := client.CreateTicket(cmd.Context(), lottery.TicketRequest{
			TicketDetails: details,
			Email:         os.Getenv("LOTTERY_EMAIL"),
			Agreements: lottery.Agreements{
				TermsOfService:         *createAgreement,
				PersonalDataProcessing: *createAgreement,
				UseMyEffigy:            *createEffigy,
			},
		})
		if err != nil {
			utils.Fatal("failed to create ticket", err)
		}
		renderTicket(ticket)
	},
}
