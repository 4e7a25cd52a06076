package commands

import (
	"fmt"
	"strings"

	"receiptlottery/cmd/lottery-cli/globals"
	"receiptlottery/cmd/lottery-cli/utils"
	"receiptlottery/lib/platforms/lottery"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(captchaCmd)
}

var captchaCmd = &cobra.Command{
	Use:   "captcha [text]",
	Short: "Solves a captcha challenge, the live landing page is fetched when no text is given.",
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		if text == "" {
			client := globals.Get(cmd.Context()).Client
			session, err := client.NewSession()
			if err != nil {
				utils.Fatal("failed to create session", err)
			}
			challenge, err := client.Bootstrap(cmd.Context(), session)
			if err != nil {
				utils.Fatal("failed to fetch landing page", err)
			}
			text = challenge.ChallengeText
		}

		result, err := lottery.EvaluateChallenge(text)
		if err != nil {
			utils.Fatal("failed to solve challenge", err)
		}
		fmt.Printf("%s => %d\n", text, result)
	},
}
