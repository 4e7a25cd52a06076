package commands

import (
	"receiptlottery/cmd/lottery-cli/globals"
	"receiptlottery/cmd/lottery-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resultsCmd)
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Lists every published draw result.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := globals.Get(cmd.Context()).Client

		rows, err := client.GetResults(cmd.Context())
		if err != nil {
			utils.Fatal("failed to get results", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Date", "Name", "Code", "Type", "Prize"})
		for _, row := range rows {
			t.AppendRow(table.Row{row.Date, row.Name, row.Code, row.Type, row.Prize})
		}
		t.AppendFooter(table.Row{"", "", "", "Total", len(rows)})
		t.Render()
	},
}
