package utils

import (
	"context"
	"fmt"
	"os"

	"receiptlottery/lib/platforms/lottery"
	"receiptlottery/lib/textutil"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func Fatal(message string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err.Error())
	os.Exit(1)
}

// ResolveTrade returns the known trade closest to `name`, an empty name is
// OTHER.
func ResolveTrade(name string) (lottery.Trade, error) {
	name = textutil.NormalizeConstant(name)
	if name == "" {
		return lottery.TradeOther, nil
	}

	var best lottery.Trade
	bestSimilarity := 0.0
	for _, trade := range lottery.Trades() {
		similarity := matchr.JaroWinkler(name, string(trade), false)
		if similarity > bestSimilarity {
			best = trade
			bestSimilarity = similarity
		}
	}
	if bestSimilarity < 0.7 {
		return "", fmt.Errorf("unknown trade %q", name)
	}
	return best, nil
}

// Login authorizes with the LOTTERY_EMAIL and LOTTERY_PASSWORD environment
// variables.
func Login(ctx context.Context, client *lottery.Client) (*lottery.Session, error) {
	email := os.Getenv("LOTTERY_EMAIL")
	password := os.Getenv("LOTTERY_PASSWORD")
	if email == "" || password == "" {
		return nil, fmt.Errorf("LOTTERY_EMAIL and LOTTERY_PASSWORD must be set")
	}
	return client.AuthorizeUser(ctx, lottery.Credentials{
		Email:    email,
		Password: password,
	})
}
