package main

import (
	"context"

	"receiptlottery/cmd/lottery-cli/commands"
	"receiptlottery/lib/osutil"
)

func main() {
	ctx, cancel := osutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
