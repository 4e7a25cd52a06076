package globals

import (
	"context"

	"receiptlottery/internal/components/chrono"
	"receiptlottery/internal/components/telemetry"
	"receiptlottery/lib/platforms/lottery"
)

type key struct{}

type Value struct {
	Client    *lottery.Client
	Tel       telemetry.API
	Clock     chrono.API
	Telemetry telemetry.Telemetry
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
