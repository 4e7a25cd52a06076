package lottery

// Trade is the business category of the point of sale.
type Trade string

const (
	TradeHairdressing       Trade = "HAIRDRESSING"
	TradePrivateMedicDental Trade = "PRIVATE_MEDIC_DENTAL"
	TradeOther              Trade = "OTHER"
)

// the ids are opaque category ids of the portal's <select id="branza">,
// OTHER is submitted as an empty selection.
var tradeIds = []struct {
	id    string
	trade Trade
}{
	{id: "5602c71013287705788b4567", trade: TradeHairdressing},
	{id: "5602c71013287705788b4568", trade: TradePrivateMedicDental},
	{id: "", trade: TradeOther},
}

// Trades lists every known trade.
func Trades() []Trade {
	out := make([]Trade, len(tradeIds))
	for i, t := range tradeIds {
		out[i] = t.trade
	}
	return out
}

// Id returns the portal category id, unknown or blank trades map to the id of OTHER.
func (t Trade) Id() string {
	for _, entry := range tradeIds {
		if entry.trade == t {
			return entry.id
		}
	}
	return ""
}

// TradeFromId is the inverse of Trade.Id, unknown ids map to OTHER.
func TradeFromId(id string) Trade {
	for _, entry := range tradeIds {
		if entry.id == id {
			return entry.trade
		}
	}
	return TradeOther
}
