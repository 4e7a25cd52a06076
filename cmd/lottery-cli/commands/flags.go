package commands

import (
	"fmt"
	"time"

	"receiptlottery/cmd/lottery-cli/utils"
	"receiptlottery/lib/platforms/lottery"

	"github.com/spf13/pflag"
)

type detailsFlags struct {
	pointOfSale           *string
	taxRegistrationNumber *string
	phone                 *string
	purchaseOrderNumber   *string
	date                  *string
	amount                *string
	trade                 *string
}

func addDetailsFlags(flags *pflag.FlagSet) detailsFlags {
	return detailsFlags{
		pointOfSale:           flags.String("point-of-sale", "", "The cash register number printed on the receipt."),
		taxRegistrationNumber: flags.String("nip", "", "The tax registration number of the seller."),
		phone:                 flags.String("phone", "", "The phone number of the participant."),
		purchaseOrderNumber:   flags.String("purchase-order", "", "The print number of the receipt."),
		date:                  flags.String("date", "", "The purchase date (YYYY-MM-DD)."),
		amount:                flags.String("amount", "", "The amount in PLN, e.g. 12.50."),
		trade:                 flags.String("trade", "", "The trade of the point of sale, the closest known name is used."),
	}
}

// details reads the flags, the date is interpreted in `loc`.
func (f detailsFlags) details(loc *time.Location) (lottery.TicketDetails, error) {
	date, err := time.ParseInLocation("2006-01-02", *f.date, loc)
	if err != nil {
		return lottery.TicketDetails{}, fmt.Errorf("invalid --date: %w", err)
	}
	trade, err := utils.ResolveTrade(*f.trade)
	if err != nil {
		return lottery.TicketDetails{}, err
	}

	return lottery.TicketDetails{
		PointOfSale:           *f.pointOfSale,
		TaxRegistrationNumber: *f.taxRegistrationNumber,
		Phone:                 *f.phone,
		PurchaseOrderNumber:   *f.purchaseOrderNumber,
		Date:                  date,
		Amount: lottery.Amount{
			Value:    *f.amount,
			Currency: lottery.CurrencyPLN,
		},
		Trade: trade,
	}, nil
}
