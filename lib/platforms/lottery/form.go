package lottery

import (
	"strconv"
	"strings"
	"time"
)

// splitAmount splits a decimal amount into its whole and fractional part,
// missing parts are "0".
func splitAmount(value string) (whole, fraction string) {
	whole, fraction, _ = strings.Cut(strings.TrimSpace(value), ".")
	if whole == "" {
		whole = "0"
	}
	if fraction == "" {
		fraction = "0"
	}
	return whole, fraction
}

// detailsForm is the field set shared by creation and update, the date is
// converted to `loc` before it is split.
func detailsForm(details TicketDetails, loc *time.Location) map[string]string {
	date := details.Date.In(loc)
	whole, fraction := splitAmount(details.Amount.Value)

	return map[string]string{
		"nr_kasy":    details.PointOfSale,
		"nip":        details.TaxRegistrationNumber,
		"nr_tel":     details.Phone,
		"rok":        strconv.Itoa(date.Year()),
		"miesiac":    strconv.Itoa(int(date.Month())),
		"dzien":      strconv.Itoa(date.Day()),
		"nr_wydruku": details.PurchaseOrderNumber,
		"kwota_zl":   whole,
		"kwota_gr":   fraction,
		"branza":     details.Trade.Id(),
	}
}

func buildTicketForm(ticket TicketRequest, captcha int, loc *time.Location) map[string]string {
	form := detailsForm(ticket.TicketDetails, loc)
	form["email"] = ticket.Email
	form["captcha"] = strconv.Itoa(captcha)
	form["zgoda_dane"] = strconv.FormatBool(
		ticket.Agreements.TermsOfService && ticket.Agreements.PersonalDataProcessing,
	)
	form["zgoda_wizerunek"] = strconv.FormatBool(ticket.Agreements.UseMyEffigy)
	return form
}

func buildUpdateForm(details TicketDetails, loc *time.Location) map[string]string {
	return detailsForm(details, loc)
}
