package campaigns

import (
	"fmt"
	"strings"
	"time"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/clients"
)

const companyName = "Wasatch Bins"

// CustomData carries the campaign-supplied placeholder values. Every field
// is optional; absent fields fall back to the hardcoded defaults below.
type CustomData struct {
	PromotionTitle  string `json:"promotionTitle"`
	DiscountAmount  string `json:"discountAmount"`
	PromoCode       string `json:"promoCode"`
	ExpirationDate  string `json:"expirationDate"`
	LastServiceType string `json:"lastServiceType"`
	CustomContent   string `json:"customContent"`
	City            string `json:"city"`
}

// Personalize substitutes the closed set of {placeholder} tokens in a fixed
// order. Every replacement is global. {month} and {year} always come from
// the passed clock, never from input data.
func Personalize(template string, client clients.Client, custom CustomData, now time.Time) string {
	out := template

	out = strings.ReplaceAll(out, "{firstName}", defaulted(client.FirstName, "Valued Customer"))
	out = strings.ReplaceAll(out, "{lastName}", client.LastName)
	out = strings.ReplaceAll(out, "{companyName}", companyName)
	out = strings.ReplaceAll(out, "{city}", defaulted(custom.City, "your area"))
	out = strings.ReplaceAll(out, "{county}", defaulted(client.County, "your"))
	out = strings.ReplaceAll(out, "{month}", now.Month().String())
	out = strings.ReplaceAll(out, "{year}", fmt.Sprintf("%d", now.Year()))
	out = strings.ReplaceAll(out, "{promotionTitle}", defaulted(custom.PromotionTitle, "Limited Time Offer"))
	out = strings.ReplaceAll(out, "{discountAmount}", defaulted(custom.DiscountAmount, "10%"))
	out = strings.ReplaceAll(out, "{promoCode}", defaulted(custom.PromoCode, "SAVE10"))
	out = strings.ReplaceAll(out, "{expirationDate}", defaulted(custom.ExpirationDate, "the end of the month"))
	out = strings.ReplaceAll(out, "{lastServiceType}", defaulted(custom.LastServiceType, "dumpster rental"))
	out = strings.ReplaceAll(out, "{customContent}", custom.CustomContent)

	return out
}

func defaulted(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
