package campaigns

import "sort"

// EmailTemplate is a subject + HTML body pair holding {placeholder} tokens.
type EmailTemplate struct {
	Type     string `json:"type"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"-"`
}

// emailTemplates is the static campaign catalog. The "custom" type is not
// listed here; it arrives inline on the request.
var emailTemplates = map[string]EmailTemplate{
	"newsletter": {
		Type:    "newsletter",
		Subject: "{companyName} News - {month} {year}",
		HTMLBody: `<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Hi {firstName},</h2>
<p>Here's what's happening at {companyName} this {month}.</p>
<p>We've been busy across {county} County - new bin sizes, faster swap-outs,
and same-day delivery on most routes.</p>
<p>{customContent}</p>
<p>Need a dumpster for an upcoming project? Reply to this email or give us a
call and we'll get one on your driveway.</p>
<p>- The {companyName} Team</p>
</body></html>`,
	},
	"promotion": {
		Type:    "promotion",
		Subject: "{promotionTitle} - {discountAmount} off for {firstName}",
		HTMLBody: `<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>{promotionTitle}</h2>
<p>Hi {firstName},</p>
<p>For a limited time, take <strong>{discountAmount}</strong> off your next
rental in {county} County. Use code <strong>{promoCode}</strong> when you
book.</p>
<p>Offer expires {expirationDate} - don't wait.</p>
<p>- {companyName}</p>
</body></html>`,
	},
	"follow_up": {
		Type:    "follow_up",
		Subject: "Following up on your {lastServiceType}, {firstName}",
		HTMLBody: `<html><body style="font-family: Arial, sans-serif; color: #333;">
<p>Hi {firstName},</p>
<p>Just checking in after your recent {lastServiceType}. Did everything go
smoothly with the delivery and pickup?</p>
<p>If another project is on the horizon, returning customers in {county}
County get priority scheduling.</p>
<p>- {companyName}</p>
</body></html>`,
	},
	"seasonal": {
		Type:    "seasonal",
		Subject: "{month} project season is here, {firstName}",
		HTMLBody: `<html><body style="font-family: Arial, sans-serif; color: #333;">
<p>Hi {firstName},</p>
<p>{month} {year} is one of the busiest months for cleanouts and yard
projects in {county} County. Bins are booking up fast.</p>
<p>{customContent}</p>
<p>Reserve yours early and lock in current pricing.</p>
<p>- {companyName}</p>
</body></html>`,
	},
	"review_request": {
		Type:    "review_request",
		Subject: "How did we do, {firstName}?",
		HTMLBody: `<html><body style="font-family: Arial, sans-serif; color: #333;">
<p>Hi {firstName},</p>
<p>Thanks for renting with {companyName}. If the experience was a good one,
a quick review helps neighbors in {county} County find us.</p>
<p>It takes about a minute, and we read every single one.</p>
<p>- {companyName}</p>
</body></html>`,
	},
	"post_call_review": {
		Type:    "post_call_review",
		Subject: "Thanks for calling {companyName}, {firstName}",
		HTMLBody: `<html><body style="font-family: Arial, sans-serif; color: #333;">
<p>Hi {firstName},</p>
<p>Great talking with you today. If we answered your questions, we'd love a
quick review - and if we didn't, reply here and we'll make it right.</p>
<p>- {companyName}</p>
</body></html>`,
	},
}

// LookupTemplate returns the fixed template for an email type.
func LookupTemplate(emailType string) (EmailTemplate, bool) {
	tpl, ok := emailTemplates[emailType]
	return tpl, ok
}

// TemplateTypes returns the valid email-type keys, sorted for stable error
// messages and API listings.
func TemplateTypes() []string {
	types := make([]string, 0, len(emailTemplates))
	for t := range emailTemplates {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
