package pages

// FAQ is a question/answer pair; both sides may carry page tokens.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ServiceTemplate describes one landing-page family. A template is either a
// direct definition or an alias pointing at another slug, never both.
type ServiceTemplate struct {
	Slug            string
	DisplayName     string
	HeroTitle       string
	HeroDescription string
	Highlights      []string
	UseCases        []string
	ProTips         []string
	FAQs            []FAQ
	AliasOf         string
}

// serviceTemplates is the static landing-page catalog. Defined once at
// startup, looked up by slug, never mutated.
var serviceTemplates = map[string]ServiceTemplate{
	"dumpster-rental": {
		Slug:            "dumpster-rental",
		DisplayName:     "Dumpster Rental",
		HeroTitle:       "Dumpster Rental in {{city}}, {{state}}",
		HeroDescription: "Same-day roll-off dumpster delivery across {{city}}. Flat-rate pricing, no hidden fees, driveway-safe placement.",
		Highlights: []string{
			"Same-day and next-day delivery in {{city}}",
			"Flat-rate pricing with weight included",
			"Driveway protection boards on every drop",
		},
		UseCases: []string{
			"home cleanouts",
			"remodeling debris",
			"roofing tear-offs",
			"yard waste removal",
		},
		ProTips: []string{
			"Order one size up if you're unsure - an overloaded dumpster can't legally leave {{city}}.",
			"Keep the swing door clear so you can walk heavy items in instead of lifting them over the wall.",
		},
		FAQs: []FAQ{
			{
				Question: "How fast can you deliver a dumpster in {{city}}?",
				Answer:   "Most {{city}} orders placed before noon are delivered the same day, and everything else arrives the next morning.",
			},
			{
				Question: "Do I need a permit for a dumpster in {{city}}, {{state}}?",
				Answer:   "Not if it sits on your own driveway or property. Street placement in {{city}} usually needs a right-of-way permit.",
			},
		},
	},
	"residential-dumpster-rental": {
		Slug:            "residential-dumpster-rental",
		DisplayName:     "Residential Dumpster Rental",
		HeroTitle:       "Residential Dumpster Rental in {{city}}",
		HeroDescription: "Homeowner-friendly roll-off rentals for {{city}} cleanouts, moves, and weekend projects.",
		Highlights: []string{
			"Compact 10 and 15 yard bins that fit a single parking stall",
			"Driveway-safe wheels and boards",
			"7-day rental window standard in {{city}}",
		},
		UseCases: []string{
			"garage cleanouts",
			"estate cleanups",
			"moving purges",
			"carpet and flooring tear-outs",
		},
		FAQs: []FAQ{
			{
				Question: "Will the dumpster damage my driveway?",
				Answer:   "We place wood boards under the rails on every {{city}} residential drop, so the bin never touches your concrete.",
			},
		},
	},
	"commercial-dumpster-rental": {
		Slug:            "commercial-dumpster-rental",
		DisplayName:     "Commercial Dumpster Rental",
		HeroTitle:       "Commercial Dumpster Rental in {{city}}, {{state}}",
		HeroDescription: "Scheduled swaps and high-capacity roll-offs for {{city}} businesses, contractors, and property managers.",
		Highlights: []string{
			"30 and 40 yard bins for high-volume sites",
			"Scheduled swap-outs so your site never waits",
			"Consolidated monthly invoicing",
		},
		UseCases: []string{
			"retail build-outs",
			"office renovations",
			"multi-unit property turnovers",
			"ongoing manufacturing waste",
		},
		ProTips: []string{
			"Book recurring swaps up front - standing orders get priority routing in {{city}}.",
		},
	},
	"construction-dumpster-rental": {
		Slug:            "construction-dumpster-rental",
		DisplayName:     "Construction Dumpster Rental",
		HeroTitle:       "Construction Dumpsters in {{city}}",
		HeroDescription: "Heavy-duty roll-offs rated for demo debris, concrete, and mixed construction waste on {{city}} job sites.",
		Highlights: []string{
			"Heavy-debris rated 20 yard bins",
			"Clean concrete and dirt loads recycled at local yards",
			"On-call swaps for fast-moving {{city}} jobs",
		},
		UseCases: []string{
			"new construction",
			"demolition",
			"concrete and asphalt removal",
			"commercial tenant improvements",
		},
		FAQs: []FAQ{
			{
				Question: "Can I put concrete in a {{serviceName}} bin?",
				Answer:   "Yes - clean concrete loads go in a dedicated low-wall bin so we stay under road weight limits in {{state}}.",
			},
		},
	},
	"roofing-dumpster-rental": {
		Slug:            "roofing-dumpster-rental",
		DisplayName:     "Roofing Dumpster Rental",
		HeroTitle:       "Roofing Dumpsters in {{city}}",
		HeroDescription: "Shingle tear-off bins sized and rated for {{city}} roofing crews, with board protection for every driveway.",
		UseCases: []string{
			"asphalt shingle tear-offs",
			"tile roof replacements",
			"flat roof membrane removal",
		},
		ProTips: []string{
			"A 20 yard bin handles about 60 squares of three-tab shingles before hitting weight limits.",
		},
	},
	"estate-cleanout": {
		Slug:            "estate-cleanout",
		DisplayName:     "Estate Cleanout Dumpster Rental",
		HeroTitle:       "Estate Cleanout Dumpsters in {{city}}",
		HeroDescription: "Take your time with a flexible rental window - we help {{city}} families clear a property at their own pace.",
		UseCases: []string{
			"full-house cleanouts",
			"hoarding cleanups",
			"downsizing moves",
		},
	},
	"yard-waste-dumpster-rental": {
		Slug:            "yard-waste-dumpster-rental",
		DisplayName:     "Yard Waste Dumpster Rental",
		HeroTitle:       "Yard Waste Dumpsters in {{city}}",
		HeroDescription: "Green waste bins for {{city}} landscaping projects, storm cleanup, and seasonal yard work.",
		UseCases: []string{
			"tree and shrub removal",
			"sod and soil disposal",
			"storm debris cleanup",
		},
	},

	// Alternate slugs kept for inbound links from the old site
	"roll-off-dumpster-rental": {
		Slug:    "roll-off-dumpster-rental",
		AliasOf: "dumpster-rental",
	},
	"home-dumpster-rental": {
		Slug:    "home-dumpster-rental",
		AliasOf: "residential-dumpster-rental",
	},
	"garbage-dumpster-rental": {
		Slug:    "garbage-dumpster-rental",
		AliasOf: "dumpster-rental",
	},
}

// maxAliasDepth bounds alias chains so a miswired entry can't loop forever.
const maxAliasDepth = 4

// ResolveServiceTemplate looks up a template by slug, following alias
// entries up to maxAliasDepth hops. Returns nil for unknown slugs and for
// chains that never reach a direct template.
func ResolveServiceTemplate(slug string) *ServiceTemplate {
	current := slug
	for i := 0; i < maxAliasDepth; i++ {
		tpl, ok := serviceTemplates[current]
		if !ok {
			return nil
		}
		if tpl.AliasOf == "" {
			return &tpl
		}
		current = tpl.AliasOf
	}
	return nil
}

// ServiceSlugs returns every non-alias slug, for route listings.
func ServiceSlugs() []string {
	slugs := make([]string, 0, len(serviceTemplates))
	for slug, tpl := range serviceTemplates {
		if tpl.AliasOf == "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}
