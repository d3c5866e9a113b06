package pages

import "strings"

// PermitInfo records whether street placement needs a city permit and who
// to call about it.
type PermitInfo struct {
	Required   bool   `json:"required"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// SizeOption is one dumpster size offered in a city.
type SizeOption struct {
	Yards       int    `json:"yards"`
	Description string `json:"description"`
}

// ContentSections is the free-text bag backing the narrative generator.
// Every field is optional; the generator falls back to boilerplate.
type ContentSections struct {
	Intro         string       `json:"intro,omitempty"`
	Sizes         []SizeOption `json:"sizes,omitempty"`
	UseCases      []string     `json:"useCases,omitempty"`
	Neighborhoods []string     `json:"neighborhoods,omitempty"`
}

// CityData is one city's landing-page record.
type CityData struct {
	Slug              string          `json:"slug"`
	Name              string          `json:"name"`
	State             string          `json:"state"`
	Phone             string          `json:"phone"`
	Latitude          float64         `json:"latitude"`
	Longitude         float64         `json:"longitude"`
	Landmarks         []string        `json:"landmarks,omitempty"`
	BusinessDistricts []string        `json:"businessDistricts,omitempty"`
	Permit            PermitInfo      `json:"permit"`
	Content           ContentSections `json:"content"`
}

const defaultPhone = "(801) 555-0144"

var standardSizes = []SizeOption{
	{Yards: 10, Description: "Small cleanouts and single-room remodels"},
	{Yards: 15, Description: "Garage cleanouts and flooring tear-outs"},
	{Yards: 20, Description: "Full remodels and roofing tear-offs"},
	{Yards: 30, Description: "New construction and whole-home cleanouts"},
	{Yards: 40, Description: "Commercial demo and large job sites"},
}

var cityData = map[string]CityData{
	"orem": {
		Slug: "orem", Name: "Orem", State: "UT", Phone: defaultPhone,
		Latitude: 40.2969, Longitude: -111.6946,
		Landmarks:         []string{"University Place", "Orem City Center Park", "Lakeside Sports Park"},
		BusinessDistricts: []string{"State Street corridor", "University Parkway"},
		Permit: PermitInfo{
			Required:   true,
			Department: "Orem Public Works",
			Phone:      "(801) 229-7500",
			Notes:      "Right-of-way permit required for street placement; driveway placement is permit-free.",
		},
		Content: ContentSections{
			Intro:         "Orem's mix of older neighborhoods west of State Street and newer builds on the east bench keeps remodel crews busy year-round.",
			Sizes:         standardSizes,
			UseCases:      []string{"basement finishes", "landscaping overhauls", "student-rental turnovers"},
			Neighborhoods: []string{"Cherry Hill", "Sharon Park", "Northridge"},
		},
	},
	"sandy": {
		Slug: "sandy", Name: "Sandy", State: "UT", Phone: defaultPhone,
		Latitude: 40.5649, Longitude: -111.8389,
		Landmarks:         []string{"South Towne Center", "Hale Centre Theatre", "Dimple Dell Park"},
		BusinessDistricts: []string{"Sandy Civic Center", "South Towne"},
		Permit: PermitInfo{
			Required:   true,
			Department: "Sandy City Community Development",
			Phone:      "(801) 568-7250",
		},
		Content: ContentSections{
			Intro:    "From Historic Sandy bungalows to new construction along the east bench, Sandy projects range from weekend cleanouts to full demos.",
			Sizes:    standardSizes,
			UseCases: []string{"kitchen remodels", "deck tear-outs", "moving cleanouts"},
		},
	},
	"tooele": {
		Slug: "tooele", Name: "Tooele", State: "UT", Phone: defaultPhone,
		Latitude: 40.5308, Longitude: -112.2983,
		Landmarks: []string{"Tooele Valley Museum", "Oquirrh Hills Golf Course"},
		Permit: PermitInfo{
			Required: false,
			Notes:    "No permit needed for residential placement; commercial sites should confirm with the county.",
		},
		Content: ContentSections{
			Sizes:         standardSizes,
			Neighborhoods: []string{"Overlake", "Tooele Hills"},
		},
	},
	"moab": {
		Slug: "moab", Name: "Moab", State: "UT", Phone: defaultPhone,
		Latitude: 38.5733, Longitude: -109.5498,
		Landmarks: []string{"Arches National Park gateway", "Main Street district"},
		Permit: PermitInfo{
			Required:   true,
			Department: "Moab City Public Works",
			Phone:      "(435) 259-7485",
			Notes:      "Seasonal restrictions apply near the Main Street corridor during peak tourist months.",
		},
		Content: ContentSections{
			Intro:    "Moab's short building season means crews need bins delivered on schedule and swapped fast.",
			Sizes:    standardSizes[:4],
			UseCases: []string{"vacation-rental renovations", "trail-season cleanups"},
		},
	},
	"salt-lake-city": {
		Slug: "salt-lake-city", Name: "Salt Lake City", State: "UT", Phone: defaultPhone,
		Latitude: 40.7608, Longitude: -111.8910,
		Landmarks:         []string{"Liberty Park", "The Gateway", "9th and 9th"},
		BusinessDistricts: []string{"Downtown", "Granary District", "Sugar House"},
		Permit: PermitInfo{
			Required:   true,
			Department: "SLC Transportation Division",
			Phone:      "(801) 535-6630",
			Notes:      "Street placement downtown requires a barricade plan in addition to the permit.",
		},
		Content: ContentSections{
			Intro:         "Salt Lake City jobs run the full range - Victorian renovations in the Avenues, warehouse conversions in the Granary, and everything between.",
			Sizes:         standardSizes,
			UseCases:      []string{"historic home renovations", "warehouse build-outs", "landlord turnovers"},
			Neighborhoods: []string{"The Avenues", "Sugar House", "Rose Park", "Liberty Wells"},
		},
	},
	"provo": {
		Slug: "provo", Name: "Provo", State: "UT", Phone: defaultPhone,
		Latitude: 40.2338, Longitude: -111.6585,
		Landmarks:         []string{"Downtown Provo", "Provo Towne Centre"},
		BusinessDistricts: []string{"Center Street", "East Bay"},
		Permit: PermitInfo{
			Required:   true,
			Department: "Provo Public Works",
			Phone:      "(801) 852-6771",
		},
		Content: ContentSections{
			Sizes:    standardSizes,
			UseCases: []string{"student-housing turnovers", "historic district remodels"},
		},
	},
}

// cityAliases maps alternate slugs (old URLs, common misspellings) onto
// canonical entries.
var cityAliases = map[string]string{
	"slc":         "salt-lake-city",
	"saltlake":    "salt-lake-city",
	"salt-lake":   "salt-lake-city",
	"orem-ut":     "orem",
	"sandy-city":  "sandy",
	"tooele-city": "tooele",
}

// ResolveCity returns the CityData for a slug, checking the alias table
// first. Unknown slugs get nil; use GenerateCityData for fallback pages.
func ResolveCity(slug string) *CityData {
	canonical := strings.ToLower(slug)
	if target, ok := cityAliases[canonical]; ok {
		canonical = target
	}
	if city, ok := cityData[canonical]; ok {
		return &city
	}
	return nil
}

// GenerateCityData synthesizes a serviceable CityData for a city we cover
// but haven't written custom content for. The narrative generator's
// fallback sentences carry the rest.
func GenerateCityData(slug, name, state string) CityData {
	return CityData{
		Slug:  slug,
		Name:  name,
		State: state,
		Phone: defaultPhone,
		Permit: PermitInfo{
			Required: false,
			Notes:    "Check with the city before placing a dumpster in the street.",
		},
		Content: ContentSections{
			Sizes: standardSizes,
		},
	}
}

// titleFromSlug turns "west-jordan" into "West Jordan".
func titleFromSlug(slug string) string {
	words := strings.Split(strings.ToLower(slug), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// CitySlugs returns every canonical city slug, for route listings.
func CitySlugs() []string {
	slugs := make([]string, 0, len(cityData))
	for slug := range cityData {
		slugs = append(slugs, slug)
	}
	return slugs
}
