package pages

import (
	"fmt"
	"strings"
)

// Page is the fully resolved landing-page payload handed to the frontend
// renderer.
type Page struct {
	ServiceSlug     string       `json:"service_slug"`
	ServiceName     string       `json:"service_name"`
	CitySlug        string       `json:"city_slug"`
	CityName        string       `json:"city_name"`
	State           string       `json:"state"`
	Phone           string       `json:"phone"`
	HeroTitle       string       `json:"hero_title"`
	HeroDescription string       `json:"hero_description"`
	Highlights      []string     `json:"highlights"`
	UseCases        []string     `json:"use_cases"`
	ProTips         []string     `json:"pro_tips"`
	FAQs            []FAQ        `json:"faqs"`
	Paragraphs      []string     `json:"paragraphs"`
	Sizes           []SizeOption `json:"sizes"`
	Permit          PermitInfo   `json:"permit"`
	Landmarks       []string     `json:"landmarks"`
}

// BuildPage merges a service template with a city record into the final
// page payload. Substitution never fails; missing optional content falls
// back to boilerplate.
func BuildPage(tpl *ServiceTemplate, city *CityData) Page {
	ctx := TemplateContext{
		City:        city.Name,
		State:       city.State,
		ServiceName: tpl.DisplayName,
	}

	heroTitle := tpl.HeroTitle
	if heroTitle == "" {
		heroTitle = "{{serviceName}} in {{city}}, {{state}}"
	}
	heroDescription := tpl.HeroDescription
	if heroDescription == "" {
		heroDescription = "Fast, flat-rate {{serviceName}} delivered anywhere in {{city}}."
	}

	faqs := make([]FAQ, 0, len(tpl.FAQs))
	for _, faq := range tpl.FAQs {
		faqs = append(faqs, FAQ{
			Question: ApplyTemplate(faq.Question, ctx),
			Answer:   ApplyTemplate(faq.Answer, ctx),
		})
	}

	return Page{
		ServiceSlug:     tpl.Slug,
		ServiceName:     tpl.DisplayName,
		CitySlug:        city.Slug,
		CityName:        city.Name,
		State:           city.State,
		Phone:           city.Phone,
		HeroTitle:       ApplyTemplate(heroTitle, ctx),
		HeroDescription: ApplyTemplate(heroDescription, ctx),
		Highlights:      ApplyTemplateToArray(tpl.Highlights, ctx),
		UseCases:        ApplyTemplateToArray(tpl.UseCases, ctx),
		ProTips:         ApplyTemplateToArray(tpl.ProTips, ctx),
		FAQs:            faqs,
		Paragraphs:      buildParagraphs(tpl, city, ctx),
		Sizes:           city.Content.Sizes,
		Permit:          city.Permit,
		Landmarks:       city.Landmarks,
	}
}

// buildParagraphs produces the narrative body in a fixed order: intro,
// highlights, use cases, local color, permits. Optional city content
// enriches each paragraph; absent content falls back to generic sentences.
func buildParagraphs(tpl *ServiceTemplate, city *CityData, ctx TemplateContext) []string {
	var paragraphs []string

	intro := fmt.Sprintf("Wasatch Bins delivers roll-off dumpsters across %s, %s with flat-rate pricing and same-day availability.", city.Name, city.State)
	if city.Content.Intro != "" {
		intro += " " + city.Content.Intro
	}
	paragraphs = append(paragraphs, intro)

	if len(tpl.Highlights) > 0 {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Why %s crews choose us: %s.",
			ToPossessive(city.Name), FormatList(lowercaseFirst(ApplyTemplateToArray(tpl.Highlights, ctx)))))
	} else {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"We keep %s simple in %s: order by phone or online, and your bin shows up on schedule.",
			tpl.DisplayName, city.Name))
	}

	useCases := tpl.UseCases
	if len(city.Content.UseCases) > 0 {
		useCases = append(append([]string{}, useCases...), city.Content.UseCases...)
	}
	if len(useCases) > 0 {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Common projects in %s include %s.",
			city.Name, FormatList(ApplyTemplateToArray(useCases, ctx))))
	} else {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Whatever the project, there's a bin size that fits - from weekend cleanouts to full demolitions in %s.", city.Name))
	}

	var local string
	if len(city.Content.Neighborhoods) > 0 {
		local = fmt.Sprintf(
			"We deliver throughout %s neighborhoods, including %s.",
			ToPossessive(city.Name), FormatList(city.Content.Neighborhoods))
	} else if len(city.Landmarks) > 0 {
		local = fmt.Sprintf(
			"Our trucks run daily routes past %s, so delivery windows in %s stay tight.",
			FormatList(city.Landmarks), city.Name)
	}
	if len(city.BusinessDistricts) > 0 {
		districts := fmt.Sprintf(
			"Commercial jobs around %s get first-run morning drops before the workday starts.",
			FormatList(city.BusinessDistricts))
		if local != "" {
			local += " " + districts
		} else {
			local = districts
		}
	}
	if local != "" {
		paragraphs = append(paragraphs, local)
	}

	if city.Permit.Required {
		permit := fmt.Sprintf("Street placement in %s requires a permit", city.Name)
		if city.Permit.Department != "" {
			permit += " from " + city.Permit.Department
		}
		permit += "."
		if city.Permit.Notes != "" {
			permit += " " + city.Permit.Notes
		}
		paragraphs = append(paragraphs, permit)
	} else if city.Permit.Notes != "" {
		paragraphs = append(paragraphs, city.Permit.Notes)
	}

	if len(tpl.ProTips) > 0 {
		paragraphs = append(paragraphs, "Pro tip: "+ApplyTemplate(tpl.ProTips[0], ctx))
	}

	return paragraphs
}

func lowercaseFirst(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		if s == "" {
			continue
		}
		out[i] = strings.ToLower(s[:1]) + s[1:]
	}
	return out
}
