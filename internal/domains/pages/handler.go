package pages

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/wasatchbins/dumpster-leadgen/internal/handlers"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterPageRoutes(r chi.Router) {
	r.Get("/", h.listPages)
	r.Get("/{service}/{city}", h.getPage)
}

// PageRoute is one service×city combination, consumed by the frontend's
// sitemap and static-path generation.
type PageRoute struct {
	Service string `json:"service"`
	City    string `json:"city"`
	Path    string `json:"path"`
}

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	services := ServiceSlugs()
	cities := CitySlugs()
	sort.Strings(services)
	sort.Strings(cities)

	routes := make([]PageRoute, 0, len(services)*len(cities))
	for _, service := range services {
		for _, city := range cities {
			routes = append(routes, PageRoute{
				Service: service,
				City:    city,
				Path:    "/" + service + "/" + city,
			})
		}
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(routes),
		"routes": routes,
	})
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	serviceSlug := chi.URLParam(r, "service")
	citySlug := chi.URLParam(r, "city")

	tpl := ResolveServiceTemplate(serviceSlug)
	if tpl == nil {
		handlers.RespondWithError(w, http.StatusNotFound, "PAGE_NOT_FOUND", "No service page for slug "+serviceSlug)
		return
	}

	city := ResolveCity(citySlug)
	if city == nil {
		// Cities outside the curated list still get a page; the generic
		// generator plus narrative fallbacks cover them.
		generated := GenerateCityData(citySlug, titleFromSlug(citySlug), "UT")
		city = &generated
	}

	handlers.RespondWithJSON(w, http.StatusOK, BuildPage(tpl, city))
}
