package pages

import "testing"

// TestResolveCity_Canonical tests direct slug lookup
func TestResolveCity_Canonical(t *testing.T) {
	city := ResolveCity("sandy")
	if city == nil {
		t.Fatal("ResolveCity(sandy) = nil")
	}
	if city.Name != "Sandy" || city.State != "UT" {
		t.Errorf("got %s, %s", city.Name, city.State)
	}
}

// TestResolveCity_Alias tests that alternate slugs land on canonical entries
func TestResolveCity_Alias(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"slc", "salt-lake-city"},
		{"salt-lake", "salt-lake-city"},
		{"sandy-city", "sandy"},
		{"SLC", "salt-lake-city"}, // slugs are case-folded
	}

	for _, tt := range tests {
		city := ResolveCity(tt.slug)
		if city == nil {
			t.Errorf("ResolveCity(%q) = nil", tt.slug)
			continue
		}
		if city.Slug != tt.want {
			t.Errorf("ResolveCity(%q).Slug = %q, want %q", tt.slug, city.Slug, tt.want)
		}
	}
}

// TestResolveCity_Unknown tests the nil contract for uncovered cities
func TestResolveCity_Unknown(t *testing.T) {
	if city := ResolveCity("las-vegas"); city != nil {
		t.Errorf("ResolveCity(las-vegas) = %+v, want nil", city)
	}
}

// TestGenerateCityData tests the fallback generator's shape
func TestGenerateCityData(t *testing.T) {
	city := GenerateCityData("west-jordan", "West Jordan", "UT")

	if city.Slug != "west-jordan" || city.Name != "West Jordan" {
		t.Errorf("generated identity wrong: %+v", city)
	}
	if city.Phone == "" {
		t.Error("generated city missing phone")
	}
	if len(city.Content.Sizes) == 0 {
		t.Error("generated city missing size list")
	}
	if city.Permit.Required {
		t.Error("generated city should not claim a permit requirement")
	}
}

// TestTitleFromSlug tests slug-to-display-name conversion
func TestTitleFromSlug(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"west-jordan", "West Jordan"},
		{"orem", "Orem"},
		{"salt-lake-city", "Salt Lake City"},
	}

	for _, tt := range tests {
		if got := titleFromSlug(tt.slug); got != tt.want {
			t.Errorf("titleFromSlug(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}
