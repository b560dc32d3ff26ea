package pantry

import "testing"

func TestAllowedDietToggles(t *testing.T) {
	tests := []struct {
		name  string
		tags  string
		prefs Preferences
		want  bool
	}{
		{"no restrictions", "comfort, hearty", Preferences{}, true},
		{
			"gluten free requires tag",
			"comfort",
			Preferences{Diet: DietPrefs{GlutenFree: true}},
			false,
		},
		{
			"gluten free tag passes",
			"gluten-free, comfort",
			Preferences{Diet: DietPrefs{GlutenFree: true}},
			true,
		},
		{
			"vegetarian accepts vegan tag",
			"vegan",
			Preferences{Diet: DietPrefs{Vegetarian: true}},
			true,
		},
		{
			"vegan rejects vegetarian only",
			"vegetarian",
			Preferences{Diet: DietPrefs{Vegan: true}},
			false,
		},
		{
			"dairy free requires tag",
			"vegan",
			Preferences{Diet: DietPrefs{DairyFree: true}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.tags, tt.prefs); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestAllowedAllergens(t *testing.T) {
	prefs := Preferences{Allergens: AllergenPrefs{Peanuts: true, Shellfish: true}}

	if Allowed("thai, peanuts", prefs) {
		t.Error("recipe tagged peanuts allowed despite peanut allergen toggle")
	}
	if Allowed("seafood, shellfish", prefs) {
		t.Error("recipe tagged shellfish allowed despite shellfish allergen toggle")
	}
	if !Allowed("thai, chicken", prefs) {
		t.Error("untagged recipe rejected")
	}
	// 未開啟的過敏原不影響
	if !Allowed("sesame, asian", prefs) {
		t.Error("recipe rejected for allergen that is not toggled")
	}
}
