package pantry

import (
	"strings"
)

// allergenTag 過敏原開關對應的食譜標籤
var allergenTags = []struct {
	tag     string
	enabled func(AllergenPrefs) bool
}{
	{"peanuts", func(a AllergenPrefs) bool { return a.Peanuts }},
	{"tree-nuts", func(a AllergenPrefs) bool { return a.TreeNuts }},
	{"soy", func(a AllergenPrefs) bool { return a.Soy }},
	{"dairy", func(a AllergenPrefs) bool { return a.Dairy }},
	{"eggs", func(a AllergenPrefs) bool { return a.Eggs }},
	{"fish", func(a AllergenPrefs) bool { return a.Fish }},
	{"shellfish", func(a AllergenPrefs) bool { return a.Shellfish }},
	{"sesame", func(a AllergenPrefs) bool { return a.Sesame }},
	{"wheat", func(a AllergenPrefs) bool { return a.Wheat }},
}

// Allowed 檢查食譜標籤是否通過飲食限制與過敏原設定。
// 未通過的食譜完全排除於排名之外
func Allowed(tagsStr string, prefs Preferences) bool {
	tags := make(map[string]struct{})
	for _, t := range strings.Split(tagsStr, ",") {
		tags[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	has := func(tag string) bool {
		_, ok := tags[tag]
		return ok
	}

	if prefs.Diet.GlutenFree && !has("gluten-free") {
		return false
	}
	if prefs.Diet.Vegetarian && !has("vegetarian") && !has("vegan") {
		return false
	}
	if prefs.Diet.Vegan && !has("vegan") {
		return false
	}
	if prefs.Diet.DairyFree && !has("dairy-free") {
		return false
	}
	for _, a := range allergenTags {
		if a.enabled(prefs.Allergens) && has(a.tag) {
			return false
		}
	}
	return true
}
