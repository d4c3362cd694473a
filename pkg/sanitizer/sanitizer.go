package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reKeepLettersDigits = regexp.MustCompile(`[^0-9\p{L}]+`)
	reTrimUnderscores   = regexp.MustCompile(`_+`)

	amenityAliases = map[string]string{
		"wi_fi":           "wifi",
		"wireless":        "wifi",
		"ac":              "air_conditioning",
		"a_c":             "air_conditioning",
		"aircon":          "air_conditioning",
		"air_conditioner": "air_conditioning",
		"bath_tub":        "bathtub",
		"minifridge":      "mini_fridge",
		"fridge":          "mini_fridge",
	}
)

func trimAndLower(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

func collapseUnderscores(s string) string {
	s = reTrimUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

func foldAmenityAlias(s string) string {
	if canonical, ok := amenityAliases[s]; ok {
		return canonical
	}
	return s
}

// NormalizeAmenity maps free-form amenity text to its catalog key.
func NormalizeAmenity(input string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reKeepLettersDigits.ReplaceAllString(s, "_") },
		collapseUnderscores,
		foldAmenityAlias,
	}
	return p.Apply(input)
}
