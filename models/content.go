package models

import "time"

// Now returns the current UTC time at the microsecond precision a
// TIMESTAMPTZ column keeps, so a stored value reads back unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Category is the health topic a piece of content belongs to
type Category string

const (
	CategoryNutrition         Category = "nutrition"
	CategoryFitness           Category = "fitness"
	CategoryMentalHealth      Category = "mental_health"
	CategoryHygiene           Category = "hygiene"
	CategoryDiseasePrevention Category = "disease_prevention"
	CategoryMaternalHealth    Category = "maternal_health"
	CategoryFirstAid          Category = "first_aid"
	CategoryGeneral           Category = "general"
)

// Categories is the fixed set of content categories
var Categories = []Category{
	CategoryNutrition,
	CategoryFitness,
	CategoryMentalHealth,
	CategoryHygiene,
	CategoryDiseasePrevention,
	CategoryMaternalHealth,
	CategoryFirstAid,
	CategoryGeneral,
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Language is the language content is written or narrated in
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
	LanguageArabic  Language = "ar"
	LanguageSwahili Language = "sw"
)

// Languages is the fixed set of supported content languages
var Languages = []Language{
	LanguageEnglish,
	LanguageFrench,
	LanguageArabic,
	LanguageSwahili,
}

// IsValid reports whether l is a supported language
func (l Language) IsValid() bool {
	for _, v := range Languages {
		if l == v {
			return true
		}
	}
	return false
}

// ContentFilter narrows list queries by equality on category and language.
// Nil fields are not filtered.
type ContentFilter struct {
	Category *Category
	Language *Language
}
