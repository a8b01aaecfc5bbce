package utils

type LanguageType string

const (
	LangEN LanguageType = "en"
	LangRU LanguageType = "ru"
	LangVI LanguageType = "vi"
)

var languageLabels = map[LanguageType]string{
	LangEN: "English",
	LangRU: "Русский",
	LangVI: "Tiếng Việt",
}

// NormalizeLanguage falls back to English for empty or unknown tags. The
// tag is only carried for display.
func NormalizeLanguage(tag string) LanguageType {
	if _, ok := languageLabels[LanguageType(tag)]; ok {
		return LanguageType(tag)
	}
	return LangEN
}

func GetLanguageLabel(langType LanguageType) string {
	if label, ok := languageLabels[langType]; ok {
		return label
	}
	return languageLabels[LangEN]
}
