package models

// ParameterTranslation maps a parameter identity (external id or literal name)
// to a translated label.
type ParameterTranslation struct {
	Identity    string `json:"identity"`
	Language    string `json:"language"`
	Translation string `json:"translation"`
}

type ValueTranslation struct {
	Identity    string `json:"identity"`
	Value       string `json:"value"`
	Language    string `json:"language"`
	Translation string `json:"translation"`
}

type CustomTag struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Language string `json:"language"`
}

type CategoryTag struct {
	CategoryID string `json:"category_id"`
	Language   string `json:"language"`
	Tags       string `json:"tags"`
}

// KeywordTranslation is one entry of the title/description dictionary.
type KeywordTranslation struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Language   string `json:"language"`
	CategoryID string `json:"category"`
	Shared     bool   `json:"shared_across_categories"`
	AuthorID   int64  `json:"author_id"`
}
