package wikipedia

// SearchArgs contains parameters for a Wikipedia search
type SearchArgs struct {
	Term     string `json:"term" jsonschema:"Word or phrase to search for"`
	Language string `json:"language" jsonschema:"Wikipedia language code, e.g. en, de, es, zh-min-nan"`
}

// SearchToolResult is the result of a Wikipedia search
type SearchToolResult struct {
	Results  []SearchResult `json:"results"`
	Count    int            `json:"count"`
	Language string         `json:"language"`
}

// GetTranslationArgs contains parameters for a language link lookup
type GetTranslationArgs struct {
	PageID         int    `json:"page_id" jsonschema:"Page id on the source edition, from wikipedia_search"`
	SourceLanguage string `json:"source_language" jsonschema:"Language code of the edition the page id belongs to"`
	TargetLanguage string `json:"target_language" jsonschema:"Language code of the edition to translate into"`
}

// GetTranslationResult is the result of a language link lookup
type GetTranslationResult struct {
	Found       bool          `json:"found"`
	Translation *LanguageLink `json:"translation,omitempty"`
}

// TranslateTermArgs contains parameters for a search-and-translate lookup
type TranslateTermArgs struct {
	Term           string `json:"term" jsonschema:"Word or phrase to translate"`
	SourceLanguage string `json:"source_language" jsonschema:"Language code of the term, e.g. de"`
	TargetLanguage string `json:"target_language" jsonschema:"Language code to translate into, e.g. es"`
}

// TranslateTermResult is the result of a search-and-translate lookup
type TranslateTermResult struct {
	Found       bool          `json:"found"`
	SourcePage  *SearchResult `json:"source_page,omitempty"`  // best search hit on the source edition
	Translation *LanguageLink `json:"translation,omitempty"`
}

// GetTranslationsArgs contains parameters for a multi-language lookup
type GetTranslationsArgs struct {
	PageID          int      `json:"page_id" jsonschema:"Page id on the source edition, from wikipedia_search"`
	SourceLanguage  string   `json:"source_language" jsonschema:"Language code of the edition the page id belongs to"`
	TargetLanguages []string `json:"target_languages" jsonschema:"Language codes to look up (at most 25)"`
}

// GetTranslationsResult is the result of a multi-language lookup
type GetTranslationsResult struct {
	Translations map[string]*LanguageLink `json:"translations"` // only languages with an article
	Missing      []string                 `json:"missing"`      // languages without an article, in request order
}
