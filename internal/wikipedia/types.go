package wikipedia

import "encoding/json"

// SearchResult is one full-text search hit, in upstream relevance order
type SearchResult struct {
	Title     string `json:"title"`
	PageID    int    `json:"pageid"`
	Timestamp string `json:"timestamp"` // ISO-8601 time of the last edit
	Snippet   string `json:"snippet"`   // HTML fragment with <span class="searchmatch"> markers
}

// PagePropsEntry records whether a page carries the disambiguation property
type PagePropsEntry struct {
	PageID                int
	HasDisambiguationProp bool
}

// LanguageLink is a link from a page to the same topic in another language edition
type LanguageLink struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	LanguageCode string `json:"lang"`
	LanguageName string `json:"langname"` // language name in the source edition's language
	Autonym      string `json:"autonym"`  // language name in the language itself
}

// TermTranslation is the result of searching a term and following the
// language link of its best non-disambiguation match.
type TermTranslation struct {
	Term           string        `json:"term"`
	SourceLanguage string        `json:"source_language"`
	TargetLanguage string        `json:"target_language"`
	SourcePage     *SearchResult `json:"source_page,omitempty"`
	Translation    *LanguageLink `json:"translation,omitempty"`
}

// Found reports whether a translated article exists
func (t *TermTranslation) Found() bool {
	return t != nil && t.Translation != nil
}

// =============================================================================
// Raw API response schemas (action=query, formatversion=1)
// =============================================================================

// apiError is the MediaWiki error envelope returned with HTTP 200
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// envelope is embedded in every response schema
type envelope struct {
	Error *apiError `json:"error,omitempty"`
}

func (e *envelope) apiErr() *apiError {
	return e.Error
}

// apiResponse is implemented by every response schema
type apiResponse interface {
	apiErr() *apiError
}

// searchResponse is the payload of list=search
type searchResponse struct {
	envelope
	Query *struct {
		Search []rawSearchHit `json:"search"`
	} `json:"query"`
}

type rawSearchHit struct {
	NS        int    `json:"ns"`
	Title     string `json:"title"`
	PageID    int    `json:"pageid"`
	Snippet   string `json:"snippet"`
	Timestamp string `json:"timestamp"`
}

// pagePropsResponse is the payload of prop=pageprops. Pages are keyed by an
// internal key (the page id, or a negative number for missing titles).
type pagePropsResponse struct {
	envelope
	Query *struct {
		Pages map[string]rawPropsPage `json:"pages"`
	} `json:"query"`
}

type rawPropsPage struct {
	PageID    int                        `json:"pageid"`
	Title     string                     `json:"title"`
	Missing   *string                    `json:"missing,omitempty"`
	PageProps map[string]json.RawMessage `json:"pageprops,omitempty"`
}

// langLinksResponse is the payload of prop=langlinks. Pages are keyed by page id.
type langLinksResponse struct {
	envelope
	Query *struct {
		Pages map[string]rawLangLinksPage `json:"pages"`
	} `json:"query"`
}

type rawLangLinksPage struct {
	PageID    int           `json:"pageid"`
	Title     string        `json:"title"`
	Missing   *string       `json:"missing,omitempty"`
	LangLinks []rawLangLink `json:"langlinks,omitempty"`
}

type rawLangLink struct {
	Lang     string `json:"lang"`
	URL      string `json:"url"`
	LangName string `json:"langname"`
	Autonym  string `json:"autonym"`
	Title    string `json:"*"`
}

func (h rawSearchHit) toSearchResult() SearchResult {
	return SearchResult{
		Title:     h.Title,
		PageID:    h.PageID,
		Timestamp: h.Timestamp,
		Snippet:   h.Snippet,
	}
}

func (p rawPropsPage) toPagePropsEntry() PagePropsEntry {
	_, ok := p.PageProps["disambiguation"]
	return PagePropsEntry{
		PageID:                p.PageID,
		HasDisambiguationProp: ok,
	}
}

func (l rawLangLink) toLanguageLink() *LanguageLink {
	return &LanguageLink{
		Title:        l.Title,
		URL:          l.URL,
		LanguageCode: l.Lang,
		LanguageName: l.LangName,
		Autonym:      l.Autonym,
	}
}
