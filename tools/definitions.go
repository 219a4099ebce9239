package tools

// AllTools contains all tool specifications for the Wikipedia translation MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// SEARCH TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_search",
		Method:   "Search",
		Title:    "Search Wikipedia",
		Category: "search",
		Description: `Full-text search of one Wikipedia language edition. Disambiguation pages are removed.

USE WHEN: User asks "find the Wikipedia article about X", "what is X called on the German Wikipedia", or needs a page id for a translation lookup.

NOT FOR: Translating a term in one step (use wikipedia_translate_term instead).

PARAMETERS:
- term: Word or phrase to search for (required)
- language: Wikipedia language code, e.g. en, de, es (required)

RETURNS: Matching pages in relevance order with title, pageid, last-edit timestamp and an HTML snippet.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// TRANSLATION TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_get_translation",
		Method:   "GetTranslation",
		Title:    "Get Article Translation",
		Category: "translate",
		Description: `Find the article on another language edition that corresponds to a known page.

USE WHEN: You already have a page id from wikipedia_search and want the same article in another language.

NOT FOR: Looking up several languages at once (use wikipedia_get_translations).

PARAMETERS:
- page_id: Page id on the source edition (required)
- source_language: Language code the page id belongs to (required)
- target_language: Language code to translate into (required)

RETURNS: found=false when no article exists in the target language; otherwise the translated title, URL, language name and autonym.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_translate_term",
		Method:   "TranslateTerm",
		Title:    "Translate Term via Wikipedia",
		Category: "translate",
		Description: `Translate a term by searching the source edition and following the best match's language link.

USE WHEN: User asks "what is X in Spanish", "translate X from German to French" for a named concept, place, person or technical term.

NOT FOR: Translating sentences or common words without an article.

PARAMETERS:
- term: Word or phrase to translate (required)
- source_language: Language code of the term (required)
- target_language: Language code to translate into (required)

RETURNS: found=false when no article or no translation exists; otherwise the matched source page and the translated article.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_translations",
		Method:   "GetTranslations",
		Title:    "Get Article Translations",
		Category: "translate",
		Description: `Look up the articles corresponding to one page in several language editions at once.

USE WHEN: User wants a term in many languages ("give me X in French, Italian and Japanese").

NOT FOR: A single target language (use wikipedia_get_translation).

PARAMETERS:
- page_id: Page id on the source edition (required)
- source_language: Language code the page id belongs to (required)
- target_languages: Language codes to look up, at most 25 (required)

RETURNS: translations keyed by language code, and the languages with no article in missing.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
