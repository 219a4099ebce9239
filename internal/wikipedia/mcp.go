package wikipedia

import (
	"context"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// SearchMCP is the MCP wrapper for Search
func (c *Client) SearchMCP(ctx context.Context, args SearchArgs) (SearchToolResult, error) {
	results, err := c.Search(ctx, args.Term, args.Language)
	if err != nil {
		return SearchToolResult{}, err
	}

	// Search already validated the code, so normalizing cannot fail here
	lang, _ := NormalizeLanguageCode("language", args.Language)
	return SearchToolResult{
		Results:  results,
		Count:    len(results),
		Language: lang,
	}, nil
}

// GetTranslationMCP is the MCP wrapper for GetTranslation
func (c *Client) GetTranslationMCP(ctx context.Context, args GetTranslationArgs) (GetTranslationResult, error) {
	link, err := c.GetTranslation(ctx, args.PageID, args.SourceLanguage, args.TargetLanguage)
	if err != nil {
		return GetTranslationResult{}, err
	}
	return GetTranslationResult{
		Found:       link != nil,
		Translation: link,
	}, nil
}

// TranslateTermMCP is the MCP wrapper for TranslateTerm
func (c *Client) TranslateTermMCP(ctx context.Context, args TranslateTermArgs) (TranslateTermResult, error) {
	tr, err := c.TranslateTerm(ctx, args.Term, args.SourceLanguage, args.TargetLanguage)
	if err != nil {
		return TranslateTermResult{}, err
	}
	return TranslateTermResult{
		Found:       tr.Found(),
		SourcePage:  tr.SourcePage,
		Translation: tr.Translation,
	}, nil
}

// GetTranslationsMCP is the MCP wrapper for GetTranslations
func (c *Client) GetTranslationsMCP(ctx context.Context, args GetTranslationsArgs) (GetTranslationsResult, error) {
	links, err := c.GetTranslations(ctx, args.PageID, args.SourceLanguage, args.TargetLanguages)
	if err != nil {
		return GetTranslationsResult{}, err
	}

	// Requested order, duplicates collapsed, already validated above
	targets, _ := normalizeTargets(args.TargetLanguages)

	result := GetTranslationsResult{
		Translations: make(map[string]*LanguageLink, len(links)),
		Missing:      make([]string, 0),
	}
	for _, target := range targets {
		if link := links[target]; link != nil {
			result.Translations[target] = link
		} else {
			result.Missing = append(result.Missing, target)
		}
	}
	return result, nil
}
