package wikipedia

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/olgasafonova/wikitranslate-mcp-server/tracing"
)

// TranslateTerm searches the source edition for term and follows the language
// link of the best non-disambiguation hit to the target edition. When the
// search has no usable hit or the page has no article in the target
// language, the returned translation has no Translation.
func (c *Client) TranslateTerm(ctx context.Context, term, sourceLanguage, targetLanguage string) (*TermTranslation, error) {
	if err := ValidateTerm(term); err != nil {
		return nil, err
	}
	source, err := NormalizeLanguageCode("source_language", sourceLanguage)
	if err != nil {
		return nil, err
	}
	target, err := NormalizeLanguageCode("target_language", targetLanguage)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "wikipedia.TranslateTerm")
	defer span.End()
	tracing.AddLanguageAttributes(span, source, target)

	out := &TermTranslation{
		Term:           term,
		SourceLanguage: source,
		TargetLanguage: target,
	}

	results, err := c.Search(ctx, term, source)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if len(results) == 0 {
		return out, nil
	}

	best := results[0]
	out.SourcePage = &best

	link, err := c.GetTranslation(ctx, best.PageID, source, target)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	out.Translation = link
	return out, nil
}

// GetTranslations looks up one page in several target editions concurrently.
// Duplicate targets are collapsed. The map holds nil for languages without an
// article. The first failing lookup cancels the others and no partial result
// is returned.
func (c *Client) GetTranslations(ctx context.Context, pageID int, sourceLanguage string, targetLanguages []string) (map[string]*LanguageLink, error) {
	if err := ValidatePageID(pageID); err != nil {
		return nil, err
	}
	source, err := NormalizeLanguageCode("source_language", sourceLanguage)
	if err != nil {
		return nil, err
	}
	targets, err := normalizeTargets(targetLanguages)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "wikipedia.GetTranslations")
	defer span.End()
	tracing.AddLanguageAttributes(span, source, "")

	links := make([]*LanguageLink, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cap(c.Semaphore))
	for i, target := range targets {
		g.Go(func() error {
			link, err := c.GetTranslation(gctx, pageID, source, target)
			if err != nil {
				return err
			}
			links[i] = link
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	out := make(map[string]*LanguageLink, len(targets))
	for i, target := range targets {
		out[target] = links[i]
	}
	return out, nil
}
