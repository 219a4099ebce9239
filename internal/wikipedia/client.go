// Package wikipedia provides a client for the MediaWiki action API of the
// Wikipedia language editions: full-text search with disambiguation pages
// removed, and cross-language article lookup through language links.
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olgasafonova/wikitranslate-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/wikitranslate-mcp-server/internal/errors"
	"github.com/olgasafonova/wikitranslate-mcp-server/internal/infra"
	"github.com/olgasafonova/wikitranslate-mcp-server/metrics"
	"github.com/olgasafonova/wikitranslate-mcp-server/tracing"
)

// Operation names used in errors, spans and metrics
const (
	opSearch    = "search"
	opPageProps = "pageprops"
	opLangLinks = "langlinks"
)

// Client provides access to the Wikipedia MediaWiki API.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	*base.Client

	endpoint  string
	userAgent string
}

// ClientOption configures the Client (re-export base.ClientOption)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) ClientOption {
	return base.WithTimeout(d)
}

// WithMaxConcurrency bounds parallel API requests
func WithMaxConcurrency(n int) ClientOption {
	return base.WithMaxConcurrency(n)
}

// WithBreakerConfig sets the per-host circuit breaker thresholds
func WithBreakerConfig(cfg infra.BreakerConfig) ClientOption {
	return base.WithBreakerConfig(cfg)
}

// NewClient creates a new Wikipedia client using the public endpoints
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client:    base.NewClient(opts...),
		endpoint:  DefaultEndpoint,
		userAgent: base.DefaultUserAgent,
	}
}

// NewClientFromConfig creates a client from loaded configuration
func NewClientFromConfig(cfg *Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := NewClient(
		WithLogger(logger),
		WithTimeout(cfg.Timeout),
		WithMaxConcurrency(cfg.MaxConcurrency),
	)
	return c.WithEndpoint(cfg.Endpoint).WithUserAgent(cfg.UserAgent)
}

// WithEndpoint sets the api.php URL template (one %s for the language code).
// Used to point the client at a mirror or a test server.
func (c *Client) WithEndpoint(template string) *Client {
	c.endpoint = template
	return c
}

// WithUserAgent sets the User-Agent sent with every request
func (c *Client) WithUserAgent(ua string) *Client {
	if ua != "" {
		c.userAgent = ua
	}
	return c
}

// EndpointFor returns the api.php URL of a language edition
func (c *Client) EndpointFor(languageCode string) string {
	return fmt.Sprintf(c.endpoint, languageCode)
}

// Search runs a full-text search on the given language edition and returns
// the hits in upstream relevance order with disambiguation pages removed.
// A search with no hits returns an empty slice without a second request.
func (c *Client) Search(ctx context.Context, term, languageCode string) ([]SearchResult, error) {
	if err := ValidateTerm(term); err != nil {
		return nil, err
	}
	lang, err := NormalizeLanguageCode("language", languageCode)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "wikipedia.Search")
	defer span.End()
	tracing.AddLanguageAttributes(span, lang, "")

	results, err := c.searchHits(ctx, term, lang)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if len(results) == 0 {
		return results, nil
	}

	props, err := c.pageProps(ctx, results, lang)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	filtered := filterDisambiguation(results, props)
	if removed := len(results) - len(filtered); removed > 0 {
		metrics.DisambiguationFiltered.WithLabelValues(lang).Add(float64(removed))
		c.Logger.Debug("Removed disambiguation pages",
			"language", lang,
			"term", term,
			"removed", removed)
	}
	return filtered, nil
}

// searchHits performs the list=search query
func (c *Client) searchHits(ctx context.Context, term, lang string) ([]SearchResult, error) {
	params := queryParams()
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("srprop", "snippet|timestamp")

	var resp searchResponse
	if err := c.query(ctx, lang, opSearch, params, &resp); err != nil {
		return nil, err
	}
	if resp.Query == nil {
		return nil, c.parseFailure(lang, opSearch, errors.New("missing query object"))
	}

	results := make([]SearchResult, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		results = append(results, hit.toSearchResult())
	}
	return results, nil
}

// pageProps fetches the disambiguation property of every search hit in one request
func (c *Client) pageProps(ctx context.Context, results []SearchResult, lang string) ([]PagePropsEntry, error) {
	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Title
	}

	params := queryParams()
	params.Set("prop", "pageprops")
	params.Set("ppprop", "disambiguation")
	params.Set("titles", strings.Join(titles, "|"))

	var resp pagePropsResponse
	if err := c.query(ctx, lang, opPageProps, params, &resp); err != nil {
		return nil, err
	}
	if resp.Query == nil {
		return nil, c.parseFailure(lang, opPageProps, errors.New("missing query object"))
	}

	entries := make([]PagePropsEntry, 0, len(resp.Query.Pages))
	for _, page := range resp.Query.Pages {
		if page.PageID <= 0 {
			continue
		}
		entries = append(entries, page.toPagePropsEntry())
	}
	return entries, nil
}

// filterDisambiguation keeps results whose page id is not marked as a
// disambiguation page. Order is preserved; pages missing from props are kept.
func filterDisambiguation(results []SearchResult, props []PagePropsEntry) []SearchResult {
	disambiguation := make(map[int]bool, len(props))
	for _, p := range props {
		if p.HasDisambiguationProp {
			disambiguation[p.PageID] = true
		}
	}

	filtered := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if !disambiguation[r.PageID] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GetTranslation returns the language link from a page on the source edition
// to the target edition, or nil if the page has no article in that language.
func (c *Client) GetTranslation(ctx context.Context, pageID int, sourceLanguage, targetLanguage string) (*LanguageLink, error) {
	if err := ValidatePageID(pageID); err != nil {
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

	ctx, span := tracing.StartSpan(ctx, "wikipedia.GetTranslation")
	defer span.End()
	tracing.AddLanguageAttributes(span, source, target)

	link, err := c.langLink(ctx, pageID, source, target)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.RecordTranslationLookup(source, target, link != nil)
	return link, nil
}

// langLink performs the prop=langlinks query
func (c *Client) langLink(ctx context.Context, pageID int, source, target string) (*LanguageLink, error) {
	id := strconv.Itoa(pageID)

	params := queryParams()
	params.Set("prop", "langlinks")
	params.Set("pageids", id)
	params.Set("lllang", target)
	params.Set("llprop", "url|langname|autonym")

	var resp langLinksResponse
	if err := c.query(ctx, source, opLangLinks, params, &resp); err != nil {
		return nil, err
	}
	if resp.Query == nil {
		return nil, c.parseFailure(source, opLangLinks, errors.New("missing query object"))
	}

	page, ok := resp.Query.Pages[id]
	if !ok {
		return nil, c.parseFailure(source, opLangLinks, fmt.Errorf("page %s missing from response", id))
	}
	if len(page.LangLinks) == 0 {
		return nil, nil
	}
	return page.LangLinks[0].toLanguageLink(), nil
}

// queryParams returns the parameters shared by every action=query request
func queryParams() url.Values {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("utf8", "1")
	return params
}

// query performs one API request against a language edition and decodes the
// body into result. Non-200 statuses and the MediaWiki error envelope become
// UpstreamError; undecodable bodies become ParseError.
func (c *Client) query(ctx context.Context, lang, op string, params url.Values, result apiResponse) error {
	reqURL := c.EndpointFor(lang) + "?" + params.Encode()
	start := time.Now()

	body, statusCode, err := c.DoRequest(ctx, base.JSONRequest(op, reqURL, c.userAgent))
	if err != nil {
		metrics.RecordAPICall(lang, op, time.Since(start).Seconds(), false, "network")
		return err
	}

	if statusCode != http.StatusOK {
		metrics.RecordAPICall(lang, op, time.Since(start).Seconds(), false, "upstream")
		return apierrors.NewUpstreamError(op, statusCode, "", base.Truncate(strings.TrimSpace(string(body)), 200))
	}

	if err := json.Unmarshal(body, result); err != nil {
		metrics.RecordAPICall(lang, op, time.Since(start).Seconds(), false, "parse")
		return apierrors.NewParseError(op, err)
	}

	if apiErr := result.apiErr(); apiErr != nil {
		metrics.RecordAPICall(lang, op, time.Since(start).Seconds(), false, "upstream")
		c.Logger.Warn("Wikipedia API returned an error",
			"language", lang,
			"op", op,
			"code", apiErr.Code,
			"info", apiErr.Info)
		return apierrors.NewUpstreamError(op, statusCode, apiErr.Code, apiErr.Info)
	}

	metrics.RecordAPICall(lang, op, time.Since(start).Seconds(), true, "")
	return nil
}

// parseFailure records and returns a ParseError for a structurally invalid body
func (c *Client) parseFailure(lang, op string, err error) error {
	metrics.WikiAPIErrors.WithLabelValues(lang, op, "parse").Inc()
	return apierrors.NewParseError(op, err)
}
