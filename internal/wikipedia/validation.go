package wikipedia

import (
	"regexp"
	"strconv"
	"strings"

	apierrors "github.com/olgasafonova/wikitranslate-mcp-server/internal/errors"
)

// MaxTargetLanguages bounds GetTranslations fan-out
const MaxTargetLanguages = 25

// languageCodeRegex matches Wikipedia project subdomains: en, de, simple,
// zh-min-nan, be-x-old, roa-tara, ...
var languageCodeRegex = regexp.MustCompile(`^([a-z]{2,3}|simple)(-[a-z0-9]{1,12}){0,3}$`)

// NormalizeLanguageCode trims and lower-cases a language code and checks that it
// is a plausible Wikipedia subdomain. The code ends up in a host name, so
// nothing else is accepted.
func NormalizeLanguageCode(field, code string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(code))
	if cleaned == "" {
		return "", apierrors.NewValidationError(field, "", "is required")
	}
	if !languageCodeRegex.MatchString(cleaned) {
		return "", apierrors.NewValidationError(field, code, "is not a Wikipedia language code (e.g. en, de, zh-min-nan)")
	}
	return cleaned, nil
}

// ValidateTerm validates a search term.
func ValidateTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return apierrors.NewValidationError("term", "", "is required")
	}
	return nil
}

// ValidatePageID validates a page id obtained from Search.
func ValidatePageID(pageID int) error {
	if pageID <= 0 {
		return apierrors.NewValidationError("page_id", strconv.Itoa(pageID), "must be a positive page id")
	}
	return nil
}

// normalizeTargets normalizes target language codes, dropping duplicates
// while keeping first-seen order.
func normalizeTargets(targets []string) ([]string, error) {
	if len(targets) == 0 {
		return nil, apierrors.NewValidationError("target_languages", "", "at least one language is required")
	}

	seen := make(map[string]bool, len(targets))
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		code, err := NormalizeLanguageCode("target_languages", t)
		if err != nil {
			return nil, err
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}

	if len(out) > MaxTargetLanguages {
		return nil, apierrors.NewValidationError("target_languages", strconv.Itoa(len(out)),
			"at most "+strconv.Itoa(MaxTargetLanguages)+" languages per call")
	}
	return out, nil
}
