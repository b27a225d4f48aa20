// Package i18n provides localized message catalogs for error codes.
package i18n

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (string alias to avoid an import cycle
// with the errors package).
type Code = string

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

func init() {
	catalogs[BaseLocale] = enUSCatalog
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

// RegisterCatalog registers a catalog for the given locale, replacing any
// existing one. Call during init or single-threaded setup.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// GetCatalog returns the catalog best matching the given locale.
// Unknown or empty locales fall back to en-US. Matching uses language tags,
// so a request for "en-GB" resolves to the en-US catalog rather than the
// code-only fallback.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}

	catalogsMu.RLock()
	defer catalogsMu.RUnlock()

	if c, ok := catalogs[requested]; ok {
		return c
	}

	// The matcher falls back to the first supported tag when nothing
	// matches, so the base locale must come first.
	locales := make([]string, 0, len(catalogs))
	locales = append(locales, BaseLocale)
	for loc := range catalogs {
		if loc != BaseLocale {
			locales = append(locales, loc)
		}
	}
	sort.Strings(locales[1:])

	supported := make([]language.Tag, 0, len(locales))
	byTag := make([]*Catalog, 0, len(locales))
	for _, loc := range locales {
		tag, err := language.Parse(loc)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		byTag = append(byTag, catalogs[loc])
	}

	if tag, err := language.Parse(requested); err == nil && len(supported) > 0 {
		matcher := language.NewMatcher(supported)
		_, index, _ := matcher.Match(tag)
		return byTag[index]
	}

	return catalogs[BaseLocale]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata so output
// stays deterministic when call sites omit template variables.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
