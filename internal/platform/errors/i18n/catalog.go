// Package i18n provides localized message templates for error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from the errors package
// to avoid a cycle).
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
	matcher    language.Matcher
	matcherTag = map[language.Tag]string{}
)

func init() {
	RegisterCatalog(BaseLocale, enUSCatalog)
}

// GetCatalog returns the catalog for the given locale. Locale resolution uses
// language matching over the registered locales and falls back to en-US.
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
	if matcher != nil {
		if tag, err := language.Parse(requested); err == nil {
			_, index, _ := matcher.Match(tag)
			if resolved, ok := catalogs[matchedLocale(index)]; ok {
				return resolved
			}
		}
	}
	return catalogs[BaseLocale]
}

// RegisterCatalog registers a catalog for the given locale, replacing any
// existing one. Call during init or single-threaded setup.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
	rebuildMatcherLocked()
}

// NewCatalog creates a catalog with the given locale and messages.
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

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Has reports whether a template exists for the given code.
func (c *Catalog) Has(code Code) bool {
	_, ok := c.messages[code]
	return ok
}

// Format renders the message template with the given metadata. Falls back to
// the code itself when no template is found. Templates are executed even with
// nil metadata so variables without values render as empty.
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

var matcherLocales []string

func rebuildMatcherLocked() {
	tags := make([]language.Tag, 0, len(catalogs))
	matcherLocales = matcherLocales[:0]

	// The base locale must come first so it wins ambiguous matches.
	if _, ok := catalogs[BaseLocale]; ok {
		tags = append(tags, language.MustParse(BaseLocale))
		matcherLocales = append(matcherLocales, BaseLocale)
	}
	for locale := range catalogs {
		if locale == BaseLocale {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		matcherLocales = append(matcherLocales, locale)
	}
	if len(tags) == 0 {
		matcher = nil
		return
	}
	matcher = language.NewMatcher(tags)
}

func matchedLocale(index int) string {
	if index < 0 || index >= len(matcherLocales) {
		return BaseLocale
	}
	return matcherLocales[index]
}
