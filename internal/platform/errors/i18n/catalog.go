// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Code is a machine-readable error code (duplicated from errors package to avoid a cycle).
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

	supportedTags    []language.Tag
	supportedLocales []string
	matcher          language.Matcher
)

func init() {
	RegisterCatalog(BaseLocale, enUSCatalog)
	RegisterCatalog("es-EC", esECCatalog)
}

// GetCatalog returns the catalog for the given locale.
// Unknown locales are matched against registered ones via language matching
// (so "es" and "es-MX" resolve to es-EC); anything unmatched falls back to en-US.
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
		if _, index := language.MatchStrings(matcher, requested); index >= 0 && index < len(supportedLocales) {
			if c, ok := catalogs[supportedLocales[index]]; ok {
				return c
			}
		}
	}
	return catalogs[BaseLocale]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata so template
// variables without metadata render as empty.
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

// RegisterCatalog registers a catalog for the given locale and publishes its
// messages to the x/text message catalog under the locale's tag.
func RegisterCatalog(locale string, cat *Catalog) {
	tag, err := language.Parse(locale)
	if err != nil {
		return
	}

	catalogsMu.Lock()
	defer catalogsMu.Unlock()

	if _, exists := catalogs[locale]; !exists {
		supportedTags = append(supportedTags, tag)
		supportedLocales = append(supportedLocales, locale)
		matcher = language.NewMatcher(supportedTags)
	}
	catalogs[locale] = cat

	for key, value := range cat.messages {
		message.SetString(tag, key, value)
	}
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
