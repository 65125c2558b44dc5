package locale

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFiles embed.FS

// Catalog holds the translated reply messages
type Catalog struct {
	bundle        *i18n.Bundle
	defaultLocale string
}

// NewCatalog loads every embedded message file. defaultLocale is used when
// neither the user nor the guild locale has a translation.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	defaultTag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := messageFiles.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("failed to list message files: %w", err)
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(messageFiles, "messages/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("failed to load message file %s: %w", entry.Name(), err)
		}
	}

	return &Catalog{
		bundle:        bundle,
		defaultLocale: defaultTag.String(),
	}, nil
}

// Languages returns the loaded languages
func (c *Catalog) Languages() []language.Tag {
	return c.bundle.LanguageTags()
}

// Printer returns a printer for the first supported locale in locales, then the default
func (c *Catalog) Printer(locales ...string) *Printer {
	langs := make([]string, 0, len(locales)+1)
	for _, l := range locales {
		if l != "" {
			langs = append(langs, l)
		}
	}
	langs = append(langs, c.defaultLocale)

	return &Printer{localizer: i18n.NewLocalizer(c.bundle, langs...)}
}

// Data is the template data of a message
type Data map[string]any

// Printer renders messages in one resolved language
type Printer struct {
	localizer *i18n.Localizer
}

// T renders message id with data
func (p *Printer) T(id string, data Data) string {
	msg, err := p.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"message_id": id,
			"error":      err,
		}).Warn("Missing translation")
		return id
	}
	return msg
}

// Plural renders message id choosing the plural form for count. Count is also passed as {{.Count}}.
func (p *Printer) Plural(id string, count int) string {
	msg, err := p.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: Data{"Count": count},
	})
	if err != nil {
		log.WithFields(log.Fields{
			"message_id": id,
			"error":      err,
		}).Warn("Missing translation")
		return id
	}
	return msg
}
