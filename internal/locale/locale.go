// Package locale resolves user-facing strings in English and Cebuano.
package locale

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFS embed.FS

// Cebuano is not predeclared by x/text.
var Cebuano = language.MustParse("ceb")

// Supported lists the languages with a message file, default first.
var Supported = []language.Tag{language.English, Cebuano}

// Bundle loads the embedded message files.
func Bundle() (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, name := range []string{"messages/active.en.toml", "messages/active.ceb.toml"} {
		if _, err := b.LoadMessageFileFS(messageFS, name); err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", name, err)
		}
	}
	return b, nil
}

// Translator looks up messages for one language, falling back to English
// and then to the message id.
type Translator struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// New creates a translator for lang, e.g. "en" or "ceb". Unknown or empty
// languages resolve to English.
func New(bundle *i18n.Bundle, lang string) *Translator {
	tag := Match(lang)
	return &Translator{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}
}

// Match picks the supported language closest to lang.
func Match(lang string) language.Tag {
	desired, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(desired) == 0 {
		return language.English
	}
	matcher := language.NewMatcher(Supported)
	_, idx, conf := matcher.Match(desired...)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// Tag returns the resolved language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T returns the message id translated, or the id itself when missing.
func (t *Translator) T(id string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}

// Tf fills template data into the message.
func (t *Translator) Tf(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}

// Plural selects the plural form for count and exposes it as .Count.
func (t *Translator) Plural(id string, count int) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
	if err != nil {
		return id
	}
	return msg
}

// Indexed looks up id+n, e.g. IdentifyStep2.
func (t *Translator) Indexed(prefix string, n int) string {
	return t.T(fmt.Sprintf("%s%d", prefix, n))
}
