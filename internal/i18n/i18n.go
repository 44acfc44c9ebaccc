// Package i18n serves localized slot names and labels from embedded locale
// files.
package i18n

import (
	"embed"
	"encoding/json"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"simple-watchface/internal/complication"
)

//go:embed locales/*.json
var localeFS embed.FS

// Label message ids.
const (
	LabelSlots    = "label_slots"
	LabelSlot     = "label_slot"
	LabelTypes    = "label_types"
	LabelSource   = "label_source"
	LabelAmbient  = "label_ambient"
	LabelNumerals = "label_numerals"
	LabelHands    = "label_hands"
	LabelYes      = "label_yes"
	LabelNo       = "label_no"
)

// Localizer translates message ids for one language, falling back to English.
type Localizer struct {
	lang      string
	localizer *i18n.Localizer
	log       zerolog.Logger
}

// Bundle holds every embedded locale.
type Bundle struct {
	bundle    *i18n.Bundle
	languages []string
	log       zerolog.Logger
}

// NewBundle loads the embedded locale files named active.<lang>.json.
func NewBundle(log zerolog.Logger) (*Bundle, error) {
	log = log.With().Str("component", "i18n").Logger()

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		lang, ok := strings.CutPrefix(name, "active.")
		if !ok {
			continue
		}
		lang, ok = strings.CutSuffix(lang, ".json")
		if !ok || lang == "" {
			log.Warn().Str("file", name).Msg("Skipping badly named locale")
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, err
		}
		langs = append(langs, lang)
		log.Debug().Str("lang", lang).Msg("Locale loaded")
	}
	sort.Strings(langs)

	return &Bundle{bundle: bundle, languages: langs, log: log}, nil
}

// Languages lists the embedded language codes.
func (b *Bundle) Languages() []string {
	return append([]string(nil), b.languages...)
}

// Localizer returns a translator for lang. Unknown languages get English.
func (b *Bundle) Localizer(lang string) *Localizer {
	return &Localizer{
		lang:      lang,
		localizer: i18n.NewLocalizer(b.bundle, lang, language.English.String()),
		log:       b.log,
	}
}

// Msg translates id, returning id itself when no translation exists.
func (l *Localizer) Msg(id string) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		l.log.Debug().Err(err).Str("id", id).Str("lang", l.lang).Msg("Missing translation")
		return id
	}
	return msg
}

// SlotName returns the localized name of a complication slot.
func (l *Localizer) SlotName(slot complication.Slot) string {
	return l.Msg(slot.NameKey)
}

// YesNo localizes a boolean.
func (l *Localizer) YesNo(v bool) string {
	if v {
		return l.Msg(LabelYes)
	}
	return l.Msg(LabelNo)
}
