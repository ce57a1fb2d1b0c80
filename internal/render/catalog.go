package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// message keys; the English text doubles as the key
const (
	msgAvailable   = "Rooms available"
	msgUnavailable = "All rooms booked"
	msgToday       = "Free today:"
	msgTomorrow    = "Free tomorrow:"
)

// DefaultLocale is used when no locale is configured.
var DefaultLocale = language.SimplifiedChinese

var supportedLocales = []language.Tag{
	language.SimplifiedChinese,
	language.English,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(DefaultLocale))

	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(fmt.Sprintf("render: bad catalog entry %q: %v", key, err))
		}
	}

	set(language.SimplifiedChinese, msgAvailable, "✅ 有空闲场地")
	set(language.SimplifiedChinese, msgUnavailable, "❌ 场地已被预约")
	set(language.SimplifiedChinese, msgToday, "今天空闲场地：")
	set(language.SimplifiedChinese, msgTomorrow, "明天空闲场地：")

	set(language.English, msgAvailable, "✅ Rooms available")
	set(language.English, msgUnavailable, "❌ All rooms booked")
	set(language.English, msgToday, "Free today:")
	set(language.English, msgTomorrow, "Free tomorrow:")

	return b
}

// ParseLocale resolves a BCP 47 string to one of the supported locales.
// The empty string yields [DefaultLocale]. Unsupported but well-formed tags
// are matched to the closest supported locale.
func ParseLocale(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLocale, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	_, idx, _ := localeMatcher.Match(tag)
	return supportedLocales[idx], nil
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}
