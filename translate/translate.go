// Package translate renders user visible messages in the host locale.
//
// Message keys are en-US fmt format strings; a catalog registered with
// golang.org/x/text/message may supply translations.
package translate

import (
	"errors"
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = sync.OnceValue(func() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Debug().Err(err).Msg("ls8: locale")
	}

	if len(locales) == 0 {
		return message.NewPrinter(language.AmericanEnglish)
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
})

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer().Sprintf(key, args...)
}

// New returns an error whose text is the translation of key.
func New(key message.Reference) error {
	return errors.New(From(key))
}
