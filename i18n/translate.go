// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"fmt"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// NewUserError returns an error whose message is msgid translated for the
// locale in ctx and expanded with kv.
func NewUserError(ctx context.Context, msgid string, kv ...any) *UserError {
	return &UserError{
		msg:   Tr(ctx, msgid, kv...),
		msgid: msgid,
	}
}

// UserError is an error whose message can be shown directly to the end user.
type UserError struct {
	msg   string
	msgid string
}

// Error returns the translated message.
func (e *UserError) Error() string {
	return e.msg
}

// MsgID returns the untranslated source message.
func (e *UserError) MsgID() string {
	return e.msgid
}

// Tr returns the translation of msgid, the original English UI text, for the
// locale in ctx. Key-value pairs are passed to [Expand] as arguments.
//
// If no translation is found, Tr uses msgid itself, visibly wrapped when strict
// mode is enabled.
func Tr(ctx context.Context, msgid string, kv ...any) string {
	return translate(ctx, "", msgid, "", 0, false, v(kv...))
}

// TrC translates msgid under a disambiguating context, like gettext's pgettext.
func TrC(ctx context.Context, contextKey, msgid string, kv ...any) string {
	return translate(ctx, contextKey, msgid, "", 0, false, v(kv...))
}

// TrN translates a singular or plural message depending on n. Without a
// translation, singular is used when n == 1 and plural otherwise.
func TrN(ctx context.Context, singular, plural string, n int, kv ...any) string {
	return translate(ctx, "", singular, plural, n, true, v(kv...))
}

// TrNC is the contextual variant of TrN, like gettext's npgettext.
func TrNC(ctx context.Context, contextKey, singular, plural string, n int, kv ...any) string {
	return translate(ctx, contextKey, singular, plural, n, true, v(kv...))
}

func translate(
	ctx context.Context,
	contextKey, singular, plural string,
	n int,
	pluralMode bool,
	args Args,
) string {
	loc, matched := resolveLocale(TagFrom(ctx))

	base := singular
	if pluralMode && n != 1 {
		base = plural
	}

	finalText := base
	found := false

	if loc != nil {
		switch {
		case pluralMode && contextKey != "":
			found = loc.IsTranslatedNDC(poDomain, singular, n, contextKey)
			if found {
				finalText = loc.GetNDC(poDomain, singular, plural, n, contextKey)
			}
		case pluralMode:
			found = loc.IsTranslatedND(poDomain, singular, n)
			if found {
				finalText = loc.GetND(poDomain, singular, plural, n)
			}
		case contextKey != "":
			found = loc.IsTranslatedDC(poDomain, singular, contextKey)
			if found {
				finalText = loc.GetDC(poDomain, singular, contextKey)
			}
		default:
			found = loc.IsTranslatedD(poDomain, singular)
			if found {
				finalText = loc.GetD(poDomain, singular)
			}
		}
	}

	// The base locale is the source language; its msgids need no catalogue entry.
	if !found && matched != baseTag && strictMissingKeys() {
		logMissingOnce(strippedTagString(matched), buildLogKey(contextKey, singular))

		finalText = "⟦" + base + "⟧"
	}

	return Expand(finalText, args)
}

// resolveLocale matches t to a loaded locale and returns it with the matched
// tag. Without a matcher or a loaded locale it returns nil and the matched tag.
func resolveLocale(t language.Tag) (*gotext.Locale, language.Tag) {
	if matcher == nil {
		return nil, baseTag
	}

	matched := Match(t.String())

	return localesByTag[matched.String()], matched
}

// v builds Args from alternating key, value pairs. Values may be an [Arg], a
// string, a map[string]string (attributes), or anything printable with %v.
// Panics on programmer error.
func v(kv ...any) Args {
	if len(kv)%2 != 0 {
		panic("i18n: odd number of arguments, want key, value pairs")
	}

	args := make(Args, len(kv)/2)

	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n: key must be string")
		}

		switch val := kv[i+1].(type) {
		case Arg:
			args[k] = val
		case string:
			args[k] = Text(val)
		case map[string]string:
			args[k] = Attrs(val)
		default:
			args[k] = Text(fmt.Sprint(val))
		}
	}

	return args
}
