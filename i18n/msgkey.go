// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"
)

// Translatable is a value that can translate itself using a context.
type Translatable interface {
	Tr(ctx context.Context) string
}

// MsgKey is a source message id (msgid): the original English UI text.
type MsgKey string

// Tr translates the msgid for the locale in ctx, like [Tr] without arguments.
func (s MsgKey) Tr(ctx context.Context) string {
	return Tr(ctx, string(s))
}

// Render writes the translation, making MsgKey a templ component.
func (s MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, s.Tr(ctx))

	return err
}
