// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"slices"
)

// Source templates for natural-language lists. Translators supply the
// locale-specific joining words and punctuation.
var (
	LastTwoListItems  = MsgKey("{almost_last_list_item} and {last_list_item}")
	ListItemCommaRest = MsgKey("{list_item}, {rest}")
)

// CommaList joins items into a single natural-language list.
//
// lastTwo combines the final two items through the placeholders
// {almost_last_list_item} and {last_list_item}. rest then prepends each
// remaining item, working from the end towards the front, through {list_item}
// and {rest}. No items yields the empty string and a single item is returned
// unchanged.
func CommaList(items []string, lastTwo, rest string) string {
	n := len(items)

	switch n {
	case 0:
		return ""
	case 1:
		return items[0]
	}

	output := Expand(lastTwo, Args{
		"almost_last_list_item": Text(items[n-2]),
		"last_list_item":        Text(items[n-1]),
	})

	head := slices.Clone(items[:n-2])
	slices.Reverse(head)

	for _, item := range head {
		output = Expand(rest, Args{
			"list_item": Text(item),
			"rest":      Text(output),
		})
	}

	return output
}

// List joins items with the list templates translated for the locale in ctx.
func List(ctx context.Context, items []string) string {
	if len(items) < 2 {
		return CommaList(items, "", "")
	}

	return CommaList(items, LastTwoListItems.Tr(ctx), ListItemCommaRest.Tr(ctx))
}
