// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package collation orders user-facing strings for a language, comparing
embedded numbers by value.

Build one [Comparator] at startup for the document language and pass it to
the code that sorts display strings:

	cmp, err := collation.New(language.German, collation.Auto)
	if err != nil {
		return err
	}

	cmp.Sort(titles)

The implementation is chosen once by [New]. Languages with collation data in
golang.org/x/text/collate use the tailored collator with numeric ordering;
others use a natural comparison over case-folded, accent-stripped text. The
fallback agrees with the collator on digits, case and accents but may break
ties differently.
*/
package collation
