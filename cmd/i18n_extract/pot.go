// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// writeTemplate writes entries as a gettext template.
func writeTemplate(w io.Writer, entries []entry, version string) error {
	b := bufio.NewWriter(w)

	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: Phrasebook %s\\n\"\n", version)
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", time.Now().UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintln(b, `"Language: en\n"`)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b, `"Plural-Forms: nplurals=2; plural=(n != 1);\n"`)

	for _, e := range entries {
		fmt.Fprintln(b)

		fmt.Fprint(b, "#:")

		for _, r := range e.refs {
			fmt.Fprintf(b, " %s:%d", r.file, r.line)
		}

		fmt.Fprintln(b)

		// Placeholders are not printf verbs; keep msgfmt from checking them as such.
		if strings.Contains(e.id, "%") {
			fmt.Fprintln(b, "#, no-c-format")
		}

		if e.ctx != "" {
			fmt.Fprintf(b, "msgctxt %q\n", e.ctx)
		}

		fmt.Fprintf(b, "msgid %q\n", e.id)

		if e.plural != "" {
			fmt.Fprintf(b, "msgid_plural %q\n", e.plural)
			fmt.Fprintln(b, `msgstr[0] ""`)
			fmt.Fprintln(b, `msgstr[1] ""`)
		} else {
			fmt.Fprintln(b, `msgstr ""`)
		}
	}

	return b.Flush()
}

// detectVersion resolves a version string using git describe, or "dev".
func detectVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot returns the git toplevel, else the nearest directory with
// a go.mod, else wd.
func findProjectRoot(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = wd

	if out, err := cmd.Output(); err == nil {
		if root := strings.TrimSpace(string(out)); root != "" {
			return filepath.Clean(root)
		}
	}

	for dir := filepath.Clean(wd); ; dir = filepath.Dir(dir) {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		if filepath.Dir(dir) == dir {
			return wd
		}
	}
}
