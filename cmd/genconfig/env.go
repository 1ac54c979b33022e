// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"codeberg.org/phrasebook/phrasebook/config"
)

const envFileHeader = `# Phrasebook configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`

// uncommentedEnv lists the variables written as active assignments.
var uncommentedEnv = map[string]bool{
	"PHRASEBOOK_HOST": true,
	"PHRASEBOOK_PORT": true,
}

// envExample renders every field with an env tag, one section per
// configuration group.
func envExample(cfg *config.ServerConfig) string {
	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		section, sectionValue := typ.Field(i), val.Field(i)

		if sectionValue.Kind() != reflect.Struct || section.Name == "Build" {
			continue
		}

		var lines []string

		for j := range section.Type.NumField() {
			field, value := section.Type.Field(j), sectionValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			name, _, _ := strings.Cut(tag, ",")
			lines = append(lines, envLine(name, value))
		}

		if len(lines) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n%s\n\n", section.Name, strings.Join(lines, "\n"))
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func envLine(name string, value reflect.Value) string {
	if uncommentedEnv[name] {
		return fmt.Sprintf("%s=%q", name, fmt.Sprint(value.Interface()))
	}

	switch {
	case value.Kind() == reflect.Slice:
		items := make([]string, value.Len())
		for i := range items {
			items[i] = fmt.Sprint(value.Index(i).Interface())
		}

		return fmt.Sprintf("# %s=%s", name, strings.Join(items, ","))
	case value.Kind() == reflect.String && value.Len() == 0:
		return fmt.Sprintf("# %s=", name)
	case value.Type() == reflect.TypeFor[time.Duration]():
		return fmt.Sprintf("# %s=%s", name, time.Duration(value.Int()))
	default:
		return fmt.Sprintf("# %s=%v", name, value.Interface())
	}
}
