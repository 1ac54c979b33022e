// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets provides access to the application's embedded files.
*/
package assets

import "io/fs"

// FS provides access to the embedded file system. main assigns it at start-up;
// tests may substitute an fstest.MapFS.
var FS fs.FS
