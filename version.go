// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flopsbench

import "runtime/debug"

const root = "github.com/LynnColeArt/flopsbench"

// Version returns the version and checksum of the flopsbench main module
// recorded in the running binary. Both are empty when the binary was built
// without module support or flopsbench is not the main module.
func Version() (version, sum string) {
	b, ok := debug.ReadBuildInfo()
	if !ok || b.Main.Path != root {
		return "", ""
	}
	return b.Main.Version, b.Main.Sum
}
