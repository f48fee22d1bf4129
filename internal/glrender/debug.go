// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build gldebug

package glrender

import "github.com/gogpu/imgl/glx"

// debugCheck drains the backend's sticky error flag and logs every
// pending error with the call-site label. Only present in builds with
// the gldebug tag; it never changes control flow.
func debugCheck(api glx.API, site string) {
	for {
		code := api.Err()
		if code == glx.NoError {
			return
		}
		slogger().Error("glrender: graphics API error", "site", site, "code", code.String())
	}
}
