// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !gldebug

package glrender

import "github.com/gogpu/imgl/glx"

// debugCheck is compiled out of release builds; error-flag polling after
// every graphics call only exists under the gldebug tag.
func debugCheck(glx.API, string) {}
