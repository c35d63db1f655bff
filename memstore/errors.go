// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import "errors"

var errReadOnly = errors.New("memstore: write in read-only transaction")
