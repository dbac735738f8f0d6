package testutil

import "time"

// DefaultInstant is the conventional pinned time for golden tests:
// 2024-01-01T00:00:00Z. Scenarios without an explicit `now` use it so
// timestamp synthesis stays byte-stable in golden files.
var DefaultInstant = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
