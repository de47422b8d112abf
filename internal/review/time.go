package review

import "time"

// timeNow is swapped out in tests for deterministic clocks.
var timeNow = time.Now
