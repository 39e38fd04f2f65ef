// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// AvailabilityCachePrefix is the prefix for cached resolved slot ranges.
const AvailabilityCachePrefix = "avail:"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// SlotTimeLayout is the wire format for slot times (24h, minutes precision).
const SlotTimeLayout = "15:04"

// WireTimeLayout is the wire format for appointment times (24h, seconds precision).
const WireTimeLayout = "15:04:05"
