package middleware

import "time"

// RequestObserver records the outcome of one HTTP request. route is the chi
// route pattern, not the raw path, to keep label cardinality bounded.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}
