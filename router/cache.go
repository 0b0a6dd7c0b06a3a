package router

import (
	"regexp"
	"sync"
)

// patternCache caches compiled regexps by their source string. The set of
// distinct templates is bounded by the number of registered routes, so
// the cache grows to a fixed size and stays there. Recompiling the same
// template yields the same matcher, which keeps compilation idempotent.
var patternCache sync.Map

// compilePattern returns a cached *regexp.Regexp for expr, compiling and
// caching it on first use.
func compilePattern(expr string) (*regexp.Regexp, error) {
	if v, ok := patternCache.Load(expr); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	actual, _ := patternCache.LoadOrStore(expr, re)

	return actual.(*regexp.Regexp), nil
}
