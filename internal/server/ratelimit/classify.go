package ratelimit

import "strings"

// Classify maps a request to its cost class.
//
// Mutating pipeline and analytics routes are enumerated; everything else
// is a read. New expensive routes must be added here or they ride the
// generous read budget.
func Classify(path, method string) Class {
	if method == "GET" && path == "/health" {
		return ClassExempt
	}

	if method == "POST" {
		switch {
		case path == "/publish" || strings.HasPrefix(path, "/publish/"):
			return ClassPipeline
		case path == "/analyze" || path == "/metrics/collect":
			return ClassAnalytics
		}
	}

	return ClassRead
}
