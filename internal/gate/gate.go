// Package gate decides page access for the one-time interactive unlock
// screen: which pages it protects, where it redirects, and how untrusted
// "next" targets are sanitized against open redirects.
package gate

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	// Page is the gate screen itself.
	Page = "gate.html"
	// FallbackTarget is used whenever a next target cannot be trusted.
	FallbackTarget = "index.html"
	// AdminBypassKey is the query value that skips the gate.
	AdminBypassKey = "admin"
)

// protectedPages is the allow-list of known marketing pages; it doubles as
// the set of valid redirect targets.
var protectedPages = map[string]struct{}{
	"index.html":               {},
	"shop.html":                {},
	"product.html":             {},
	"cart.html":                {},
	"checkout.html":            {},
	"about.html":               {},
	"story.html":               {},
	"story-photo.html":         {},
	"story-video.html":         {},
	"story-video-library.html": {},
	"story-video-player.html":  {},
}

// schemePattern matches any URL scheme prefix ("http:", "javascript:", ...).
var schemePattern = regexp.MustCompile(`(?i)^[a-z][a-z\d+\-.]*:`)

// IsProtected reports whether the page sits behind the gate.
func IsProtected(page string) bool {
	_, ok := protectedPages[page]
	return ok
}

// SanitizeNextTarget validates an untrusted post-gate redirect target.
// Absolute URLs, protocol-relative URLs and paths outside the known-pages
// allow-list all fall back to the default landing page.
func SanitizeNextTarget(raw string) string {
	if raw == "" {
		return FallbackTarget
	}
	if schemePattern.MatchString(raw) || strings.HasPrefix(raw, "//") {
		return FallbackTarget
	}

	trimmed := strings.TrimLeft(raw, "/")
	pathPart := trimmed
	if i := strings.IndexAny(pathPart, "?#"); i >= 0 {
		pathPart = pathPart[:i]
	}
	if !IsProtected(pathPart) {
		return FallbackTarget
	}
	return trimmed
}

// Decision is the outcome of evaluating a page load against the gate.
type Decision struct {
	// SetGatePassed asks the caller to persist the session gate flag
	// (admin bypass).
	SetGatePassed bool
	// RedirectTo is the target to navigate to; empty means stay.
	RedirectTo string
}

// Decide evaluates the gate rules for a page load. page is the bare file
// name, query its parsed query string, gatePassed the stored session flag.
func Decide(page string, query url.Values, gatePassed bool) Decision {
	if page == "" {
		page = FallbackTarget
	}

	var d Decision
	if query.Get("key") == AdminBypassKey {
		d.SetGatePassed = true
		gatePassed = true
	}

	if page != Page && IsProtected(page) && !gatePassed {
		d.RedirectTo = Page + "?next=" + url.QueryEscape(currentTarget(page, query))
		return d
	}

	if page == Page && gatePassed {
		d.RedirectTo = SanitizeNextTarget(query.Get("next"))
	}
	return d
}

// currentTarget rebuilds the page plus its query so the gate can send the
// visitor back after the unlock.
func currentTarget(page string, query url.Values) string {
	if len(query) == 0 {
		return page
	}
	return page + "?" + query.Encode()
}
