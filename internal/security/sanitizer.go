package security

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer cleans rich-text HTML before it is stored.
type HTMLSanitizer interface {
	Sanitize(rawHTML string) string
}

// NoticeSanitizer allows the markup a rich-text editor produces: headings,
// lists, tables, links, images and inline formatting. Scripts, styles,
// event handlers and javascript: URLs are removed.
type NoticeSanitizer struct {
	policy *bluemonday.Policy
}

var textAlign = regexp.MustCompile(`^(left|right|center|justify)$`)

// NewNoticeSanitizer builds the policy once; Sanitize is safe for concurrent use.
func NewNoticeSanitizer() *NoticeSanitizer {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("p", "span", "div", "pre", "code")
	p.AllowStyles("text-align").MatchingEnum("left", "right", "center", "justify").OnElements("p", "h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("align").Matching(textAlign).OnElements("p")
	p.AllowElements("u", "s", "mark")

	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	return &NoticeSanitizer{policy: p}
}

// Sanitize returns the cleaned HTML.
func (s *NoticeSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
