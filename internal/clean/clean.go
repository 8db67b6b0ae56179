// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean strips unwanted markup from raw HTML before it is sent for
// conversion, and derives human-readable section titles from filenames.
package clean

import (
	"fmt"
	stdhtml "html"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Cleaner removes denylisted elements, comment nodes, and inline style
// attributes from markup.
type Cleaner struct {
	remove map[string]bool
}

// New builds a Cleaner from the configured tag denylist. Tag names are
// matched case-insensitively.
func New(removeTags []string) *Cleaner {
	remove := make(map[string]bool, len(removeTags))
	for _, tag := range removeTags {
		remove[strings.ToLower(tag)] = true
	}
	return &Cleaner{remove: remove}
}

// Clean parses the markup, removes denylisted elements and comments, strips
// style attributes from every element, and serializes the tree back to
// text. The parse is best-effort: malformed markup is repaired by the
// parser, never rejected.
func (c *Cleaner) Clean(raw string) (string, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	c.scrub(doc)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return sb.String(), nil
}

// scrub removes unwanted nodes under n in place. Children are detached
// before their own subtrees are visited, so a denylisted element drops its
// entire subtree in one step.
func (c *Cleaner) scrub(n *html.Node) {
	var next *html.Node
	for child := n.FirstChild; child != nil; child = next {
		next = child.NextSibling
		switch {
		case child.Type == html.CommentNode:
			n.RemoveChild(child)
		case child.Type == html.ElementNode && c.remove[strings.ToLower(child.Data)]:
			n.RemoveChild(child)
		default:
			c.scrub(child)
		}
	}

	if n.Type == html.ElementNode {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if a.Key != "style" {
				kept = append(kept, a)
			}
		}
		n.Attr = kept
	}
}

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// DeriveTitle turns a source filename into a section heading: extension
// stripped, underscores become spaces, HTML entities decoded, the
// filesystem-unsafe characters <>:"/\|?* removed, and whitespace collapsed.
// The transform is deterministic and idempotent on already-clean names.
func DeriveTitle(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = stdhtml.UnescapeString(name)
	name = unsafeChars.ReplaceAllString(name, "")
	name = spaceRuns.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
