package gallery

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var embedPattern = regexp.MustCompile(`!\[\[([^\]|]+)(?:\|([^\]]*))?\]\]`)

type positioned struct {
	offset int
	ref    ImageReference
}

// span is a half-open byte range of the source.
type span struct {
	start, stop int
}

type codeSpans []span

func (c codeSpans) contains(offset int) bool {
	for _, s := range c {
		if offset >= s.start && offset < s.stop {
			return true
		}
	}
	return false
}

// ExtractReferences returns the image references in content in document
// order: markdown images (![alt](ref)) and vault embeds (![[ref|alt]]).
// Anything inside code blocks or code spans is ignored.
func ExtractReferences(content string) []ImageReference {
	source := []byte(content)

	var (
		images []ImageReference
		code   codeSpans
	)

	document := goldmark.DefaultParser().Parse(text.NewReader(source))
	_ = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if s, ok := linesSpan(n); ok {
				code = append(code, s)
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeSpan:
			if s, ok := childrenSpan(n); ok {
				code = append(code, s)
			}
			return ast.WalkSkipChildren, nil

		case *ast.Image:
			dest := strings.TrimSpace(string(node.Destination))
			if dest != "" {
				images = append(images, ImageReference{
					Alt:   strings.TrimSpace(string(node.Text(source))),
					Value: dest,
				})
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	found := make([]positioned, 0, len(images))

	// Images come out of the walk in document order, so each one is located
	// by scanning forward from the previous one.
	cursor := 0
	for _, img := range images {
		offset := imageOffset(content, cursor, img.Value, code)
		if offset < 0 {
			offset = len(content)
		} else {
			cursor = offset + 2
		}
		found = append(found, positioned{offset: offset, ref: img})
	}

	for _, m := range embedPattern.FindAllStringSubmatchIndex(content, -1) {
		if code.contains(m[0]) {
			continue
		}
		value := strings.TrimSpace(content[m[2]:m[3]])
		if value == "" {
			continue
		}
		alt := ""
		if m[4] >= 0 {
			alt = strings.TrimSpace(content[m[4]:m[5]])
		}
		found = append(found, positioned{
			offset: m[0],
			ref:    ImageReference{Alt: alt, Value: value},
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].offset < found[j].offset
	})

	refs := make([]ImageReference, 0, len(found))
	for _, f := range found {
		refs = append(refs, f.ref)
	}
	return refs
}

// imageOffset returns the position of the "![" opening the image whose
// destination is dest, searching from `from`, or -1.
func imageOffset(content string, from int, dest string, code codeSpans) int {
	for i := from; i < len(content)-1; {
		idx := strings.Index(content[i:], "![")
		if idx < 0 {
			return -1
		}
		at := i + idx
		i = at + 2

		if strings.HasPrefix(content[at+2:], "[") || code.contains(at) {
			continue
		}
		if opensImage(content[at+2:], dest) {
			return at
		}
	}
	return -1
}

// opensImage reports whether rest, the text after "![", closes its alt text
// with a link to dest.
func opensImage(rest, dest string) bool {
	end := strings.Index(rest, "](")
	if end < 0 {
		return false
	}
	target := strings.TrimLeft(rest[end+2:], " \t\n<")
	return strings.HasPrefix(target, dest)
}

func linesSpan(n ast.Node) (span, bool) {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return span{}, false
	}
	return span{start: lines.At(0).Start, stop: lines.At(lines.Len() - 1).Stop}, true
}

func childrenSpan(n ast.Node) (span, bool) {
	s := span{start: -1}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		if s.start < 0 {
			s.start = t.Segment.Start
		}
		s.stop = t.Segment.Stop
	}
	return s, s.start >= 0
}
