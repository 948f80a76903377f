// Package gallery turns the active note into a mounted gallery: it extracts
// image references from note content, resolves them to renderable URIs and
// owns the lifecycle of the single render instance showing them.
package gallery

import (
	"strings"

	"github.com/Paintersrp/eagle/internal/settings"
)

const (
	namePlaceholder = "{name}"
	base64URIPrefix = "data:image/png;base64,"
)

// ImageReference identifies one image in a note. Value is a bare filename in
// url mode and an encoded payload in base64 mode.
type ImageReference struct {
	Alt   string
	Value string
}

// Resolve maps ref to a URI according to s. The template is not validated and
// the payload is not decoded; unknown source types return the reference as is.
func Resolve(ref ImageReference, s settings.Settings) string {
	switch s.ImageSourceType {
	case settings.ByUrlTemplate:
		return strings.ReplaceAll(s.ImageBaseURL, namePlaceholder, ref.Value)
	case settings.ByEmbeddedContent:
		return base64URIPrefix + ref.Value
	default:
		return ref.Value
	}
}

// ResolvedImage pairs a reference with its URI.
type ResolvedImage struct {
	Ref ImageReference
	URI string
}

func ResolveAll(refs []ImageReference, s settings.Settings) []ResolvedImage {
	out := make([]ResolvedImage, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ResolvedImage{Ref: ref, URI: Resolve(ref, s)})
	}
	return out
}
