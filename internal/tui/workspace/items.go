package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Paintersrp/eagle/internal/cache"
	"github.com/Paintersrp/eagle/internal/gallery"
	"github.com/Paintersrp/eagle/internal/handler"
)

type ListItem struct {
	fileName     string
	path         string
	title        string
	subdirectory string
	tags         []string
	imageCount   int
}

func (i ListItem) Title() string {
	if i.title == "" {
		return strings.TrimSuffix(i.fileName, filepath.Ext(i.fileName))
	}
	return i.title
}

func (i ListItem) Description() string {
	description := ""
	if i.subdirectory != "" {
		description += fmt.Sprintf("[%s] ", i.subdirectory)
	}

	switch i.imageCount {
	case 0:
		description += "No images"
	case 1:
		description += "1 image"
	default:
		description += fmt.Sprintf("%d images", i.imageCount)
	}

	if len(i.tags) > 0 {
		description += " · " + strings.Join(i.tags, ", ")
	}
	return description
}

func (i ListItem) FilterValue() string {
	return strings.Join([]string{i.Title(), "[" + strings.Join(i.tags, " ") + "]", "[" + i.subdirectory + "]"}, " ")
}

func (i ListItem) Path() string {
	return i.path
}

const itemCacheSize = 1024

type cachedItem struct {
	modTime time.Time
	size    int64
	item    ListItem
}

type itemCache = cache.LRU[string, cachedItem]

func newItemCache() *itemCache {
	return cache.NewLRU[string, cachedItem](itemCacheSize)
}

// ParseNoteFiles builds list items for the given notes. Notes whose size and
// modification time match the cached entry are not read again; c may be nil.
func ParseNoteFiles(noteFiles []string, vaultDir string, c *itemCache) []list.Item {
	items := make([]list.Item, 0, len(noteFiles))
	for _, p := range noteFiles {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}

		if c != nil {
			if hit, ok := c.Get(p); ok && hit.size == info.Size() && hit.modTime.Equal(info.ModTime()) {
				items = append(items, hit.item)
				continue
			}
		}

		content, err := os.ReadFile(p)
		if err != nil {
			continue
		}

		title, tags := handler.ParseFrontMatter(content)
		item := ListItem{
			fileName:     filepath.Base(p),
			path:         p,
			title:        title,
			subdirectory: handler.Subdirectory(vaultDir, p),
			tags:         tags,
			imageCount:   len(gallery.ExtractReferences(string(content))),
		}
		if c != nil {
			c.Put(p, cachedItem{modTime: info.ModTime(), size: info.Size(), item: item})
		}
		items = append(items, item)
	}
	return items
}
