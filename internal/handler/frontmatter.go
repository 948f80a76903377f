package handler

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontMatterPattern = regexp.MustCompile(`(?ms)^---\n(.+?)\n---`)

// ParseFrontMatter returns the title and tags of a note's YAML front matter.
func ParseFrontMatter(content []byte) (title string, tags []string) {
	m := frontMatterPattern.FindSubmatch(content)
	if len(m) < 2 {
		return "", nil
	}

	var data struct {
		Title string   `yaml:"title"`
		Tags  []string `yaml:"tags"`
	}
	if err := yaml.Unmarshal(m[1], &data); err != nil {
		return "", nil
	}

	return strings.TrimSpace(data.Title), data.Tags
}
