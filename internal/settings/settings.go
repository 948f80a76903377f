// Package settings holds the gallery's user configuration and persists it as a
// single blob in the host's key-value storage.
package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// ImageSourceType selects how image references found in a note are turned
// into renderable URIs.
type ImageSourceType string

const (
	// ByUrlTemplate substitutes the reference into Settings.ImageBaseURL.
	ByUrlTemplate ImageSourceType = "url"
	// ByEmbeddedContent treats the reference as a base64 encoded PNG payload.
	ByEmbeddedContent ImageSourceType = "base64"
)

func (t ImageSourceType) Label() string {
	switch t {
	case ByUrlTemplate:
		return "Website URL"
	case ByEmbeddedContent:
		return "Base64 Content"
	default:
		return string(t)
	}
}

// Settings is the persisted record. Field tags match the blob layout.
type Settings struct {
	ServerURL       string          `yaml:"serverUrl"       json:"serverUrl"       mapstructure:"serverUrl"`
	ImageSourceType ImageSourceType `yaml:"imageSourceType" json:"imageSourceType" mapstructure:"imageSourceType"`
	ImageBaseURL    string          `yaml:"imageBaseUrl"    json:"imageBaseUrl"    mapstructure:"imageBaseUrl"`
	DefaultColWidth int             `yaml:"defaultColWidth" json:"defaultColWidth" mapstructure:"defaultColWidth"`
}

const (
	KeyServerURL       = "serverUrl"
	KeyImageSourceType = "imageSourceType"
	KeyImageBaseURL    = "imageBaseUrl"
	KeyDefaultColWidth = "defaultColWidth"
)

// Keys lists the settings in display order.
var Keys = []string{
	KeyServerURL,
	KeyImageSourceType,
	KeyImageBaseURL,
	KeyDefaultColWidth,
}

func Defaults() Settings {
	return Settings{
		ServerURL:       "http://localhost:41595",
		ImageSourceType: ByEmbeddedContent,
		ImageBaseURL:    "",
		DefaultColWidth: 100,
	}
}

type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf(
		"unknown setting %q. Please choose from %s",
		e.Key,
		strings.Join(Keys, ", "),
	)
}

// Get returns the string form of one setting.
func (s Settings) Get(key string) (string, error) {
	switch canonicalKey(key) {
	case KeyServerURL:
		return s.ServerURL, nil
	case KeyImageSourceType:
		return string(s.ImageSourceType), nil
	case KeyImageBaseURL:
		return s.ImageBaseURL, nil
	case KeyDefaultColWidth:
		return strconv.Itoa(s.DefaultColWidth), nil
	}
	return "", &UnknownKeyError{Key: key}
}

// With returns a copy of s with one field replaced by value.
func (s Settings) With(key, value string) (Settings, error) {
	switch canonicalKey(key) {
	case KeyServerURL:
		s.ServerURL = value
	case KeyImageSourceType:
		s.ImageSourceType = ImageSourceType(strings.TrimSpace(value))
	case KeyImageBaseURL:
		s.ImageBaseURL = value
	case KeyDefaultColWidth:
		width, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return s, fmt.Errorf("defaultColWidth must be an integer: %w", err)
		}
		s.DefaultColWidth = width
	default:
		return s, &UnknownKeyError{Key: key}
	}
	return s, nil
}

// BaseURLActive reports whether ImageBaseURL takes part in resolution.
func (s Settings) BaseURLActive() bool {
	return s.ImageSourceType == ByUrlTemplate
}

func canonicalKey(key string) string {
	for _, k := range Keys {
		if strings.EqualFold(k, strings.TrimSpace(key)) {
			return k
		}
	}
	return ""
}
