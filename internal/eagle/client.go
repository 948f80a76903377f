// Package eagle talks to the local Eagle media library API.
package eagle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const defaultTimeout = 5 * time.Second

type APIError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 && e.StatusCode != http.StatusOK {
		return fmt.Sprintf("eagle %s: http status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("eagle %s: status %q", e.Endpoint, e.Status)
}

type ApplicationInfo struct {
	Version           string
	PrereleaseVersion string
	BuildVersion      string
	ExecPath          string
	Platform          string
}

// ItemInfo is one library item. Sizes are in bytes, dimensions in pixels and
// times in unix milliseconds.
type ItemInfo struct {
	ID               string
	Name             string
	Ext              string
	Size             int64
	Width            int
	Height           int
	Tags             []string
	Folders          []string
	URL              string
	Annotation       string
	IsDeleted        bool
	ModificationTime int64
	LastModified     int64
}

// FileName is the name Eagle stores the item under.
func (i ItemInfo) FileName() string {
	if i.Ext == "" {
		return i.Name
	}
	return i.Name + "." + i.Ext
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(serverURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) ApplicationInfo(ctx context.Context) (*ApplicationInfo, error) {
	data, err := c.get(ctx, "/api/application/info", nil)
	if err != nil {
		return nil, err
	}

	return &ApplicationInfo{
		Version:           data.Get("version").String(),
		PrereleaseVersion: data.Get("prereleaseVersion").String(),
		BuildVersion:      data.Get("buildVersion").String(),
		ExecPath:          data.Get("execPath").String(),
		Platform:          data.Get("platform").String(),
	}, nil
}

func (c *Client) ItemInfo(ctx context.Context, id string) (*ItemInfo, error) {
	if id == "" {
		return nil, fmt.Errorf("item id cannot be empty")
	}

	data, err := c.get(ctx, "/api/item/info", url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}

	return &ItemInfo{
		ID:               data.Get("id").String(),
		Name:             data.Get("name").String(),
		Ext:              data.Get("ext").String(),
		Size:             data.Get("size").Int(),
		Width:            int(data.Get("width").Int()),
		Height:           int(data.Get("height").Int()),
		Tags:             stringSlice(data.Get("tags")),
		Folders:          stringSlice(data.Get("folders")),
		URL:              data.Get("url").String(),
		Annotation:       data.Get("annotation").String(),
		IsDeleted:        data.Get("isDeleted").Bool(),
		ModificationTime: data.Get("modificationTime").Int(),
		LastModified:     data.Get("lastModified").Int(),
	}, nil
}

// get performs the request and returns the "data" member of a successful
// response envelope.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (gjson.Result, error) {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to reach eagle at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("eagle %s: invalid json response", endpoint)
	}

	parsed := gjson.ParseBytes(body)
	if status := parsed.Get("status").String(); status != "success" {
		return gjson.Result{}, &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: status}
	}

	return parsed.Get("data"), nil
}

func stringSlice(r gjson.Result) []string {
	arr := r.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}
