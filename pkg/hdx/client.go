// Package hdx is a minimal client for CKAN-style dataset catalogs such as
// the Humanitarian Data Exchange: dataset search plus resource download.
package hdx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/b-j-mills/pcoding-investigating/internal/fetcher"
)

const searchPageSize = 100

// Catalog is the narrow surface the audit consumes.
type Catalog interface {
	// SearchDatasets returns every dataset matching the filter query, in
	// catalog listing order.
	SearchDatasets(ctx context.Context, filterQuery string) ([]Dataset, error)

	// DownloadResource fetches a resource into destDir and returns the
	// local file path.
	DownloadResource(ctx context.Context, res Resource, destDir string) (string, error)
}

// Dataset is catalog metadata for one published dataset.
type Dataset struct {
	Name      string
	Title     string
	Locations []string // uppercase ISO3 codes
	Resources []Resource
}

// FileTypes returns the unique declared resource formats, lowercased, in
// first-seen order.
func (d Dataset) FileTypes() []string {
	seen := make(map[string]struct{}, len(d.Resources))
	var types []string
	for _, r := range d.Resources {
		ft := r.FileType()
		if _, ok := seen[ft]; ok {
			continue
		}
		seen[ft] = struct{}{}
		types = append(types, ft)
	}
	return types
}

// Resource is catalog metadata for one downloadable file.
type Resource struct {
	Name   string
	Format string
	Size   int64
	URL    string
}

// FileType returns the declared format, lowercased.
func (r Resource) FileType() string {
	return strings.ToLower(r.Format)
}

// Client talks to a CKAN action API.
type Client struct {
	baseURL string
	f       fetcher.Fetcher
}

// NewClient creates a catalog client against the given base URL.
func NewClient(baseURL string, f fetcher.Fetcher) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), f: f}
}

// ckan wire types, trimmed to the fields the audit reads.
type searchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Count   int           `json:"count"`
		Results []ckanPackage `json:"results"`
	} `json:"result"`
}

type ckanPackage struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Groups []struct {
		Name string `json:"name"`
	} `json:"groups"`
	Resources []struct {
		Name   string `json:"name"`
		Format string `json:"format"`
		Size   int64  `json:"size"`
		URL    string `json:"url"`
	} `json:"resources"`
}

// SearchDatasets pages through package_search until the reported count is
// exhausted.
func (c *Client) SearchDatasets(ctx context.Context, filterQuery string) ([]Dataset, error) {
	log := zap.L().With(zap.String("component", "hdx.client"))

	var datasets []Dataset
	for start := 0; ; start += searchPageSize {
		page, count, err := c.searchPage(ctx, filterQuery, start)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, page...)
		if len(page) == 0 || len(datasets) >= count {
			break
		}
	}

	log.Info("dataset search complete",
		zap.String("query", filterQuery),
		zap.Int("datasets", len(datasets)),
	)
	return datasets, nil
}

func (c *Client) searchPage(ctx context.Context, filterQuery string, start int) ([]Dataset, int, error) {
	q := url.Values{}
	if filterQuery != "" {
		q.Set("fq", filterQuery)
	}
	q.Set("rows", fmt.Sprint(searchPageSize))
	q.Set("start", fmt.Sprint(start))

	body, err := c.f.Download(ctx, c.baseURL+"/api/3/action/package_search?"+q.Encode())
	if err != nil {
		return nil, 0, eris.Wrap(err, "hdx: search datasets")
	}
	defer body.Close() //nolint:errcheck

	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, 0, eris.Wrap(err, "hdx: decode search response")
	}
	if !resp.Success {
		return nil, 0, eris.New("hdx: search request unsuccessful")
	}

	datasets := make([]Dataset, 0, len(resp.Result.Results))
	for _, pkg := range resp.Result.Results {
		ds := Dataset{Name: pkg.Name, Title: pkg.Title}
		for _, g := range pkg.Groups {
			ds.Locations = append(ds.Locations, strings.ToUpper(g.Name))
		}
		for _, r := range pkg.Resources {
			ds.Resources = append(ds.Resources, Resource{
				Name:   r.Name,
				Format: r.Format,
				Size:   r.Size,
				URL:    r.URL,
			})
		}
		datasets = append(datasets, ds)
	}
	return datasets, resp.Result.Count, nil
}

// DownloadResource fetches the resource body into destDir, named after the
// final URL path segment.
func (c *Client) DownloadResource(ctx context.Context, res Resource, destDir string) (string, error) {
	u, err := url.Parse(res.URL)
	if err != nil {
		return "", eris.Wrapf(err, "hdx: parse resource url %q", res.URL)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		name = res.Name
	}

	dest := filepath.Join(destDir, filepath.Base(name))
	if _, err := c.f.DownloadToFile(ctx, res.URL, dest); err != nil {
		return "", err
	}
	return dest, nil
}
