package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"depsiren/internal/cache"
	"depsiren/internal/model"
)

const (
	DefaultPyPIURL         = "https://pypi.org/pypi"
	DefaultNpmRegistryURL  = "https://registry.npmjs.org"
	DefaultNpmDownloadsURL = "https://api.npmjs.org/downloads/point/last-week"
)

// Client fetches and normalizes registry metadata. The URL fields can be
// overridden for tests or mirrors.
type Client struct {
	HTTPClient      *http.Client
	PyPIURL         string
	NpmRegistryURL  string
	NpmDownloadsURL string

	cache *cache.Cache
}

func NewClient(c *cache.Cache, timeout time.Duration) *Client {
	return &Client{
		HTTPClient:      &http.Client{Timeout: timeout},
		PyPIURL:         DefaultPyPIURL,
		NpmRegistryURL:  DefaultNpmRegistryURL,
		NpmDownloadsURL: DefaultNpmDownloadsURL,
		cache:           c,
	}
}

// Fetch returns normalized metadata for the dependency, or nil when none is
// obtainable. The cache is consulted first; fresh results are written back
// before returning. Any transport or decode failure, and any unknown
// ecosystem, yields nil rather than an error so one lookup can never affect
// another dependency's scoring.
func (c *Client) Fetch(ctx context.Context, spec model.DependencySpec) *model.Metadata {
	slug := spec.Slug()
	if md, ok := c.cache.Get(slug); ok {
		return md
	}

	var md *model.Metadata
	switch spec.Ecosystem {
	case model.EcosystemPyPI:
		md = c.fetchPyPI(ctx, spec)
	case model.EcosystemNpm:
		md = c.fetchNpm(ctx, spec)
	default:
		return nil
	}

	if md != nil {
		_ = c.cache.Set(slug, *md)
	}
	return md
}

// FetchAll fetches metadata for all specs with at most jobs concurrent
// lookups and returns the results keyed by slug. A missing or failed lookup
// is recorded as a nil entry. Completion order is not meaningful; callers
// sort at presentation time.
func (c *Client) FetchAll(ctx context.Context, specs []model.DependencySpec, jobs int) map[string]*model.Metadata {
	if jobs < 1 {
		jobs = 1
	}

	results := make(map[string]*model.Metadata, len(specs))
	var mu sync.Mutex
	var wg sync.WaitGroup

	work := make(chan model.DependencySpec)
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range work {
				md := c.Fetch(ctx, spec)
				mu.Lock()
				results[spec.Slug()] = md
				mu.Unlock()
			}
		}()
	}

	for _, spec := range specs {
		work <- spec
	}
	close(work)
	wg.Wait()

	return results
}

// get issues a GET and decodes the JSON body into out, returning the raw
// body as well. Non-200 responses and decode failures return an error.
func (c *Client) get(ctx context.Context, url string, out any) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errStatus(resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return raw, nil
}

type errStatus int

func (e errStatus) Error() string {
	return "unexpected status " + http.StatusText(int(e))
}

// maintainerEntry decodes a registry maintainer that may be a bare name
// string or an object with a "name" field. Anything else degrades to empty,
// which the normalizers filter out.
type maintainerEntry struct {
	Name string
}

func (m *maintainerEntry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		m.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		m.Name = obj.Name
	}
	return nil
}

func maintainerNames(entries []maintainerEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names
}

// parseTime parses a registry timestamp into a UTC instant. Malformed
// strings yield nil; the field is simply absent for that entry.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Some registries omit the zone designator; treat those as UTC.
		t, err = time.Parse("2006-01-02T15:04:05", s)
		if err != nil {
			return nil
		}
	}
	u := t.UTC()
	return &u
}

// timeBounds returns the earliest and latest of the parseable instants.
// Both are nil when nothing parses.
func timeBounds(stamps []string) (first, latest *time.Time) {
	for _, s := range stamps {
		t := parseTime(s)
		if t == nil {
			continue
		}
		if first == nil || t.Before(*first) {
			first = t
		}
		if latest == nil || t.After(*latest) {
			latest = t
		}
	}
	return first, latest
}
