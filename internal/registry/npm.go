package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"depsiren/internal/model"
)

type npmResponse struct {
	DistTags    map[string]string     `json:"dist-tags"`
	Time        map[string]string     `json:"time"`
	Versions    map[string]npmVersion `json:"versions"`
	Maintainers []maintainerEntry     `json:"maintainers"`
}

type npmVersion struct {
	Homepage   string          `json:"homepage"`
	Repository repositoryEntry `json:"repository"`
}

// repositoryEntry decodes a repository that may be a bare URL string or an
// object with a "url" field.
type repositoryEntry struct {
	URL string
}

func (r *repositoryEntry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		r.URL = s
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		r.URL = obj.URL
	}
	return nil
}

func (c *Client) fetchNpm(ctx context.Context, spec model.DependencySpec) *model.Metadata {
	var payload npmResponse
	raw, err := c.get(ctx, fmt.Sprintf("%s/%s", c.NpmRegistryURL, spec.Name), &payload)
	if err != nil {
		return nil
	}

	// The time map carries two bookkeeping keys alongside the versions.
	var stamps []string
	for version, published := range payload.Time {
		if version == "created" || version == "modified" {
			continue
		}
		stamps = append(stamps, published)
	}
	first, latest := timeBounds(stamps)

	latestTag := payload.DistTags["latest"]
	latestVersion := payload.Versions[latestTag]

	return &model.Metadata{
		Name:            spec.Name,
		Ecosystem:       model.EcosystemNpm,
		LatestVersion:   latestTag,
		LatestPublished: latest,
		FirstPublished:  first,
		Maintainers:     maintainerNames(payload.Maintainers),
		WeeklyDownloads: c.fetchNpmDownloads(ctx, spec.Name),
		Homepage:        latestVersion.Homepage,
		RepositoryURL:   latestVersion.Repository.URL,
		Raw:             raw,
	}
}

// fetchNpmDownloads queries the downloads-by-week endpoint. Any failure
// leaves the count absent; downloads are never worth failing a lookup over.
func (c *Client) fetchNpmDownloads(ctx context.Context, name string) *int {
	var payload struct {
		Downloads *int `json:"downloads"`
	}
	if _, err := c.get(ctx, fmt.Sprintf("%s/%s", c.NpmDownloadsURL, name), &payload); err != nil {
		return nil
	}
	return payload.Downloads
}
