package registry

import (
	"context"
	"fmt"

	"depsiren/internal/model"
)

type pypiResponse struct {
	Info struct {
		Version     string            `json:"version"`
		Maintainers []maintainerEntry `json:"maintainers"`
		HomePage    string            `json:"home_page"`
		ProjectURL  string            `json:"project_url"`
	} `json:"info"`
	Releases map[string][]struct {
		UploadTime string `json:"upload_time_iso_8601"`
	} `json:"releases"`
	// PyPI does not expose weekly figures; this monthly counter is a
	// best-effort proxy and is usually absent.
	LastMonthDownloads *int `json:"last_month_downloads"`
}

func (c *Client) fetchPyPI(ctx context.Context, spec model.DependencySpec) *model.Metadata {
	var payload pypiResponse
	raw, err := c.get(ctx, fmt.Sprintf("%s/%s/json", c.PyPIURL, spec.Name), &payload)
	if err != nil {
		return nil
	}

	var stamps []string
	for _, files := range payload.Releases {
		for _, f := range files {
			stamps = append(stamps, f.UploadTime)
		}
	}
	first, latest := timeBounds(stamps)

	return &model.Metadata{
		Name:            spec.Name,
		Ecosystem:       model.EcosystemPyPI,
		LatestVersion:   payload.Info.Version,
		LatestPublished: latest,
		FirstPublished:  first,
		Maintainers:     maintainerNames(payload.Info.Maintainers),
		WeeklyDownloads: payload.LastMonthDownloads,
		Homepage:        payload.Info.HomePage,
		RepositoryURL:   payload.Info.ProjectURL,
		Raw:             raw,
	}
}
