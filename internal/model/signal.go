package model

import "fmt"

type Category string

const (
	CategoryTyposquat    Category = "typosquat"
	CategoryFreshRelease Category = "fresh-release"
	CategoryStalePackage Category = "stale-package"
	CategoryMetadataGaps Category = "metadata-gaps"
	CategoryPopularity   Category = "popularity"
	CategoryMaintainers  Category = "maintainers"
)

func (c Category) String() string {
	return string(c)
}

// ParseCategory validates a category string against the closed set.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryTyposquat, CategoryFreshRelease, CategoryStalePackage,
		CategoryMetadataGaps, CategoryPopularity, CategoryMaintainers:
		return Category(s), nil
	default:
		return "", fmt.Errorf("invalid category: %s", s)
	}
}

// RiskSignal is a single risk factor identified during analysis.
// Score is the severity of the signal on a 0-100 scale.
type RiskSignal struct {
	Reason   string   `json:"reason"`
	Score    int      `json:"score"`
	Category Category `json:"category"`
}
