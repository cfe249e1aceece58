package scoring

import (
	"fmt"
	"time"

	"github.com/agnivade/levenshtein"

	"depsiren/internal/model"
)

const (
	recentThresholdDays   = 45
	staleThresholdDays    = 365
	lowDownloadsThreshold = 500
)

// Test seams: the evaluators are pure given these.
var (
	timeNow         = time.Now
	referenceCorpus = TopPackages
)

// Assess runs every evaluator against the dependency and returns the
// complete assessment. When metadata is absent the evaluators are skipped
// entirely and the single metadata-gaps signal is the whole verdict.
// Re-running with the same inputs produces identical output.
func Assess(spec model.DependencySpec, md *model.Metadata) model.PackageAssessment {
	assessment := model.PackageAssessment{Dependency: spec, Metadata: md}

	if md == nil {
		assessment.AddSignal(model.RiskSignal{
			Reason:   "Package metadata unavailable; registry lookup failed.",
			Score:    40,
			Category: model.CategoryMetadataGaps,
		})
		return assessment
	}

	evaluateTyposquat(spec, &assessment)
	evaluateRecency(md, &assessment)
	evaluateStaleness(md, &assessment)
	evaluatePopularity(md, &assessment)
	evaluateMaintainers(md, &assessment)

	return assessment
}

// evaluateTyposquat walks the reference corpus in order and flags the first
// name within edit distance 2. An exact match means the dependency IS the
// well-known package, so the scan stops with no signal. First match wins;
// this is not a closest-match search.
func evaluateTyposquat(spec model.DependencySpec, assessment *model.PackageAssessment) {
	for _, top := range referenceCorpus(spec.Ecosystem) {
		distance := levenshtein.ComputeDistance(spec.Name, top)
		if distance == 0 {
			return
		}
		if distance <= 2 {
			assessment.AddSignal(model.RiskSignal{
				Reason:   fmt.Sprintf("Name '%s' is %d edits away from popular package '%s'.", spec.Name, distance, top),
				Score:    50,
				Category: model.CategoryTyposquat,
			})
			return
		}
	}
}

func evaluateRecency(md *model.Metadata, assessment *model.PackageAssessment) {
	if md.FirstPublished == nil {
		return
	}
	if timeNow().UTC().Sub(*md.FirstPublished) <= recentThresholdDays*24*time.Hour {
		assessment.AddSignal(model.RiskSignal{
			Reason:   "Package is newly published; consider additional vetting.",
			Score:    25,
			Category: model.CategoryFreshRelease,
		})
	}
}

func evaluateStaleness(md *model.Metadata, assessment *model.PackageAssessment) {
	if md.LatestPublished == nil {
		return
	}
	if timeNow().UTC().Sub(*md.LatestPublished) >= staleThresholdDays*24*time.Hour {
		assessment.AddSignal(model.RiskSignal{
			Reason:   "Latest release is over a year old; project may be unmaintained.",
			Score:    20,
			Category: model.CategoryStalePackage,
		})
	}
}

func evaluatePopularity(md *model.Metadata, assessment *model.PackageAssessment) {
	if md.WeeklyDownloads == nil {
		return
	}
	if *md.WeeklyDownloads < lowDownloadsThreshold {
		assessment.AddSignal(model.RiskSignal{
			Reason:   fmt.Sprintf("Weekly downloads are low (%d); limited community adoption.", *md.WeeklyDownloads),
			Score:    15,
			Category: model.CategoryPopularity,
		})
	}
}

func evaluateMaintainers(md *model.Metadata, assessment *model.PackageAssessment) {
	if len(md.Maintainers) <= 1 {
		assessment.AddSignal(model.RiskSignal{
			Reason:   "Single maintainer detected; project is susceptible to account compromise.",
			Score:    20,
			Category: model.CategoryMaintainers,
		})
	}
}
