package model

// PackageAssessment is the full verdict for one dependency. A nil Metadata
// means the registry lookup failed. Signals keep evaluation order.
type PackageAssessment struct {
	Dependency DependencySpec `json:"dependency"`
	Metadata   *Metadata      `json:"metadata"`
	Signals    []RiskSignal   `json:"signals"`
	Score      int            `json:"score"`
}

// AddSignal appends a signal and advances the cumulative score, clamped to
// 100. Score and the signal list are only ever mutated together through here.
func (a *PackageAssessment) AddSignal(sig RiskSignal) {
	a.Signals = append(a.Signals, sig)
	a.Score += sig.Score
	if a.Score > 100 {
		a.Score = 100
	}
}
