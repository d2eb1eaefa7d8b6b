// Package secrets looks for credentials that would end up in plain text
// inside a generated definition, such as tokens embedded in clone URLs.
package secrets

import (
	"github.com/zricethezav/gitleaks/v8/detect"
)

// Scanner runs the gitleaks default rule set over in-memory content.
type Scanner struct {
	detector *detect.Detector
}

// NewScanner creates a scanner. The detector is built on first use.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan reports probable secrets in data. name is used as the finding's file.
func (s *Scanner) Scan(name string, data []byte) ([]Finding, error) {
	if s.detector == nil {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			return nil, err
		}
		s.detector = d
	}

	hits := s.detector.DetectBytes(data)
	if len(hits) == 0 {
		return nil, nil
	}

	findings := make([]Finding, 0, len(hits))
	for _, h := range hits {
		findings = append(findings, Finding{
			File:     name,
			Line:     h.StartLine + 1, // gitleaks is 0-indexed
			Rule:     h.RuleID,
			Severity: SeverityCritical,
			Message:  h.Description + " (" + h.RuleID + ")",
		})
	}
	return findings, nil
}
