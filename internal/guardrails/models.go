package guardrails

import "github.com/gabrielchua/descriptive-theory/internal/models"

type ValidationResult struct {
	Verdict   models.Verdict // 0 = reject, 1 = proceed
	IsMedical bool
	Method    string // "llm" or "cache"
}

func newResult(verdict models.Verdict, method string) ValidationResult {
	return ValidationResult{
		Verdict:   verdict,
		IsMedical: verdict == models.VerdictMedical,
		Method:    method,
	}
}
