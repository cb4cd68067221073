package tokenizer

import "github.com/runesmith/runesmith/internal/registry"

// Report captures one budget measurement. The checker only measures; whether
// to proceed past an exceeded window is the caller's decision.
type Report struct {
	TokenCount    int
	ContextWindow int
	Degraded      bool
	Encoding      string
}

// Exceeded reports whether the measured input does not fit the context window.
func (report Report) Exceeded() bool {
	return report.TokenCount > report.ContextWindow
}

// CheckBudget measures the combined instruction and corpus text against the
// registry's context window for the given provider and model. An unregistered
// pair surfaces as a registry.UnknownModelError.
func CheckBudget(providerName string, modelName string, instructionText string, corpusText string) (Report, error) {
	windowSize, windowError := registry.ContextWindow(providerName, modelName)
	if windowError != nil {
		return Report{}, windowError
	}
	counter, counterError := NewCounter(modelName)
	if counterError != nil {
		return Report{}, counterError
	}
	tokenCount := counter.Count(instructionText + "\n" + corpusText)
	return Report{
		TokenCount:    tokenCount,
		ContextWindow: windowSize,
		Degraded:      counter.Degraded(),
		Encoding:      counter.EncodingName(),
	}, nil
}
