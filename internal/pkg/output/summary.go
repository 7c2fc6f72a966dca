package output

// SummaryInfo — итоги прогона по исходам.
type SummaryInfo struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`

	KeyMetrics []KeyMetric `json:"key_metrics,omitempty"`
}

// KeyMetric — ключевое значение, выводимое под таблицей.
type KeyMetric struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Summarize подсчитывает итоги по списку проверок.
func Summarize(checks []CheckEntry) *SummaryInfo {
	s := &SummaryInfo{Total: len(checks)}
	for _, c := range checks {
		switch c.Outcome {
		case OutcomePassed:
			s.Passed++
		case OutcomeFailed:
			s.Failed++
		case OutcomeSkipped:
			s.Skipped++
		}
	}
	return s
}

// AddMetric добавляет ключевое значение.
func (s *SummaryInfo) AddMetric(name, value, unit string) {
	s.KeyMetrics = append(s.KeyMetrics, KeyMetric{Name: name, Value: value, Unit: unit})
}

// StatusFor возвращает статус прогона по итогам.
func StatusFor(s *SummaryInfo) string {
	if s != nil && s.Failed > 0 {
		return StatusFailed
	}
	return StatusPassed
}
