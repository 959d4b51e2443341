package models

// AnalysisItem is one document within an analysis request.
type AnalysisItem struct {
	FileName    string
	ContentType string
	Data        []byte
}

// AnalysisContext carries the request fields shared by every item of a batch.
// UserID is empty for anonymous callers.
type AnalysisContext struct {
	JobDescription string
	JobRole        string
	UserID         string
}

// AnalysisResult is the caller-facing outcome for one successfully analyzed
// document.
type AnalysisResult struct {
	ID              string  `json:"id"`
	ATSScore        float64 `json:"atsScore"`
	MatchPercentage float64 `json:"matchPercentage"`
	Rating          string  `json:"rating"`
}

// ItemOutcome is one entry of a batch result: either a result or the error
// that stopped this item. Exactly one of the two is set.
type ItemOutcome struct {
	FileName string
	Result   *AnalysisResult
	Err      error
}

// BatchResult holds per-item outcomes in input order.
type BatchResult struct {
	Items []ItemOutcome
}

func (b *BatchResult) AllSucceeded() bool {
	for _, item := range b.Items {
		if item.Err != nil {
			return false
		}
	}
	return true
}
