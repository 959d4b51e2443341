package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	errEmptySimilarityBody     = errors.New("similarity service returned an empty body")
	errMalformedSimilarityBody = errors.New("similarity service returned an unparseable body")
)

type unexpectedStatusError struct {
	status int
}

func (e *unexpectedStatusError) Error() string {
	return fmt.Sprintf("similarity service returned status %d", e.status)
}

// maxSimilarityInputChars bounds what gets sent to the similarity backend.
// Longer inputs cost latency without changing the signal much.
const maxSimilarityInputChars = 1600

// SimilarityClient asks the external semantic-similarity service how close a
// resume is to a job description. It never fails the pipeline: any transport,
// status or parse problem degrades to a neutral 0.0 similarity.
type SimilarityClient interface {
	Score(ctx context.Context, jobDescription, resumeText string) float64
}

type similarityClient struct {
	httpClient *http.Client
	url        string
	apiKey     string
	maxRetries int
	log        *zap.Logger
}

func NewSimilarityClient(url, apiKey string, timeout time.Duration, maxRetries int, log *zap.Logger) SimilarityClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &similarityClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		apiKey:     apiKey,
		maxRetries: maxRetries,
		log:        log,
	}
}

type similarityRequest struct {
	Reference  string   `json:"reference"`
	Candidates []string `json:"candidates"`
}

// Score implements SimilarityClient. Transport errors get one bounded retry;
// everything else degrades immediately.
func (s *similarityClient) Score(ctx context.Context, jobDescription, resumeText string) float64 {
	payload, err := json.Marshal(similarityRequest{
		Reference:  truncateForSimilarity(jobDescription),
		Candidates: []string{truncateForSimilarity(resumeText)},
	})
	if err != nil {
		s.log.Warn("similarity request could not be encoded, using fallback score", zap.Error(err))
		return 0.0
	}

	for attempt := 0; ; attempt++ {
		similarity, retryable, err := s.call(ctx, payload)
		if err == nil {
			return similarity
		}
		if retryable && attempt < s.maxRetries {
			s.log.Warn("similarity call failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}
		s.log.Warn("similarity service degraded, using fallback score", zap.Error(err))
		return 0.0
	}
}

// call performs one request. The second return value reports whether the
// failure was a transport error worth retrying.
func (s *similarityClient) call(ctx context.Context, payload []byte) (float64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, false, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, false, &unexpectedStatusError{status: resp.StatusCode}
	}

	similarity, err := parseSimilarity(body)
	return similarity, false, err
}

// parseSimilarity accepts either a bare scalar or an array of scalars (first
// element wins), the two shapes similarity backends answer with.
func parseSimilarity(body []byte) (float64, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return 0, errEmptySimilarityBody
	}

	var scalar float64
	if err := json.Unmarshal(trimmed, &scalar); err == nil {
		return scalar, nil
	}

	var scalars []float64
	if err := json.Unmarshal(trimmed, &scalars); err == nil && len(scalars) > 0 {
		return scalars[0], nil
	}

	return 0, errMalformedSimilarityBody
}

func truncateForSimilarity(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSimilarityInputChars {
		return text
	}
	return string(runes[:maxSimilarityInputChars])
}
