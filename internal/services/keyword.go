package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Token overlap between a job description and resume text. A job description
// that carries no usable tokens cannot discriminate, so it scores a neutral
// 50.0 whatever the resume says.
const neutralKeywordScore = 50.0

var nonWordPattern = regexp.MustCompile(`\W+`)

// KeywordOverlapScore returns the share of job-description tokens present in
// the resume text, as a percentage rounded to two decimals and capped at 100.
func KeywordOverlapScore(resumeText, jobDescription string) float64 {
	if strings.TrimSpace(jobDescription) == "" {
		return neutralKeywordScore
	}

	jdTokens := tokenize(jobDescription)
	if len(jdTokens) == 0 {
		return neutralKeywordScore
	}
	resumeTokens := tokenize(resumeText)

	matchCount := 0
	for token := range jdTokens {
		if _, ok := resumeTokens[token]; ok {
			matchCount++
		}
	}

	ratio := float64(matchCount) / float64(len(jdTokens))
	score := Round2(ratio * 100)
	if score > 100 {
		score = 100
	}
	return score
}

// tokenize lowercases, splits on runs of non-word characters and drops tokens
// of length <= 2.
func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, token := range nonWordPattern.Split(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(token) > 2 {
			tokens[token] = struct{}{}
		}
	}
	return tokens
}
