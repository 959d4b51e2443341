package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumescreener/internal/models"
	"resumescreener/internal/repositories"
)

// maxStoredTextChars caps the extracted text kept on the persisted record.
const maxStoredTextChars = 100000

// BatchAnalyzer runs the scoring pipeline over one or more documents sharing
// a job description. Items are isolated: a failed document produces an error
// entry in the batch result and the remaining documents still get processed,
// in input order.
type BatchAnalyzer interface {
	Analyze(ctx context.Context, items []models.AnalysisItem, reqCtx models.AnalysisContext) (*models.BatchResult, error)
}

type batchAnalyzer struct {
	resumeRepo repositories.ResumeRepository
	extractor  TextExtractor
	similarity SimilarityClient
	log        *zap.Logger
}

func NewBatchAnalyzer(
	resumeRepo repositories.ResumeRepository,
	extractor TextExtractor,
	similarity SimilarityClient,
	log *zap.Logger,
) BatchAnalyzer {
	return &batchAnalyzer{
		resumeRepo: resumeRepo,
		extractor:  extractor,
		similarity: similarity,
		log:        log,
	}
}

// Analyze implements BatchAnalyzer. The returned error is request-level and
// only set when validation fails before any per-item work starts.
func (a *batchAnalyzer) Analyze(ctx context.Context, items []models.AnalysisItem, reqCtx models.AnalysisContext) (*models.BatchResult, error) {
	if len(items) == 0 {
		return nil, newValidationError("No file(s) provided")
	}

	batch := &models.BatchResult{Items: make([]models.ItemOutcome, 0, len(items))}
	for _, item := range items {
		result, err := a.analyzeItem(ctx, item, reqCtx)
		if err != nil {
			a.log.Error("resume analysis failed",
				zap.String("file", item.FileName),
				zap.String("kind", string(KindOf(err))),
				zap.Error(err))
		}
		batch.Items = append(batch.Items, models.ItemOutcome{
			FileName: item.FileName,
			Result:   result,
			Err:      err,
		})
	}
	return batch, nil
}

func (a *batchAnalyzer) analyzeItem(ctx context.Context, item models.AnalysisItem, reqCtx models.AnalysisContext) (*models.AnalysisResult, error) {
	if len(item.Data) == 0 {
		return nil, newValidationError("Empty file: " + item.FileName)
	}

	text, err := a.extractor.Extract(item.Data, item.ContentType, item.FileName)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil, &AnalysisError{Kind: ErrKindValidation, Message: "Unsupported document type: " + item.FileName, Err: err}
		}
		return nil, newExtractionError(err)
	}

	keywordScore := KeywordOverlapScore(text, reqCtx.JobDescription)

	similarity := a.similarity.Score(ctx, reqCtx.JobDescription, text)
	matchPercentage := MatchPercentage(similarity)

	atsScore := AggregateScore(keywordScore, matchPercentage)
	rating := DeriveRating(atsScore)

	record := &models.ResumeRecord{
		ID:              uuid.New(),
		UserID:          reqCtx.UserID,
		FileName:        item.FileName,
		FileSize:        int64(len(item.Data)),
		FileData:        item.Data,
		UploadedAt:      time.Now(),
		ATSScore:        atsScore,
		MatchPercentage: matchPercentage,
		Rating:          rating,
		ExtractedText:   capText(text, maxStoredTextChars),
		JobDescription:  reqCtx.JobDescription,
		JobRole:         reqCtx.JobRole,
	}
	if err := a.resumeRepo.Create(record); err != nil {
		return nil, newPersistenceError(err)
	}

	a.log.Info("resume analyzed",
		zap.String("id", record.ID.String()),
		zap.String("file", item.FileName),
		zap.Float64("ats_score", atsScore),
		zap.String("rating", rating))

	return &models.AnalysisResult{
		ID:              record.ID.String(),
		ATSScore:        atsScore,
		MatchPercentage: matchPercentage,
		Rating:          rating,
	}, nil
}

func capText(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
