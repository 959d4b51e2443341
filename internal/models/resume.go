package models

import (
	"time"

	"github.com/google/uuid"
)

// ResumeRecord is the persisted outcome of analyzing one document against a job
// description. Records are created once by the analysis pipeline and never
// updated; they only go away through the delete endpoints.
type ResumeRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"type:text;index" json:"user_id,omitempty"`
	FileName        string    `gorm:"type:text" json:"file_name"`
	FileSize        int64     `json:"file_size"`
	FileData        []byte    `gorm:"type:bytea" json:"-"`
	UploadedAt      time.Time `gorm:"type:timestamp" json:"uploaded_at"`
	ATSScore        float64   `gorm:"column:ats_score" json:"ats_score"`
	MatchPercentage float64   `json:"match_percentage"`
	Rating          string    `gorm:"type:text" json:"rating"`
	ExtractedText   string    `gorm:"type:text" json:"extracted_text,omitempty"`
	JobDescription  string    `gorm:"type:text" json:"job_description"`
	JobRole         string    `gorm:"type:text" json:"job_role"`
}

func (ResumeRecord) TableName() string {
	return "resumes"
}

// ResumeSummary is the listing shape: record metadata and scores without the
// extracted text or the stored binary.
type ResumeSummary struct {
	ID              string    `json:"id"`
	FileName        string    `json:"file_name"`
	FileSize        int64     `json:"file_size"`
	UploadedAt      time.Time `json:"uploaded_at"`
	ATSScore        float64   `json:"ats_score"`
	MatchPercentage float64   `json:"match_percentage"`
	Rating          string    `json:"rating"`
	JobRole         string    `json:"job_role"`
}

func (r *ResumeRecord) Summary() ResumeSummary {
	return ResumeSummary{
		ID:              r.ID.String(),
		FileName:        r.FileName,
		FileSize:        r.FileSize,
		UploadedAt:      r.UploadedAt,
		ATSScore:        r.ATSScore,
		MatchPercentage: r.MatchPercentage,
		Rating:          r.Rating,
		JobRole:         r.JobRole,
	}
}
