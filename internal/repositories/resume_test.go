package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resumescreener/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func testRecord() *models.ResumeRecord {
	return &models.ResumeRecord{
		ID:              uuid.New(),
		UserID:          "user-1",
		FileName:        "resume.pdf",
		FileSize:        1234,
		FileData:        []byte("%PDF-1.4"),
		UploadedAt:      time.Now(),
		ATSScore:        77.16,
		MatchPercentage: 66.67,
		Rating:          "Good",
		ExtractedText:   "golang developer",
		JobDescription:  "golang developer backend",
		JobRole:         "Backend Engineer",
	}
}

func TestResumeRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "resumes"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(testRecord())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeRepositoryFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "file_name", "rating", "ats_score", "match_percentage"}).
		AddRow(id.String(), "user-1", "resume.pdf", "Good", 77.16, 66.67)

	mock.ExpectQuery(`SELECT \* FROM "resumes" WHERE id =`).
		WillReturnRows(rows)

	record, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, "Good", record.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeRepositoryFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "resumes" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestResumeRepositoryFindByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	first := uuid.New()
	second := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "file_name"}).
		AddRow(first.String(), "user-1", "newest.pdf").
		AddRow(second.String(), "user-1", "older.pdf")

	mock.ExpectQuery(`SELECT \* FROM "resumes" WHERE user_id = (.+) ORDER BY uploaded_at DESC`).
		WillReturnRows(rows)

	records, err := repo.FindByUserID("user-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "newest.pdf", records[0].FileName)
	assert.Equal(t, "older.pdf", records[1].FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeRepositoryDeleteByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "resumes" WHERE id =`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteByID(uuid.New())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeRepositoryDeleteByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "resumes" WHERE id =`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DeleteByID(uuid.New())
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestResumeRepositoryDeleteByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "resumes" WHERE user_id =`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.DeleteByUserID("user-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
