package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var documentColumnNames = []string{
	"id", "class", "owner_id", "company_id", "doc_type", "competence", "status", "file_ref", "file_hash",
	"submitted_at", "observation", "version", "created_at", "updated_at",
}

func documentRow(rows *pgxmock.Rows, id, status string, version int64, at time.Time) *pgxmock.Rows {
	return rows.AddRow(id, "ANEXO", "emp-1", "company-1", "ASO", "", status, "s3://bucket/aso.pdf", "abc123",
		at, "", version, at, at)
}

func TestDocumentRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("ANEXO", "emp-1", "company-1", "ASO", "", "AGUARDANDO", "s3://bucket/aso.pdf", "abc123", now, "", now, now).
		WillReturnRows(documentRow(pgxmock.NewRows(documentColumnNames), "doc-1", "AGUARDANDO", 1, now))

	created, err := repo.Create(context.Background(), &document.Document{
		Class:       document.ClassAttachment,
		OwnerID:     "emp-1",
		CompanyID:   "company-1",
		Type:        "ASO",
		Status:      document.StatusAwaiting,
		FileRef:     "s3://bucket/aso.pdf",
		FileHash:    "abc123",
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != "doc-1" || created.Version != 1 || created.Class != document.ClassAttachment {
		t.Fatalf("unexpected document %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentRepository_Create_DuplicateKey(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO documents")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "documents_natural_key"})

	_, err = repo.Create(context.Background(), &document.Document{Class: document.ClassAttachment, OwnerID: "emp-1"})
	if !errors.Is(err, document.ErrDocumentKeyExists) {
		t.Fatalf("expected ErrDocumentKeyExists, got %v", err)
	}
}

func TestDocumentRepository_Update_VersionMismatch(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE documents")).
		WillReturnRows(pgxmock.NewRows(documentColumnNames))
	mock.ExpectQuery(regexp.QuoteMeta("FROM documents WHERE id = $1")).
		WithArgs("doc-1").
		WillReturnRows(documentRow(pgxmock.NewRows(documentColumnNames), "doc-1", "APROVADO", 3, now))

	_, err = repo.Update(context.Background(), &document.Document{ID: "doc-1", Status: document.StatusApproved, Version: 2, UpdatedAt: now})
	if !errors.Is(err, document.ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentRepository_FindByKey_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("DOCUMENTO", "contract-1", "PGR", "2024-05").
		WillReturnRows(pgxmock.NewRows(documentColumnNames))

	_, err = repo.FindByKey(context.Background(), document.Key{
		Class: document.ClassContract, OwnerID: "contract-1", Type: "PGR", Competence: "2024-05",
	})
	if !errors.Is(err, document.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDocumentRepository_ListByEmployee_NormalizesLegacyStatus(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDocumentRepository(mock)
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(documentColumnNames)
	documentRow(rows, "doc-2", "REPROVADO", 2, now)
	documentRow(rows, "doc-1", "APROVADO", 1, now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY updated_at DESC")).
		WithArgs("ANEXO", "emp-1").
		WillReturnRows(rows)

	docs, err := repo.ListByEmployee(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("ListByEmployee returned error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Status != document.StatusRejected {
		t.Fatalf("expected legacy REPROVADO to load as %s, got %s", document.StatusRejected, docs[0].Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateDocumentPgError(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateDocumentPgError(&pgconn.PgError{Code: foreignKeyViolationCode}), document.ErrOwnerNotFound) {
		t.Fatal("expected fk violation to map to ErrOwnerNotFound")
	}
	if !errors.Is(translateDocumentPgError(&pgconn.PgError{Code: invalidTextCode}), document.ErrDocumentNotFound) {
		t.Fatal("expected malformed id to map to ErrDocumentNotFound")
	}
	other := errors.New("other")
	if translateDocumentPgError(other) != other {
		t.Fatal("unexpected translation for generic error")
	}
}
