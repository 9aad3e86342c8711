package document

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/access"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/catalog"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const machineName = "document"

// UseCase は書類承認ユースケースの公開インターフェースです。
type UseCase interface {
	SubmitDocument(ctx context.Context, in SubmitDocumentInput) (*Document, error)
	JustifyDocument(ctx context.Context, in JustifyDocumentInput) (*Document, error)
	ApproveDocument(ctx context.Context, in ReviewDocumentInput) (*Document, error)
	RejectDocument(ctx context.Context, in ReviewDocumentInput) (*Document, error)
	GetDocument(ctx context.Context, in GetDocumentInput) (*Document, error)
	ListEmployeeDocuments(ctx context.Context, in ListEmployeeDocumentsInput) ([]*Document, error)
	DocumentHistory(ctx context.Context, in DocumentHistoryInput) ([]*audit.Record, error)
	DocumentationStatus(ctx context.Context, in DocumentationStatusInput) (*Documentation, error)
}

// Dependencies は Service の依存をまとめます。Clock・Tx・Recorder は省略可能です。
type Dependencies struct {
	Repo     Repository
	Owners   OwnerRepository
	Catalog  catalog.Provider
	Journal  *audit.Journal
	Gate     *access.Gate
	Clock    Clock
	Tx       TransactionManager
	Recorder domain.TransitionRecorder
}

// Service は書類承認に関するユースケースをまとめます。
type Service struct {
	repo     Repository
	owners   OwnerRepository
	catalog  catalog.Provider
	journal  *audit.Journal
	gate     *access.Gate
	clock    Clock
	tx       TransactionManager
	recorder domain.TransitionRecorder
}

// NewService は Service を生成します。
func NewService(deps Dependencies) *Service {
	s := &Service{
		repo:     deps.Repo,
		owners:   deps.Owners,
		catalog:  deps.Catalog,
		journal:  deps.Journal,
		gate:     deps.Gate,
		clock:    deps.Clock,
		tx:       deps.Tx,
		recorder: deps.Recorder,
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.tx == nil {
		s.tx = noopTransactionManager{}
	}
	if s.recorder == nil {
		s.recorder = domain.NopRecorder{}
	}
	return s
}

// SubmitDocumentInput は書類提出時の入力です。Competence は契約書類のみ必須です。
type SubmitDocumentInput struct {
	Actor       access.Actor
	Class       Class
	OwnerID     string
	Type        string
	Competence  string
	FileRef     string
	FileHash    string
	Observation string
}

// JustifyDocumentInput は書類への補足説明の入力です。
type JustifyDocumentInput struct {
	Actor       access.Actor
	DocumentID  string
	Observation string
}

// ReviewDocumentInput は承認・却下時の入力です。
type ReviewDocumentInput struct {
	Actor       access.Actor
	DocumentID  string
	Observation string
}

// GetDocumentInput は書類取得時の入力です。
type GetDocumentInput struct {
	Actor      access.Actor
	DocumentID string
}

// ListEmployeeDocumentsInput は従業員書類一覧の入力です。
type ListEmployeeDocumentsInput struct {
	Actor      access.Actor
	EmployeeID string
}

// DocumentHistoryInput は書類履歴取得の入力です。
type DocumentHistoryInput struct {
	Actor      access.Actor
	DocumentID string
}

// DocumentationStatusInput は書類集約状態取得の入力です。
type DocumentationStatusInput struct {
	Actor      access.Actor
	EmployeeID string
}

// SubmitDocument は書類を提出します。却下済みの書類への再提出は CORRIGIDO になります。
func (s *Service) SubmitDocument(ctx context.Context, in SubmitDocumentInput) (doc *Document, err error) {
	defer func() { s.recorder.ObserveTransition(machineName, string(ActionSubmit), domain.Outcome(err)) }()

	key, fileRef, err := normalizeSubmission(in)
	if err != nil {
		return nil, err
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}

	var records []*audit.Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		owner, err := s.resolveOwner(txCtx, key.Class, key.OwnerID)
		if err != nil {
			return err
		}
		if err := principal.RequireCompany(owner.CompanyID); err != nil {
			return err
		}

		existing, err := s.repo.FindByKey(txCtx, key)
		if err != nil && !errors.Is(err, ErrDocumentNotFound) {
			return err
		}

		var current *Status
		if existing != nil {
			current = &existing.Status
		}
		t, err := Next(current, ActionSubmit)
		if err != nil {
			if existing != nil {
				return withSubject(err, existing.Subject())
			}
			return err
		}

		now := s.clock.Now()
		var saved *Document
		if existing == nil {
			saved, err = s.repo.Create(txCtx, &Document{
				Class:       key.Class,
				OwnerID:     key.OwnerID,
				CompanyID:   owner.CompanyID,
				Type:        key.Type,
				Competence:  key.Competence,
				Status:      t.To,
				FileRef:     fileRef,
				FileHash:    strings.TrimSpace(in.FileHash),
				SubmittedAt: now,
				Observation: strings.TrimSpace(in.Observation),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		} else {
			next := cloneDocument(existing)
			next.Status = t.To
			next.FileRef = fileRef
			next.FileHash = strings.TrimSpace(in.FileHash)
			next.SubmittedAt = now
			next.Observation = strings.TrimSpace(in.Observation)
			next.UpdatedAt = now
			saved, err = s.repo.Update(txCtx, next)
		}
		if err != nil {
			return translate("submit document", err)
		}

		rec, err := s.record(txCtx, principal, saved, t, saved.Observation, now)
		if err != nil {
			return err
		}
		records = append(records, rec)
		doc = saved
		return nil
	}); err != nil {
		return nil, err
	}

	s.journal.Publish(ctx, records)
	return doc, nil
}

// JustifyDocument は書類に補足説明を付与します。却下済みの書類は CORRIGIDO になります。
func (s *Service) JustifyDocument(ctx context.Context, in JustifyDocumentInput) (doc *Document, err error) {
	defer func() { s.recorder.ObserveTransition(machineName, string(ActionJustify), domain.Outcome(err)) }()

	id := strings.TrimSpace(in.DocumentID)
	observation := strings.TrimSpace(in.Observation)
	if missing := missingFields(map[string]string{"document_id": id, "observation": observation}); len(missing) > 0 {
		return nil, domain.Validation(domain.Subject{Kind: domain.SubjectDocument, ID: id}, "observation is required to justify a document", missing...)
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, principal, id, ActionJustify, observation, func(d *Document) error {
		return principal.RequireCompany(d.CompanyID)
	})
}

// ApproveDocument は書類を承認します。
func (s *Service) ApproveDocument(ctx context.Context, in ReviewDocumentInput) (doc *Document, err error) {
	defer func() { s.recorder.ObserveTransition(machineName, string(ActionApprove), domain.Outcome(err)) }()

	id := strings.TrimSpace(in.DocumentID)
	if id == "" {
		return nil, domain.Validation(domain.Subject{Kind: domain.SubjectDocument}, "document id is required", "document_id")
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}
	if err := principal.Require(access.CapApproveDocs); err != nil {
		return nil, withSubject(err, domain.Subject{Kind: domain.SubjectDocument, ID: id})
	}

	return s.transition(ctx, principal, id, ActionApprove, strings.TrimSpace(in.Observation), nil)
}

// RejectDocument は書類を却下します。観察事項は必須です。
func (s *Service) RejectDocument(ctx context.Context, in ReviewDocumentInput) (doc *Document, err error) {
	defer func() { s.recorder.ObserveTransition(machineName, string(ActionReject), domain.Outcome(err)) }()

	id := strings.TrimSpace(in.DocumentID)
	observation := strings.TrimSpace(in.Observation)
	if missing := missingFields(map[string]string{"document_id": id, "observation": observation}); len(missing) > 0 {
		return nil, domain.Validation(domain.Subject{Kind: domain.SubjectDocument, ID: id}, "observation is required to reject a document", missing...)
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}
	if err := principal.Require(access.CapApproveDocs); err != nil {
		return nil, withSubject(err, domain.Subject{Kind: domain.SubjectDocument, ID: id})
	}

	return s.transition(ctx, principal, id, ActionReject, observation, nil)
}

// GetDocument は書類を取得します。
func (s *Service) GetDocument(ctx context.Context, in GetDocumentInput) (*Document, error) {
	id := strings.TrimSpace(in.DocumentID)
	if id == "" {
		return nil, domain.Validation(domain.Subject{Kind: domain.SubjectDocument}, "document id is required", "document_id")
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}

	var result *Document
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return translate("get document", err)
		}
		if err := authorizeRead(principal, found.CompanyID); err != nil {
			return withSubject(err, found.Subject())
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// ListEmployeeDocuments は従業員に紐づく書類を返します。
func (s *Service) ListEmployeeDocuments(ctx context.Context, in ListEmployeeDocumentsInput) ([]*Document, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, domain.Validation(domain.Subject{Kind: domain.SubjectEmployee}, "employee id is required", "employee_id")
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}

	var docs []*Document
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		owner, err := s.resolveOwner(txCtx, ClassAttachment, employeeID)
		if err != nil {
			return err
		}
		if err := authorizeRead(principal, owner.CompanyID); err != nil {
			return withSubject(err, domain.Subject{Kind: domain.SubjectEmployee, ID: employeeID})
		}
		found, err := s.repo.ListByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}
		docs = found
		return nil
	}); err != nil {
		return nil, err
	}
	return docs, nil
}

// DocumentHistory は書類の承認履歴を古い順に返します。
func (s *Service) DocumentHistory(ctx context.Context, in DocumentHistoryInput) ([]*audit.Record, error) {
	doc, err := s.GetDocument(ctx, GetDocumentInput{Actor: in.Actor, DocumentID: in.DocumentID})
	if err != nil {
		return nil, err
	}

	var records []*audit.Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.journal.History(txCtx, doc.Class.AuditKind(), doc.ID)
		if err != nil {
			return err
		}
		records = found
		return nil
	}); err != nil {
		return nil, err
	}
	return records, nil
}

// DocumentationStatus は従業員書類一式の集約状態を返します。
func (s *Service) DocumentationStatus(ctx context.Context, in DocumentationStatusInput) (*Documentation, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, domain.Validation(domain.Subject{Kind: domain.SubjectEmployee}, "employee id is required", "employee_id")
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}

	var result *Documentation
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		owner, err := s.resolveOwner(txCtx, ClassAttachment, employeeID)
		if err != nil {
			return err
		}
		if err := authorizeRead(principal, owner.CompanyID); err != nil {
			return withSubject(err, domain.Subject{Kind: domain.SubjectEmployee, ID: employeeID})
		}
		result, err = s.EmployeeDocumentation(txCtx, employeeID, owner.ContractID)
		return err
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// EmployeeDocumentation は権限確認なしで集約状態を算出します。呼び出し側のトランザクション内で利用します。
func (s *Service) EmployeeDocumentation(ctx context.Context, employeeID, contractID string) (*Documentation, error) {
	required, err := s.catalog.RequiredLabels(ctx, contractID)
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return Evaluate(required, docs), nil
}

// transition は既存書類に対する承認系操作を 1 トランザクションで適用します。
// authorize は書類を読み込んだ後、状態確認の前に評価されます。
func (s *Service) transition(ctx context.Context, principal *access.Principal, id string, action Action, observation string, authorize func(*Document) error) (*Document, error) {
	var (
		doc     *Document
		records []*audit.Record
	)
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.LockByID(txCtx, id)
		if err != nil {
			return translate(string(action)+" document", err)
		}
		if authorize != nil {
			if err := authorize(existing); err != nil {
				return withSubject(err, existing.Subject())
			}
		}

		t, err := Next(&existing.Status, action)
		if err != nil {
			return withSubject(err, existing.Subject())
		}

		now := s.clock.Now()
		next := cloneDocument(existing)
		next.Status = t.To
		if observation != "" || action == ActionApprove {
			next.Observation = observation
		}
		next.UpdatedAt = now

		saved, err := s.repo.Update(txCtx, next)
		if err != nil {
			return translate(string(action)+" document", err)
		}

		rec, err := s.record(txCtx, principal, saved, t, observation, now)
		if err != nil {
			return err
		}
		records = append(records, rec)
		doc = saved
		return nil
	}); err != nil {
		return nil, err
	}

	s.journal.Publish(ctx, records)
	return doc, nil
}

func (s *Service) record(ctx context.Context, principal *access.Principal, doc *Document, t Transition, observation string, now time.Time) (*audit.Record, error) {
	rec := &audit.Record{
		SubjectKind: doc.Class.AuditKind(),
		SubjectID:   doc.ID,
		ActorID:     principal.Actor.ID,
		ProfileName: principal.AuditName(),
		Event:       t.Event,
		Status:      string(t.To),
		Observation: observation,
		CreatedAt:   now,
	}
	if err := s.journal.Append(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) resolveOwner(ctx context.Context, class Class, ownerID string) (*Owner, error) {
	var (
		owner *Owner
		err   error
	)
	if class == ClassContract {
		owner, err = s.owners.ContractOwner(ctx, ownerID)
	} else {
		owner, err = s.owners.EmployeeOwner(ctx, ownerID)
	}
	if err != nil {
		return nil, translate("resolve owner", err)
	}
	return owner, nil
}

func normalizeSubmission(in SubmitDocumentInput) (Key, string, error) {
	key := Key{
		Class:      in.Class,
		OwnerID:    strings.TrimSpace(in.OwnerID),
		Type:       strings.TrimSpace(in.Type),
		Competence: strings.TrimSpace(in.Competence),
	}
	fileRef := strings.TrimSpace(in.FileRef)

	fields := map[string]string{
		"owner_id": key.OwnerID,
		"type":     key.Type,
		"file_ref": fileRef,
	}
	switch key.Class {
	case ClassContract:
		fields["competence"] = key.Competence
	case ClassAttachment:
		key.Competence = ""
	default:
		fields["class"] = ""
	}

	if missing := missingFields(fields); len(missing) > 0 {
		return Key{}, "", domain.Validation(domain.Subject{}, "missing required submission fields", missing...)
	}
	return key, fileRef, nil
}

// missingFields は空値の項目名を名前順に返します。
func missingFields(fields map[string]string) []string {
	var missing []string
	for name, value := range fields {
		if value == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// authorizeRead は協力会社には自社の書類のみ、社内ユーザーには閲覧または承認の権限を要求します。
func authorizeRead(principal *access.Principal, companyID string) error {
	if principal.IsCompany() {
		return principal.RequireCompany(companyID)
	}
	if principal.Has(access.CapApproveDocs) {
		return nil
	}
	return principal.Require(access.CapViewDocs)
}

func withSubject(err error, subject domain.Subject) error {
	var de *domain.Error
	if errors.As(err, &de) && de.Subject == (domain.Subject{}) {
		de.Subject = subject
	}
	return err
}

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDocumentNotFound), errors.Is(err, ErrOwnerNotFound):
		return domain.WrapError(domain.ErrNotFound, op, err)
	case errors.Is(err, ErrVersionMismatch), errors.Is(err, ErrDocumentKeyExists):
		return domain.WrapError(domain.ErrConflict, op, err)
	default:
		return err
	}
}
