package handler

import (
	"fmt"
	"strings"
	"time"

	compliancev1 "github.com/ogurasousui/compliance-grpc-clean-arch/internal/adapters/grpc/compliancev1"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/employee"
)

const dateLayout = "2006-01-02"

func toProtoDocument(doc *document.Document) *compliancev1.Document {
	if doc == nil {
		return nil
	}
	return &compliancev1.Document{
		ID:          doc.ID,
		Class:       string(doc.Class),
		OwnerID:     doc.OwnerID,
		CompanyID:   doc.CompanyID,
		Type:        doc.Type,
		Competence:  doc.Competence,
		Status:      string(doc.Status),
		Label:       doc.Status.Label(doc.Class),
		FileRef:     doc.FileRef,
		FileHash:    doc.FileHash,
		SubmittedAt: doc.SubmittedAt.UTC(),
		Observation: doc.Observation,
		Version:     doc.Version,
		CreatedAt:   doc.CreatedAt.UTC(),
		UpdatedAt:   doc.UpdatedAt.UTC(),
	}
}

func toProtoRecords(records []*audit.Record) []*compliancev1.ApprovalRecord {
	out := make([]*compliancev1.ApprovalRecord, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		out = append(out, &compliancev1.ApprovalRecord{
			ID:          rec.ID,
			SubjectKind: string(rec.SubjectKind),
			SubjectID:   rec.SubjectID,
			ActorID:     rec.ActorID,
			ProfileName: rec.ProfileName,
			Event:       string(rec.Event),
			Status:      rec.Status,
			Observation: rec.Observation,
			CreatedAt:   rec.CreatedAt.UTC(),
		})
	}
	return out
}

func toProtoDocumentation(d *document.Documentation) *compliancev1.Documentation {
	if d == nil {
		return nil
	}
	return &compliancev1.Documentation{
		Status:    string(d.Status),
		Required:  int32(d.Required),
		Submitted: int32(d.Submitted),
		Pending:   append([]string{}, d.Pending...),
		Rejected:  append([]string{}, d.Rejected...),
	}
}

func toProtoIntegration(in *employee.Integration) *compliancev1.Integration {
	if in == nil || in.Employee == nil {
		return nil
	}
	e := in.Employee
	return &compliancev1.Integration{
		EmployeeID:              e.ID,
		CompanyID:               e.CompanyID,
		ContractID:              e.ContractID,
		Name:                    e.Name,
		StoredStatus:            string(e.IntegrationStatus),
		Status:                  string(in.Status),
		Label:                   in.Label,
		ValidityStatus:          string(in.Assessment.Status),
		Expiring:                in.Assessment.Expiring,
		AsoDate:                 formatDate(e.AsoDate),
		AsoValidityDays:         toInt32Ptr(e.AsoValidityDays),
		AsoExpiresAt:            formatDate(in.Assessment.AsoExpiresAt),
		IntegrationDate:         utcPtr(e.IntegrationDate),
		IntegrationValidityDays: toInt32Ptr(e.IntegrationValidityDays),
		IntegrationExpiresAt:    formatDate(in.Assessment.IntegrationExpiresAt),
		Assignment:              toProtoAssignment(e.Assignment),
		ScheduleJustification:   e.ScheduleJustification,
		Documentation:           toProtoDocumentation(in.Documentation),
		Version:                 e.Version,
	}
}

func toProtoScheduled(employees []*employee.Employee) []*compliancev1.ScheduledEmployee {
	out := make([]*compliancev1.ScheduledEmployee, 0, len(employees))
	for _, e := range employees {
		if e == nil {
			continue
		}
		out = append(out, &compliancev1.ScheduledEmployee{
			EmployeeID:  e.ID,
			Name:        e.Name,
			Status:      string(e.IntegrationStatus),
			ScheduledAt: utcPtr(e.IntegrationDate),
		})
	}
	return out
}

func toProtoAssignment(a employee.Assignment) *compliancev1.Assignment {
	if a == (employee.Assignment{}) {
		return nil
	}
	return &compliancev1.Assignment{
		Function:        a.Function,
		Role:            a.Role,
		Sector:          a.Sector,
		IntegrationUnit: a.IntegrationUnit,
		ActivityUnit:    a.ActivityUnit,
	}
}

func toDomainAssignment(a *compliancev1.Assignment) employee.Assignment {
	if a == nil {
		return employee.Assignment{}
	}
	return employee.Assignment{
		Function:        a.Function,
		Role:            a.Role,
		Sector:          a.Sector,
		IntegrationUnit: a.IntegrationUnit,
		ActivityUnit:    a.ActivityUnit,
	}
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(dateLayout)
}

func parseDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, trimmed, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid format, expected YYYY-MM-DD")
	}
	return &t, nil
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	t := value.UTC()
	return &t
}

func toInt32Ptr(value *int) *int32 {
	if value == nil {
		return nil
	}
	v := int32(*value)
	return &v
}

func fromInt32Ptr(value *int32) *int {
	if value == nil {
		return nil
	}
	v := int(*value)
	return &v
}
