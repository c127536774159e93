// Package store defines the SQL codecs binding the membership entities to
// their Postgres tables. The generic backend in internal/storage does the
// querying; a codec only says which table, which columns, and how values map.
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"guild/internal/member/models"
	"guild/internal/storage"
	"guild/pkg/domain"
)

// PersonCodec binds models.Person to the people table.
func PersonCodec() storage.Codec[*models.Person] {
	return storage.Codec[*models.Person]{
		Table: "people",
		Columns: []string{
			"id", "active", "created_at", "updated_at",
			"first_name", "last_name", "email", "phone",
		},
		Values: func(p *models.Person) []any {
			return []any{
				p.ID, p.Active, p.CreatedAt, p.UpdatedAt,
				p.FirstName, p.LastName, p.Email, p.Phone,
			}
		},
		Scan: func(row storage.RowScanner) (*models.Person, error) {
			var p models.Person
			err := row.Scan(
				&p.ID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
				&p.FirstName, &p.LastName, &p.Email, &p.Phone,
			)
			if err != nil {
				return nil, err
			}
			return &p, nil
		},
	}
}

// MemberCodec binds models.Member to the members table.
func MemberCodec() storage.Codec[*models.Member] {
	return storage.Codec[*models.Member]{
		Table: "members",
		Columns: []string{
			"id", "active", "created_at", "updated_at",
			"person_id", "number", "status", "applied_at", "decided_at", "decision_note",
		},
		Values: func(m *models.Member) []any {
			return []any{
				m.ID, m.Active, m.CreatedAt, m.UpdatedAt,
				m.PersonID.UUID(), m.Number, string(m.Status), m.AppliedAt,
				nullTime(m.DecidedAt), m.DecisionNote,
			}
		},
		Scan: func(row storage.RowScanner) (*models.Member, error) {
			var (
				m        models.Member
				personID uuid.UUID
				status   string
				decided  sql.NullTime
			)
			err := row.Scan(
				&m.ID, &m.Active, &m.CreatedAt, &m.UpdatedAt,
				&personID, &m.Number, &status, &m.AppliedAt, &decided, &m.DecisionNote,
			)
			if err != nil {
				return nil, err
			}
			m.PersonID = domain.PersonID(personID)
			m.Status = models.MembershipStatus(status)
			if decided.Valid {
				t := decided.Time
				m.DecidedAt = &t
			}
			return &m, nil
		},
	}
}

// EducationCodec binds models.Education to the educations table. Partial
// dates are stored as discrete nullable columns; the validating constructor
// rebuilds them on scan.
func EducationCodec() storage.Codec[*models.Education] {
	return storage.Codec[*models.Education]{
		Table: "educations",
		Columns: []string{
			"id", "active", "created_at", "updated_at",
			"person_id", "institution_id", "kind", "title",
			"start_year", "start_month", "start_day",
			"end_year", "end_month", "end_day",
			"document_key", "field_of_study", "level", "credential_id", "hours",
		},
		Values: func(e *models.Education) []any {
			values := []any{
				e.ID, e.Active, e.CreatedAt, e.UpdatedAt,
				e.PersonID.UUID(), nullUUID(e.InstitutionID.UUID()), string(e.Kind), e.Title,
			}
			values = append(values, partialDateValues(e.Start)...)
			values = append(values, optionalDateValues(e.End)...)
			return append(values, e.DocumentKey, e.FieldOfStudy, e.Level, e.CredentialID, e.Hours)
		},
		Scan: func(row storage.RowScanner) (*models.Education, error) {
			var (
				e             models.Education
				personID      uuid.UUID
				institutionID uuid.NullUUID
				kind          string
				start         dateColumns
				end           dateColumns
			)
			err := row.Scan(
				&e.ID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
				&personID, &institutionID, &kind, &e.Title,
				&start.year, &start.month, &start.day,
				&end.year, &end.month, &end.day,
				&e.DocumentKey, &e.FieldOfStudy, &e.Level, &e.CredentialID, &e.Hours,
			)
			if err != nil {
				return nil, err
			}
			e.PersonID = domain.PersonID(personID)
			if institutionID.Valid {
				e.InstitutionID = domain.InstitutionID(institutionID.UUID)
			}
			e.Kind = models.EducationKind(kind)
			if e.Start, err = start.required(); err != nil {
				return nil, err
			}
			if e.End, err = end.optional(); err != nil {
				return nil, err
			}
			return &e, nil
		},
	}
}

// WorkExperienceCodec binds models.WorkExperience to the work_experiences
// table.
func WorkExperienceCodec() storage.Codec[*models.WorkExperience] {
	return storage.Codec[*models.WorkExperience]{
		Table: "work_experiences",
		Columns: []string{
			"id", "active", "created_at", "updated_at",
			"person_id", "company", "position",
			"start_year", "start_month", "start_day",
			"end_year", "end_month", "end_day",
			"description",
		},
		Values: func(w *models.WorkExperience) []any {
			values := []any{
				w.ID, w.Active, w.CreatedAt, w.UpdatedAt,
				w.PersonID.UUID(), w.Company, w.Position,
			}
			values = append(values, partialDateValues(w.Start)...)
			values = append(values, optionalDateValues(w.End)...)
			return append(values, w.Description)
		},
		Scan: func(row storage.RowScanner) (*models.WorkExperience, error) {
			var (
				w        models.WorkExperience
				personID uuid.UUID
				start    dateColumns
				end      dateColumns
			)
			err := row.Scan(
				&w.ID, &w.Active, &w.CreatedAt, &w.UpdatedAt,
				&personID, &w.Company, &w.Position,
				&start.year, &start.month, &start.day,
				&end.year, &end.month, &end.day,
				&w.Description,
			)
			if err != nil {
				return nil, err
			}
			w.PersonID = domain.PersonID(personID)
			if w.Start, err = start.required(); err != nil {
				return nil, err
			}
			if w.End, err = end.optional(); err != nil {
				return nil, err
			}
			return &w, nil
		},
	}
}

// InstitutionCodec binds models.Institution to the institutions table.
func InstitutionCodec() storage.Codec[*models.Institution] {
	return storage.Codec[*models.Institution]{
		Table: "institutions",
		Columns: []string{
			"id", "active", "created_at", "updated_at",
			"name", "country", "website",
		},
		Values: func(i *models.Institution) []any {
			return []any{
				i.ID, i.Active, i.CreatedAt, i.UpdatedAt,
				i.Name, i.Country, i.Website,
			}
		},
		Scan: func(row storage.RowScanner) (*models.Institution, error) {
			var i models.Institution
			err := row.Scan(
				&i.ID, &i.Active, &i.CreatedAt, &i.UpdatedAt,
				&i.Name, &i.Country, &i.Website,
			)
			if err != nil {
				return nil, err
			}
			return &i, nil
		},
	}
}

// dateColumns scans the discrete nullable columns of one partial date.
type dateColumns struct {
	year  sql.NullInt64
	month sql.NullInt64
	day   sql.NullInt64
}

func (c dateColumns) required() (domain.PartialDate, error) {
	return domain.PartialDateFromFields(int(c.year.Int64), nullableInt(c.month), nullableInt(c.day))
}

func (c dateColumns) optional() (*domain.PartialDate, error) {
	if !c.year.Valid {
		return nil, nil
	}
	d, err := c.required()
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func partialDateValues(d domain.PartialDate) []any {
	values := []any{d.Year(), nil, nil}
	if month, ok := d.Month(); ok {
		values[1] = month
	}
	if day, ok := d.Day(); ok {
		values[2] = day
	}
	return values
}

func optionalDateValues(d *domain.PartialDate) []any {
	if d == nil {
		return []any{nil, nil, nil}
	}
	return partialDateValues(*d)
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}
