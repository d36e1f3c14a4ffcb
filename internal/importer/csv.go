package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"ratemyrep/internal/domain"
)

var ErrMissingColumn = errors.New("missing required column")

// RowError senala la fila del CSV que no se pudo convertir.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// row da acceso por nombre de columna a un registro CSV.
type row struct {
	index  map[string]int
	record []string
}

func (r row) get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r row) or(column, fallback string) string {
	if v := r.get(column); v != "" {
		return v
	}
	return fallback
}

// readRows lee el header y llama fn por cada fila no vacia.
func readRows(src io.Reader, required []string, fn func(line int, r row) error) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return &RowError{Line: line, Err: err}
		}
		if isBlank(record) {
			continue
		}
		if err := fn(line, row{index: index, record: record}); err != nil {
			return &RowError{Line: line, Err: err}
		}
	}
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ReadOfficials convierte el CSV de funcionarios. Official_ID es obligatorio en cada fila.
func ReadOfficials(src io.Reader, today time.Time) ([]domain.Official, error) {
	date := today.UTC().Format("2006-01-02")
	out := []domain.Official{}
	err := readRows(src, []string{"Official_ID"}, func(_ int, r row) error {
		id := r.get("Official_ID")
		if id == "" {
			return errors.New("Official_ID is empty")
		}
		first, last := r.get("First_Name"), r.get("Last_Name")
		name := r.get("Full_Name")
		if name == "" {
			name = strings.TrimSpace(first + " " + last)
		}
		out = append(out, domain.Official{
			OfficialID:  id,
			BioguideID:  r.get("Bioguide_ID"),
			Name:        name,
			FirstName:   first,
			LastName:    last,
			MiddleName:  r.get("Middle_Name"),
			Party:       domain.ParseParty(r.or("Party", string(domain.PartyIndependent))),
			OfficeLevel: domain.ParseOfficeLevel(r.get("Office_Level")),
			Chamber:     r.get("Chamber"),
			State:       strings.ToUpper(r.get("State")),
			District:    r.get("District"),
			Phone:       r.get("Primary_Phone"),
			Email:       r.get("Primary_Email"),
			Website:     r.get("Official_Website"),
			PhotoURL:    r.get("Official_Photo_URL"),
			KeyIssues:   domain.SplitList(r.get("Key_Issues")),
			LastUpdated: r.or("Last_Updated", date),
		})
		return nil
	})
	return out, err
}

// ReadStaff convierte el CSV de staff. Staff_ID es obligatorio en cada fila.
func ReadStaff(src io.Reader, today time.Time) ([]domain.StaffMember, error) {
	date := today.UTC().Format("2006-01-02")
	out := []domain.StaffMember{}
	err := readRows(src, []string{"Staff_ID"}, func(_ int, r row) error {
		id := r.get("Staff_ID")
		if id == "" {
			return errors.New("Staff_ID is empty")
		}
		first, last := r.get("First_Name"), r.get("Last_Name")
		name := r.get("Full_Name")
		if name == "" {
			name = strings.TrimSpace(first + " " + last)
		}
		out = append(out, domain.StaffMember{
			StaffID:        id,
			FirstName:      first,
			LastName:       last,
			FullName:       name,
			JobTitle:       r.get("Job_Title"),
			Phone:          r.get("Phone"),
			Email:          r.get("Email"),
			OfficeLocation: r.get("Office_Location"),
			PolicyAreas:    domain.SplitList(r.get("Policy_Areas")),
			Website:        r.get("Website"),
			OfficialLink:   r.get("Official_Link"),
			BioguideID:     r.get("Bioguide_ID"),
			ValidFromDate:  r.get("Valid_From_Date"),
			ValidToDate:    r.get("Valid_To_Date"),
			DataSource:     r.or("Data_Source", "CSV Import"),
			LastUpdated:    r.or("Last_Updated", date),
		})
		return nil
	})
	return out, err
}
