package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

// fakeRows entrega filas precargadas a traves de la interfaz pgxRows.
type fakeRows struct {
	rows [][]interface{}
	idx  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...interface{}) error {
	row := f.rows[f.idx-1]
	if len(row) != len(dest) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *float64:
			*p = row[i].(float64)
		case *int:
			*p = row[i].(int)
		case *[]string:
			*p = row[i].([]string)
		case *time.Time:
			*p = row[i].(time.Time)
		case *sql.NullFloat64:
			if row[i] == nil {
				*p = sql.NullFloat64{}
			} else {
				*p = sql.NullFloat64{Float64: row[i].(float64), Valid: true}
			}
		default:
			return errors.New("unsupported scan type")
		}
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }
func (f *fakeRows) Close()     {}

func TestScanOfficials(t *testing.T) {
	rows := &fakeRows{rows: [][]interface{}{{
		"id-1", "OFF_0001", "A000370", "Alma", "Adams", "", "Alma Adams",
		"Democratic", "NC", "12th District", "House", "Federal", "", "", "", "", "",
		[]string{"Education"}, "@RepAdams", "", "", 84.0, 1847, "2025-07-08",
	}}}

	got, err := scanOfficials(rows)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Alma Adams" || got[0].TotalRatings != 1847 || got[0].SocialMedia.Twitter != "@RepAdams" {
		t.Fatalf("unexpected officials %+v", got)
	}
}

func TestScanRatings_NullLocation(t *testing.T) {
	now := time.Now().UTC()
	rows := &fakeRows{rows: [][]interface{}{
		{"r1", "", "A000370", 80.0, "like", "", 35.9, -78.9, now},
		{"r2", "", "A000370", 20.0, "dislike", "", nil, nil, now},
	}}

	got, err := scanRatings(rows)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if got[0].Location == nil || got[0].Location.Lng != -78.9 {
		t.Fatalf("expected location on first rating, got %+v", got[0].Location)
	}
	if got[1].Location != nil {
		t.Fatalf("expected nil location on second rating")
	}
}

func TestScanStaff_PropagatesRowsError(t *testing.T) {
	rows := &fakeRows{err: errors.New("conn reset")}
	if _, err := scanStaff(rows); err == nil {
		t.Fatalf("expected rows error")
	}
}
