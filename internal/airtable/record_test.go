package airtable

import (
	"encoding/json"
	"errors"
	"testing"
)

func record(t *testing.T, fields string) Record {
	t.Helper()
	var rec Record
	if err := json.Unmarshal([]byte(`{"id":"rec1","fields":`+fields+`}`), &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	return rec
}

func TestRecordTypedReaders(t *testing.T) {
	rec := record(t, `{
		"Full_Name": " Alma Adams ",
		"District": 12,
		"Average_Rating": 4.2,
		"Total_Ratings": "17",
		"Is_Current": true,
		"Key_Issues": "Education, Healthcare,,",
		"Tags": ["a", " b ", ""],
		"Empty": null
	}`)

	if got := rec.String("Full_Name"); got != "Alma Adams" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := rec.String("District"); got != "12" {
		t.Fatalf("expected numeric district to format, got %q", got)
	}
	if got := rec.Float("Average_Rating"); got != 4.2 {
		t.Fatalf("unexpected rating %v", got)
	}
	if got := rec.Int("Total_Ratings"); got != 17 {
		t.Fatalf("expected string number to parse, got %d", got)
	}
	if !rec.Bool("Is_Current") {
		t.Fatalf("expected checkbox true")
	}
	if got := rec.Strings("Key_Issues"); len(got) != 2 || got[1] != "Healthcare" {
		t.Fatalf("unexpected issues %v", got)
	}
	if got := rec.Strings("Tags"); len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected tags %v", got)
	}
	if rec.String("Empty") != "" || rec.String("Missing") != "" {
		t.Fatalf("expected empty values for null and missing fields")
	}
}

func TestRecordRequiredFieldsFailFast(t *testing.T) {
	rec := record(t, `{"Rating": "abc"}`)

	_, err := rec.RequiredString("Full_Name")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Field != "Full_Name" || decodeErr.RecordID != "rec1" {
		t.Fatalf("expected DecodeError for Full_Name, got %v", err)
	}

	if _, err := rec.RequiredFloat("Rating"); !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError for non numeric rating, got %v", err)
	}
	if _, err := rec.RequiredFloat("Missing"); !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError for missing rating, got %v", err)
	}
}

func TestFormulaBuilders(t *testing.T) {
	if got := Eq("Bioguide_ID", `A"1\`); got != `{Bioguide_ID} = "A\"1\\"` {
		t.Fatalf("unexpected escaped formula %s", got)
	}
	if got := And(Eq("A", "1"), "", Gte("Date_Created", "2025-01-01")); got != `AND({A} = "1", {Date_Created} >= "2025-01-01")` {
		t.Fatalf("unexpected AND formula %s", got)
	}
	if got := And("", Eq("A", "1")); got != `{A} = "1"` {
		t.Fatalf("single condition should not be wrapped, got %s", got)
	}
	if got := And(); got != "" {
		t.Fatalf("expected empty formula, got %s", got)
	}
	if got := Search("Charlotte", "Office_Location"); got != `SEARCH("Charlotte", {Office_Location}) > 0` {
		t.Fatalf("unexpected search formula %s", got)
	}
}
