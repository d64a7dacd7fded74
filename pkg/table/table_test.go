package table

import (
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	csv := "\ufeffFirst Name , Last Name\nAna,Lopez\nJuan,Perez\n"
	tbl, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0] != "First Name" || tbl.Columns[1] != "Last Name" {
		t.Errorf("headers = %v, want trimmed [First Name, Last Name]", tbl.Columns)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d, want 2", tbl.Len())
	}
	if tbl.Rows[0]["First Name"] != "Ana" || tbl.Rows[1]["Last Name"] != "Perez" {
		t.Errorf("unexpected rows: %v", tbl.Rows)
	}
}

func TestReadCSVPadsShortRows(t *testing.T) {
	csv := "a,b,c\n1,2\n"
	tbl, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.Rows[0]["c"] != "" {
		t.Errorf("short row should pad %q with empty, got %q", "c", tbl.Rows[0]["c"])
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestRequireColumns(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Date,Users\n5/1/2024,Ana\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if err := RequireColumns(tbl, "Date", "Users"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err = RequireColumns(tbl, "Shift title")
	if err == nil || !strings.Contains(err.Error(), "Shift title") {
		t.Errorf("expected missing-column error naming Shift title, got %v", err)
	}
}

func TestIsBlank(t *testing.T) {
	for _, s := range []string{"", "  ", "nan", "NaN", " NAN "} {
		if !IsBlank(s) {
			t.Errorf("IsBlank(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"0", "Ana", "nana"} {
		if IsBlank(s) {
			t.Errorf("IsBlank(%q) = true, want false", s)
		}
	}
}

func TestParseOptionalNumber(t *testing.T) {
	if v, ok := ParseOptionalNumber(" 120 "); !ok || v != 120 {
		t.Errorf("ParseOptionalNumber(120) = %v %v", v, ok)
	}
	if v, ok := ParseOptionalNumber("1.5"); !ok || v != 1.5 {
		t.Errorf("ParseOptionalNumber(1.5) = %v %v", v, ok)
	}
	for _, s := range []string{"", "nan", "n/a", "12m"} {
		if _, ok := ParseOptionalNumber(s); ok {
			t.Errorf("ParseOptionalNumber(%q) should be missing", s)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []string{"5/1/2024", "05/01/2024", "2024-05-01", "2024-05-01 08:30:00"}
	for _, c := range cases {
		d, ok := ParseDate(c)
		if !ok {
			t.Errorf("ParseDate(%q) failed", c)
			continue
		}
		if d.Year() != 2024 || d.Month() != 5 || d.Day() != 1 {
			t.Errorf("ParseDate(%q) = %v, want 2024-05-01", c, d)
		}
	}
	for _, c := range []string{"", "nan", "not a date", "13/45/2024"} {
		if _, ok := ParseDate(c); ok {
			t.Errorf("ParseDate(%q) should fail", c)
		}
	}
}

func TestSameDay(t *testing.T) {
	a, _ := ParseDate("2024-05-01 08:30:00")
	b, _ := ParseDate("5/1/2024")
	if !SameDay(a, b) {
		t.Error("time of day must be ignored in date comparison")
	}
	c, _ := ParseDate("5/2/2024")
	if SameDay(a, c) {
		t.Error("different days must not compare equal")
	}
}
