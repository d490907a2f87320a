package ticket

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Format_Writes_Canonical_Layout(t *testing.T) {
	t.Parallel()

	rec := Record{ID: 0, Status: StatusOpen, Body: "fix bug"}

	got := rec.Format()
	want := "ticket:0\nstatus:open\n================\nfix bug\n\n"

	if got != want {
		t.Errorf("Format() mismatch\ngot:  %q\nwant: %q", got, want)
	}
}

func Test_Format_Orders_Owner_Before_Extra_Fields(t *testing.T) {
	t.Parallel()

	rec := Record{
		ID:     12,
		Status: StatusInProgress,
		Owner:  "alice",
		Fields: []Field{{Key: "priority", Value: "2"}, {Key: "area", Value: "cli"}},
		Body:   "line one\nline two",
	}

	got := rec.Format()
	want := "ticket:12\nstatus:in_progress\nowner:alice\npriority:2\narea:cli\n================\nline one\nline two\n\n"

	if got != want {
		t.Errorf("Format() mismatch\ngot:  %q\nwant: %q", got, want)
	}
}

func Test_Parse_Round_Trips_Formatted_Records(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  Record
	}{
		{name: "minimal", rec: Record{ID: 0, Status: StatusOpen, Body: "fix bug"}},
		{name: "empty body", rec: Record{ID: 3, Status: StatusOpen}},
		{name: "owner", rec: Record{ID: 7, Status: StatusClosed, Owner: "bob", Body: "x"}},
		{
			name: "extra fields",
			rec: Record{
				ID:     42,
				Status: StatusComplete,
				Fields: []Field{{Key: "due", Value: "2026-01-01"}, {Key: "url", Value: "http://x/y:1"}},
				Body:   "multi\nline\n\nbody",
			},
		},
		{name: "body with trailing newline", rec: Record{ID: 1, Status: StatusOpen, Body: "a\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse([]byte(tt.rec.Format()))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if diff := cmp.Diff(tt.rec, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Parse_Accepts_Any_Delimiter_Length_And_Leading_Blank_Line(t *testing.T) {
	t.Parallel()

	raw := "ticket:5\nstatus:open\n===\n\nhand written\n"

	got, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Record{ID: 5, Status: StatusOpen, Body: "hand written"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func Test_Parse_Keeps_Values_Containing_Colons(t *testing.T) {
	t.Parallel()

	got, err := Parse([]byte("ticket:1\nstatus:open\nlink:https://example.com/a\n=\nb\n\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	value, ok := got.Field("link")
	if !ok || value != "https://example.com/a" {
		t.Errorf("Field(link) = %q, %v; want https://example.com/a, true", value, ok)
	}
}

func Test_Parse_Splits_At_First_Delimiter_Only(t *testing.T) {
	t.Parallel()

	got, err := Parse([]byte("ticket:1\nstatus:open\n====\nabove\n====\nbelow\n\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got.Body != "above\n====\nbelow" {
		t.Errorf("Body = %q", got.Body)
	}
}

func Test_Parse_Rejects_Malformed_Input(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "no delimiter", raw: "ticket:0\nstatus:open\nbody\n"},
		{name: "empty file", raw: ""},
		{name: "header line without colon", raw: "ticket:0\nstatus:open\nnonsense\n====\nbody\n"},
		{name: "blank header line", raw: "ticket:0\n\nstatus:open\n====\nbody\n"},
		{name: "empty key", raw: "ticket:0\nstatus:open\n:value\n====\nbody\n"},
		{name: "missing ticket", raw: "status:open\n====\nbody\n"},
		{name: "missing status", raw: "ticket:0\n====\nbody\n"},
		{name: "non numeric id", raw: "ticket:abc\nstatus:open\n====\nbody\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.raw))
			if !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("Parse() error = %v, want ErrMalformedHeader", err)
			}
		})
	}
}

func Test_SetStatusInContent_Touches_Only_Status_Line(t *testing.T) {
	t.Parallel()

	raw := "ticket:3\nstatus:open\nowner:alice\nx-custom:keep me\n==========\nstatus:open in body\n\n"

	got, err := SetStatusInContent([]byte(raw), StatusClosed)
	if err != nil {
		t.Fatalf("SetStatusInContent() error = %v", err)
	}

	want := "ticket:3\nstatus:closed\nowner:alice\nx-custom:keep me\n==========\nstatus:open in body\n\n"
	if string(got) != want {
		t.Errorf("SetStatusInContent() mismatch\ngot:  %q\nwant: %q", got, want)
	}
}

func Test_SetStatusInContent_Is_Idempotent(t *testing.T) {
	t.Parallel()

	raw := []byte("ticket:0\nstatus:open\n================\nfix bug\n\n")

	first, err := SetStatusInContent(raw, StatusClosed)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	second, err := SetStatusInContent(first, StatusClosed)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("second rewrite changed content\nfirst:  %q\nsecond: %q", first, second)
	}
}

func Test_SetStatusInContent_Fails_Without_Status_Or_Delimiter(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"ticket:0\nstatus:open\nno delimiter\n",
		"ticket:0\n====\nstatus:open\n",
	} {
		_, err := SetStatusInContent([]byte(raw), StatusClosed)
		if !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("SetStatusInContent(%q) error = %v, want ErrMalformedHeader", raw, err)
		}
	}
}

func Test_ParseID_Accepts_Only_Canonical_Decimal(t *testing.T) {
	t.Parallel()

	valid := map[string]uint64{"0": 0, "9": 9, "10": 10, "18446744073709551615": 1<<64 - 1}
	for in, want := range valid {
		got, err := ParseID(in)
		if err != nil || got != want {
			t.Errorf("ParseID(%q) = %d, %v; want %d, nil", in, got, err, want)
		}
	}

	for _, in := range []string{"", "-1", "+1", "007", "1.0", "abc", " 1", "18446744073709551616"} {
		_, err := ParseID(in)
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseID(%q) error = %v, want ErrInvalidID", in, err)
		}
	}
}

func Test_Title_Returns_First_Non_Empty_Body_Line(t *testing.T) {
	t.Parallel()

	rec := Record{Body: "\n  \n  first line  \nsecond"}
	if got := rec.Title(); got != "first line" {
		t.Errorf("Title() = %q, want %q", got, "first line")
	}
}
