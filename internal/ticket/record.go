package ticket

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Header keys with a fixed position in the file.
const (
	keyTicket = "ticket"
	keyStatus = "status"
	keyOwner  = "owner"
)

// Delimiter separates the header from the body. Any line made only of '='
// characters is accepted when parsing.
const Delimiter = "================"

// Field is a header line the record does not interpret.
type Field struct {
	Key   string
	Value string
}

// Record is a parsed ticket file.
type Record struct {
	ID     uint64
	Status Status
	Owner  string
	// Fields holds every other header line in file order.
	Fields []Field
	Body   string
}

// Field returns the value of an extra header field.
func (r *Record) Field(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return "", false
}

// Title returns the first non-empty line of the body.
func (r *Record) Title() string {
	for line := range strings.SplitSeq(r.Body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}

	return ""
}

// Format serializes the record: ticket, status, owner (when set), the extra
// fields in order, the delimiter, the body and a trailing blank line.
func (r *Record) Format() string {
	var b strings.Builder

	b.WriteString(keyTicket + ":" + strconv.FormatUint(r.ID, 10) + "\n")
	b.WriteString(keyStatus + ":" + string(r.Status) + "\n")

	if r.Owner != "" {
		b.WriteString(keyOwner + ":" + r.Owner + "\n")
	}

	for _, f := range r.Fields {
		b.WriteString(f.Key + ":" + f.Value + "\n")
	}

	b.WriteString(Delimiter + "\n")
	b.WriteString(r.Body + "\n\n")

	return b.String()
}

// Parse parses raw ticket file content.
func Parse(raw []byte) (Record, error) {
	text := string(raw)

	header, rest, found := splitAtDelimiter(text)
	if !found {
		return Record{}, fmt.Errorf("%w: no delimiter line", ErrMalformedHeader)
	}

	var (
		rec       Record
		hasID     bool
		hasStatus bool
	)

	for lineNo, line := range header {
		key, value, ok := strings.Cut(line, ":")
		if !ok || key == "" {
			return Record{}, fmt.Errorf("%w: line %d: %q", ErrMalformedHeader, lineNo+1, line)
		}

		switch key {
		case keyTicket:
			id, err := ParseID(value)
			if err != nil {
				return Record{}, fmt.Errorf("%w: line %d: %w", ErrMalformedHeader, lineNo+1, err)
			}

			rec.ID = id
			hasID = true
		case keyStatus:
			rec.Status = Status(value)
			hasStatus = true
		case keyOwner:
			rec.Owner = value
		default:
			rec.Fields = append(rec.Fields, Field{Key: key, Value: value})
		}
	}

	if !hasID {
		return Record{}, fmt.Errorf("%w: missing %q", ErrMalformedHeader, keyTicket)
	}

	if !hasStatus {
		return Record{}, fmt.Errorf("%w: missing %q", ErrMalformedHeader, keyStatus)
	}

	rec.Body = parseBody(rest)

	return rec, nil
}

// splitAtDelimiter returns the header lines before the first delimiter line
// and the text after it.
func splitAtDelimiter(text string) ([]string, string, bool) {
	var header []string

	rest := text
	for rest != "" {
		line, after, hasNewline := strings.Cut(rest, "\n")
		if !hasNewline {
			after = ""
		}

		if isDelimiter(line) {
			return header, after, true
		}

		header = append(header, line)
		rest = after
	}

	return nil, "", false
}

func isDelimiter(line string) bool {
	return line != "" && strings.Trim(line, "=") == ""
}

func parseBody(rest string) string {
	body, ok := strings.CutSuffix(rest, "\n\n")
	if !ok {
		body = strings.TrimSuffix(rest, "\n")
	}

	return strings.TrimPrefix(body, "\n")
}

// SetStatusInContent rewrites the status line of raw ticket content.
// All other bytes are left untouched.
func SetStatusInContent(raw []byte, status Status) ([]byte, error) {
	if _, _, found := splitAtDelimiter(string(raw)); !found {
		return nil, fmt.Errorf("%w: no delimiter line", ErrMalformedHeader)
	}

	lines := bytes.SplitAfter(raw, []byte("\n"))
	prefix := []byte(keyStatus + ":")

	for i, line := range lines {
		trimmed := bytes.TrimSuffix(line, []byte("\n"))

		if isDelimiter(string(trimmed)) {
			break
		}

		if !bytes.HasPrefix(trimmed, prefix) {
			continue
		}

		replacement := keyStatus + ":" + string(status)
		if len(trimmed) != len(line) {
			replacement += "\n"
		}

		lines[i] = []byte(replacement)

		return bytes.Join(lines, nil), nil
	}

	return nil, fmt.Errorf("%w: missing %q", ErrMalformedHeader, keyStatus)
}

// ParseID parses a ticket ID. Only the canonical decimal form is accepted, so
// "007" and "+7" are rejected.
func ParseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || strconv.FormatUint(id, 10) != s {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	return id, nil
}

func validateField(f Field) error {
	switch {
	case f.Key == "":
		return fmt.Errorf("%w: empty key", ErrInvalidField)
	case f.Key == keyTicket || f.Key == keyStatus || f.Key == keyOwner:
		return fmt.Errorf("%w: %q is reserved", ErrInvalidField, f.Key)
	case strings.ContainsAny(f.Key, ":\n"), isDelimiter(f.Key):
		return fmt.Errorf("%w: bad key %q", ErrInvalidField, f.Key)
	case strings.Contains(f.Value, "\n"):
		return fmt.Errorf("%w: value of %q spans lines", ErrInvalidField, f.Key)
	}

	return nil
}
