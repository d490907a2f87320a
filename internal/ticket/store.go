package ticket

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Store owns the ticket files of one project directory.
type Store struct {
	dir      string
	lockPath string
}

// Open returns a store for dir, creating the directory (and its parents) if
// needed.
func Open(dir string) (*Store, error) {
	err := os.MkdirAll(dir, dirPerms)
	if err != nil {
		return nil, fmt.Errorf("creating ticket directory: %w", err)
	}

	// The lock lives next to the directory so it never shows up as a ticket.
	parent, base := filepath.Split(filepath.Clean(dir))

	return &Store{
		dir:      dir,
		lockPath: filepath.Join(parent, "."+base+".lock"),
	}, nil
}

// Dir returns the project ticket directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of a ticket.
func (s *Store) Path(id uint64) string {
	return filepath.Join(s.dir, strconv.FormatUint(id, 10))
}

// entry is a directory entry that is a ticket candidate.
type entry struct {
	name string
	id   uint64
	err  error
}

// entries lists ticket candidates in ascending ID order. Entries whose name is
// not a canonical ID are returned last with err set.
func (s *Store) entries() ([]entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading ticket directory: %w", err)
	}

	result := make([]entry, 0, len(dirEntries))

	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		id, parseErr := ParseID(name)
		if parseErr != nil {
			result = append(result, entry{name: name, err: fmt.Errorf("%w: %q", ErrCorruptTicketName, name)})

			continue
		}

		result = append(result, entry{name: name, id: id})
	}

	slices.SortFunc(result, func(a, b entry) int {
		switch {
		case a.err != nil && b.err != nil:
			return strings.Compare(a.name, b.name)
		case a.err != nil:
			return 1
		case b.err != nil:
			return -1
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}

		return 0
	})

	return result, nil
}

// IDs returns the ticket IDs in ascending numeric order. Any file not named by
// a canonical ID fails with [ErrCorruptTicketName].
func (s *Store) IDs() ([]uint64, error) {
	entries, err := s.entries()
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(entries))

	for _, e := range entries {
		if e.err != nil {
			return nil, e.err
		}

		ids = append(ids, e.id)
	}

	return ids, nil
}

// NextID returns the ID the next created ticket receives: one past the
// highest existing ID, or 0 for an empty directory.
func (s *Store) NextID() (uint64, error) {
	ids, err := s.IDs()
	if err != nil {
		return 0, err
	}

	if len(ids) == 0 {
		return 0, nil
	}

	return ids[len(ids)-1] + 1, nil
}

// CreateInput holds the header and body of a new ticket.
type CreateInput struct {
	Body   string
	Owner  string
	Fields []Field
}

// Create allocates the next ID and writes a new open ticket. The write never
// replaces an existing file; a taken name fails with [ErrTicketAlreadyExists].
func (s *Store) Create(input CreateInput) (Record, error) {
	if strings.Contains(input.Owner, "\n") {
		return Record{}, fmt.Errorf("%w: owner spans lines", ErrInvalidField)
	}

	for _, f := range input.Fields {
		err := validateField(f)
		if err != nil {
			return Record{}, err
		}
	}

	rec := Record{
		Status: StatusOpen,
		Owner:  input.Owner,
		Fields: slices.Clone(input.Fields),
		Body:   strings.TrimLeft(input.Body, "\r\n"),
	}

	err := withLock(s.lockPath, func() error {
		id, err := s.NextID()
		if err != nil {
			return err
		}

		rec.ID = id

		return writeNew(s.Path(id), rec.Format())
	})
	if err != nil {
		return Record{}, err
	}

	return rec, nil
}

func writeNew(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerms)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrTicketAlreadyExists, path)
		}

		return fmt.Errorf("creating ticket: %w", err)
	}

	_, err = f.WriteString(content)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)

		return fmt.Errorf("writing ticket: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("closing ticket: %w", err)
	}

	return nil
}

// List parses every ticket and returns them in ascending ID order. Corrupt
// names, unreadable files and unparsable tickets are skipped; a warning for
// each is written to diag (which may be nil).
func (s *Store) List(diag io.Writer) ([]Record, error) {
	if diag == nil {
		diag = io.Discard
	}

	entries, err := s.entries()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(entries))

	for _, e := range entries {
		if e.err != nil {
			warn(diag, e.err)

			continue
		}

		path := filepath.Join(s.dir, e.name)

		info, statErr := os.Stat(path)
		if statErr != nil {
			warn(diag, fmt.Errorf("ticket %s: %w", e.name, statErr))

			continue
		}

		if !info.Mode().IsRegular() {
			warn(diag, fmt.Errorf("%w: %q is not a regular file", ErrCorruptTicketName, e.name))

			continue
		}

		rec, readErr := readRecord(path)
		if readErr != nil {
			warn(diag, fmt.Errorf("ticket %s: %w", e.name, readErr))

			continue
		}

		// The file name is authoritative for the ID.
		if rec.ID != e.id {
			warn(diag, fmt.Errorf("ticket %s: header says ticket:%d", e.name, rec.ID))

			rec.ID = e.id
		}

		records = append(records, rec)
	}

	return records, nil
}

func warn(diag io.Writer, err error) {
	_, _ = fmt.Fprintln(diag, "warning:", err)
}

func readRecord(path string) (Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading ticket: %w", err)
	}

	return Parse(content)
}

// Get reads and parses one ticket.
func (s *Store) Get(id string) (Record, error) {
	path, err := s.EditPath(id)
	if err != nil {
		return Record{}, err
	}

	rec, err := readRecord(path)
	if err != nil {
		return Record{}, fmt.Errorf("ticket %s: %w", id, err)
	}

	return rec, nil
}

// EditPath validates that the ticket exists and returns its file path.
func (s *Store) EditPath(id string) (string, error) {
	n, err := ParseID(id)
	if err != nil {
		return "", err
	}

	path := s.Path(n)

	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}

	if err != nil {
		return "", fmt.Errorf("ticket %s: %w", id, err)
	}

	return path, nil
}

// SetStatus rewrites the status line of each named ticket. Every ID is tried
// independently: the IDs that were updated are returned together with the
// joined errors of those that failed.
func (s *Store) SetStatus(ids []string, status Status) ([]uint64, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var (
		updated []uint64
		errs    []error
	)

	seen := make(map[string]bool, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}

		seen[id] = true

		n, err := s.setStatus(id, status)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		updated = append(updated, n)
	}

	return updated, errors.Join(errs...)
}

func (s *Store) setStatus(id string, status Status) (uint64, error) {
	n, err := ParseID(id)
	if err != nil {
		return 0, err
	}

	path := s.Path(n)

	err = withLock(s.lockPath, func() error {
		content, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
		}

		if err != nil {
			return fmt.Errorf("reading ticket %s: %w", id, err)
		}

		updated, err := SetStatusInContent(content, status)
		if err != nil {
			return fmt.Errorf("ticket %s: %w", id, err)
		}

		if string(updated) == string(content) {
			return nil
		}

		return replaceFile(path, updated)
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

// replaceFile atomically replaces path with content. The temp file is hidden
// so concurrent listings never mistake it for a ticket.
func replaceFile(path string, content []byte) error {
	dir, base := filepath.Split(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Sync()
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = atomic.ReplaceFile(tmpPath, path)
	}

	if err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
