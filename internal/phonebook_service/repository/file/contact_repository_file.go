package file

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aradsms/phonebook/internal/phonebook_service/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
	"gopkg.in/yaml.v3"
)

const (
	documentFormat  = "phonebook"
	documentVersion = 1
	checksumPrefix  = "sha3-256:"

	opSave = "save"
	opLoad = "load"
)

// document is the on-disk layout of the backing file.
type document struct {
	Format   string           `yaml:"format"`
	Version  int              `yaml:"version"`
	Revision string           `yaml:"revision,omitempty"`
	SavedAt  time.Time        `yaml:"saved_at,omitempty"`
	Checksum string           `yaml:"checksum,omitempty"`
	Contacts []domain.Contact `yaml:"contacts"`
}

// Options tune the file repository. The zero value is usable.
type Options struct {
	// FileMode is applied to the backing file on save. Zero means 0600.
	FileMode os.FileMode
	// SkipChecksum disables checksum verification on load.
	SkipChecksum bool
}

// ContactRepository stores the phonebook as a single YAML document.
type ContactRepository struct {
	path   string
	opts   Options
	logger *slog.Logger
	now    func() time.Time
	rename func(oldpath, newpath string) error

	lastRevision string
}

var _ domain.ContactRepository = (*ContactRepository)(nil)

func NewContactRepository(path string, opts Options, logger *slog.Logger) *ContactRepository {
	if opts.FileMode == 0 {
		opts.FileMode = 0o600
	}
	return &ContactRepository{
		path:   path,
		opts:   opts,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		rename: os.Rename,
	}
}

func (r *ContactRepository) Location() string {
	return r.path
}

// LastRevision is the revision id written or read most recently.
func (r *ContactRepository) LastRevision() string {
	return r.lastRevision
}

// Save writes the collection to a temporary file next to the target and
// renames it into place, so a reader sees either the old or the new document.
func (r *ContactRepository) Save(ctx context.Context, contacts []domain.Contact) error {
	if err := ctx.Err(); err != nil {
		return domain.NewIOError(opSave, r.path, err)
	}

	normalized := normalize(contacts)
	sum, err := checksum(normalized)
	if err != nil {
		return domain.NewIOError(opSave, r.path, fmt.Errorf("encoding contacts: %w", err))
	}
	doc := document{
		Format:   documentFormat,
		Version:  documentVersion,
		Revision: uuid.NewString(),
		SavedAt:  r.now(),
		Checksum: sum,
		Contacts: normalized,
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return domain.NewIOError(opSave, r.path, fmt.Errorf("encoding document: %w", err))
	}
	if err := enc.Close(); err != nil {
		return domain.NewIOError(opSave, r.path, fmt.Errorf("encoding document: %w", err))
	}

	if err := r.writeAtomic(buf.Bytes()); err != nil {
		r.logger.ErrorContext(ctx, "Failed to save phonebook", "path", r.path, "error", err)
		return domain.NewIOError(opSave, r.path, err)
	}
	r.lastRevision = doc.Revision
	r.logger.InfoContext(ctx, "Phonebook saved", "path", r.path, "contacts", len(contacts), "revision", doc.Revision)
	return nil
}

func (r *ContactRepository) writeAtomic(data []byte) (err error) {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, r.opts.FileMode); err != nil {
		return err
	}
	return r.rename(tmpName, r.path)
}

// Load reads the backing file. A missing file is the first-run state and
// yields an empty collection.
func (r *ContactRepository) Load(ctx context.Context) ([]domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewIOError(opLoad, r.path, err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.WarnContext(ctx, "Phonebook file not found, starting empty", "path", r.path)
			return []domain.Contact{}, nil
		}
		r.logger.ErrorContext(ctx, "Failed to read phonebook", "path", r.path, "error", err)
		return nil, domain.NewIOError(opLoad, r.path, err)
	}

	doc, err := r.decode(data)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to decode phonebook", "path", r.path, "error", err)
		return nil, domain.NewDecodeError(opLoad, r.path, err)
	}
	r.lastRevision = doc.Revision
	r.logger.InfoContext(ctx, "Phonebook loaded", "path", r.path, "contacts", len(doc.Contacts), "revision", doc.Revision)
	return doc.Contacts, nil
}

func (r *ContactRepository) decode(data []byte) (*document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("unexpected second document")
		}
		return nil, fmt.Errorf("trailing content: %w", err)
	}
	if doc.Format != documentFormat {
		return nil, fmt.Errorf("unexpected format %q", doc.Format)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("unsupported version %d", doc.Version)
	}
	doc.Contacts = normalize(doc.Contacts)

	if doc.Checksum != "" && !r.opts.SkipChecksum {
		if !strings.HasPrefix(doc.Checksum, checksumPrefix) {
			return nil, fmt.Errorf("unsupported checksum %q", doc.Checksum)
		}
		sum, err := checksum(doc.Contacts)
		if err != nil {
			return nil, err
		}
		if sum != doc.Checksum {
			return nil, errors.New("checksum mismatch")
		}
	}
	return &doc, nil
}

// normalize returns cloned contacts, so that a document always decodes to
// the value it was encoded from.
func normalize(contacts []domain.Contact) []domain.Contact {
	out := make([]domain.Contact, len(contacts))
	for i, c := range contacts {
		out[i] = c.Clone()
	}
	return out
}

func checksum(contacts []domain.Contact) (string, error) {
	data, err := yaml.Marshal(contacts)
	if err != nil {
		return "", err
	}
	sum := sha3.Sum256(data)
	return checksumPrefix + hex.EncodeToString(sum[:]), nil
}
