package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// sniffLen is how much of an upload is inspected to detect its type.
const sniffLen = 3072

type StoredFile struct {
	ID           string
	OriginalName string
	MIMEType     string
	Size         int64
}

// FileStore keeps uploads on local disk under generated, collision-resistant names.
type FileStore struct {
	dir string
	now func() time.Time
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Save(src io.Reader, originalName string) (*StoredFile, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	mtype := mimetype.Detect(head)

	ext := filepath.Ext(filepath.Base(originalName))
	if ext == "" {
		ext = mtype.Extension()
	}
	name := fmt.Sprintf("%d-%d%s", s.now().UnixMilli(), rand.Int64N(1e9), ext)

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	size, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), src))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", path).Msg("service: failed to remove partial upload")
		}
		return nil, fmt.Errorf("write upload: %w", err)
	}

	log.Info().Str("file_id", name).Str("mime", mtype.String()).Int64("size", size).Msg("service: file stored")

	return &StoredFile{ID: name, OriginalName: originalName, MIMEType: mtype.String(), Size: size}, nil
}
