package ai

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/models"
	"github.com/gabriel-vasile/mimetype"
)

var (
	// DocumentTypes are accepted by the summarizer and the test generator.
	DocumentTypes = []string{"application/pdf", "text/plain"}

	// ChatTypes are accepted as chat attachments.
	ChatTypes = []string{"application/pdf", "text/plain", "image/jpeg", "image/png", "image/webp"}
)

// ProgressFunc receives read progress in percent.
type ProgressFunc func(percent int)

// Attachment is a file read into memory and tagged with its MIME type.
type Attachment struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
}

// DisplaySize is the size as stored in activity records, e.g. "12.34 KB".
func (a *Attachment) DisplaySize() string {
	return models.FormatFileSize(a.Size)
}

const readChunk = 32 * 1024

// DetectType sniffs the type of the file at path and returns the entry of
// allowed it matches. Only the file header is read.
func DetectType(path string, allowed []string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect type of %s: %w", filepath.Base(path), err)
	}
	for _, a := range allowed {
		if m.Is(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s", common.ErrUnsupportedFileType, m.String())
}

// OpenAttachment type-checks the file at path against allowed, then reads
// it fully while reporting progress. An unsupported type fails with
// common.ErrUnsupportedFileType before the body is read.
func OpenAttachment(path string, allowed []string, progress ProgressFunc) (*Attachment, error) {
	if progress == nil {
		progress = func(int) {}
	}

	mimeType, err := DetectType(path, allowed)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	data, err := ReadWithProgress(f, info.Size(), progress)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", info.Name(), err)
	}

	return &Attachment{
		Name:     info.Name(),
		MIMEType: mimeType,
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}

// ReadWithProgress reads r to EOF. progress gets 0 first, the completed
// percentage after each chunk while below 100, and 100 at the end. On a read
// error it gets 0 again.
func ReadWithProgress(r io.Reader, size int64, progress ProgressFunc) ([]byte, error) {
	progress(0)

	buf := make([]byte, 0, max(size, 0))
	chunk := make([]byte, readChunk)
	last := 0

	for {
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)

		if n > 0 && size > 0 {
			pct := int(int64(len(buf)) * 100 / size)
			if pct > last && pct < 100 {
				progress(pct)
				last = pct
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			progress(0)
			return nil, err
		}
	}

	progress(100)
	return buf, nil
}
