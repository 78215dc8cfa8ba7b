package ai

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func writeZip(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("lecture notes"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return writeFile(t, "notes.zip", buf.Bytes())
}

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

var pngBytes = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0, 0, 0, 13, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0,
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		allowed []string
		want    string
		wantErr error
	}{
		{"pdf as document", writeFile(t, "a.pdf", pdfBytes), DocumentTypes, "application/pdf", nil},
		{"text as document", writeFile(t, "a.txt", []byte("hello world\n")), DocumentTypes, "text/plain", nil},
		{"png for chat", writeFile(t, "a.png", pngBytes), ChatTypes, "image/png", nil},
		{"png not a document", writeFile(t, "b.png", pngBytes), DocumentTypes, "", common.ErrUnsupportedFileType},
		{"zip rejected", writeZip(t), ChatTypes, "", common.ErrUnsupportedFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectType(tt.path, tt.allowed)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAttachment_ReadsAndReportsProgress(t *testing.T) {
	body := bytes.Repeat([]byte("study hard\n"), 10000)
	path := writeFile(t, "notes.txt", body)

	var seen []int
	att, err := OpenAttachment(path, DocumentTypes, func(p int) { seen = append(seen, p) })
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", att.Name)
	assert.Equal(t, "text/plain", att.MIMEType)
	assert.Equal(t, int64(len(body)), att.Size)
	assert.Equal(t, body, att.Data)

	require.GreaterOrEqual(t, len(seen), 3)
	assert.Equal(t, 0, seen[0])
	assert.Equal(t, 100, seen[len(seen)-1])
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1], "progress must increase")
	}
}

func TestOpenAttachment_UnsupportedNeverReadsBody(t *testing.T) {
	called := false
	_, err := OpenAttachment(writeZip(t), DocumentTypes, func(int) { called = true })
	require.ErrorIs(t, err, common.ErrUnsupportedFileType)
	assert.False(t, called, "progress is reported only once reading starts")
}

func TestOpenAttachment_MissingFile(t *testing.T) {
	_, err := OpenAttachment(filepath.Join(t.TempDir(), "absent.pdf"), DocumentTypes, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrUnsupportedFileType)
}

type failingReader struct {
	n int
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.n == 0 {
		r.n++
		return copy(p, bytes.Repeat([]byte("x"), 10)), nil
	}
	return 0, errors.New("device unplugged")
}

func TestReadWithProgress_ResetsOnError(t *testing.T) {
	var seen []int
	_, err := ReadWithProgress(&failingReader{}, 100, func(p int) { seen = append(seen, p) })
	require.Error(t, err)
	assert.Equal(t, []int{0, 10, 0}, seen)
}

func TestReadWithProgress_EmptyInput(t *testing.T) {
	var seen []int
	data, err := ReadWithProgress(bytes.NewReader(nil), 0, func(p int) { seen = append(seen, p) })
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, []int{0, 100}, seen)
}

func TestReadWithProgress_SizeUnknown(t *testing.T) {
	var seen []int
	data, err := ReadWithProgress(io.LimitReader(bytes.NewReader(make([]byte, 5000)), 5000), 0, func(p int) { seen = append(seen, p) })
	require.NoError(t, err)
	assert.Len(t, data, 5000)
	assert.Equal(t, []int{0, 100}, seen)
}

func TestAttachment_DisplaySize(t *testing.T) {
	a := &Attachment{Size: 12636}
	assert.Equal(t, "12.34 KB", a.DisplaySize())
}
