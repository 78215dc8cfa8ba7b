package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/studymate/internal/ai"
	"github.com/dmitrijs2005/studymate/internal/common"
)

type uploadStatus string

const (
	statusUploading  uploadStatus = "uploading"
	statusGenerating uploadStatus = "generating"
	statusSuccess    uploadStatus = "success"
	statusError      uploadStatus = "error"
)

// uploadProgress prints the status line of a document being read and
// processed.
// The percentage is only printed while uploading.
type uploadProgress struct {
	a        *App
	fileName string
	percent  int
	status   uploadStatus
}

func (p *uploadProgress) message() string {
	switch p.status {
	case statusUploading:
		return p.a.tp("feature.upload.status.uploading", map[string]any{"fileName": p.fileName})
	case statusGenerating:
		return p.a.t("feature.upload.status.generating")
	case statusSuccess:
		return p.a.t("feature.upload.status.success")
	case statusError:
		return p.a.t("feature.upload.status.error")
	}
	return ""
}

func (p *uploadProgress) set(status uploadStatus) {
	p.status = status
	line := p.message()
	if status == statusUploading {
		line = fmt.Sprintf("%s %d%%", line, p.percent)
	}
	switch status {
	case statusError:
		p.a.printError(line)
	case statusSuccess:
		p.a.printSuccess(line)
	default:
		p.a.println(muted(line))
	}
}

// report is an ai.ProgressFunc. Reaching 100 switches to generating.
func (p *uploadProgress) report(pct int) {
	p.percent = pct
	if pct == 100 {
		p.set(statusGenerating)
		return
	}
	p.set(statusUploading)
}

// docTypesLabel is shown in unsupported-type messages.
const docTypesLabel = "PDF, TXT"

// openDocument type-checks and reads path for the summarizer or the test
// generator, printing progress. noFileKey is the feature's no-file message.
// Unsupported types are rejected before any progress is shown.
func (a *App) openDocument(ctx context.Context, path, noFileKey string) (*ai.Attachment, *uploadProgress, bool) {
	if path == "" {
		a.printError(a.t(noFileKey))
		return nil, nil, false
	}

	p := &uploadProgress{a: a, fileName: filepath.Base(path)}
	att, err := ai.OpenAttachment(path, ai.DocumentTypes, p.report)
	if err != nil {
		if p.status != "" {
			p.set(statusError)
		}
		a.reportOpenError(ctx, path, err)
		return nil, nil, false
	}
	return att, p, true
}

func (a *App) reportOpenError(ctx context.Context, path string, err error) {
	if errors.Is(err, common.ErrUnsupportedFileType) {
		a.printError(a.tp("feature.summarizer.error.unsupported", map[string]any{"fileTypes": docTypesLabel}))
		return
	}
	a.log.Warn(ctx, "document not read", "path", path, "error", err)
	a.printError(a.t("feature.upload.status.error"))
}
