package preview

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/session"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

// Materializer implements session.Previewer: reads the selected file and
// produces the data-URL representation the preview widget renders. MIME is
// sniffed from content, not trusted from the picker; the accept filter is
// advisory only.
type Materializer struct{}

func New() *Materializer { return &Materializer{} }

func (m *Materializer) Materialize(ctx context.Context, f analysis.File) (session.Preview, error) {
	if err := ctx.Err(); err != nil {
		return session.Preview{}, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return session.Preview{}, fmt.Errorf("read %s: %w", f.Path, err)
	}

	mime := SniffMIME(data)
	if mime == "" {
		mime = f.MIME
	}
	if mime == "" {
		mime = "application/octet-stream"
	}

	return session.Preview{
		DataURL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		MIME:    mime,
		Kind:    analysis.KindOfMIME(mime),
	}, nil
}

// SniffMIME detects the MIME type from magic bytes; empty when unknown.
func SniffMIME(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// SizeLabel renders a selected file's size for display next to the preview.
func SizeLabel(n int64) string {
	return humanize.Bytes(uint64(n))
}
