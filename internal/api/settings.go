package api

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ukaji3/exaccum-go/pkg/exaccum"
)

// Settings holds what the handlers need to reach the pipeline.
type Settings struct {
	SourcePath   string
	ExportPrefix string
	ResultPrefix string
	Options      exaccum.Options
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// contentDisposition builds an attachment header that survives non-ASCII file names.
func contentDisposition(name string) string {
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, asciiFallback(name), url.PathEscape(name))
}

func asciiFallback(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}
