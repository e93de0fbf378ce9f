package payroll

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	payrollerrors "go-payslip/internal/payroll/errors"
)

// Storage keeps rendered payslips and returns the URL they are served from.
type Storage interface {
	Save(ctx context.Context, key string, body []byte) (string, error)
}

type localStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, publicBaseURL string) Storage {
	return &localStorage{
		dir:     dir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *localStorage) Save(ctx context.Context, key string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean("/" + filepath.ToSlash(key))[1:]
	path := filepath.Join(s.dir, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", payrollerrors.ErrPayslipStorage.WithCause(err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", payrollerrors.ErrPayslipStorage.WithCause(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", payrollerrors.ErrPayslipStorage.WithCause(err)
	}

	segments := strings.Split(clean, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/"), nil
}
