package payroll_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-payslip/internal/payroll"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage_Save(t *testing.T) {
	dir := t.TempDir()
	s := payroll.NewLocalStorage(dir, "http://localhost:8080/files/")

	url, err := s.Save(context.Background(), "c1/2026-06/Acme Corp_salary_slip_John Doe.pdf", []byte("%PDF"))

	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/c1/2026-06/Acme%20Corp_salary_slip_John%20Doe.pdf", url)

	got, err := os.ReadFile(filepath.Join(dir, "c1", "2026-06", "Acme Corp_salary_slip_John Doe.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, "%PDF", string(got))
}

func TestLocalStorage_KeyStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s := payroll.NewLocalStorage(dir, "http://files")

	url, err := s.Save(context.Background(), "../../escape.pdf", []byte("x"))

	assert.NoError(t, err)
	assert.Equal(t, "http://files/escape.pdf", url)
	_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.NoError(t, err)
}
