package company_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-payslip/internal/company"
	companyerrors "go-payslip/internal/company/errors"
	"go-payslip/internal/shared/numword"

	"github.com/stretchr/testify/assert"
)

const profilesYAML = `
profiles:
  - company_id: "*"
    name: Default Works
    address: 1 Main Road
  - company_id: 6f1c2a40-0000-4000-8000-000000000001
    name: Acme Pvt Ltd
    address: 42 Ring Road, Bengaluru
    logo:
      url: https://cdn.example.com/logo.png
      fallbacks:
        - https://backup.example.com/logo.png
    signature:
      url: ./assets/signature.png
    signatory_name: R. Sharma
    words_grouping: indian
`

func TestRepository_FindByCompanyID(t *testing.T) {
	ctx := context.Background()
	repo, err := company.NewRepository([]byte(profilesYAML))
	assert.NoError(t, err)

	t.Run("exact match", func(t *testing.T) {
		p, err := repo.FindByCompanyID(ctx, "6f1c2a40-0000-4000-8000-000000000001")

		assert.NoError(t, err)
		assert.Equal(t, "Acme Pvt Ltd", p.Name)
		assert.Equal(t, []string{"https://backup.example.com/logo.png"}, p.Logo.Fallbacks)
		assert.Equal(t, numword.GroupingIndian, p.WordsGrouping)
	})

	t.Run("falls back to default profile", func(t *testing.T) {
		p, err := repo.FindByCompanyID(ctx, "other")

		assert.NoError(t, err)
		assert.Equal(t, "Default Works", p.Name)
		assert.Equal(t, "other", p.CompanyID)
		assert.Equal(t, numword.GroupingWestern, p.WordsGrouping)
	})
}

func TestRepository_NotFoundWithoutDefault(t *testing.T) {
	repo, err := company.NewRepository([]byte("profiles:\n  - company_id: a\n    name: A\n"))
	assert.NoError(t, err)

	_, err = repo.FindByCompanyID(context.Background(), "b")

	assert.ErrorIs(t, err, companyerrors.ErrCompanyProfileNotFound)
}

func TestNewRepository_Invalid(t *testing.T) {
	_, err := company.NewRepository([]byte("profiles:\n  - name: missing id\n"))
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyProfile)

	_, err = company.NewRepository([]byte("profiles:\n  - company_id: a\n    words_grouping: roman\n"))
	assert.ErrorIs(t, err, companyerrors.ErrInvalidWordsGrouping)
}

func TestNewFileRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "company.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(profilesYAML), 0o600))

	repo, err := company.NewFileRepository(path)
	assert.NoError(t, err)

	p, err := repo.FindByCompanyID(context.Background(), "*")
	assert.NoError(t, err)
	assert.Equal(t, "Default Works", p.Name)

	_, err = company.NewFileRepository(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
