package company

import (
	"context"
	"fmt"
	"os"

	companyerrors "go-payslip/internal/company/errors"
	"go-payslip/internal/shared/numword"

	"gopkg.in/yaml.v3"
)

type Repository interface {
	FindByCompanyID(ctx context.Context, companyID string) (Profile, error)
}

type repository struct {
	profiles map[string]Profile
}

// NewFileRepository loads every profile from a YAML file once at startup.
func NewFileRepository(path string) (Repository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read company profiles: %w", err)
	}
	return NewRepository(raw)
}

func NewRepository(raw []byte) (Repository, error) {
	var file profileFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode company profiles: %w", err)
	}

	profiles := make(map[string]Profile, len(file.Profiles))
	for _, p := range file.Profiles {
		if p.CompanyID == "" {
			return nil, companyerrors.ErrInvalidCompanyProfile
		}
		if p.WordsGrouping == "" {
			p.WordsGrouping = numword.GroupingWestern
		}
		if p.WordsGrouping != numword.GroupingWestern && p.WordsGrouping != numword.GroupingIndian {
			return nil, fmt.Errorf("company %s: %w", p.CompanyID, companyerrors.ErrInvalidWordsGrouping)
		}
		profiles[p.CompanyID] = p
	}

	return &repository{profiles: profiles}, nil
}

func (r *repository) FindByCompanyID(ctx context.Context, companyID string) (Profile, error) {
	if p, ok := r.profiles[companyID]; ok {
		return p, nil
	}
	if p, ok := r.profiles[DefaultCompanyID]; ok {
		p.CompanyID = companyID
		return p, nil
	}
	return Profile{}, companyerrors.ErrCompanyProfileNotFound
}
