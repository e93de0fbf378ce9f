package company

import "go-payslip/internal/shared/numword"

// DefaultCompanyID marks the profile used when a tenant has no entry of its own.
const DefaultCompanyID = "*"

type AssetSource struct {
	URL       string   `yaml:"url"`
	Fallbacks []string `yaml:"fallbacks"`
}

// Profile is the read-only company display data printed on salary slips.
type Profile struct {
	CompanyID     string           `yaml:"company_id"`
	Name          string           `yaml:"name"`
	Address       string           `yaml:"address"`
	Logo          AssetSource      `yaml:"logo"`
	Signature     AssetSource      `yaml:"signature"`
	SignatoryName string           `yaml:"signatory_name"`
	WordsGrouping numword.Grouping `yaml:"words_grouping"`
}

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}
