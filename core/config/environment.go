package config

// Environment identifies the deployment environment. It gates origin
// enforcement and error-detail redaction.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

// IsProduction reports whether the environment is production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// IsDevelopment reports whether the environment is development.
// An unset environment counts as development.
func (e Environment) IsDevelopment() bool {
	return e == Development || e == ""
}
