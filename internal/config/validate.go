package config

import "fmt"

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Config for structural and semantic errors.
// It returns a slice of all validation errors found (empty if valid).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{Field: "timeout_seconds", Message: "must be positive"})
	}
	if cfg.OutputDir == "" {
		errs = append(errs, ValidationError{Field: "output_dir", Message: "is required"})
	}
	if cfg.HTML.MaxFileRows <= 0 {
		errs = append(errs, ValidationError{Field: "html.max_file_rows", Message: "must be positive"})
	}
	if cfg.HTML.MaxFSInfoChars <= 0 {
		errs = append(errs, ValidationError{Field: "html.max_fsinfo_chars", Message: "must be positive"})
	}
	if cfg.Serve.Port <= 0 || cfg.Serve.Port > 65535 {
		errs = append(errs, ValidationError{Field: "serve.port", Message: "must be between 1 and 65535"})
	}

	for field, name := range map[string]string{
		"tools.mmls":   cfg.Tools.Mmls,
		"tools.fsstat": cfg.Tools.Fsstat,
		"tools.fls":    cfg.Tools.Fls,
		"tools.istat":  cfg.Tools.Istat,
		"tools.icat":   cfg.Tools.Icat,
	} {
		if name == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	return errs
}
