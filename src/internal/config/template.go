// FILE: autolog/src/internal/config/template.go
package config

// TemplateConfig declares a named pair of message templates. The success
// template renders completed entries, the error template failed ones.
// Templates use text/template syntax over the entry's fields.
type TemplateConfig struct {
	Name    string `toml:"name"`
	Success string `toml:"success"`
	Error   string `toml:"error"`
}
