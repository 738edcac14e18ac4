// FILE: autolog/src/internal/format/template.go
package format

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"autolog/src/internal/config"
	"autolog/src/internal/core"

	"github.com/lixenwraith/log"
)

const (
	defaultSuccessTemplate = "{{.Type}}.{{.Method}} completed in {{.Duration}}"
	defaultErrorTemplate   = "{{.Type}}.{{.Method}} failed after {{.Duration}}: {{.Error}}"
)

// templatePair holds the parsed success/error templates for one name.
type templatePair struct {
	success *template.Template
	err     *template.Template
}

// TemplateFormatter renders entries through named message templates. A
// failed entry uses the error template, everything else the success one.
type TemplateFormatter struct {
	templates map[string]*templatePair
	fallback  *templatePair
	logger    *log.Logger
}

// NewTemplateFormatter parses all configured templates up front so a
// malformed template fails at startup, not per entry.
func NewTemplateFormatter(cfg *config.Config, logger *log.Logger) (*TemplateFormatter, error) {
	f := &TemplateFormatter{
		templates: make(map[string]*templatePair),
		logger:    logger,
	}

	fallback, err := parsePair("default", defaultSuccessTemplate, defaultErrorTemplate)
	if err != nil {
		return nil, err
	}
	f.fallback = fallback

	if cfg != nil {
		for _, tpl := range cfg.Templates {
			pair, err := parsePair(tpl.Name, tpl.Success, tpl.Error)
			if err != nil {
				return nil, fmt.Errorf("template '%s': %w", tpl.Name, err)
			}
			f.templates[tpl.Name] = pair
		}
	}

	return f, nil
}

func parsePair(name, success, errTmpl string) (*templatePair, error) {
	if success == "" {
		success = defaultSuccessTemplate
	}
	if errTmpl == "" {
		errTmpl = defaultErrorTemplate
	}

	funcMap := template.FuncMap{
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	// missingkey=zero over a string map renders unresolvable placeholders
	// as empty instead of erroring
	st, err := template.New(name + ".success").Funcs(funcMap).
		Option("missingkey=zero").Parse(success)
	if err != nil {
		return nil, fmt.Errorf("invalid success template: %w", err)
	}
	et, err := template.New(name + ".error").Funcs(funcMap).
		Option("missingkey=zero").Parse(errTmpl)
	if err != nil {
		return nil, fmt.Errorf("invalid error template: %w", err)
	}

	return &templatePair{success: st, err: et}, nil
}

// Format renders the entry through its named template, falling back to the
// built-in pair for unknown names.
func (f *TemplateFormatter) Format(entry core.Entry) ([]byte, error) {
	pair := f.fallback
	if entry.Template != "" {
		if p, ok := f.templates[entry.Template]; ok {
			pair = p
		} else {
			f.logger.Debug("msg", "Unknown template name, using fallback",
				"component", "template_formatter",
				"template", entry.Template)
		}
	}

	tmpl := pair.success
	if entry.Completed && !entry.Success {
		tmpl = pair.err
	}

	data := templateData(entry)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Fallback: return a basic formatted message
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "template_formatter",
			"error", err)

		fallback := fmt.Sprintf("[%s] [%s] %s.%s\n",
			entry.Timestamp().Format(time.RFC3339),
			strings.ToUpper(entry.EffectiveLevel().String()),
			entry.TypeName,
			entry.Method)
		return []byte(fallback), nil
	}

	// Ensure newline at end
	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Name returns the formatter's type name.
func (f *TemplateFormatter) Name() string {
	return "template"
}

// templateData exposes entry fields as strings so missingkey=zero yields
// empty strings for placeholders the entry cannot fill.
func templateData(entry core.Entry) map[string]string {
	data := map[string]string{
		"ID":        entry.ID,
		"Timestamp": entry.Timestamp().Format(time.RFC3339Nano),
		"Level":     entry.EffectiveLevel().String(),
		"Type":      entry.TypeName,
		"Method":    entry.Method,
		"Goroutine": strconv.FormatUint(entry.GoroutineID, 10),
		"TraceID":   entry.TraceID,
		"Input":     string(entry.Input),
		"Output":    string(entry.Output),
	}
	if entry.Completed {
		data["Duration"] = entry.Duration.String()
		data["DurationMs"] = strconv.FormatFloat(float64(entry.Duration)/float64(time.Millisecond), 'f', 3, 64)
		data["Success"] = strconv.FormatBool(entry.Success)
	}
	if entry.ErrorType != "" {
		data["ErrorType"] = entry.ErrorType
		data["Error"] = entry.ErrorMessage
	}
	return data
}
