package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// LoadDecorationFile overlays the YAML file at path onto r. Keys present in
// the file replace the current values, including empty strings, so a file can
// blank out the title or attribution. Unknown keys are rejected.
func (r *ReportConfig) LoadDecorationFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read decoration file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(r); err != nil {
		return fmt.Errorf("parse decoration file %s: %w", path, err)
	}
	return nil
}

func (r *ReportConfig) validate() []string {
	var errs []string

	if r.WatermarkOpacity < 0 || r.WatermarkOpacity > 1 {
		errs = append(errs, fmt.Sprintf("REPORT_WATERMARK_OPACITY (%g) must be between 0 and 1", r.WatermarkOpacity))
	}
	if r.WatermarkSize <= 0 {
		errs = append(errs, "REPORT_WATERMARK_SIZE must be positive")
	}

	switch strings.ToLower(r.Font) {
	case "helvetica", "courier":
	default:
		errs = append(errs, fmt.Sprintf("REPORT_FONT (%q) must be one of: helvetica, courier", r.Font))
	}

	switch strings.ToLower(r.Shading) {
	case "absolute", "page":
	default:
		errs = append(errs, fmt.Sprintf("REPORT_SHADING (%q) must be one of: absolute, page", r.Shading))
	}

	colors := []struct {
		name, value string
	}{
		{"REPORT_HEADER_FILL", r.HeaderFill},
		{"REPORT_STRIPE_FILL", r.StripeFill},
		{"REPORT_GRID_COLOR", r.GridColor},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			errs = append(errs, fmt.Sprintf("%s (%q) must be a #rrggbb color", c.name, c.value))
		}
	}

	return errs
}
