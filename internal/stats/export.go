package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes the summary and games of a report in the given format.
func Export(w io.Writer, report Report, format string) error {
	switch format {
	case FormatText:
		return RenderReport(w, report, RenderOptions{Width: terminalWidthBackup, Now: time.Now(), History: 10})
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
	}
}
