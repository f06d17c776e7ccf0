// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and unknown fields
//   - Required name and description
//   - Grid size within the supported range
//   - Message templates (game_over needs exactly one %d for the score)
//
// Unlike the loader, which stops at the first problem, every problem in a
// file is reported.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if strings.TrimSpace(config.Name) == "" {
		result.fail("name is required")
	}
	if strings.TrimSpace(config.Description) == "" {
		result.fail("description is required")
	}
	if err := engine.ValidateGridSize(config.GridSize); err != nil {
		result.fail("grid_size: %v", err)
	}

	validateMessages(&result, config.Messages)

	// the loader is the final word; anything it rejects that slipped past above still fails
	if result.Valid {
		if err := engine.ValidateGameConfig(&config); err != nil {
			result.fail("%v", err)
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Config ID: %s", strings.TrimSuffix(result.File, ".json")))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", config.GridSize, config.GridSize))
		if defaults := defaultedMessages(config.Messages); len(defaults) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Built-in messages used for: %s", strings.Join(defaults, ", ")))
		}
	}

	return result
}

// validateMessages checks the format verbs of each message template.
func validateMessages(result *ValidationResult, m engine.Messages) {
	if m.Welcome == "" {
		result.fail("Missing required message: welcome")
	}

	switch n := strings.Count(m.GameOver, "%d"); {
	case m.GameOver == "":
		result.fail("Missing required message: game_over")
	case n != 1:
		result.fail("messages.game_over must contain exactly one %%d for the final score, found %d", n)
	}

	if n := strings.Count(m.Moved, "%d"); n > 1 {
		result.fail("messages.moved may contain at most one %%d, found %d", n)
	}

	// these are shown verbatim
	verbatim := map[string]string{
		"welcome":       m.Welcome,
		"no_move":       m.NoMove,
		"play_again":    m.PlayAgain,
		"size_prompt":   m.SizePrompt,
		"invalid_input": m.InvalidInput,
		"invalid_size":  m.InvalidSize,
	}
	keys := make([]string, 0, len(verbatim))
	for k := range verbatim {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(verbatim[k], "%d") {
			result.fail("messages.%s is shown as is and must not contain %%d", k)
		}
	}
}

// defaultedMessages lists the optional messages left empty in the file.
func defaultedMessages(m engine.Messages) []string {
	var names []string
	optional := []struct {
		name  string
		value string
	}{
		{"moved", m.Moved},
		{"no_move", m.NoMove},
		{"play_again", m.PlayAgain},
		{"size_prompt", m.SizePrompt},
		{"invalid_input", m.InvalidInput},
		{"invalid_size", m.InvalidSize},
	}
	for _, o := range optional {
		if o.value == "" {
			names = append(names, o.name)
		}
	}
	return names
}

// validateDir validates every *.json file in dir, printing a concise report
// to w. It reports whether all files are valid.
func validateDir(w io.Writer, dir string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no config files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid, nil
}

// main validates ../configs (or --dir) and exits with non-zero status if any
// file is invalid.
func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "Validate tile merge configuration files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "../configs",
				Usage: "Directory containing *.json configurations",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ok, err := validateDir(os.Stdout, cmd.String("dir"))
			if err != nil {
				return err
			}
			if !ok {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
