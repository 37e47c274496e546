package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/seqtree/internal/model"
	"github.com/shinji-kodama/seqtree/internal/targets"
)

// Config holds every setting of one invocation.
type Config struct {
	// Input is the FASTA or Newick file to transform.
	Input string `json:"input" yaml:"input"`

	// Format selects how Input is parsed: "fasta" or "tree".
	Format string `json:"format" yaml:"format"`

	// Action is "keep", "remove" or "rename".
	Action string `json:"action" yaml:"action"`

	// List is the target list file.
	List string `json:"list" yaml:"list"`

	// Output is the file the transformed input is written to.
	Output string `json:"output" yaml:"output"`

	// Report, when set, receives a YAML summary of the run.
	Report string `json:"report,omitempty" yaml:"report,omitempty"`

	// StrictRename rejects single-column rename list lines instead of
	// applying the legacy underscore convention.
	StrictRename bool `json:"strict_rename,omitempty" yaml:"strict_rename,omitempty"`

	// CommentPrefix marks list lines to skip. Defaults to "#".
	CommentPrefix string `json:"comment_prefix,omitempty" yaml:"comment_prefix,omitempty"`

	// Verbose enables debug logging on stderr.
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`

	// NoColor disables coloured summary output.
	NoColor bool `json:"no_color,omitempty" yaml:"no_color,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{CommentPrefix: targets.DefaultCommentPrefix}
}

// Load reads a configuration file, choosing the decoder by extension.
// Fields absent from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitFileNotFound,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitInvalidArgs,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	case ".json", ".jsonc":
		// JSONC allows comments and trailing commas; strip them first.
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitInvalidArgs,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitInvalidArgs,
			fmt.Sprintf("unsupported config file extension %q (valid: .yaml, .yml, .json, .jsonc)", ext))
	}

	if cfg.CommentPrefix == "" {
		cfg.CommentPrefix = targets.DefaultCommentPrefix
	}
	return cfg, nil
}

// Validate checks that every required setting is present and that format
// and action hold known values. It returns the parsed enums.
func (c *Config) Validate() (model.Format, model.Action, error) {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"input", c.Input},
		{"format", c.Format},
		{"action", c.Action},
		{"list", c.List},
		{"output", c.Output},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, "--"+f.name)
		}
	}
	if len(missing) > 0 {
		return "", "", model.NewCLIError(model.ExitInvalidArgs,
			fmt.Sprintf("missing required setting(s): %s", strings.Join(missing, ", ")))
	}

	format, err := model.ParseFormat(c.Format)
	if err != nil {
		return "", "", model.WrapCLIError(model.ExitInvalidArgs, "invalid --format", err)
	}
	action, err := model.ParseAction(c.Action)
	if err != nil {
		return "", "", model.WrapCLIError(model.ExitInvalidArgs, "invalid --action", err)
	}

	if samePath(c.Input, c.Output) {
		return "", "", model.NewCLIError(model.ExitInvalidArgs,
			"--output must differ from --input")
	}
	return format, action, nil
}

// samePath reports whether a and b name the same file, either as the same
// absolute path or, when both exist, as the same inode.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// ListOptions returns the target list loader options for this run.
func (c *Config) ListOptions() targets.Options {
	return targets.Options{
		CommentPrefix: c.CommentPrefix,
		StrictRename:  c.StrictRename,
	}
}
