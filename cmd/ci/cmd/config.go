package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/collabintel/ci/internal/core"
	"github.com/collabintel/ci/internal/core/system"
)

// configKeys are the settings exposed through 'ci config'.
var configKeys = []string{"system", "window-title", "extra-args"}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change user settings (~/.ci/config.json)",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a setting, or all settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, k := range configKeys {
				v, _ := getSetting(d.settings, k)
				fmt.Fprintf(out, "%-13s %s\n", k, v)
			}
			return nil
		}

		v, err := getSetting(d.settings, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value...]",
	Short: "Change a setting",
	Long: `Change a setting. Keys:
  system        assistant to launch (see 'ci systems')
  window-title  true or false; set the terminal title during sessions
  extra-args    arguments appended to every launch; none clears them`,
	Example: `  ci config set system codex
  ci config set window-title false
  ci config set extra-args -- --model opus`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		var updated core.Settings
		err = d.config.Update(func(cfg *core.Config) error {
			if err := setSetting(&cfg.Settings, args[0], args[1:]); err != nil {
				return err
			}
			updated = cfg.Settings
			return nil
		})
		if err != nil {
			return err
		}

		v, _ := getSetting(updated, args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], v)
		return nil
	},
}

func getSetting(s core.Settings, key string) (string, error) {
	switch key {
	case "system":
		if s.System == "" {
			return core.DefaultSystem + " (default)", nil
		}
		return s.System, nil
	case "window-title":
		return strconv.FormatBool(s.WindowTitleEnabled()), nil
	case "extra-args":
		return strings.Join(s.ExtraArgs, " "), nil
	}
	return "", unknownKey(key)
}

func setSetting(s *core.Settings, key string, values []string) error {
	switch key {
	case "system":
		if len(values) != 1 {
			return fmt.Errorf("usage: ci config set system <name>")
		}
		if _, err := system.Lookup(values[0]); err != nil {
			return err
		}
		s.System = values[0]
	case "window-title":
		if len(values) != 1 {
			return fmt.Errorf("usage: ci config set window-title <true|false>")
		}
		b, err := strconv.ParseBool(values[0])
		if err != nil {
			return fmt.Errorf("invalid window-title %q: %w", values[0], err)
		}
		s.WindowTitle = &b
	case "extra-args":
		s.ExtraArgs = values
		if len(values) == 0 {
			s.ExtraArgs = nil
		}
	default:
		return unknownKey(key)
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown setting %q; valid: %s", key, strings.Join(configKeys, ", "))
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
