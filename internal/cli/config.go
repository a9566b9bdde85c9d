package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/config"
)

// configCommand creates the config command, which prints the effective
// configuration with secrets masked.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeConfig(cmd.OutOrStdout(), c.Config)
		},
	}

	cmd.AddCommand(c.configKeysCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configKeysCommand creates the "config keys" subcommand.
func (c *CLI) configKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show which backend credentials are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), keyTable(c.Config))
			if c.Config.OfflineMode() {
				printWarning("No extraction backend configured; generate serves offline maps")
			}
			return nil
		},
	}
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultPath())
			return nil
		},
	}
}

// writeConfig encodes the redacted configuration as TOML.
func writeConfig(w io.Writer, cfg config.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg.Redacted()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// keyTable renders the credential status as a table. Keys are never shown,
// only their length.
func keyTable(cfg config.Config) string {
	status := cfg.KeyStatus()
	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		s := status[name]
		usable := "no"
		if s.Valid {
			usable = "yes"
		}
		placeholder := ""
		if s.Placeholder {
			placeholder = "placeholder"
		}
		rows = append(rows, []string{name, s.String(), usable, placeholder})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Backend", "Key", "Usable", "Note").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle.Padding(0, 1)
			}
			if col == 2 && row >= 0 && row < len(rows) {
				if rows[row][2] == "yes" {
					return cell.Foreground(colorGreen)
				}
				return cell.Foreground(colorYellow)
			}
			return cell
		})
	return t.Render()
}
