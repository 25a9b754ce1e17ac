package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/golitedoc/internal/ui/pretty"
)

// helpStyles holds the lipgloss styles used to render command help.
type helpStyles struct {
	heading    lipgloss.Style // section headers (Usage, Flags, ...)
	command    lipgloss.Style // command path and use lines
	subcommand lipgloss.Style // subcommand names in listings
	flag       lipgloss.Style // flag names (-f, --flag)
	dim        lipgloss.Style // secondary info: types, aliases, examples
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{
			heading:    plain,
			command:    plain,
			subcommand: plain,
			flag:       plain,
			dim:        plain,
		}
	}

	return helpStyles{
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled usage and help text for cobra commands.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter honoring the color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ cmdName .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ cmdName .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagUsages .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ cmdName (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimRight }}

{{end}}` + usageTemplate

// funcs returns the template functions the help templates render with.
func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.heading.Render,
		"cmdName":    h.styles.command.Render,
		"subcommand": h.styles.subcommand.Render,
		"dim":        h.styles.dim.Render,
		"flagUsages": h.styleFlagUsages,
		"rpad":       rpad,
		"trimRight":  trimTrailingSpace,
		"join":       strings.Join,
	}
}

// ApplyToCommand installs the styled usage and help renderers on cmd.
// Cobra propagates them to subcommands automatically.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(c.OutOrStdout(), c)
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(helpTemplate)
		if err != nil {
			c.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// styleFlagUsages restyles pflag's FlagUsages output: flag names get the
// flag style, type hints are dimmed, descriptions stay plain.
func (h *HelpFormatter) styleFlagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		flagPart, desc, ok := splitUsageLine(line)
		if !ok {
			continue
		}
		lines[i] = h.styleFlagNames(flagPart) + "   " + desc
	}

	return strings.Join(lines, "\n")
}

// splitUsageLine splits a pflag usage line into its flag and description
// columns at the first run of two or more spaces after the flag names.
func splitUsageLine(line string) (flagPart, desc string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	gap := 0
	for i, r := range trimmed {
		if r == ' ' {
			gap++
			continue
		}
		if gap >= 2 {
			return indent + trimmed[:i-gap], trimmed[i:], true
		}
		gap = 0
	}

	return line, "", false
}

// styleFlagNames styles the flag column of a usage line: tokens starting
// with a dash get the flag style, everything else (type hints) is dimmed.
func (h *HelpFormatter) styleFlagNames(flagPart string) string {
	trimmed := strings.TrimLeft(flagPart, " ")
	indent := flagPart[:len(flagPart)-len(trimmed)]

	tokens := strings.Fields(trimmed)
	for i, tok := range tokens {
		name := strings.TrimSuffix(tok, ",")

		styled := h.styles.dim.Render(name)
		if strings.HasPrefix(name, "-") {
			styled = h.styles.flag.Render(name)
		}
		if strings.HasSuffix(tok, ",") {
			styled += ","
		}

		tokens[i] = styled
	}

	return indent + strings.Join(tokens, " ")
}

// rpad pads s with spaces on the right to the given width.
func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// trimTrailingSpace trims trailing spaces and tabs from every line.
func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
