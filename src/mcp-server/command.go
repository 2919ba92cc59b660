// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/cashapp/certifikit/src/internal/helper/posix"
	"github.com/cashapp/certifikit/src/mcp-server/templates"
)

// cliHelpData is rendered into templates.CLIHelp.
type cliHelpData struct {
	ExeName              string
	InstructionsFlagName string
	ConfigFlagName       string
}

// NewCommand returns the root command of the MCP server. Without flags it
// serves on the command's input and output streams until its context is
// done. With --instructions it prints the client instructions and exits.
func NewCommand(version string) *cobra.Command {
	exeName := posix.ExecutableName(os.Args)

	var (
		configFile       string
		showInstructions bool
	)

	cmd := &cobra.Command{
		Use:           exeName,
		Short:         "certifikit certificate tools over the Model Context Protocol",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showInstructions {
				instructions, err := loadInstructions(templates.MagicEmbed, createTools())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), instructions)
				return nil
			}
			return Serve(cmd.Context(), configFile, version, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&showInstructions, "instructions", false, "print usage workflows for certificate operations")
	flags.StringVar(&configFile, "config", "", "configuration file (JSON or YAML)")

	long, example, err := renderCLIHelp(templates.MagicEmbed, cliHelpData{
		ExeName:              exeName,
		InstructionsFlagName: "--instructions",
		ConfigFlagName:       "--config",
	})
	if err != nil {
		panic(fmt.Sprintf("failed to process CLI help template: %v", err))
	}
	cmd.Long = long
	cmd.Example = example

	return cmd
}

// renderCLIHelp executes the "long" and "example" blocks of templates.CLIHelp.
func renderCLIHelp(embed templates.EmbedFS, data cliHelpData) (long, example string, err error) {
	content, err := embed.ReadFile(templates.CLIHelp)
	if err != nil {
		return "", "", fmt.Errorf("failed to load CLI help template: %w", err)
	}

	tmpl, err := template.New("cli_help").Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse CLI help template: %w", err)
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "long", data); err != nil {
		return "", "", fmt.Errorf("failed to execute CLI help template: %w", err)
	}
	long = b.String()

	b.Reset()
	if err := tmpl.ExecuteTemplate(&b, "example", data); err != nil {
		return "", "", fmt.Errorf("failed to execute CLI help template: %w", err)
	}
	return long, b.String(), nil
}
