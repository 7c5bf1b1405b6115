package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .silk.yaml config file",
	Long:  `Create a .silk.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".silk.yaml"); err == nil && !force {
			return fmt.Errorf(".silk.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".silk.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .silk.yaml")
		return nil
	},
}

const defaultConfig = `# silk configuration
verbose: false

build:
  source: .
  include:
    - "**/*.silk.yaml"
  # tokens-file: tokens.yaml
  output: dist/silk.css
  manifest: dist/silk.json
  report: text             # text | json
  strict: false
  production: false
  short-names: false
  minify: false
  optimize: false
  external-minifier: false
  prefix: ""
  no-where: false
  no-layers: false
  layer-order: [reset, base, tokens, recipes, utilities, overrides]
  nesting: false
  legacy-fallback: false
  token-variables: false
  css-variables: false
  # purge:
  #   - "templates/**/*.html"

# Design tokens can live here instead of tokens-file:
# tokens:
#   colors:
#     brand:
#       "500": "#3b82f6"
#   spacing:
#     md: 1rem
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
