package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive prompt that runs gestor commands in a loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("gestor shell. Type a command (e.g. 'customer list'), 'help', or 'exit'.")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("gestor> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}
			if line == "help" {
				line = "--help"
			}

			parts, err := shlex.Split(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
				continue
			}
			if len(parts) > 0 && parts[0] == "shell" {
				fmt.Fprintln(os.Stderr, "already inside the shell")
				continue
			}

			rootCmd.SetArgs(parts)
			if err := rootCmd.Execute(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	},
}
