// Command lalang is the CLI driver for the Lalang language core: a REPL,
// a one-shot file runner, and two introspection verbs (tokens, disasm).
// This binary is the "external collaborator" §1 carves out of the core's
// scope — it owns environment-variable flags, prompts, and line reading;
// everything else lives in internal/.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&tokensCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")

	cfg := LoadConfig()
	if len(os.Args) == 1 {
		if !cfg.Quiet {
			fmt.Fprintln(os.Stderr, "lalang: no subcommand given, entering REPL (QUIET=1 to suppress this)")
		}
		os.Args = append(os.Args, "repl")
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
