package main

import (
	"os"
	"strconv"

	"github.com/lalang-run/lalang/internal/vm"
)

// Config holds the env-var flags §6 specifies for the CLI driver: QUIET,
// EVAL, STDLIB, and the four PRINT_* debug-trace levels. Grounded on
// informatter-nilan's per-command flag.FlagSet pattern, adapted to env
// vars since §6 names env vars rather than CLI flags as the external
// interface.
type Config struct {
	Quiet  bool
	Eval   string
	Stdlib bool
	Debug  vm.DebugFlags
}

func envFlag(name string) bool {
	v := os.Getenv(name)
	if v == "" {
		return false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	return n != 0
}

// LoadConfig reads the §6 environment variables once at startup.
func LoadConfig() Config {
	return Config{
		Quiet:  envFlag("QUIET"),
		Eval:   os.Getenv("EVAL"),
		Stdlib: envFlag("STDLIB"),
		Debug: vm.DebugFlags{
			PrintTokens: envFlag("PRINT_TOKENS"),
			PrintCode:   envFlag("PRINT_CODE"),
			PrintStack:  envFlag("PRINT_STACK"),
			PrintEval:   envFlag("PRINT_EVAL"),
		},
	}
}
