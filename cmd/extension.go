package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// RunExtension attempts to find and execute an external inv-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The resolved configuration is passed to the extension in the INV_*
// environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "inv-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Printf("extension %q not found in PATH: %v", name, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), ExtensionEnv(config)...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// ExtensionEnv returns the environment variables describing cfg.
func ExtensionEnv(cfg Config) []string {
	return []string{
		EnvStore + "=" + cfg.Store,
		EnvCurrency + "=" + cfg.Currency,
		EnvLowStock + "=" + strconv.Itoa(cfg.LowStock),
		EnvVerbose + "=" + strconv.FormatBool(cfg.Verbose),
	}
}
