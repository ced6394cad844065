// Package calc evaluates arithmetic expressions with the bc utility.
package calc

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Timeout is the hard wall-clock limit; bc is killed once it elapses.
const Timeout = 5 * time.Second

// Evaluate feeds expr to `bc -l -s` and returns its trimmed output. The
// subprocess is forcibly terminated when Timeout elapses.
func Evaluate(ctx context.Context, expr string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bc", "-l", "-s")
	cmd.Stdin = strings.NewReader(expr + "\n")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
