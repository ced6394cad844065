// Package strfry shells out to the strfry binary to query the local event
// store. Calls are synchronous and potentially slow; callers gate them behind
// cooldowns.
package strfry

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nbd-wtf/go-nostr"
)

type Client struct {
	execPath string
}

func NewClient(execPath string) *Client {
	return &Client{execPath: execPath}
}

// Scan returns raw event JSON lines matching the filter.
func (c *Client) Scan(ctx context.Context, filter nostr.Filter) ([]string, error) {
	raw, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, c.execPath, "scan", string(raw))
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start strfry: %w", err)
	}

	var lines []string
	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		_ = cmd.Wait()
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("strfry scan: %w", err)
	}
	return lines, nil
}

// Count returns the number of stored events matching the filter.
func (c *Client) Count(ctx context.Context, filter nostr.Filter) (int, error) {
	raw, err := json.Marshal(filter)
	if err != nil {
		return 0, err
	}
	out, err := exec.CommandContext(ctx, c.execPath, "scan", string(raw), "--count").Output()
	if err != nil {
		return 0, fmt.Errorf("strfry count: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("strfry count output %q: %w", out, err)
	}
	return n, nil
}

// Metadata returns the stored kind-0 event for pubkey, or nil when none exists.
func (c *Client) Metadata(ctx context.Context, pubkey string) (*nostr.Event, error) {
	lines, err := c.Scan(ctx, nostr.Filter{
		Authors: []string{pubkey},
		Kinds:   []int{nostr.KindProfileMetadata},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	var ev nostr.Event
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &ev, nil
}
