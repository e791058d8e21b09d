// Package browser resolves page targets and opens them.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Navigator moves the user to another page. Targets are relative to the
// navigator's base URL.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// WebURLFromAPI derives the page host from an API base URL by dropping a
// trailing /api segment.
func WebURLFromAPI(apiURL string) string {
	u := strings.TrimRight(strings.TrimSpace(apiURL), "/")
	return strings.TrimSuffix(u, "/api")
}

// ResolveURL joins a relative target onto base. Absolute targets pass through.
func ResolveURL(base, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("empty navigation target")
	}
	t, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if t.IsAbs() {
		return t.String(), nil
	}
	base = strings.TrimSpace(base)
	if base == "" {
		return "", fmt.Errorf("cannot resolve %q: no web base url", target)
	}
	b, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return "", err
	}
	return b.ResolveReference(t).String(), nil
}

// SystemNavigator opens targets in the OS default browser.
type SystemNavigator struct {
	BaseURL string

	// command is swapped in tests.
	command func(ctx context.Context, u string) *exec.Cmd
}

func NewSystemNavigator(baseURL string) *SystemNavigator {
	return &SystemNavigator{BaseURL: baseURL, command: openCommand}
}

func openCommand(ctx context.Context, u string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", u)
	case "windows":
		return exec.CommandContext(ctx, "cmd", "/c", "start", "", u)
	default:
		return exec.CommandContext(ctx, "xdg-open", u)
	}
}

func (n *SystemNavigator) Navigate(ctx context.Context, target string) error {
	u, err := ResolveURL(n.BaseURL, target)
	if err != nil {
		return err
	}
	mk := n.command
	if mk == nil {
		mk = openCommand
	}
	cmd := mk(ctx, u)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}
	// The opener exits once the browser has the URL; callers need not wait.
	go func() { _ = cmd.Wait() }()
	return nil
}

// PrintNavigator writes the resolved URL instead of opening it.
type PrintNavigator struct {
	BaseURL string
	Out     io.Writer
}

func (n PrintNavigator) Navigate(_ context.Context, target string) error {
	u, err := ResolveURL(n.BaseURL, target)
	if err != nil {
		return err
	}
	if n.Out == nil {
		return nil
	}
	_, err = fmt.Fprintln(n.Out, u)
	return err
}
