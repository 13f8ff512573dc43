// Package credential resolves the GitHub access token used for a run.
package credential

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoToken is returned when no provider could supply a token.
var ErrNoToken = errors.New("GitHub token not provided. Set the GITHUB_TOKEN environment variable")

// Provider supplies an access token. An empty token with a nil error means
// the provider had nothing to offer.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// EnvProvider reads the token from an environment variable.
type EnvProvider struct {
	Key    string
	Lookup func(string) (string, bool)
}

// TokenEnvVar is the environment variable holding the access token.
const TokenEnvVar = "GITHUB_TOKEN"

// NewEnvProvider returns a provider reading TokenEnvVar through lookup.
// A nil lookup reads the process environment.
func NewEnvProvider(lookup func(string) (string, bool)) *EnvProvider {
	return &EnvProvider{Key: TokenEnvVar, Lookup: lookup}
}

// Token implements Provider.
func (p *EnvProvider) Token(_ context.Context) (string, error) {
	lookup := p.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, _ := lookup(p.Key)
	return strings.TrimSpace(v), nil
}

// PromptProvider asks for the token interactively. When In is a terminal
// the input is not echoed.
type PromptProvider struct {
	In  io.Reader
	Out io.Writer
}

// NewPromptProvider returns a provider reading from in and prompting on out.
func NewPromptProvider(in io.Reader, out io.Writer) *PromptProvider {
	return &PromptProvider{In: in, Out: out}
}

// Token implements Provider.
func (p *PromptProvider) Token(_ context.Context) (string, error) {
	_, _ = fmt.Fprint(p.Out, "Enter GitHub Personal Access Token and press enter: ")

	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := readLine(p.In)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	_, _ = fmt.Fprintln(p.Out)
	return strings.TrimSpace(line), nil
}

// readLine reads up to and including the next newline one byte at a time,
// leaving anything after it unread for later consumers of r.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Chain tries each provider in order and returns the first non-empty token.
type Chain []Provider

// Token implements Provider. It returns ErrNoToken when every provider
// came up empty.
func (c Chain) Token(ctx context.Context) (string, error) {
	for _, p := range c {
		tok, err := p.Token(ctx)
		if err != nil {
			return "", err
		}
		if tok != "" {
			return tok, nil
		}
	}
	return "", ErrNoToken
}
