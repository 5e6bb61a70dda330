package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/ports"
)

// linePrompter asks for a client id on one line of input. A blank line or end of input
// declines.
type linePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

var _ ports.Prompter = (*linePrompter)(nil)

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{reader: bufio.NewReader(in), out: out}
}

func (p *linePrompter) PromptClientID(ctx context.Context, notice string) (domain.ClientID, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	if notice = strings.TrimSpace(notice); notice != "" {
		_, _ = fmt.Fprintln(p.out, notice)
	}
	_, _ = fmt.Fprint(p.out, "Client ID: ")

	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("read client id: %w", err)
	}

	id, parseErr := domain.ParseClientID(input)
	if parseErr != nil {
		_, _ = fmt.Fprintln(p.out)
		return "", false, nil
	}

	return id, true, nil
}
