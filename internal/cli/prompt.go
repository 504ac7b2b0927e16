package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cperrin88/altvsync/internal/logger"
	"github.com/cperrin88/altvsync/pkg/artifact"
	"github.com/cperrin88/altvsync/pkg/config"
)

// prompter asks questions on out and reads one answer per line from in.
// Missing input (EOF) counts as an empty answer.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *prompter) ask(question string) (string, error) {
	if _, err := fmt.Fprintln(p.out, question); err != nil {
		return "", err
	}
	if p.scanner.Scan() {
		return strings.TrimSpace(p.scanner.Text()), nil
	}
	return "", p.scanner.Err()
}

func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question + " (y/n)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptConfig interactively builds a new configuration.
// An unknown branch falls back to release and an empty output path to "./".
func PromptConfig(in io.Reader, out io.Writer) (*config.Config, error) {
	p := &prompter{scanner: bufio.NewScanner(in), out: out}
	cfg := config.DefaultConfig()

	answer, err := p.ask(fmt.Sprintf("Please enter branch name (%s)", strings.Join(artifact.ValidBranchNames(), "/")))
	if err != nil {
		return nil, err
	}
	branch, ok := artifact.ParseBranch(answer)
	if !ok {
		if answer != "" {
			logger.Warn("Unknown branch, using release", logger.Fields{"branch": answer})
		}
		branch = artifact.BranchRelease
	}
	cfg.Branch = string(branch)

	questions := []struct {
		text   string
		target *bool
	}{
		{"Windows build?", &cfg.Windows},
		{"Do you want server build?", &cfg.Server},
		{"Do you want voice build?", &cfg.Voice},
		{"Do you want CSharp build?", &cfg.CSharp},
		{"Do you want JS build?", &cfg.JS},
	}
	for _, q := range questions {
		if *q.target, err = p.confirm(q.text); err != nil {
			return nil, err
		}
	}

	// bytecode builds only exist on release
	if branch == artifact.BranchRelease {
		if cfg.JSByteCode, err = p.confirm("Do you want JS bytecode build?"); err != nil {
			return nil, err
		}
	}

	if cfg.OutputPath, err = p.ask("Input output path"); err != nil {
		return nil, err
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = config.DefaultOutputPath
	}

	return cfg, nil
}
