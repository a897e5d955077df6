package pkgs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// EnvStrings flattens an environment map onto base, joining
// multi-element values with spaces. Keys are emitted sorted so the
// resulting process environment is stable. Entries appended after base
// win over inherited variables of the same name.
func EnvStrings(base []string, env map[string][]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := append([]string{}, base...)
	for _, k := range keys {
		out = append(out, k+"="+strings.Join(env[k], " "))
	}

	return out
}

// RunIn executes args inside dir, streaming both output pipes to
// stdout with a prefix naming whose output it is. env, when non-nil,
// is exported on top of the inherited environment.
func RunIn(ctx context.Context, prefix, dir string, env map[string][]string, args ...string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir

	if env != nil {
		cmd.Env = EnvStrings(os.Environ(), env)
	}

	or, err := cmd.StdoutPipe()
	if err != nil {
		return errors.WithStack(err)
	}

	er, err := cmd.StderrPipe()
	if err != nil {
		return errors.WithStack(err)
	}

	var wg sync.WaitGroup

	for _, r := range []*bufio.Reader{bufio.NewReader(or), bufio.NewReader(er)} {
		wg.Add(1)
		go func(br *bufio.Reader) {
			defer wg.Done()

			for {
				line, err := br.ReadString('\n')
				if len(line) > 0 {
					fmt.Printf("%s │ %s\n", prefix, strings.TrimRight(line, " \n\t"))
				}

				if err != nil {
					return
				}
			}
		}(r)
	}

	err = cmd.Start()
	if err != nil {
		return errors.Wrapf(err, "starting %s", args[0])
	}

	wg.Wait()

	err = cmd.Wait()
	if err != nil {
		return errors.Wrapf(err, "running %s", strings.Join(args, " "))
	}

	return nil
}

// Run executes a command inside the package's source directory.
func (p *Package) Run(ctx context.Context, args ...string) error {
	dir, err := p.SourceDir()
	if err != nil {
		return err
	}

	return RunIn(ctx, p.Name, dir, nil, args...)
}

// RunWithEnv is Run with the cross-compilation environment exported,
// deriving it first if this is the first use.
func (p *Package) RunWithEnv(ctx context.Context, args ...string) error {
	_, err := p.InitBuildEnv()
	if err != nil {
		return err
	}

	dir, err := p.SourceDir()
	if err != nil {
		return err
	}

	return RunIn(ctx, p.Name, dir, p.env, args...)
}
