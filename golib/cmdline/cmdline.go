package cmdline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PAL-UH/active-learning/golib/errors"
	arg "github.com/alexflint/go-arg"
)

// Command represents an action that can be run from the command line
type Command struct {
	Name     string
	Synopsis string
	Args     Handler
}

// Handler represents a function that gets called for an action
type Handler interface {
	Handle() error
}

// Validator is the interface for custom validation of command line arguments
type Validator interface {
	Validate() error
}

// errUsage marks failures that should be followed by usage text.
var errUsage = errors.New("usage")

func prog() string {
	if len(os.Args) > 0 {
		return filepath.Base(os.Args[0])
	}
	return "program"
}

func writeUsage(w io.Writer, program string, cmds ...Command) {
	fmt.Fprintf(w, "Usage: %s COMMAND [ARGS]\n", program)
	fmt.Fprintf(w, "Command can be one of:\n")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-20s %s\n", cmd.Name, cmd.Synopsis)
	}
	fmt.Fprintf(w, "  %-20s %s\n", "help", "display this help and exit")
	fmt.Fprintf(w, "  %-20s %s\n", "help COMMAND", "display help for command and exit")
}

// parseAndHandle parses argv into h, validates it and calls Handle.
func parseAndHandle(program string, argv []string, stdout io.Writer, help bool, h Handler) error {
	parser, err := arg.NewParser(arg.Config{Program: program}, h)
	if err != nil {
		return errors.Wrapf(err, "error building parser for %s", program)
	}
	if help {
		parser.WriteHelp(stdout)
		return nil
	}

	switch err := parser.Parse(argv); {
	case err == arg.ErrHelp:
		parser.WriteHelp(stdout)
		return nil
	case err != nil:
		parser.WriteUsage(stdout)
		return errors.WithKind(errors.KindConfig, err)
	}

	if v, ok := h.(Validator); ok {
		if err := v.Validate(); err != nil {
			parser.WriteUsage(stdout)
			return errors.WithKind(errors.KindConfig, err)
		}
	}
	return h.Handle()
}

// Run parses argv into a single command's arguments and handles it.
func Run(program string, argv []string, stdout io.Writer, h Handler) error {
	return parseAndHandle(program, argv, stdout, false, h)
}

// Dispatch selects one of cmds by argv[0], parses the remaining arguments
// into it and handles it.
func Dispatch(program string, argv []string, stdout io.Writer, cmds ...Command) error {
	if len(argv) < 1 {
		writeUsage(stdout, program, cmds...)
		return errors.WithKind(errors.KindConfig, errors.Wrapf(errUsage, "no command provided"))
	}

	var help bool
	action := argv[0]
	if action == "help" {
		if len(argv) < 2 {
			writeUsage(stdout, program, cmds...)
			return nil
		}
		help = true
		action = argv[1]
	}

	var cmd *Command
	for i := range cmds {
		if cmds[i].Name == action {
			cmd = &cmds[i]
			break
		}
	}
	if cmd == nil {
		writeUsage(stdout, program, cmds...)
		return errors.WithKind(errors.KindConfig, errors.Wrapf(errUsage, "unknown command %s", action))
	}

	return parseAndHandle(program+" "+action, argv[1:], stdout, help, cmd.Args)
}

// MustRun runs a single-command binary and exits on failure.
func MustRun(h Handler) {
	exitOnError(Run(prog(), os.Args[1:], os.Stdout, h))
}

// MustDispatch dispatches one of the commands and exits on failure.
func MustDispatch(cmds ...Command) {
	exitOnError(Dispatch(prog(), os.Args[1:], os.Stdout, cmds...))
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error (%s): %v\n", errors.KindOf(err), err)
	os.Exit(1)
}
