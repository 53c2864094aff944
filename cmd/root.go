package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"manview/app"
	"manview/man/catalog"
)

const version = "1.0.2"

const usage = `usage: manview [section] [name]
       manview -f <file>

Browse and read man pages.

  -f <file>     open a man page source file directly
  -h, --help    show this help
  -v, --version print the version
`

// Execute is the main entry point for the CLI
func Execute() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts == nil {
		return
	}

	if err := app.Run(*opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs maps the command line onto startup options. A nil result with a
// nil error means the invocation was informational only.
func parseArgs(args []string) (*app.Options, error) {
	var opts app.Options

	switch {
	case len(args) == 0:
		return &opts, nil

	case args[0] == "-h" || args[0] == "--help":
		fmt.Print(usage)
		return nil, nil

	case args[0] == "-v" || args[0] == "--version":
		fmt.Printf("manview %s\n", version)
		return nil, nil

	case args[0] == "-f":
		if len(args) < 2 {
			return nil, fmt.Errorf("-f requires a file argument")
		}
		opts.Path = args[1]
		opts.Dir = filepath.Dir(args[1])
		return &opts, nil

	case len(args) >= 2:
		// explicit section then name, like man(1) takes them
		path, dir, err := catalog.Lookup(catalog.ManPaths(), args[0], args[1])
		if err != nil {
			return nil, err
		}
		opts.Path = path
		opts.Dir = dir
		return &opts, nil

	default:
		path, dir, err := catalog.Lookup(catalog.ManPaths(), "", args[0])
		if err != nil {
			return nil, err
		}
		opts.Path = path
		opts.Dir = dir
		return &opts, nil
	}
}
