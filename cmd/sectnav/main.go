// Command sectnav inspects and exercises the sect manager's route table.
//
//	sectnav COMMAND [FLAGS...] [ARGS...]
//
// Configuration is read from the environment first (see the config package), and flags override it.
package main

import (
	"errors"
	"os"

	"github.com/saylorsolutions/sectomie/internal/config"
	"github.com/saylorsolutions/sectomie/internal/printer"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	conf := config.FromEnv()
	p := printer.New(conf.NoColor)
	if err := newCommandSet(conf, p, os.Stdout).exec(os.Args[1:]); err != nil {
		p.Failure("%v", err)
		if errors.Is(err, errUsage) {
			os.Exit(exitUsage)
		}
		os.Exit(exitFailure)
	}
}
