package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cgt/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Complete()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	cmd.InitLogger()
	os.Exit(int(commander.Execute(context.Background())))
}
