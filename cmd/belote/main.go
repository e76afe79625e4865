package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" help:"Watch one bot-only game"`
	Simulate    SimulateCmd      `cmd:"" help:"Run seeded bot games in parallel and report statistics"`
	CheckConfig CheckConfigCmd   `cmd:"check-config" help:"Validate a table configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("belote"),
		kong.Description("Four-player Belote engine with automated players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
