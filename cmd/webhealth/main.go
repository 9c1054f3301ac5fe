package main

import (
	"fmt"
	"os"

	"github.com/IsaacSuo/Web-health/internal/cli"
	"github.com/alecthomas/kong"

	_ "time/tzdata"
)

var version = "dev"

type commandLine struct {
	Version kong.VersionFlag `help:"Print version and exit."`
	Config  string           `help:"YAML config file; environment variables override it." type:"path" env:"WEBHEALTH_CONFIG"`
	EnvFile string           `help:"Env file to load instead of ./.env." type:"path" name:"env-file"`

	Serve         cli.ServeCmd         `cmd:"" help:"Run the HTTP API." default:"1"`
	Migrate       cli.MigrateCmd       `cmd:"" help:"Apply pending schema migrations."`
	Seed          cli.SeedCmd          `cmd:"" help:"Reconcile the time slot and acupoint catalog."`
	Now           cli.NowCmd           `cmd:"" help:"Show the current double-hour."`
	ResetPassword cli.ResetPasswordCmd `cmd:"" help:"Issue a temporary password for an account." name:"reset-password"`
}

func newParser(commands *commandLine) (*kong.Kong, error) {
	return kong.New(commands,
		kong.Name("webhealth"),
		kong.Description("Twelve double-hours health tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
}

func main() {
	commands := &commandLine{}
	parser, err := newParser(commands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&cli.Context{
		ConfigFile: commands.Config,
		EnvFile:    commands.EnvFile,
		Stdout:     os.Stdout,
		Stdin:      os.Stdin,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
