// Command fetcomp runs audio through the FET compressor model.
//
// Usage:
//
//	fetcomp render [flags] <in.wav> <out.wav>
//	fetcomp curve [flags]
//	fetcomp thd [flags]
//	fetcomp play [flags] <in.wav>
//
// Engine flags (--input-gain, --ratio, --attack, ...) are shared by every
// command. Defaults may be overridden by a JSON file passed with --config
// or found at ~/.config/fetcomp.json.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-fetcomp/internal/cli"
)

var version = "0.1.0"

const description = "FET limiting amplifier model: offline render, curves, harmonics and live playback"

// Globals are bound into every command's Run method.
type Globals struct {
	log cli.LogFunc
}

// CLI defines the command-line interface.
type CLI struct {
	Config   kong.ConfigFlag `short:"c" help:"Load flag defaults from a JSON file."`
	DebugLog string          `name:"debug-log" type:"path" help:"Append debug messages to this file."`

	Render  RenderCmd  `cmd:"" help:"Process a WAV file offline."`
	Curve   CurveCmd   `cmd:"" help:"Print the static transfer curve for every ratio."`
	THD     THDCmd     `cmd:"" name:"thd" help:"Measure the harmonic signature of a sine through the compressor."`
	Play    PlayCmd    `cmd:"" help:"Play a WAV file through the compressor with a live gain reduction meter."`
	Ranges  RangesCmd  `cmd:"" help:"List control ranges."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run implements the version command.
func (VersionCmd) Run() error {
	cli.PrintVersion(version)
	return nil
}

func main() {
	args := &CLI{}
	ctx := kong.Parse(args,
		kong.Name("fetcomp"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Configuration(kong.JSON, "~/.config/fetcomp.json"),
		kong.Help(cli.StyledHelpPrinter(description)),
	)

	log, closeLog, err := cli.OpenDebugLog(args.DebugLog)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	log("[MAIN] fetcomp %s: %s", version, ctx.Command())

	err = ctx.Run(&Globals{log: log})
	if cerr := closeLog(); cerr != nil && err == nil {
		err = cerr
	}

	if err != nil {
		cli.PrintError(fmt.Sprint(err))
		os.Exit(1)
	}
}
