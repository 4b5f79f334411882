// Package main is the command-line front end for the character sheet engine.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/shadowsheet/internal/config"
	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/dice"
	"github.com/cory-johannsen/shadowsheet/internal/importer"
	"github.com/cory-johannsen/shadowsheet/internal/importer/shadowdark"
	"github.com/cory-johannsen/shadowsheet/internal/observability"
	"github.com/cory-johannsen/shadowsheet/internal/sheet"
)

// stdio names standard input as a FILE argument, and standard output as an --out value.
const stdio = "-"

// clipboardArg names the system clipboard as a FILE argument.
const clipboardArg = "clipboard:"

// errReported marks a failure the notifier has already shown to the user.
var errReported = errors.New("reported")

func main() {
	// A missing .env file is normal; viper still reads the real environment.
	_ = godotenv.Load()

	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, importer.SystemClipboard{}, dice.NewCryptoSource())
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run executes one CLI invocation against the given streams.
func run(args []string, in io.Reader, out, errOut io.Writer, cb importer.Clipboard, src dice.Source) error {
	a := &app{in: in, out: out, errOut: errOut, clipboard: cb, source: src}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

// app carries the configuration and collaborators every subcommand shares.
type app struct {
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	clipboard importer.Clipboard
	source    dice.Source

	configPath string
	outPath    string

	cfg       config.Config
	logger    *zap.Logger
	rule      character.DexRule
	closeRule func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sheet",
		Short: "Shadowdark character sheet",
		Long: `sheet reads a character exported by the Shadowdark character generator, shows it,
rolls for it, and applies inventory and shop actions, writing the updated character back out.

FILE may be a path, "-" for standard input, or "clipboard:" for the system clipboard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML configuration file")

	root.AddCommand(
		newShowCmd(a),
		newExportCmd(a),
		newSetCmd(a),
		newUseCmd(a),
		newEquipCmd(a),
		newBuyCmd(a),
		newSellCmd(a),
		newRollCmd(a),
	)
	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLoggerTo(cfg.Logging, a.errOut)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	rule, closeRule, err := sheet.DexRule(cfg.Rules, logger)
	if err != nil {
		_ = logger.Sync()
		return err
	}
	a.cfg, a.logger, a.rule, a.closeRule = cfg, logger, rule, closeRule
	return nil
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.closeRule != nil {
		a.closeRule()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// open imports the character named by arg into a new Store.
func (a *app) open(arg string) (*sheet.Store, error) {
	catalog, spells, err := sheet.Content(a.cfg.Content)
	if err != nil {
		return nil, err
	}
	defaults := character.Defaults{BuyMarkup: a.cfg.Shop.BuyMarkup, SellMarkup: a.cfg.Shop.SellMarkup}
	store := sheet.NewStore(character.New(defaults), sheet.Options{
		Converter: shadowdark.Converter{Catalog: catalog, Spells: spells, Defaults: defaults, Logger: a.logger},
		Exporter:  shadowdark.Exporter{Rule: a.rule, Logger: a.logger},
		Indent:    a.cfg.Export.Indent,
		Notifier:  consoleNotifier{w: a.errOut},
		Logger:    a.logger,
	})

	src, err := a.sourceFor(arg)
	if err != nil {
		return nil, err
	}
	warnings, err := store.ImportFrom(src)
	if err != nil {
		return nil, errReported
	}
	for _, w := range warnings {
		fmt.Fprintf(a.errOut, "warning: %s\n", w)
	}
	return store, nil
}

func (a *app) sourceFor(arg string) (importer.Source, error) {
	switch arg {
	case stdio:
		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		return importer.PasteSource{Text: string(data)}, nil
	case clipboardArg:
		return importer.ClipboardSource{Clipboard: a.clipboard}, nil
	default:
		return importer.FileSource{Path: arg}, nil
	}
}

// save writes the re-exported character after a mutating command. The target is --out when
// set; otherwise the input file, or standard output when the input was not a file.
func (a *app) save(store *sheet.Store, arg string) error {
	data, err := store.Export()
	if err != nil {
		return errReported
	}
	target := a.outPath
	if target == "" {
		target = arg
		if arg == stdio || arg == clipboardArg {
			target = stdio
		}
	}
	if target == stdio {
		_, err := fmt.Fprintln(a.out, string(data))
		return err
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	a.logger.Info("character saved", zap.String("path", target))
	return nil
}

// dispatch applies an action and saves the result.
func (a *app) dispatch(arg string, act sheet.Action) error {
	store, err := a.open(arg)
	if err != nil {
		return err
	}
	if err := store.Dispatch(act); err != nil {
		return errReported
	}
	return a.save(store, arg)
}

// mutating registers the --out flag shared by commands that change the character.
func (a *app) mutating(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().StringVarP(&a.outPath, "out", "o", "", `write the updated character here ("-" for stdout); defaults to FILE`)
	return cmd
}
