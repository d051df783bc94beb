package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"

	"github.com/timeclib/timec"
	"github.com/timeclib/timec/locale"
	"github.com/timeclib/timec/server"
)

type option struct {
	Format     string           `description:"specify the strftime template" long:"format" short:"f"`
	Locale     string           `description:"specify the locale id" long:"locale" default:"C"`
	Timezone   string           `description:"specify the timezone name for output" long:"timezone"`
	LocaleDir  string           `description:"specify the directory with per-locale YAML files" long:"locale-dir"`
	Lenient    bool             `description:"allow the parsed text to cover only part of the input" long:"lenient"`
	JSON       bool             `description:"print results as JSON" long:"json"`
	Port       uint16           `description:"specify the port number for the serve verb" long:"port" default:"9820"`
	LogLevel   server.LogLevel  `description:"specify the log level (debug/info/warn/error)" long:"log-level" default:"error"`
	LogFormat  server.LogFormat `description:"specify the log format (console/json)" long:"log-format" default:"console"`
	Version    bool             `description:"print version" long:"version" short:"v"`
}

type exitCode int

const (
	exitOK    exitCode = 0
	exitError exitCode = 1
)

var (
	version  string
	revision string
)

func main() {
	os.Exit(int(run()))
}

func run() exitCode {
	args, opt, err := parseOpt()
	if err != nil {
		flagsErr, ok := err.(*flags.Error)
		if !ok {
			fmt.Fprintf(os.Stderr, "[timec] unknown parsed option error: %[1]T %[1]v\n", err)
			return exitError
		}
		if flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}
	if err := runCommand(args, opt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return exitOK
}

func parseOpt() ([]string, option, error) {
	var opt option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Usage = "[format|parse|diff|serve] [arguments] [options]"
	args, err := parser.Parse()
	return args, opt, err
}

func runCommand(args []string, opt option) error {
	if opt.Version {
		fmt.Fprintf(os.Stdout, "version: %s (%s)\n", version, revision)
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("a verb is required: format, parse, diff or serve")
	}
	switch verb := args[0]; verb {
	case "format":
		return runFormat(args[1:], opt)
	case "parse":
		return runParse(args[1:], opt)
	case "diff":
		return runDiff(args[1:], opt)
	case "serve":
		return runServer(opt)
	default:
		return fmt.Errorf("unknown verb %s", verb)
	}
}

func store(opt option) *locale.Store {
	if opt.LocaleDir != "" {
		return locale.NewDirStore(opt.LocaleDir)
	}
	return locale.DefaultStore()
}

func engineOptions(opt option) []timec.Option {
	opts := []timec.Option{timec.WithStore(store(opt))}
	if opt.Locale != "" {
		opts = append(opts, timec.WithLocale(opt.Locale))
	}
	if opt.Lenient {
		opts = append(opts, timec.Lenient())
	}
	return opts
}

func output(opt option, key, value string) error {
	if opt.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{key: value})
	}
	_, err := fmt.Fprintln(os.Stdout, value)
	return err
}

func runFormat(args []string, opt option) error {
	format := opt.Format
	if format == "" {
		format = "%c"
	}
	t := timec.Now()
	if len(args) > 0 {
		parsed, err := timec.Parse(args[0])
		if err != nil {
			return err
		}
		t = parsed
	}
	if opt.Timezone != "" {
		zone := timec.ZoneByName(opt.Timezone)
		if _, err := zone.OffsetMinutes(t.Epoch()); err != nil {
			return err
		}
		t = t.WithZone(zone)
	}
	result, err := timec.Strftime(t, format, engineOptions(opt)...)
	if err != nil {
		return err
	}
	return output(opt, "result", result)
}

func runParse(args []string, opt option) error {
	if len(args) == 0 {
		return fmt.Errorf("an input string is required")
	}
	if opt.Format == "" {
		return fmt.Errorf("the required flag --format was not specified")
	}
	t, err := timec.Strptime(args[0], opt.Format, engineOptions(opt)...)
	if err != nil {
		return err
	}
	if opt.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"time":  t.String(),
			"epoch": t.Epoch(),
			"zone":  t.Zone().Name(),
		})
	}
	_, err = fmt.Fprintln(os.Stdout, t.String())
	return err
}

func runDiff(args []string, opt option) error {
	if len(args) < 2 {
		return fmt.Errorf("two instants are required")
	}
	from, err := timec.Parse(args[0])
	if err != nil {
		return err
	}
	to, err := timec.Parse(args[1])
	if err != nil {
		return err
	}
	return output(opt, "diff", timec.Between(from, to).String())
}

func runServer(opt option) error {
	timecServer, err := server.NewWithStore(store(opt))
	if err != nil {
		return err
	}
	if err := timecServer.SetLogLevel(opt.LogLevel); err != nil {
		return err
	}
	if err := timecServer.SetLogFormat(opt.LogFormat); err != nil {
		return err
	}

	ctx := context.Background()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		s := <-interrupt
		fmt.Fprintf(os.Stdout, "[timec] receive %s. shutdown gracefully\n", s)
		if err := timecServer.Stop(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "[timec] failed to stop: %v\n", err)
		}
	}()

	done := make(chan error)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%d", opt.Port)
		fmt.Fprintf(os.Stdout, "[timec] listening at %s\n", addr)
		done <- timecServer.Serve(ctx, addr)
	}()

	err = <-done
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
