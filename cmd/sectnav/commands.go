package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/saylorsolutions/sectomie/app"
	"github.com/saylorsolutions/sectomie/dispatch"
	"github.com/saylorsolutions/sectomie/internal/config"
	"github.com/saylorsolutions/sectomie/internal/logging"
	"github.com/saylorsolutions/sectomie/internal/printer"
	"github.com/saylorsolutions/sectomie/route"
	"github.com/saylorsolutions/sectomie/sect"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const cliName = "sectnav"

var (
	errUsage = errors.New("usage error")

	helpPatterns = []string{"--help", "-h", "help"}
)

type usageError struct {
	wrapped error
}

func (e *usageError) Error() string {
	return "usage error: " + e.wrapped.Error()
}

func (e *usageError) Is(err error) bool {
	return err == errUsage
}

func (e *usageError) Unwrap() error {
	return e.wrapped
}

func newUsageError(format string, args ...any) error {
	return &usageError{wrapped: fmt.Errorf(format, args...)}
}

type commandFunc = func(a *app.App, flags *flag.FlagSet) error

type command struct {
	key        string
	shortUsage string
	usage      string
	flags      *flag.FlagSet
	exec       commandFunc
}

type commandSet struct {
	conf     config.Config
	printer  *printer.Printer
	stdout   io.Writer
	logOut   io.Writer
	commands map[string]*command

	logLevel  string
	logFormat string
	noColor   bool
}

func newCommandSet(conf config.Config, p *printer.Printer, stdout io.Writer) *commandSet {
	s := &commandSet{
		conf:     conf,
		printer:  p,
		stdout:   stdout,
		logOut:   os.Stderr,
		commands: map[string]*command{},
	}

	routes := s.add("routes", "Lists every route in the route table", "routes [FLAGS]", s.listRoutes)
	routes.flags.StringP("output", "o", "text", "Output format, one of text, json, or yaml")

	resolve := s.add("resolve", "Resolves a path to the route that would be activated", "resolve [FLAGS] PATH", s.resolve)
	resolve.flags.StringToStringP("query", "q", map[string]string{}, "Query parameters to send with the path, as key=value")
	resolve.flags.StringP("output", "o", "text", "Output format, one of text, json, or yaml")
	resolve.flags.Bool("trace", false, "Prints the view activation event emitted by navigation")

	s.add("check", "Validates the route table, and follows every redirect to find loops", "check [FLAGS]", s.check)

	s.add("emit", "Checks an event payload, then emits it to a subscriber that prints what it receives", "emit [FLAGS] EVENT [PAYLOAD]", s.emit)
	return s
}

func (s *commandSet) add(key, shortUsage, usage string, exec commandFunc) *command {
	fs := flag.NewFlagSet(key, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.StringVar(&s.conf.RoutesFile, "routes", s.conf.RoutesFile, "YAML route table to use instead of the built-in table")
	fs.IntVar(&s.conf.MaxRedirects, "max-redirects", s.conf.MaxRedirects, "Maximum redirects followed by one navigation")
	fs.StringVar(&s.logLevel, "log-level", s.conf.LogLevel.String(), "Log level, one of debug, info, warn, or error")
	fs.StringVar(&s.logFormat, "log-format", s.conf.LogFormat, "Log format, one of auto, text, or json")
	fs.BoolVar(&s.noColor, "no-color", s.conf.NoColor, "Disables colored output")
	cmd := &command{
		key:        key,
		shortUsage: shortUsage,
		usage:      usage,
		flags:      fs,
		exec:       exec,
	}
	s.commands[key] = cmd
	return cmd
}

func (s *commandSet) exec(args []string) error {
	if len(args) == 0 || slices.Contains(helpPatterns, args[0]) {
		s.printUsage()
		return nil
	}
	cmd, ok := s.commands[strings.ToLower(args[0])]
	if !ok {
		return newUsageError("unknown command '%s'", args[0])
	}
	if err := cmd.flags.Parse(args[1:]); err != nil {
		return newUsageError("%s: %v", cmd.key, err)
	}
	if help, _ := cmd.flags.GetBool("help"); help {
		s.printCommandUsage(cmd)
		return nil
	}
	if err := s.applyFlags(); err != nil {
		return err
	}
	a, err := app.New(s.conf, logging.FromConfig(s.logOut, s.conf))
	if err != nil {
		return err
	}
	return cmd.exec(a, cmd.flags)
}

func (s *commandSet) applyFlags() error {
	level, err := config.ParseLevel(s.logLevel)
	if err != nil {
		return newUsageError("--log-level: %v", err)
	}
	s.conf.LogLevel = level
	format, err := config.ParseFormat(s.logFormat)
	if err != nil {
		return newUsageError("--log-format: %v", err)
	}
	s.conf.LogFormat = format
	if s.conf.MaxRedirects < 1 {
		return newUsageError("--max-redirects must be >= 1, got %d", s.conf.MaxRedirects)
	}
	if s.noColor != s.conf.NoColor {
		s.conf.NoColor = s.noColor
		s.printer.SetNoColor(s.noColor)
	}
	return nil
}

func (s *commandSet) printUsage() {
	keys := make([]string, 0, len(s.commands))
	maxLen := 0
	for key := range s.commands {
		keys = append(keys, key)
		maxLen = max(maxLen, len(key))
	}
	slices.Sort(keys)
	s.printer.Printf("%s inspects and exercises the sect manager's route table.\n\nUSAGE:\n%s COMMAND [FLAGS...] [ARGS...]\n\nCOMMANDS\n", cliName, cliName)
	for _, key := range keys {
		s.printer.Printf("  %-*s\t%s\n", maxLen, key, s.commands[key].shortUsage)
	}
}

func (s *commandSet) printCommandUsage(cmd *command) {
	s.printer.Printf("%s\n\nUSAGE:\n%s %s\n\nFLAGS\n%s", cmd.shortUsage, cliName, cmd.usage, cmd.flags.FlagUsages())
}

func (s *commandSet) listRoutes(a *app.App, flags *flag.FlagSet) error {
	routes := a.Router.Routes()
	output, _ := flags.GetString("output")
	if output != "text" {
		return s.encode(output, routes)
	}
	var nameLen, patternLen int
	for _, info := range routes {
		nameLen = max(nameLen, len(info.Name))
		patternLen = max(patternLen, len(info.Pattern))
	}
	for _, info := range routes {
		target := info.Component
		if info.Redirect {
			target = "redirect"
		}
		line := fmt.Sprintf("%-*s  %-*s  %s", nameLen, info.Name, patternLen, info.Pattern, target)
		if len(info.Meta) > 0 {
			line += "  " + formatMap(info.Meta)
		}
		if info.Redirect {
			s.printer.Printf("%s\n", s.printer.Accent(line))
			continue
		}
		s.printer.Println(line)
	}
	return nil
}

func (s *commandSet) resolve(a *app.App, flags *flag.FlagSet) error {
	args := flags.Args()
	if len(args) != 1 {
		return newUsageError("resolve: expected exactly one PATH argument, got %d", len(args))
	}
	loc, err := route.ParseLocation(args[0])
	if err != nil {
		return newUsageError("resolve: %v", err)
	}
	flagQuery, _ := flags.GetStringToString("query")
	maps.Copy(loc.Query, flagQuery)

	if trace, _ := flags.GetBool("trace"); trace {
		a.Events.Subscribe(sect.EventViewActivated, func(params ...dispatch.Param) error {
			var res *route.Resolution
			if err := dispatch.MapParam(&res, params); err != nil {
				return err
			}
			s.printer.Printf("%s %s\n", s.printer.Accent(string(sect.EventViewActivated)), res.Name)
			return nil
		})
	}

	res, err := a.Navigate(loc.Path, loc.Query)
	if err != nil {
		return err
	}
	output, _ := flags.GetString("output")
	if output != "text" {
		return s.encode(output, res)
	}
	s.printer.Success("%s -> %s (%s)", loc.Path, res.Name, res.Component)
	s.printer.Printf("  pattern:   %s\n", res.Pattern)
	if len(res.Params) > 0 {
		s.printer.Printf("  params:    %s\n", formatMap(res.Params))
	}
	if len(res.Query) > 0 {
		s.printer.Printf("  query:     %s\n", formatMap(res.Query))
	}
	if len(res.Redirects) > 0 {
		s.printer.Printf("  redirects: %s\n", strings.Join(res.Redirects, " -> "))
	}
	if len(res.Layouts) > 0 {
		s.printer.Printf("  layouts:   %s\n", strings.Join(res.Layouts, " > "))
	}
	if len(res.Meta) > 0 {
		s.printer.Printf("  meta:      %s\n", formatMap(res.Meta))
	}
	if res.Meta[sect.MetaUnderConstruction] == true {
		s.printer.Warning("%s is under construction", res.Name)
	}
	return nil
}

func (s *commandSet) check(a *app.App, _ *flag.FlagSet) error {
	routes := a.Router.Routes()
	var redirects int
	for _, info := range routes {
		if info.Redirect {
			redirects++
		}
	}
	if err := a.Router.Verify(); err != nil {
		var problems []error
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			problems = joined.Unwrap()
		} else {
			problems = []error{err}
		}
		for _, problem := range problems {
			s.printer.Failure("%v", problem)
		}
		return fmt.Errorf("route table has %d problem(s)", len(problems))
	}
	s.printer.Success("%d routes, %d redirects resolve within %d redirect(s)", len(routes), redirects, a.Router.MaxRedirects())
	return nil
}

func (s *commandSet) encode(format string, val any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(s.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(val)
	case "yaml":
		enc := yaml.NewEncoder(s.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(val); err != nil {
			return err
		}
		return enc.Close()
	default:
		return newUsageError("unknown output format '%s'", format)
	}
}

func formatMap[M ~map[string]V, V any](m M) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, m[k])
	}
	return strings.Join(pairs, " ")
}
