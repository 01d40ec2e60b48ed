package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/saylorsolutions/sectomie/app"
	"github.com/saylorsolutions/sectomie/dispatch"
	"github.com/saylorsolutions/sectomie/sect"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func (s *commandSet) emit(a *app.App, flags *flag.FlagSet) error {
	args := flags.Args()
	if len(args) < 1 || len(args) > 2 {
		return newUsageError("emit: expected EVENT and an optional PAYLOAD, got %d arguments", len(args))
	}
	evt := dispatch.Event(strings.ToLower(args[0]))
	if !slices.Contains(sect.Events(), evt) {
		names := make([]string, 0, len(sect.Events()))
		for _, known := range sect.Events() {
			names = append(names, string(known))
		}
		return newUsageError("emit: unknown event '%s', expected one of %s", args[0], strings.Join(names, ", "))
	}
	var raw string
	if len(args) == 2 {
		raw = args[1]
	}
	params, err := parsePayload(evt, raw)
	if err != nil {
		return err
	}

	a.Events.Subscribe(evt, func(params ...dispatch.Param) error {
		s.printer.Printf("%s %s\n", s.printer.Accent(string(evt)), describeParams(params))
		return nil
	})
	return a.Publish(evt, params...)
}

// parsePayload reads an event payload given on the command line.
// Struct payloads are given as YAML (or JSON) mappings, turn numbers as integers, and IDs as plain strings.
func parsePayload(evt dispatch.Event, raw string) ([]dispatch.Param, error) {
	switch evt {
	case sect.EventViewActivated:
		return nil, newUsageError("emit: '%s' is only emitted by navigation, use 'resolve --trace' instead", evt)
	case sect.EventDiscipleCultivated:
		var payload sect.Cultivated
		if err := decodeStrict(raw, &payload); err != nil {
			return nil, newUsageError("emit: payload of '%s': %v", evt, err)
		}
		return []dispatch.Param{payload}, nil
	case sect.EventBreakthroughAttempted:
		var payload sect.Breakthrough
		if err := decodeStrict(raw, &payload); err != nil {
			return nil, newUsageError("emit: payload of '%s': %v", evt, err)
		}
		return []dispatch.Param{payload}, nil
	case sect.EventTurnEnded:
		turn, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, newUsageError("emit: payload of '%s' must be a turn number: %v", evt, err)
		}
		return []dispatch.Param{turn}, nil
	default:
		// An empty ID is left for the payload check to report.
		if len(raw) == 0 {
			return nil, nil
		}
		return []dispatch.Param{raw}, nil
	}
}

func decodeStrict(raw string, target any) error {
	dec := yaml.NewDecoder(strings.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("missing payload")
		}
		return err
	}
	return nil
}

func describeParams(params []dispatch.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%+v", p)
	}
	return strings.Join(parts, " ")
}
