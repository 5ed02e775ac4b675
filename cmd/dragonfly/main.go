// SPDX-License-Identifier: MIT

// Command dragonfly generates a dragonfly interconnect topology and writes it
// as a Graphviz graph, a population report, a YAML/JSON document or a
// summary table.
//
// Usage:
//
//	dragonfly [--config file.yaml] [--format dot|population|yaml|json|summary]
//	          [--output file] [--metrics-file file.prom]
//	          [--port-budget N --slots N --chassis N --groups N
//	           --lpc-rank1 N --lpc-rank2 N --lpc-rank3 N]
//	dragonfly --from topo.yaml [--format dot|yaml|json]
//
// Every configuration field can also be set through DRAGONFLY_<FIELD>
// environment variables (DRAGONFLY_PORT_BUDGET, DRAGONFLY_GROUPS_PER_SYSTEM, ...).
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/dragonfly/analysis"
	"github.com/katalvlaran/dragonfly/config"
	"github.com/katalvlaran/dragonfly/logging"
	"github.com/katalvlaran/dragonfly/metrics"
	"github.com/katalvlaran/dragonfly/render"
	"github.com/katalvlaran/dragonfly/topology"
)

// Output formats.
const (
	FormatDOT        = "dot"
	FormatPopulation = "population"
	FormatYAML       = "yaml"
	FormatJSON       = "json"
	FormatSummary    = "summary"
)

var (
	errUnknownFormat = errors.New("unknown output format")
	errNeedsBuild    = errors.New("format needs a built topology, not a stored document")
)

type options struct {
	configPath  string
	format      string
	output      string
	metricsFile string
	from        string
	logLevel    string
	logDev      bool
	noDiameter  bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "dragonfly:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("dragonfly", pflag.ContinueOnError)
	var o options
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML or JSON topology configuration")
	fs.StringVarP(&o.format, "format", "f", FormatDOT, "output format: dot, population, yaml, json or summary")
	fs.StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus textfile metrics here")
	fs.StringVar(&o.from, "from", "", "re-render a stored YAML/JSON document instead of building")
	fs.StringVar(&o.logLevel, "log-level", "info", "trace, debug, info, warn or error")
	fs.BoolVar(&o.logDev, "log-dev", false, "human-readable development logging")
	fs.BoolVar(&o.noDiameter, "no-diameter", false, "skip the all-pairs diameter in the summary")
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	log, err := logging.New(o.logLevel, o.logDev)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	// Render fully before touching --output, so a failed run leaves an
	// existing artifact in place.
	var buf bytes.Buffer
	if o.from != "" {
		err = rerender(o, &buf, log)
	} else {
		err = generate(o, fs, &buf, log)
	}
	if err != nil {
		return err
	}

	if o.output == "" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(o.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	log.V(logging.DEBUG).Info("output written", "file", o.output, "bytes", buf.Len())

	return nil
}

// generate loads the configuration, builds the topology and renders it to
// out. The metrics file, when requested, is written for failed builds too.
func generate(o options, fs *pflag.FlagSet, out io.Writer, log logr.Logger) error {
	cfg, err := config.Load(o.configPath, fs)
	if err != nil {
		return err
	}
	log.Info("configuration loaded", "config", cfg.String())

	reg := metrics.NewRegistry()
	start := time.Now()
	topo, err := topology.Build(cfg, topology.WithLogger(log))
	reg.RecordBuild(err, time.Since(start))
	if err == nil {
		reg.ObserveTopology(topo)
		log.Info("topology built",
			"rank1", topo.Count(topology.RankIntraChassis),
			"rank2", topo.Count(topology.RankIntraGroup),
			"rank3", topo.Count(topology.RankInterGroup),
		)
	}

	if o.metricsFile != "" {
		if merr := reg.WriteTextfile(o.metricsFile); merr != nil {
			return errors.Join(err, fmt.Errorf("metrics: %w", merr))
		}
		log.V(logging.DEBUG).Info("metrics written", "file", o.metricsFile)
	}
	if err != nil {
		return err
	}

	return write(o, out, topo)
}

func write(o options, out io.Writer, topo *topology.Topology) error {
	switch o.format {
	case FormatDOT:
		return render.WriteDOT(out, topo.Links())
	case FormatPopulation:
		return render.WritePopulation(out, topo.Population())
	case FormatYAML:
		return render.NewDocument(topo).Encode(out, render.FormatYAML)
	case FormatJSON:
		return render.NewDocument(topo).Encode(out, render.FormatJSON)
	case FormatSummary:
		return render.WriteSummary(out, analysis.Analyze(topo, analysis.WithDiameter(!o.noDiameter)))
	default:
		return fmt.Errorf("%q: %w", o.format, errUnknownFormat)
	}
}

func rerender(o options, out io.Writer, log logr.Logger) error {
	doc, err := render.ReadDocument(o.from, nil)
	if err != nil {
		return err
	}
	log.V(logging.DEBUG).Info("document loaded", "file", o.from, "connections", len(doc.Connections))

	switch o.format {
	case FormatDOT:
		links, err := doc.Links()
		if err != nil {
			return err
		}
		return render.WriteDOT(out, links)
	case FormatYAML:
		return doc.Encode(out, render.FormatYAML)
	case FormatJSON:
		return doc.Encode(out, render.FormatJSON)
	case FormatPopulation, FormatSummary:
		return fmt.Errorf("%q: %w", o.format, errNeedsBuild)
	default:
		return fmt.Errorf("%q: %w", o.format, errUnknownFormat)
	}
}
