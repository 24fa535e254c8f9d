// recom-run samples an ensemble of districting plans over a dual-graph
// with a recombination Markov chain, logging progress and exposing
// Prometheus metrics while it walks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/constraints"
	"github.com/katalvlaran/redistrict/graph"
	"github.com/katalvlaran/redistrict/grid"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/recom"
	"github.com/katalvlaran/redistrict/tree"
	"github.com/katalvlaran/redistrict/updaters"
)

// Config is the top-level configuration object of recom-run.
var Config = new(struct {
	Input struct {
		Graph   string `long:"graph" env:"GRAPH" description:"Path to a JSON dual-graph file; mutually exclusive with --input.grid"`
		Grid    string `long:"grid" env:"GRID" description:"Synthetic WxH grid with unit populations, e.g. 20x20"`
		PopAttr string `long:"pop-attr" env:"POP_ATTR" default:"population" description:"Node attribute holding population counts"`
	} `group:"Input" namespace:"input" env-namespace:"INPUT"`

	Chain struct {
		Districts     int     `long:"districts" env:"DISTRICTS" default:"4" description:"Number of districts in the sampled plans"`
		Steps         int     `long:"steps" env:"STEPS" default:"1000" description:"Number of states to emit, seed plan included"`
		Seed          int64   `long:"seed" env:"SEED" default:"1" description:"Randomness seed; identical seeds replay identical runs"`
		Epsilon       float64 `long:"epsilon" env:"EPSILON" default:"0.05" description:"Population tolerance of each recombination split"`
		Tolerance     float64 `long:"tolerance" env:"TOLERANCE" default:"0.1" description:"Hard bound on district deviation from the ideal population"`
		PairSelection string  `long:"pair-selection" env:"PAIR_SELECTION" default:"cut-edges" choice:"cut-edges" choice:"uniform" description:"How the recombined district pair is drawn"`
	} `group:"Chain" namespace:"chain" env-namespace:"CHAIN"`

	Output struct {
		Assignment  string `long:"assignment" env:"ASSIGNMENT" description:"Write the final plan's node labels to this JSON file"`
		MetricsPort int    `long:"metrics-port" env:"METRICS_PORT" default:"0" description:"Serve Prometheus metrics on this port; 0 disables"`
		LogEvery    int    `long:"log-every" env:"LOG_EVERY" default:"1000" description:"Progress logging period in steps"`
	} `group:"Output" namespace:"output" env-namespace:"OUTPUT"`

	Log struct {
		Level  string `long:"level" env:"LEVEL" default:"info" choice:"info" choice:"debug" choice:"warn" description:"Logging level"`
		Format string `long:"format" env:"FORMAT" default:"text" choice:"json" choice:"text" choice:"color" description:"Logging output format"`
	} `group:"Logging" namespace:"log" env-namespace:"LOG"`
})

type runChain struct{}

func (runChain) Execute(args []string) error {
	initLog()
	log.WithField("config", Config).Info("starting recom-run")

	g, err := loadGraph()
	must(err, "failed to load the dual-graph")

	// Seed plan: recursive tree bipartitions at the ideal population.
	rng := rand.New(rand.NewSource(Config.Chain.Seed))
	raw, err := tree.RecursivePartition(g, Config.Chain.Districts, Config.Input.PopAttr,
		Config.Chain.Epsilon, rng)
	must(err, "failed to draw a seed plan")
	labels := make([]partition.District, len(raw))
	for i, d := range raw {
		labels[i] = partition.District(d)
	}

	seed, err := partition.New(g, labels, []partition.Updater{
		updaters.NewTally(Config.Input.PopAttr, Config.Input.PopAttr),
		updaters.NewCutEdges(),
	})
	must(err, "failed to build the seed partition")

	popBound, err := constraints.WithinPercentOfIdealPopulation(seed,
		Config.Chain.Tolerance, Config.Input.PopAttr)
	must(err, "failed to derive the population constraint")
	validator := constraints.NewValidator(popBound, constraints.Contiguous)

	proposal, err := recom.New(Config.Input.PopAttr,
		recom.WithEpsilon(Config.Chain.Epsilon),
		recom.WithPairSelection(Config.Chain.PairSelection))
	must(err, "failed to build the recombination proposal")

	if Config.Output.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			addr := fmt.Sprintf(":%d", Config.Output.MetricsPort)
			if serr := http.ListenAndServe(addr, mux); serr != nil {
				log.WithField("err", serr).Error("metrics server stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := chain.New(chain.Proposal(proposal), validator.Valid, nil, seed,
		Config.Chain.Steps,
		chain.WithContext(ctx),
		chain.WithRand(rng),
		chain.WithLogger(log.WithField("component", "chain")),
		chain.WithLogEvery(Config.Output.LogEvery))
	must(err, "failed to construct the chain")

	for c.Next() {
	}
	if cerr := c.Err(); cerr != nil && ctx.Err() == nil {
		must(cerr, "chain aborted")
	}

	stats := c.Stats()
	log.WithFields(log.Fields{
		"steps":        stats.Steps,
		"accepted":     stats.Accepted,
		"selfLoops":    stats.SelfLoops,
		"failures":     stats.ProposalFailures,
		"selfLoopRate": stats.SelfLoopRate(),
	}).Info("chain finished")
	logPlan(c.State())

	if Config.Output.Assignment != "" {
		must(writeAssignment(c.State(), Config.Output.Assignment), "failed to write the final plan")
	}

	return nil
}

// graphFile is the JSON dual-graph schema: one object per node carrying
// its attributes, and edges as [u, v] or [u, v, weight] triples.
type graphFile struct {
	Nodes []map[string]int64 `json:"nodes"`
	Edges [][]int64          `json:"edges"`
}

func loadGraph() (*graph.Graph, error) {
	switch {
	case Config.Input.Grid != "" && Config.Input.Graph != "":
		return nil, fmt.Errorf("--input.graph and --input.grid are mutually exclusive")
	case Config.Input.Grid != "":
		var w, h int
		if _, err := fmt.Sscanf(Config.Input.Grid, "%dx%d", &w, &h); err != nil {
			return nil, fmt.Errorf("parsing grid spec %q: %w", Config.Input.Grid, err)
		}

		return grid.New(w, h, grid.WithPopAttr(Config.Input.PopAttr))
	case Config.Input.Graph != "":
		return readGraphFile(Config.Input.Graph)
	default:
		return nil, fmt.Errorf("one of --input.graph or --input.grid is required")
	}
}

func readGraphFile(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file graphFile
	if err = json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(file.Nodes) == 0 {
		return nil, fmt.Errorf("%s: no nodes", path)
	}

	// Attribute names come from the first node; every node must carry them.
	names := make([]string, 0, len(file.Nodes[0]))
	for name := range file.Nodes[0] {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := make([]graph.Option, 0, len(names))
	for _, name := range names {
		values := make([]int64, len(file.Nodes))
		for i, node := range file.Nodes {
			v, ok := node[name]
			if !ok {
				return nil, fmt.Errorf("%s: node %d lacks attribute %q", path, i, name)
			}
			values[i] = v
		}
		opts = append(opts, graph.WithNodeAttr(name, values))
	}

	edges := make([]graph.Edge, len(file.Edges))
	for i, e := range file.Edges {
		if len(e) != 2 && len(e) != 3 {
			return nil, fmt.Errorf("%s: edge %d must be [u, v] or [u, v, weight]", path, i)
		}
		edges[i] = graph.Edge{U: int(e[0]), V: int(e[1]), Weight: 1}
		if len(e) == 3 {
			edges[i].Weight = e[2]
		}
	}

	return graph.Build(len(file.Nodes), edges, opts...)
}

// logPlan reports the final plan's population and deviation per district.
func logPlan(p *partition.Partition) {
	totals, err := updaters.TallyValue(p, Config.Input.PopAttr)
	if err != nil {
		return
	}
	dev, err := constraints.DeviationFromIdeal(p, Config.Input.PopAttr)
	if err != nil {
		return
	}
	for _, d := range p.Districts() {
		log.WithFields(log.Fields{
			"district":   d,
			"nodes":      len(p.Part(d)),
			"population": totals[d],
			"deviation":  fmt.Sprintf("%+.4f", dev[d]),
		}).Info("final district")
	}
}

func writeAssignment(p *partition.Partition, path string) error {
	data, err := json.MarshalIndent(p.Assignment().Labels(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func initLog() {
	switch Config.Log.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "color":
		log.SetFormatter(&log.TextFormatter{ForceColors: true})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}
	if lvl, err := log.ParseLevel(Config.Log.Level); err != nil {
		log.WithField("err", err).Fatal("unrecognized log level")
	} else {
		log.SetLevel(lvl)
	}
}

func must(err error, msg string) {
	if err != nil {
		log.WithField("err", err).Fatal(msg)
	}
}

func main() {
	parser := flags.NewParser(Config, flags.Default)

	parser.AddCommand("run", "Run a recombination chain", `
run samples an ensemble of districting plans: it draws a seed plan by
recursive tree bipartition, then walks the recombination Markov chain for
the configured number of steps, enforcing contiguity and population
balance at every state.
`, &runChain{})

	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
}
