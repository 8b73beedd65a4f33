package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	programs  []string
	datasets  []string
	variants  []string
	optimized bool

	datasetDir   string
	workloadDir  string
	configPath   string
	inputPath    string
	optTemplate  string
	baseTemplate string

	serverBin  string
	clientBin  string
	serverArgs []string
	clientArgs []string
	serverAddr string

	timeout      time.Duration
	readyTimeout time.Duration

	resultsDb string
	createDb  bool
}

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		Logger.Warnf("failed to load .env file: %v", err)
	}

	var o options
	exitCode := 0
	root := &cobra.Command{
		Use:           "recstep-bench",
		Short:         "Benchmark harness for a datalog engine running on a client/server query backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(cmd.Context(), o)
			exitCode = code
			return err
		},
	}

	root.Flags().StringSliceVar(&o.programs, "programs", []string{"tc", "cc", "sssp"}, "datalog programs to benchmark")
	root.Flags().StringSliceVar(&o.datasets, "datasets", []string{"wiki", "twitter"}, "datasets to benchmark")
	root.Flags().StringSliceVar(&o.variants, "variants", []string{"optimized", "baseline"}, "config variants to benchmark")
	root.Flags().BoolVar(&o.optimized, "optimized", false, "run only the optimized config variant")

	root.Flags().StringVar(&o.datasetDir, "dataset-dir", "datasets", "directory with per-dataset csv files")
	root.Flags().StringVar(&o.workloadDir, "workload-dir", "workloads", "directory with client workload scripts")
	root.Flags().StringVar(&o.configPath, "config-path", "qsconfig.json", "configuration path the engine reads at startup")
	root.Flags().StringVar(&o.inputPath, "input-path", "edge.csv", "input path the engine loads data from")
	root.Flags().StringVar(&o.optTemplate, "opt-template", "qsconfig-opt.json", "optimized configuration template")
	root.Flags().StringVar(&o.baseTemplate, "base-template", "qsconfig-base.json", "baseline configuration template")

	root.Flags().StringVar(&o.serverBin, "server-bin", "quickstep_cli_shell", "engine binary (server and interactive modes)")
	root.Flags().StringVar(&o.clientBin, "client-bin", "quickstep_client", "client binary, reads a workload script on stdin")
	root.Flags().StringSliceVar(&o.serverArgs, "server-args", []string{"-mode=network"}, "arguments starting the engine in network mode")
	root.Flags().StringSliceVar(&o.clientArgs, "client-args", nil, "extra client arguments")
	root.Flags().StringVar(&o.serverAddr, "server-addr", "127.0.0.1:3000", "address the engine listens on in network mode")

	root.Flags().DurationVar(&o.timeout, "timeout", 30*time.Minute, "per-cell timeout")
	root.Flags().DurationVar(&o.readyTimeout, "ready-timeout", 30*time.Second, "how long to wait for the server to accept connections")

	root.Flags().StringVar(&o.resultsDb, "results-db", StringEnv("RESULTS_DB", ""), "libsql database for results upload, empty disables upload")
	root.Flags().BoolVar(&o.createDb, "create-results-db", false, "create the results database through the platform api before upload")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		Logger.Errorf("%v", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func run(ctx context.Context, o options) (int, error) {
	info := HostStat()
	Logger.Infof("host stat: %+v", info)

	programs, err := LookupPrograms(o.programs)
	if err != nil {
		return 1, err
	}
	if len(o.datasets) == 0 {
		return 1, fmt.Errorf("no datasets configured")
	}
	variantNames := o.variants
	if o.optimized {
		variantNames = []string{"optimized"}
	}
	variants := make([]ConfigVariant, 0, len(variantNames))
	for _, name := range variantNames {
		variant, err := ParseVariant(name)
		if err != nil {
			return 1, err
		}
		variants = append(variants, variant)
	}

	engine := &Engine{
		ServerBin:  o.serverBin,
		ClientBin:  o.clientBin,
		Addr:       o.serverAddr,
		ServerArgs: o.serverArgs,
		ClientArgs: o.clientArgs,
		Paths: Paths{
			DatasetDir:        o.datasetDir,
			WorkloadDir:       o.workloadDir,
			ConfigPath:        o.configPath,
			InputPath:         o.inputPath,
			OptimizedTemplate: o.optTemplate,
			BaselineTemplate:  o.baseTemplate,
		},
	}
	harness := &Harness{
		Driver:   &Driver{Engine: engine, ReadyTimeout: o.readyTimeout, CellTimeout: o.timeout},
		Reporter: NewReporter(),
		Storage: &Storage{
			OrgName:   StringEnv("TURSO_ORG_NAME", ""),
			GroupName: StringEnv("TURSO_GROUP_NAME", ""),
			ApiToken:  StringEnv("TURSO_API_TOKEN", ""),
			AuthToken: StringEnv("TURSO_AUTH_TOKEN", ""),
		},
		Results: o.resultsDb,
		Create:  o.createDb,
		Meta:    info.Meta(),
	}

	cells := Cells(programs, o.datasets, variants)
	Logger.Infof("running %v cells: %v programs x %v datasets x %v variants",
		len(cells), len(programs), len(o.datasets), len(variants))

	results, err := harness.Run(ctx, cells)
	if err != nil {
		return exitCodeFor(results), err
	}
	return 0, nil
}

// exitCodeFor picks the code of the first failing cell; harness-level errors
// without a failing cell map to 1.
func exitCodeFor(results []CellResult) int {
	for _, result := range results {
		if result.Err != nil {
			return ExitCode(result.Err)
		}
	}
	return 1
}
