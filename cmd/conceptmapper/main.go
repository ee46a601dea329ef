// Package main implements the conceptmapper CLI tool for translating
// NAMASTE codes to ICD-11 and building full ConceptMap artifacts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/conceptmap"
	"github.com/ayushbridge/conceptmapper/engine"
	"github.com/ayushbridge/conceptmapper/provider"
	"github.com/ayushbridge/conceptmapper/service"
	"github.com/ayushbridge/conceptmapper/terminology"
)

const usage = `conceptmapper - NAMASTE to ICD-11 terminology translation

Usage:
  conceptmapper [options] -translate CODE
  conceptmapper [options] -build

Examples:
  conceptmapper -translate NAM001
  conceptmapper -translate NAM001 -target tm2
  conceptmapper -translate TM2.01 -from tm2 -reverse
  conceptmapper -build -output json
  conceptmapper -records namaste.xlsx -translate NAM001
  conceptmapper -who-client-id ID -who-client-secret SECRET -translate NAM003

Options:
`

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration.
type Config struct {
	Translate   string
	From        string
	Target      string
	Reverse     bool
	Build       bool
	Records     string
	Mappings    string
	Output      OutputFormat
	WHOClientID string
	WHOSecret   string
	Verbose     bool
	ShowVersion bool
	Help        bool
}

// systemAliases maps short CLI names to canonical system URIs.
var systemAliases = map[string]string{
	"namaste":     cm.SystemNAMASTE,
	"tm2":         cm.SystemICD11TM2,
	"biomedicine": cm.SystemICD11Biomedicine,
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("conceptmapper v%s\n", cm.Version)
		os.Exit(0)
	}

	if config.Help || (config.Translate == "" && !config.Build) {
		flag.Usage()
		os.Exit(0)
	}

	os.Exit(run(config))
}

func parseFlags() *Config {
	config := &Config{}
	var output string

	flag.StringVar(&config.Translate, "translate", "", "Source code to translate")
	flag.StringVar(&config.From, "from", "namaste", "Source system: namaste, tm2, biomedicine, or a full URI")
	flag.StringVar(&config.Target, "target", "both", "Target selection: tm2, biomedicine, both")
	flag.BoolVar(&config.Reverse, "reverse", false, "Translate back to NAMASTE from an ICD-11 source")
	flag.BoolVar(&config.Build, "build", false, "Build the full ConceptMap artifact")
	flag.StringVar(&config.Records, "records", "", "NAMASTE terminology spreadsheet (.xlsx) or CodeSystem (.json) to load")
	flag.StringVar(&config.Mappings, "mappings", "", "Curated mapping file (.json) to load")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.StringVar(&config.WHOClientID, "who-client-id", "", "WHO ICD-11 API client id (enables live lookups)")
	flag.StringVar(&config.WHOSecret, "who-client-secret", "", "WHO ICD-11 API client secret")
	flag.BoolVar(&config.Verbose, "verbose", false, "Show detailed output")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	switch strings.ToLower(output) {
	case "json":
		config.Output = OutputJSON
	default:
		config.Output = OutputText
	}

	return config
}

func run(config *Config) int {
	logger := zap.NewNop()
	if config.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
			return 1
		}
		defer logger.Sync()
	}

	store, predefined, err := loadTerminology(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	candidates := buildProvider(config, store, logger)

	resolver, err := engine.NewResolver(store, predefined, candidates, cm.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize resolver: %v\n", err)
		return 1
	}

	ctx := context.Background()

	if config.Build {
		return runBuild(ctx, config, store, resolver, logger)
	}
	return runTranslate(ctx, config, resolver)
}

// loadTerminology assembles the record store and curated mapping table,
// starting from the bundled sample data and layering any files the user
// supplied on top.
func loadTerminology(config *Config) (*terminology.Store, *terminology.PredefinedTable, error) {
	store := terminology.NewSampleStore()
	predefined := terminology.NewSamplePredefinedTable()

	if config.Records != "" {
		var err error
		switch {
		case strings.HasSuffix(config.Records, ".xlsx"):
			_, err = store.LoadRecordsXLSXFile(config.Records, cm.SystemNAMASTE)
		default:
			_, err = store.LoadCodeSystemFile(config.Records)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("loading records from %s: %w", config.Records, err)
		}
	}

	if config.Mappings != "" {
		if _, err := predefined.LoadPredefinedFile(config.Mappings); err != nil {
			return nil, nil, fmt.Errorf("loading mappings from %s: %w", config.Mappings, err)
		}
	}

	return store, predefined, nil
}

// buildProvider picks the candidate provider: the local store by
// default, or the WHO ICD-11 API behind an LRU cache when credentials
// are supplied.
func buildProvider(config *Config, store service.RecordStore, logger *zap.Logger) service.CandidateProvider {
	if config.WHOClientID == "" {
		return provider.NewStaticFromStore(store)
	}
	who := provider.NewWHOClient(config.WHOClientID, config.WHOSecret, provider.WithWHOLogger(logger))
	return provider.NewCached(who, 256)
}

func runTranslate(ctx context.Context, config *Config, resolver *engine.Resolver) int {
	sourceSystem, ok := resolveSystem(config.From)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown source system %q\n", config.From)
		return 1
	}

	selection, err := targetSelection(config, sourceSystem)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	translator := engine.NewTranslator(resolver, cm.KnownTargetSystems())
	result, err := translator.Translate(ctx, sourceSystem, config.Translate, selection)
	if err != nil {
		if cm.IsNotFound(err) {
			fmt.Fprintf(os.Stderr, "Error: code %q not found in %s\n", config.Translate, sourceSystem)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if config.Output == OutputJSON {
		return printJSON(result)
	}
	printTranslation(result)
	return 0
}

// targetSelection maps the -target / -reverse flags onto a selection.
// Reverse mode targets NAMASTE regardless of -target.
func targetSelection(config *Config, sourceSystem string) (cm.TargetSelection, error) {
	if config.Reverse || sourceSystem != cm.SystemNAMASTE {
		return cm.SelectSystem(cm.SystemNAMASTE), nil
	}
	switch strings.ToLower(config.Target) {
	case "both", "":
		return cm.SelectBoth(), nil
	case "all":
		return cm.SelectAll(), nil
	default:
		system, ok := resolveSystem(config.Target)
		if !ok {
			return cm.TargetSelection{}, fmt.Errorf("unknown target system %q", config.Target)
		}
		return cm.SelectSystem(system), nil
	}
}

func runBuild(ctx context.Context, config *Config, store service.RecordStore, resolver *engine.Resolver, logger *zap.Logger) int {
	builder, err := conceptmap.NewBuilder(store, resolver, conceptmap.WithBuilderLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	artifact, err := builder.Build(ctx, cm.SystemNAMASTE)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: build failed: %v\n", err)
		return 1
	}

	if config.Output == OutputJSON {
		return printJSON(artifact.R4())
	}
	printArtifact(artifact)
	return 0
}

func resolveSystem(name string) (string, bool) {
	if system, ok := systemAliases[strings.ToLower(name)]; ok {
		return system, true
	}
	// Full URIs pass through untouched.
	if strings.Contains(name, "://") {
		return name, true
	}
	return "", false
}

func printJSON(v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding output: %v\n", err)
		return 1
	}
	fmt.Println(string(data))
	return 0
}

func printTranslation(result *cm.TranslationResult) {
	fmt.Printf("== %s ==\n", result.Source.Code)
	if result.Source.Display != "" {
		fmt.Printf("Source: %s (%s)\n", result.Source.Display, result.Source.System)
	} else {
		fmt.Printf("Source: %s\n", result.Source.System)
	}

	if result.Empty() {
		fmt.Println("\nNo mappings found.")
		return
	}

	for _, group := range result.Groups {
		fmt.Printf("\nTarget: %s\n", group.System)
		if len(group.Mappings) == 0 {
			fmt.Println("  (no mappings)")
			continue
		}
		for _, m := range group.Mappings {
			fmt.Printf("  %-10s %-40s %s (%.2f, %s)\n",
				m.Target.Code, m.Target.Display, m.Equivalence, m.Confidence, m.Method)
		}
	}
}

func printArtifact(artifact *conceptmap.Artifact) {
	fmt.Printf("== %s ==\n", artifact.Title)
	fmt.Printf("Id: %s\n", artifact.ID)
	fmt.Printf("Source: %s\n", artifact.SourceSystem)
	fmt.Printf("Elements: %d, Mappings: %d\n", artifact.ElementCount(), artifact.MappingCount())

	for _, group := range artifact.Groups {
		fmt.Printf("\nGroup: %s\n", group.Target)
		for _, element := range group.Elements {
			fmt.Printf("  %s %s\n", element.Code, element.Display)
			if len(element.Targets) == 0 {
				fmt.Println("    (unmapped)")
				continue
			}
			for _, target := range element.Targets {
				fmt.Printf("    -> %-10s %-40s %s (%.2f)\n",
					target.Code, target.Display, target.Equivalence, target.Confidence)
			}
		}
	}
}
