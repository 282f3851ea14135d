package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/drakos74/iris-pipeline/internal/config"
	"github.com/drakos74/iris-pipeline/internal/pipeline"
	"github.com/drakos74/iris-pipeline/internal/storage"
	"github.com/drakos74/iris-pipeline/internal/tracker"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the pipeline config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	var t tracker.Tracker
	if cfg.Tracking.URL == "" {
		// no tracker configured, keep the history in process
		t = tracker.NewMemory()
	} else {
		t = tracker.NewHTTP(cfg.Tracking.URL)
	}

	result, err := pipeline.Run(context.Background(), cfg, t, storage.NewJsonBlob(cfg.Artifact.Dir))
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}

	for _, s := range result.Summary {
		fmt.Printf("%s : count=%d mean=%.2f std=%.2f min=%.1f q25=%.1f median=%.1f q75=%.1f max=%.1f\n",
			s.Feature, s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max)
	}
	for _, run := range result.Runs {
		fmt.Printf("%s : accuracy=%.3f precision=%.3f recall=%.3f run=%s unlogged=%v\n",
			run.Type, run.Evaluation.Accuracy, run.Evaluation.Precision, run.Evaluation.Recall,
			run.RunID, run.Unlogged)
	}
	fmt.Printf("artifact : %s -> %s\n", result.Artifact.ModelType, result.Artifact.Key.Path())
	for _, check := range result.Report.Checks {
		fmt.Printf("check %s : ok=%v %s\n", check.Name, check.OK, check.Detail)
	}

	if !result.Report.OK() {
		os.Exit(1)
	}
}
