// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/seldonian-go/engine/cmd/version"
	"github.com/seldonian-go/engine/common/log"
	"github.com/seldonian-go/engine/common/random"
	"github.com/seldonian-go/engine/config"
	"github.com/seldonian-go/engine/dataset"
	"github.com/seldonian-go/engine/model"
	"github.com/seldonian-go/engine/statistic"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var rootCommand = &cobra.Command{
	Use:   "seldonian-eval",
	Short: "Evaluate statistics of a model on a dataset.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetLogger(cmd.Flags(), debug)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}
		_ = cmd.Help()
	},
}

var evaluateCommand = &cobra.Command{
	Use:   "evaluate",
	Short: "Print the statistic over the whole sample",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEvaluation(cmd.Flags())
		if err != nil {
			log.Logger().Fatal("failed to prepare evaluation", zap.Error(err))
		}
		if err = e.evaluate(os.Stdout); err != nil {
			log.Logger().Fatal("failed to evaluate statistic", zap.Error(err))
		}
	},
}

var sampleCommand = &cobra.Command{
	Use:   "sample",
	Short: "Print the statistic of every observation",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEvaluation(cmd.Flags())
		if err != nil {
			log.Logger().Fatal("failed to prepare evaluation", zap.Error(err))
		}
		if err = e.sample(os.Stdout); err != nil {
			log.Logger().Fatal("failed to sample statistic", zap.Error(err))
		}
	},
}

// evaluation is everything a command needs to compute a statistic.
type evaluation struct {
	config    *config.Config
	model     model.Model
	data      dataset.Dataset
	theta     []float64
	evaluator *statistic.Evaluator
}

func newEvaluation(flagSet *pflag.FlagSet) (*evaluation, error) {
	configPath, _ := flagSet.GetString("config")
	log.Logger().Info("load config", zap.String("config", configPath))
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if flagSet.Changed("statistic") {
		conf.Statistic.Name, _ = flagSet.GetString("statistic")
	}
	if flagSet.Changed("theta") {
		conf.Model.Theta, _ = flagSet.GetFloat64Slice("theta")
	}
	if flagSet.Changed("jobs") {
		conf.Statistic.Jobs, _ = flagSet.GetInt("jobs")
	}
	if err = conf.Validate(); err != nil {
		return nil, errors.Annotate(err, "invalid config")
	}

	var data dataset.Dataset
	switch conf.Data.Format {
	case config.FormatEpisodes:
		data, err = dataset.LoadEpisodesCSV(conf.Data.Path, conf.Data.Separator, conf.Data.HasHeader)
	default:
		data, err = dataset.LoadTabularCSV(conf.Data.Path, conf.Data.Separator, conf.Data.HasHeader)
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("load dataset",
		zap.String("path", conf.Data.Path),
		zap.String("format", conf.Data.Format),
		zap.Int("observations", data.Count()))

	m, err := model.NewModel(conf.Model.Type, conf.Model.Options())
	if err != nil {
		return nil, errors.Trace(err)
	}
	theta := conf.Model.Theta
	if len(theta) == 0 {
		var numParams int
		switch m := m.(type) {
		case model.Predictor:
			if tabular, ok := data.(*dataset.Tabular); ok {
				numParams = m.NumParams(tabular.NumFeatures())
			}
		case model.PolicyModel:
			numParams = m.NumParams()
		}
		theta = random.NewRandomGenerator(conf.Model.Seed).NormalVector(numParams, 0, 0.01)
		log.Logger().Info("initialize parameters randomly",
			zap.Int("params", numParams),
			zap.Int64("seed", conf.Model.Seed))
	}
	return &evaluation{
		config:    conf,
		model:     m,
		data:      data,
		theta:     theta,
		evaluator: statistic.NewEvaluator(statistic.NewConfig().SetJobs(conf.Statistic.Jobs)),
	}, nil
}

func (e *evaluation) context() (context.Context, context.CancelFunc) {
	if e.config.Statistic.Timeout > 0 {
		return context.WithTimeout(context.Background(), e.config.Statistic.Timeout)
	}
	return context.WithCancel(context.Background())
}

// evaluate writes the scalar statistic as a table.
func (e *evaluation) evaluate(w io.Writer) error {
	ctx, cancel := e.context()
	defer cancel()
	result, err := e.evaluator.Evaluate(ctx, e.model, e.config.Statistic.Name, e.theta, e.data)
	if err != nil {
		return errors.Trace(err)
	}
	table := tablewriter.NewWriter(w)
	table.Header("statistic", "model", "observations", "value")
	if err = table.Append(e.config.Statistic.Name, e.model.Name(), strconv.Itoa(e.data.Count()), formatFloat(result)); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(table.Render())
}

// sample writes the statistic of every observation as a table.
func (e *evaluation) sample(w io.Writer) error {
	ctx, cancel := e.context()
	defer cancel()
	values, err := e.evaluator.Sample(ctx, e.model, e.config.Statistic.Name, e.theta, e.data)
	if err != nil {
		return errors.Trace(err)
	}
	table := tablewriter.NewWriter(w)
	table.Header("index", e.config.Statistic.Name)
	for i, value := range values {
		if err = table.Append(strconv.Itoa(i), formatFloat(value)); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func addEvaluationFlags(flagSet *pflag.FlagSet) {
	flagSet.StringP("config", "c", "", "configuration file path")
	flagSet.String("statistic", "", "statistic to evaluate, overrides the config")
	flagSet.Float64Slice("theta", nil, "model parameters, overrides the config")
	flagSet.IntP("jobs", "j", 1, "number of evaluation jobs, overrides the config")
}

func init() {
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().BoolP("version", "v", false, "seldonian-eval version")
	addEvaluationFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(evaluateCommand, sampleCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
