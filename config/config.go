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

package config

import (
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/seldonian-go/engine/model"
	"github.com/spf13/viper"
)

const (
	FormatTabular  = "tabular"
	FormatEpisodes = "episodes"
)

// Config is the configuration of an evaluation.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Model     ModelConfig     `mapstructure:"model"`
	Statistic StatisticConfig `mapstructure:"statistic"`
}

// DataConfig locates the dataset. Tabular files hold one row per line with the
// label in the last column. Episode files hold episode_index,O,A,R,pi rows.
type DataConfig struct {
	Path      string `mapstructure:"path" validate:"required"`
	Format    string `mapstructure:"format" validate:"oneof=tabular episodes"`
	Separator string `mapstructure:"separator" validate:"len=1"`
	HasHeader bool   `mapstructure:"has_header"`
}

type ModelConfig struct {
	Type            string    `mapstructure:"type" validate:"oneof=linear_regression logistic_regression tabular_softmax"`
	NumObservations int       `mapstructure:"num_observations" validate:"gte=0"`
	Actions         []int     `mapstructure:"actions" validate:"unique"`
	Gamma           float64   `mapstructure:"gamma" validate:"gte=0,lte=1"`
	Theta           []float64 `mapstructure:"theta"`
	Seed            int64     `mapstructure:"seed"`
}

// Options converts the configuration to model options.
func (config *ModelConfig) Options() model.Options {
	return model.Options{
		NumObservations: config.NumObservations,
		Actions:         config.Actions,
		Gamma:           config.Gamma,
	}
}

type StatisticConfig struct {
	Name    string        `mapstructure:"name" validate:"statistic"`
	Jobs    int           `mapstructure:"jobs" validate:"gt=0"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Format:    FormatTabular,
			Separator: ",",
		},
		Model: ModelConfig{
			Type:  model.LogisticRegressionName,
			Gamma: 1,
		},
		Statistic: StatisticConfig{
			Name: "Mean_Squared_Error",
			Jobs: 1,
		},
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [data]
	v.SetDefault("data.path", defaultConfig.Data.Path)
	v.SetDefault("data.format", defaultConfig.Data.Format)
	v.SetDefault("data.separator", defaultConfig.Data.Separator)
	v.SetDefault("data.has_header", defaultConfig.Data.HasHeader)
	// [model]
	v.SetDefault("model.type", defaultConfig.Model.Type)
	v.SetDefault("model.num_observations", defaultConfig.Model.NumObservations)
	v.SetDefault("model.gamma", defaultConfig.Model.Gamma)
	v.SetDefault("model.seed", defaultConfig.Model.Seed)
	// [statistic]
	v.SetDefault("statistic.name", defaultConfig.Statistic.Name)
	v.SetDefault("statistic.jobs", defaultConfig.Statistic.Jobs)
	v.SetDefault("statistic.timeout", defaultConfig.Statistic.Timeout)
}

type configBinding struct {
	key string
	env string
}

// LoadConfig loads configuration from a TOML file. Environment variables
// override the file and defaults fill whatever neither sets. An empty path
// loads defaults and environment variables only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)

	bindings := []configBinding{
		{"data.path", "SELDONIAN_DATA_PATH"},
		{"data.format", "SELDONIAN_DATA_FORMAT"},
		{"model.type", "SELDONIAN_MODEL_TYPE"},
		{"statistic.name", "SELDONIAN_STATISTIC_NAME"},
		{"statistic.jobs", "SELDONIAN_STATISTIC_JOBS"},
	}
	for _, binding := range bindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return nil, errors.Trace(err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "read config %s", path)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))); err != nil {
		return nil, errors.Trace(err)
	}
	conf.Statistic.Name = strings.TrimSpace(conf.Statistic.Name)
	return &conf, nil
}
