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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[data]
path = "episodes.csv"
format = "episodes"
has_header = true

[model]
type = "tabular_softmax"
num_observations = 18
actions = [0, 1, 2, 3]
gamma = 0.9
theta = [0.5, 1]
seed = 7

[statistic]
name = "J_pi_new"
jobs = 4
timeout = "30s"
`)
	config, err := LoadConfig(path)
	assert.NoError(t, err)
	// [data]
	assert.Equal(t, "episodes.csv", config.Data.Path)
	assert.Equal(t, FormatEpisodes, config.Data.Format)
	assert.Equal(t, ",", config.Data.Separator)
	assert.True(t, config.Data.HasHeader)
	// [model]
	assert.Equal(t, "tabular_softmax", config.Model.Type)
	assert.Equal(t, 18, config.Model.NumObservations)
	assert.Equal(t, []int{0, 1, 2, 3}, config.Model.Actions)
	assert.Equal(t, 0.9, config.Model.Gamma)
	assert.Equal(t, []float64{0.5, 1}, config.Model.Theta)
	assert.Equal(t, int64(7), config.Model.Seed)
	// [statistic]
	assert.Equal(t, "J_pi_new", config.Statistic.Name)
	assert.Equal(t, 4, config.Statistic.Jobs)
	assert.Equal(t, 30*time.Second, config.Statistic.Timeout)
	assert.NoError(t, config.Validate())

	options := config.Model.Options()
	assert.Equal(t, 18, options.NumObservations)
	assert.Equal(t, []int{0, 1, 2, 3}, options.Actions)
	assert.Equal(t, 0.9, options.Gamma)
}

func TestLoadConfig_Default(t *testing.T) {
	config, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), config)

	config, err = LoadConfig(writeConfig(t, "[data]\npath = \"data.csv\"\n"))
	assert.NoError(t, err)
	assert.Equal(t, "data.csv", config.Data.Path)
	assert.Equal(t, GetDefaultConfig().Model, config.Model)
	assert.Equal(t, GetDefaultConfig().Statistic, config.Statistic)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SELDONIAN_DATA_PATH", "env.csv")
	t.Setenv("SELDONIAN_DATA_FORMAT", "episodes")
	t.Setenv("SELDONIAN_MODEL_TYPE", "tabular_softmax")
	t.Setenv("SELDONIAN_STATISTIC_NAME", "J_pi_new")
	t.Setenv("SELDONIAN_STATISTIC_JOBS", "8")
	config, err := LoadConfig(writeConfig(t, `
[data]
path = "file.csv"

[statistic]
name = "FPR"
jobs = 2
`))
	assert.NoError(t, err)
	assert.Equal(t, "env.csv", config.Data.Path)
	assert.Equal(t, FormatEpisodes, config.Data.Format)
	assert.Equal(t, "tabular_softmax", config.Model.Type)
	assert.Equal(t, "J_pi_new", config.Statistic.Name)
	assert.Equal(t, 8, config.Statistic.Jobs)
}
