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
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, text string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func writeTabular(t *testing.T) string {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", "1,2,1\n3,4,0\n5,6,1\n")
	return writeFile(t, dir, "config.toml", `
[data]
path = "`+data+`"

[model]
type = "logistic_regression"
seed = 7

[statistic]
name = "Mean_Squared_Error"
`)
}

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addEvaluationFlags(flagSet)
	require.NoError(t, flagSet.Parse(args))
	return flagSet
}

func TestNewEvaluation_Overrides(t *testing.T) {
	e, err := newEvaluation(parseFlags(t, "-c", writeTabular(t),
		"--statistic", "PR", "--theta", "0,0,0", "-j", "2"))
	require.NoError(t, err)
	assert.Equal(t, "PR", e.config.Statistic.Name)
	assert.Equal(t, 2, e.config.Statistic.Jobs)
	assert.Equal(t, []float64{0, 0, 0}, e.theta)
	assert.Equal(t, 3, e.data.Count())

	var buf bytes.Buffer
	require.NoError(t, e.evaluate(&buf))
	assert.Contains(t, buf.String(), "logistic_regression")
	assert.Contains(t, buf.String(), "0.5")

	buf.Reset()
	require.NoError(t, e.sample(&buf))
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("0.5")))
}

func TestNewEvaluation_RandomTheta(t *testing.T) {
	path := writeTabular(t)
	e, err := newEvaluation(parseFlags(t, "-c", path))
	require.NoError(t, err)
	assert.Equal(t, "Mean_Squared_Error", e.config.Statistic.Name)
	assert.Equal(t, 1, e.config.Statistic.Jobs)
	// two features and an intercept
	assert.Len(t, e.theta, 3)
	assert.NotEqual(t, []float64{0, 0, 0}, e.theta)

	// seeded from the config
	other, err := newEvaluation(parseFlags(t, "-c", path))
	require.NoError(t, err)
	assert.Equal(t, e.theta, other.theta)
}

func TestNewEvaluation_Episodes(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "episodes.csv", "episode_index,O,A,R,pi\n"+
		"0,0,1,1,0.5\n"+
		"0,1,0,0,0.5\n"+
		"1,1,1,2,0.5\n")
	path := writeFile(t, dir, "config.toml", `
[data]
path = "`+data+`"
format = "episodes"
has_header = true

[model]
type = "tabular_softmax"
num_observations = 2
actions = [0, 1]

[statistic]
name = "J_pi_new"
`)
	e, err := newEvaluation(parseFlags(t, "-c", path, "--theta", "0,0,0,0"))
	require.NoError(t, err)
	assert.Equal(t, 2, e.data.Count())

	var buf bytes.Buffer
	require.NoError(t, e.sample(&buf))
	assert.Contains(t, buf.String(), formatFloat(1))
	assert.Contains(t, buf.String(), formatFloat(2))

	buf.Reset()
	require.NoError(t, e.evaluate(&buf))
	assert.Contains(t, buf.String(), strconv.FormatFloat(1.5, 'g', -1, 64))

	// random parameters cover every observation and action
	e, err = newEvaluation(parseFlags(t, "-c", path))
	require.NoError(t, err)
	assert.Len(t, e.theta, 4)
}

func TestNewEvaluation_Invalid(t *testing.T) {
	path := writeTabular(t)
	// episodic statistic on tabular data
	_, err := newEvaluation(parseFlags(t, "-c", path, "--statistic", "J_pi_new"))
	assert.Error(t, err)
	_, err = newEvaluation(parseFlags(t, "-c", path, "--statistic", "Unknown"))
	assert.Error(t, err)
	_, err = newEvaluation(parseFlags(t, "-c", path, "-j", "0"))
	assert.Error(t, err)
	_, err = newEvaluation(parseFlags(t, "-c", filepath.Join(t.TempDir(), "missing.toml")))
	assert.Error(t, err)

	// wrong number of parameters surfaces at evaluation
	e, err := newEvaluation(parseFlags(t, "-c", path, "--theta", "0,0"))
	require.NoError(t, err)
	assert.Error(t, e.evaluate(&bytes.Buffer{}))
}
