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

package dataset

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTabular(t *testing.T) {
	d, err := NewTabular([][]float64{{1, 2}, {3, 4}, {5, 6}}, []float64{0, 1, 0})
	assert.NoError(t, err)
	assert.Equal(t, 3, d.Count())
	assert.Equal(t, 2, d.NumFeatures())
	assert.Equal(t, []float64{0, 1, 0}, d.Labels())
	assert.Equal(t, []float64{3, 4}, d.Features()[1])

	// labels do not match rows
	_, err = NewTabular([][]float64{{1}, {2}}, []float64{1})
	assert.ErrorIs(t, err, ErrDataShapeMismatch)
	// ragged rows
	_, err = NewTabular([][]float64{{1}, {2, 3}}, []float64{1, 0})
	assert.ErrorIs(t, err, ErrDataShapeMismatch)
	assert.Contains(t, err.Error(), "row 1 has 2 features, expect 1")

	empty, err := NewTabular(nil, nil)
	assert.NoError(t, err)
	assert.Zero(t, empty.NumFeatures())
}

func TestNewEpisode(t *testing.T) {
	episode, err := NewEpisode([]float64{0, 1, 2}, []int{1, 0, 1}, []float64{1, 1, 1}, []float64{0.5, 0.5, 1})
	assert.NoError(t, err)
	assert.Equal(t, 3, episode.Len())
	assert.Equal(t, []int{1, 0, 1}, episode.Actions())

	// mismatched lengths
	_, err = NewEpisode([]float64{0, 1}, []int{1}, []float64{1, 1}, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, ErrDataShapeMismatch)
	_, err = NewEpisode([]float64{0}, []int{1}, []float64{1}, nil)
	assert.ErrorIs(t, err, ErrDataShapeMismatch)
	// probabilities out of (0, 1]
	_, err = NewEpisode([]float64{0}, []int{1}, []float64{1}, []float64{0})
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewEpisode([]float64{0}, []int{1}, []float64{1}, []float64{1.5})
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewEpisode([]float64{0}, []int{1}, []float64{1}, []float64{math.NaN()})
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestConstructorsCopyInput(t *testing.T) {
	features := [][]float64{{1, 2}, {3, 4}}
	labels := []float64{0, 1}
	d, err := NewTabular(features, labels)
	require.NoError(t, err)
	features[0][0] = 100
	features[1] = []float64{7, 7}
	labels[1] = 5
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, d.Features())
	assert.Equal(t, []float64{0, 1}, d.Labels())

	states, actions := []float64{0, 1}, []int{1, 0}
	rewards, pis := []float64{1, 2}, []float64{0.5, 0.5}
	episode, err := NewEpisode(states, actions, rewards, pis)
	require.NoError(t, err)
	states[0], actions[0], rewards[0], pis[0] = 9, 9, 9, 0.1
	assert.Equal(t, []float64{0, 1}, episode.States())
	assert.Equal(t, []int{1, 0}, episode.Actions())
	assert.Equal(t, []float64{1, 2}, episode.Rewards())
	assert.Equal(t, []float64{0.5, 0.5}, episode.Pis())

	episodes := []*Episode{episode}
	episodic := NewEpisodic(episodes)
	episodes[0] = nil
	assert.Same(t, episode, episodic.Episodes()[0])
}

func TestEpisode_DiscountedReturn(t *testing.T) {
	episode, err := NewEpisode([]float64{0, 0, 0}, []int{0, 0, 0}, []float64{1, 2, 4}, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 7.0, episode.DiscountedReturn(1))
	assert.Equal(t, 1+2*0.5+4*0.25, episode.DiscountedReturn(0.5))
	assert.Equal(t, 1.0, episode.DiscountedReturn(0))
}

func TestEpisodic(t *testing.T) {
	a, _ := NewEpisode([]float64{0, 1}, []int{0, 1}, []float64{0, 1}, []float64{0.5, 0.5})
	b, _ := NewEpisode([]float64{2}, []int{1}, []float64{1}, []float64{0.5})
	d := NewEpisodic([]*Episode{a, b})
	assert.Equal(t, 2, d.Count())
	assert.Equal(t, 3, d.CountSteps())
	assert.Same(t, b, d.Episodes()[1])
}

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTabularCSV(t *testing.T) {
	path := writeFile(t, "x1,x2,y\n1,2,0\n3,4,1\n\n5,6,1\n")
	d, err := LoadTabularCSV(path, ",", true)
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, d.Features())
	assert.Equal(t, []float64{0, 1, 1}, d.Labels())

	// bad number
	path = writeFile(t, "1,2,0\n3,x,1\n")
	_, err = LoadTabularCSV(path, ",", false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	// ragged rows
	path = writeFile(t, "1,2,0\n3,1\n")
	_, err = LoadTabularCSV(path, ",", false)
	assert.ErrorIs(t, err, ErrDataShapeMismatch)
	// missing file
	_, err = LoadTabularCSV(filepath.Join(t.TempDir(), "missing.csv"), ",", false)
	assert.Error(t, err)
}

func TestLoadEpisodesCSV(t *testing.T) {
	path := writeFile(t, "episode_index,O,A,R,pi\n"+
		"0,0,1,0,0.25\n"+
		"0,3,2,1,0.5\n"+
		"1,0,0,-1,1\n")
	d, err := LoadEpisodesCSV(path, ",", true)
	assert.NoError(t, err)
	assert.Equal(t, 2, d.Count())
	first := d.Episodes()[0]
	assert.Equal(t, []float64{0, 3}, first.States())
	assert.Equal(t, []int{1, 2}, first.Actions())
	assert.Equal(t, []float64{0, 1}, first.Rewards())
	assert.Equal(t, []float64{0.25, 0.5}, first.Pis())
	assert.Equal(t, []float64{-1}, d.Episodes()[1].Rewards())

	// episode rows are not contiguous
	path = writeFile(t, "0,0,1,0,0.25\n1,0,1,0,0.25\n0,0,1,0,0.25\n")
	_, err = LoadEpisodesCSV(path, ",", false)
	assert.True(t, errors.Is(err, errors.NotValid))
	// wrong number of columns
	path = writeFile(t, "0,0,1,0\n")
	_, err = LoadEpisodesCSV(path, ",", false)
	assert.True(t, errors.Is(err, errors.NotValid))
	// invalid behavior probability
	path = writeFile(t, "0,0,1,0,0\n")
	_, err = LoadEpisodesCSV(path, ",", false)
	assert.True(t, errors.Is(err, errors.NotValid))
	// action is not an integer
	path = writeFile(t, "0,0,1.5,0,0.5\n")
	_, err = LoadEpisodesCSV(path, ",", false)
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	text := "1,\"a,b\",\"say \"\"hi\"\"\"\n2,\"multi\nline\",x\n"
	var lines [][]string
	err := readLines(bufio.NewScanner(strings.NewReader(text)), ",", func(_ int, fields []string) bool {
		lines = append(lines, fields)
		return true
	})
	assert.NoError(t, err)
	assert.Equal(t, [][]string{
		{"1", "a,b", "say \"hi\""},
		{"2", "multi\r\nline", "x"},
	}, lines)

	// stop early
	count := 0
	err = readLines(bufio.NewScanner(strings.NewReader("1\n2\n3\n")), ",", func(_ int, _ []string) bool {
		count++
		return count < 2
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
