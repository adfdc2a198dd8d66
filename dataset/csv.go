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
	"os"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// LoadTabularCSV loads a tabular dataset from a csv file. Every column but the last
// is a feature and the last column is the label.
//
//	x1,x2,y
//	0.5,1.2,1
//	0.1,3.4,0
func LoadTabularCSV(path, sep string, hasHeader bool) (*Tabular, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	var (
		features [][]float64
		labels   []float64
		parseErr error
	)
	err = readLines(bufio.NewScanner(file), sep, func(lineNumber int, fields []string) bool {
		if hasHeader && lineNumber == 0 {
			return true
		}
		// ignore empty line
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			return true
		}
		if len(fields) < 2 {
			parseErr = errors.NotValidf("line %d has %d columns", lineNumber+1, len(fields))
			return false
		}
		values, err := parseFloats(fields)
		if err != nil {
			parseErr = errors.Annotatef(err, "line %d", lineNumber+1)
			return false
		}
		features = append(features, values[:len(values)-1])
		labels = append(labels, values[len(values)-1])
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return NewTabular(features, labels)
}

// LoadEpisodesCSV loads episodes from a csv file with columns
//
//	episode_index,O,A,R,pi
//
// Rows of one episode must be contiguous. Episodes keep the order in which their
// first row appears.
func LoadEpisodesCSV(path, sep string, hasHeader bool) (*Episodic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	type rows struct {
		states  []float64
		actions []int
		rewards []float64
		pis     []float64
	}
	var (
		episodes []*rows
		seen     = make(map[string]struct{})
		current  string
		parseErr error
	)
	err = readLines(bufio.NewScanner(file), sep, func(lineNumber int, fields []string) bool {
		if hasHeader && lineNumber == 0 {
			return true
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			return true
		}
		if len(fields) != 5 {
			parseErr = errors.NotValidf("line %d has %d columns, expect 5", lineNumber+1, len(fields))
			return false
		}
		index := strings.TrimSpace(fields[0])
		if len(episodes) == 0 || index != current {
			if _, exist := seen[index]; exist {
				parseErr = errors.NotValidf("rows of episode %s at line %d are not contiguous", index, lineNumber+1)
				return false
			}
			seen[index] = struct{}{}
			current = index
			episodes = append(episodes, &rows{})
		}
		action, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			parseErr = errors.Annotatef(err, "line %d", lineNumber+1)
			return false
		}
		values, err := parseFloats([]string{fields[1], fields[3], fields[4]})
		if err != nil {
			parseErr = errors.Annotatef(err, "line %d", lineNumber+1)
			return false
		}
		episode := episodes[len(episodes)-1]
		episode.states = append(episode.states, values[0])
		episode.actions = append(episode.actions, action)
		episode.rewards = append(episode.rewards, values[1])
		episode.pis = append(episode.pis, values[2])
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if parseErr != nil {
		return nil, parseErr
	}
	result := make([]*Episode, len(episodes))
	for i, r := range episodes {
		if result[i], err = NewEpisode(r.states, r.actions, r.rewards, r.pis); err != nil {
			return nil, errors.Annotatef(err, "episode %d", i)
		}
	}
	return NewEpisodic(result), nil
}

func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Trace(err)
		}
		values[i] = value
	}
	return values, nil
}

// readLines parses fields of each line of a csv file. Quoted fields may contain the
// separator, escaped quotes ("") and line breaks. handler returns false to stop.
func readLines(sc *bufio.Scanner, sep string, handler func(int, []string) bool) error {
	lineCount := 0               // line number of current position
	fields := make([]string, 0)  // fields for current line
	builder := strings.Builder{} // string builder for current field
	quoted := false              // whether current position in quote
	for sc.Scan() {
		line := []rune(sc.Text())
		if quoted {
			builder.WriteString("\r\n")
		}
		for i := 0; i < len(line); i++ {
			if string(line[i]) == sep && !quoted {
				// end of field
				fields = append(fields, builder.String())
				builder.Reset()
			} else if line[i] == '"' {
				if quoted {
					if i+1 >= len(line) || line[i+1] != '"' {
						quoted = false
					} else {
						i++
						builder.WriteRune('"')
					}
				} else {
					quoted = true
				}
			} else {
				builder.WriteRune(line[i])
			}
		}
		if !quoted {
			fields = append(fields, builder.String())
			builder.Reset()
			if !handler(lineCount, lo.Map(fields, func(field string, _ int) string {
				return strings.TrimSuffix(field, "\r")
			})) {
				return nil
			}
			fields = []string{}
		}
		lineCount++
	}
	return sc.Err()
}
