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

package statistic

import (
	"fmt"

	"github.com/juju/errors"
)

// ErrUnsupportedStatistic is the kind of errors caused by a statistic name
// outside the catalog.
const ErrUnsupportedStatistic = errors.ConstError("unsupported statistic")

// UnsupportedStatisticError names the statistic that could not be resolved.
type UnsupportedStatisticError struct {
	Name string
}

func (e *UnsupportedStatisticError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedStatistic, e.Name)
}

func (e *UnsupportedStatisticError) Unwrap() error {
	return ErrUnsupportedStatistic
}

// Kind is a statistic in the catalog.
type Kind int

const (
	MeanSquaredError Kind = iota
	MeanError
	PositiveRate
	NegativeRate
	FalsePositiveRate
	FalseNegativeRate
	TruePositiveRate
	TrueNegativeRate
	LogisticLoss
	ImportanceSampling
	numKinds
)

var kindNames = [numKinds]string{
	MeanSquaredError:   "Mean_Squared_Error",
	MeanError:          "Mean_Error",
	PositiveRate:       "PR",
	NegativeRate:       "NR",
	FalsePositiveRate:  "FPR",
	FalseNegativeRate:  "FNR",
	TruePositiveRate:   "TPR",
	TrueNegativeRate:   "TNR",
	LogisticLoss:       "logistic_loss",
	ImportanceSampling: "J_pi_new",
}

var kindIndex = func() map[string]Kind {
	index := make(map[string]Kind, numKinds)
	for kind, name := range kindNames {
		index[name] = Kind(kind)
	}
	return index
}()

// ParseKind resolves a statistic name. Names are case-sensitive.
func ParseKind(name string) (Kind, error) {
	kind, exist := kindIndex[name]
	if !exist {
		return 0, &UnsupportedStatisticError{Name: name}
	}
	return kind, nil
}

// Kinds returns every statistic in catalog order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Episodic reports whether the statistic is computed over episodes rather
// than rows.
func (k Kind) Episodic() bool {
	return k == ImportanceSampling
}
