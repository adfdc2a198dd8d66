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
	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/seldonian-go/engine/model"
	"github.com/seldonian-go/engine/statistic"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation("statistic", func(fl validator.FieldLevel) bool {
		_, err := statistic.ParseKind(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return validate
}

// Validate checks field constraints and the consistency between the data, the
// model and the statistic.
func (config *Config) Validate() error {
	if err := newValidator().Struct(config); err != nil {
		return errors.Trace(err)
	}
	kind, err := statistic.ParseKind(config.Statistic.Name)
	if err != nil {
		return errors.Trace(err)
	}
	if kind.Episodic() != (config.Data.Format == FormatEpisodes) {
		return errors.NotValidf("statistic %v on %s data", kind, config.Data.Format)
	}
	if kind.Episodic() != (config.Model.Type == model.TabularSoftmaxName) {
		return errors.NotValidf("statistic %v of model %s", kind, config.Model.Type)
	}
	if config.Model.Type == model.TabularSoftmaxName {
		if config.Model.NumObservations <= 0 {
			return errors.NotValidf("%s with %d observations", config.Model.Type, config.Model.NumObservations)
		}
		if len(config.Model.Actions) == 0 {
			return errors.NotValidf("%s without actions", config.Model.Type)
		}
	}
	return nil
}
