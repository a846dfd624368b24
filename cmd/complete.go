package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/cgt/docs"
)

// Complete installs shell completion for the cgtcalc binary. It must run
// before flag parsing: when invoked by the shell's completion machinery it
// prints the candidates and exits the process.
func Complete() {
	topics, _ := docs.GetAllTopics()

	shared := map[string]complete.Predictor{
		"f":      predict.Files("*.csv"),
		"config": predict.Files("*.toml"),
		"v":      predict.Nothing,
	}

	cmd := &complete.Command{
		Flags: shared,
		Sub: map[string]*complete.Command{
			"report": {Flags: map[string]complete.Predictor{
				"loss": predict.Something,
				"json": predict.Nothing,
				"o":    predict.Files("*.json"),
			}},
			"disposals": {Flags: map[string]complete.Predictor{
				"year":     predict.Something,
				"security": predict.Something,
				"detail":   predict.Nothing,
			}},
			"query": {Flags: map[string]complete.Predictor{
				"loss": predict.Something,
			}},
			"topic":  {Args: predict.Set(topics)},
			"assist": {},
		},
	}
	cmd.Complete("cgtcalc")
}
