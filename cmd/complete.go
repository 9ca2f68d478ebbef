package cmd

import (
	"context"
	"flag"
	"io"
	"log"
	"strings"

	"github.com/etnz/inventory/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var periods = predict.Set{"day", "week", "month", "quarter", "year"}

// flagPredictors are the predictors of the subcommand flags, by command
// and flag name. Flags not listed complete to nothing.
var flagPredictors = map[string]map[string]complete.Predictor{
	"add":      {"c": complete.PredictFunc(predictCategories)},
	"update":   {"c": complete.PredictFunc(predictCategories)},
	"products": {"c": complete.PredictFunc(predictCategories)},
	"invoices": {"p": periods},
	"report": {
		"t": predict.Set{"inventory", "sales", "financial"},
		"p": append(periods, "all"),
	},
	"import": {"f": predict.Files("*.csv")},
	"export": {"f": predict.Files("*")},
	"invoice": {"o": predict.Files("*.txt")},
}

// Completion returns the shell completion of the inv command line.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		root.Flags[f.Name] = predict.Set{}
	})
	root.Flags["store"] = predict.Files("*")
	root.Flags["config"] = predict.Files("*.yaml")

	for _, e := range Commands {
		name := e.Command.Name()
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		e.Command.SetFlags(fs)

		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) {
			if p, ok := flagPredictors[name][f.Name]; ok {
				sub.Flags[f.Name] = p
				return
			}
			sub.Flags[f.Name] = predict.Set{}
		})
		if name == "topic" {
			sub.Args = complete.PredictFunc(predictTopics)
		}
		root.Sub[name] = sub
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return filterPrefix(topics, prefix)
}

// predictCategories completes with the categories of the configured store.
func predictCategories(prefix string) []string {
	if err := Setup(); err != nil {
		return nil
	}
	l, err := OpenLedger(context.Background())
	if err != nil {
		log.Printf("completion error=%q", err)
		return nil
	}
	defer l.Close()
	return filterPrefix(l.Categories(), prefix)
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
