package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/vippsas/codefmt/lex"
	"github.com/vippsas/codefmt/options"
	"github.com/vippsas/codefmt/rules"
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// runFormat runs the rule pipeline (or, if only is non-empty, just those
// named rules) over src, at this file-task boundary recovering a rule
// that panics so one pathological file cannot take down a batch run
// across many files. A recovered panic is reported through the same
// logrus error path as any other per-file failure, with structured
// file/rule/error fields, and ok is false.
func runFormat(path, src string, opts options.Options, only []string) (out string, ok bool) {
	f := state.New(lex.Tokenize(src), opts)
	rule, recovered := runPipelineRecovered(f, only)
	if recovered != nil {
		log.WithFields(logrus.Fields{
			"file":  path,
			"rule":  rule,
			"error": recovered,
		}).Error("rule panicked")
		return "", false
	}
	return token.Untokenize(f.Tokens()), true
}

// runPipelineRecovered runs rules.Pipeline (or the named subset) over f
// one stage at a time, so a recovered panic can be attributed to the
// stage that caused it. rule is left at "" on a clean run, or set to the
// name of the panicking stage when recovered is non-nil.
func runPipelineRecovered(f *state.Formatter, only []string) (rule string, recovered any) {
	defer func() {
		if r := recover(); r != nil {
			recovered = r
		}
	}()

	var want map[string]bool
	if len(only) > 0 {
		want = make(map[string]bool, len(only))
		for _, n := range only {
			want[n] = true
		}
	}

	for _, n := range rules.Pipeline {
		if want != nil && !want[n.Name] {
			continue
		}
		rule = n.Name
		n.Rule(f)
	}
	rule = ""
	return
}
