// Package lint is the rule engine: an immutable rule catalogue, profile
// resolution and a single evaluator that turns the project model into issues.
//
// # Rule Catalogue
//
// Rules are data. Each RuleDef carries its id, category, default severity and
// default options; the evaluator switches on the id. Adding a rule means adding
// a catalogue entry and a case in the evaluator.
//
//	for _, def := range lint.RulesFor(core.CategoryComponent) {
//		fmt.Println(def.ID, def.Severity)
//	}
//
// # Profiles
//
// A Profile maps rule ids to settings. Resolve combines a profile with the
// catalogue: every rule the profile does not mention runs with its defaults,
// disabled rules are dropped, and unknown rule ids or malformed options are
// reported as core.ConfigError.
//
//	rules, err := lint.Resolve(lint.BuiltinProfiles()["recommended"], lint.Overrides{MaxComplexity: 12})
//
// # Evaluation
//
// Evaluate runs resolved rules against a read-only Context. A rule that panics
// is isolated: its issues are discarded and a rule warning is returned instead.
package lint
