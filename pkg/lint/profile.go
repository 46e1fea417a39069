package lint

import (
	"fmt"
	"maps"
	"sort"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Built-in profile names.
const (
	ProfileStrict      = "strict"
	ProfileRecommended = "recommended"
	ProfileRelaxed     = "relaxed"
)

// RuleSetting configures one rule within a profile. Zero fields inherit the
// rule's defaults.
type RuleSetting struct {
	Enabled  *bool          `koanf:"enabled" yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Severity string         `koanf:"severity" yaml:"severity,omitempty" json:"severity,omitempty"`
	Options  map[string]any `koanf:"options" yaml:"options,omitempty" json:"options,omitempty"`
}

// Profile is a named bundle of rule settings.
type Profile struct {
	Name  string                 `koanf:"-" yaml:"-" json:"name"`
	Rules map[string]RuleSetting `koanf:"rules" yaml:"rules" json:"rules"`
}

// Overrides are command-line thresholds applied after profile resolution to
// every rule that declares the option. Zero leaves the profile value alone;
// a zero threshold would flag every component or every injection.
type Overrides struct {
	MaxComplexity int
	MaxDepth      int
}

func on(severity string, opts map[string]any) RuleSetting {
	enabled := true
	return RuleSetting{Enabled: &enabled, Severity: severity, Options: opts}
}

func off() RuleSetting {
	enabled := false
	return RuleSetting{Enabled: &enabled}
}

// BuiltinProfiles returns fresh copies of the strict, recommended and relaxed
// profiles.
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileStrict: {
			Name: ProfileStrict,
			Rules: map[string]RuleSetting{
				RuleComponentComplexity:     on("error", map[string]any{OptMaxComplexity: 8}),
				RuleChangeDetectionStrategy: on("warning", nil),
				RuleTooManyInputs:           on("error", map[string]any{"max_inputs": 6}),
				RuleMissingCleanupPattern:   on("error", nil),
				RuleCircularDependency:      on("error", nil),
				RuleMissingTemplate:         on("error", nil),
			},
		},
		ProfileRecommended: {
			Name: ProfileRecommended,
			Rules: map[string]RuleSetting{
				RuleComponentComplexity:     on("warning", map[string]any{OptMaxComplexity: 10}),
				RuleChangeDetectionStrategy: on("info", nil),
				RuleTooManyInputs:           on("warning", map[string]any{"max_inputs": 8}),
				RuleTooManyOutputs:          on("warning", map[string]any{"max_outputs": 5}),
				RuleMissingCleanupPattern:   on("warning", nil),
				RuleCircularDependency:      on("error", nil),
			},
		},
		ProfileRelaxed: {
			Name: ProfileRelaxed,
			Rules: map[string]RuleSetting{
				RuleComponentComplexity:        on("info", map[string]any{OptMaxComplexity: 15}),
				RuleChangeDetectionStrategy:    off(),
				RuleCircularDependency:         on("warning", nil),
				RuleInlineTemplateTooLarge:     off(),
				RuleUnusedDependency:           off(),
				RuleDeepDependencyChain:        off(),
				RuleConsiderStateManagement:    off(),
				RuleComplexStateComponents:     off(),
				RuleHighDefaultChangeDetection: off(),
				RuleConsiderLazyLoading:        off(),
				RuleFeatureModuleOrganization:  off(),
			},
		},
	}
}

// MergeProfiles overlays user profiles on base profiles by name. Within a
// profile, each overlay rule setting replaces the fields it sets.
func MergeProfiles(base, overlay map[string]Profile) map[string]Profile {
	out := make(map[string]Profile, len(base)+len(overlay))
	for name, p := range base {
		p.Name = name
		p.Rules = maps.Clone(p.Rules)
		out[name] = p
	}
	for name, p := range overlay {
		merged, ok := out[name]
		if !ok {
			merged = Profile{Name: name, Rules: map[string]RuleSetting{}}
		}
		if merged.Rules == nil {
			merged.Rules = map[string]RuleSetting{}
		}
		for id, setting := range p.Rules {
			cur := merged.Rules[id]
			if setting.Enabled != nil {
				cur.Enabled = setting.Enabled
			}
			if setting.Severity != "" {
				cur.Severity = setting.Severity
			}
			if len(setting.Options) > 0 {
				opts := maps.Clone(cur.Options)
				if opts == nil {
					opts = map[string]any{}
				}
				maps.Copy(opts, setting.Options)
				cur.Options = opts
			}
			merged.Rules[id] = cur
		}
		out[name] = merged
	}
	return out
}

// SelectProfile returns the named profile or a ConfigError.
func SelectProfile(profiles map[string]Profile, name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, core.NewConfigError("profile", fmt.Errorf("%w: %q", core.ErrUnknownProfile, name))
	}
	p.Name = name
	return p, nil
}

// ValidateProfile checks every setting of a profile against the catalogue:
// the rule id must exist, the severity must parse and the options merged
// over the rule defaults must decode. Disabled rules are checked too.
func ValidateProfile(profile Profile) error {
	ids := make([]string, 0, len(profile.Rules))
	for id := range profile.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		def, ok := Lookup(id)
		if !ok {
			return core.NewConfigError(settingPath(profile.Name, id), fmt.Errorf("%w: %q", core.ErrUnknownRule, id))
		}
		setting := profile.Rules[id]
		if setting.Severity != "" {
			if _, ok := core.ParseSeverity(setting.Severity); !ok {
				return core.NewConfigError(settingPath(profile.Name, id),
					fmt.Errorf("%w: severity %q", core.ErrInvalidOption, setting.Severity))
			}
		}
		opts := maps.Clone(def.Defaults)
		if opts == nil {
			opts = map[string]any{}
		}
		maps.Copy(opts, setting.Options)
		if _, err := DecodeParams(id, opts); err != nil {
			return core.NewConfigError(settingPath(profile.Name, id), err)
		}
	}
	return nil
}

// ResolvedRule is a rule with its effective severity and decoded options.
type ResolvedRule struct {
	RuleDef
	Severity core.Severity
	Options  map[string]any
	// Params is a pointer to the rule's typed parameter struct.
	Params any
}

// RuleSet is the outcome of resolving a profile. It is never mutated after
// Resolve returns and may be shared across goroutines.
type RuleSet struct {
	Profile  string
	rules    []ResolvedRule
	disabled []string
}

// Resolve combines a profile with the catalogue. Rules the profile does not
// mention run with default severity and options.
func Resolve(profile Profile, ov Overrides) (*RuleSet, error) {
	ids := make([]string, 0, len(profile.Rules))
	for id := range profile.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := Lookup(id); !ok {
			return nil, core.NewConfigError(settingPath(profile.Name, id), fmt.Errorf("%w: %q", core.ErrUnknownRule, id))
		}
	}

	set := &RuleSet{Profile: profile.Name}
	for _, def := range Rules() {
		setting := profile.Rules[def.ID]
		if setting.Enabled != nil && !*setting.Enabled {
			set.disabled = append(set.disabled, def.ID)
			continue
		}

		severity := def.Severity
		if setting.Severity != "" {
			parsed, ok := core.ParseSeverity(setting.Severity)
			if !ok {
				return nil, core.NewConfigError(settingPath(profile.Name, def.ID),
					fmt.Errorf("%w: severity %q", core.ErrInvalidOption, setting.Severity))
			}
			severity = parsed
		}

		opts := maps.Clone(def.Defaults)
		if opts == nil {
			opts = map[string]any{}
		}
		maps.Copy(opts, setting.Options)
		applyOverrides(def, opts, ov)

		params, err := DecodeParams(def.ID, opts)
		if err != nil {
			return nil, core.NewConfigError(settingPath(profile.Name, def.ID), err)
		}

		set.rules = append(set.rules, ResolvedRule{RuleDef: def, Severity: severity, Options: opts, Params: params})
	}
	return set, nil
}

func applyOverrides(def RuleDef, opts map[string]any, ov Overrides) {
	if _, ok := def.Defaults[OptMaxComplexity]; ok && ov.MaxComplexity > 0 {
		opts[OptMaxComplexity] = ov.MaxComplexity
	}
	if _, ok := def.Defaults[OptMaxDepth]; ok && ov.MaxDepth > 0 {
		opts[OptMaxDepth] = ov.MaxDepth
	}
}

func settingPath(profile, id string) string {
	return fmt.Sprintf("profiles.%s.rules.%s", profile, id)
}

// Rules returns the enabled rules in catalogue order.
func (s *RuleSet) Rules() []ResolvedRule {
	return s.rules
}

// ForCategory returns the enabled rules of one category in declaration order.
func (s *RuleSet) ForCategory(cat core.Category) []ResolvedRule {
	var out []ResolvedRule
	for _, r := range s.rules {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}

// Rule returns an enabled rule by id.
func (s *RuleSet) Rule(id string) (ResolvedRule, bool) {
	for _, r := range s.rules {
		if r.ID == id {
			return r, true
		}
	}
	return ResolvedRule{}, false
}

// Disabled returns the ids of rules the profile turned off.
func (s *RuleSet) Disabled() []string {
	return s.disabled
}
