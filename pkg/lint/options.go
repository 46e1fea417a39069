package lint

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Typed rule parameters. Each rule's options map is decoded into one of these
// at resolve time so malformed options fail before any analysis runs.
type (
	// NoParams is used by rules without options.
	NoParams struct{}

	// ComplexityParams bounds the component complexity score.
	ComplexityParams struct {
		MaxComplexity int `mapstructure:"max_complexity" validate:"gte=0"`
	}

	// InputsParams bounds component inputs.
	InputsParams struct {
		MaxInputs int `mapstructure:"max_inputs" validate:"gte=0"`
	}

	// OutputsParams bounds component outputs.
	OutputsParams struct {
		MaxOutputs int `mapstructure:"max_outputs" validate:"gte=0"`
	}

	// TemplateSizeParams bounds inline template length in characters.
	TemplateSizeParams struct {
		MaxChars int `mapstructure:"max_chars" validate:"gte=0"`
	}

	// ChainParams bounds dependency chain length in edges.
	ChainParams struct {
		MaxDepth int `mapstructure:"max_depth" validate:"gte=0"`
	}

	// StateParams configures the shared-state heuristic.
	StateParams struct {
		MinMutableFields int `mapstructure:"min_mutable_fields" validate:"gte=1"`
		MinComponents    int `mapstructure:"min_components" validate:"gte=1"`
	}

	// ThresholdParams is a lower complexity threshold.
	ThresholdParams struct {
		Threshold int `mapstructure:"threshold" validate:"gte=0"`
	}

	// LazyLoadingParams configures the lazy-loading heuristic.
	LazyLoadingParams struct {
		ComponentThreshold int `mapstructure:"component_threshold" validate:"gte=0"`
	}

	// FeatureModuleParams configures the selector-prefix cohesion heuristic.
	FeatureModuleParams struct {
		MinSelectors   int     `mapstructure:"min_selectors" validate:"gte=1"`
		MaxPrefixRatio float64 `mapstructure:"max_prefix_ratio" validate:"gte=0,lte=1"`
	}

	// BindingsParams bounds inputs plus outputs of a component.
	BindingsParams struct {
		MaxBindings int `mapstructure:"max_bindings" validate:"gte=0"`
	}

	// StylesheetParams bounds styleUrls per component.
	StylesheetParams struct {
		MaxStylesheets int `mapstructure:"max_stylesheets" validate:"gte=0"`
	}
)

var validate = validator.New()

// newParams returns a pointer to the zero parameter struct for a rule.
func newParams(id string) any {
	switch id {
	case RuleComponentComplexity, RuleComplexStateComponents:
		return &ComplexityParams{}
	case RuleTooManyInputs:
		return &InputsParams{}
	case RuleTooManyOutputs:
		return &OutputsParams{}
	case RuleInlineTemplateTooLarge:
		return &TemplateSizeParams{}
	case RuleDeepDependencyChain:
		return &ChainParams{}
	case RuleConsiderStateManagement:
		return &StateParams{}
	case RuleHighDefaultChangeDetection:
		return &ThresholdParams{}
	case RuleConsiderLazyLoading:
		return &LazyLoadingParams{}
	case RuleFeatureModuleOrganization:
		return &FeatureModuleParams{}
	case RuleExcessiveBindings:
		return &BindingsParams{}
	case RuleTooManyStylesheets:
		return &StylesheetParams{}
	default:
		return &NoParams{}
	}
}

// DecodeParams decodes an options map into the rule's parameter struct.
// Unknown keys, wrong types and out-of-range values are errors.
func DecodeParams(id string, opts map[string]any) (any, error) {
	params := newParams(id)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           params,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(opts); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidOption, id, err)
	}
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidOption, id, err)
	}
	return params, nil
}
