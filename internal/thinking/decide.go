package thinking

// resolver is one precedence level: applies reports whether the level has an opinion,
// verdict returns the reasoning state when it does.
type resolver struct {
	source  Source
	applies func(Input) bool
	verdict func(Input) bool
}

// resolvers are evaluated in order; the first applicable one decides reasoning.
var resolvers = []resolver{
	{
		source:  SourceForcePermanent,
		applies: func(in Input) bool { return in.ForcePermanent },
		verdict: func(Input) bool { return true },
	},
	{
		source:  SourceUltrathink,
		applies: func(in Input) bool { return ContainsTrigger(in.Text) },
		verdict: func(Input) bool { return true },
	},
	{
		source:  SourceUserTags,
		applies: func(in Input) bool { return in.Tags.Thinking != nil },
		verdict: func(in Input) bool { return *in.Tags.Thinking },
	},
	{
		source:  SourceGlobalOverride,
		applies: func(in Input) bool { return in.OverrideReasoning != nil },
		verdict: func(in Input) bool { return *in.OverrideReasoning },
	},
	{
		source:  SourceModelConfig,
		applies: func(in Input) bool { return in.ProfileReasoning || in.RequestReasoning == nil },
		verdict: func(in Input) bool {
			if in.RequestReasoning != nil && !*in.RequestReasoning {
				return false
			}
			return in.ProfileReasoning
		},
	},
	{
		source:  SourceNative,
		applies: func(Input) bool { return true },
		verdict: func(in Input) bool { return in.RequestReasoning != nil && *in.RequestReasoning },
	},
}

// Resolve runs the precedence chain and returns the reasoning state and the deciding level.
func Resolve(in Input) (bool, Source) {
	for _, r := range resolvers {
		if r.applies(in) {
			return r.verdict(in), r.source
		}
	}
	return false, SourceNative
}

// Decide computes the reasoning decision for one request. It is pure: the same input
// always yields the same decision.
func Decide(in Input) Decision {
	reasoning, source := Resolve(in)
	forced := source == SourceForcePermanent || source == SourceUltrathink

	d := Decision{
		Reasoning:   reasoning,
		Effort:      resolveEffort(in, forced),
		TargetIndex: in.TargetIndex,
		Source:      source,
		ApplyFormat: reasoning,
	}

	if in.TargetIndex < 0 {
		return d
	}
	if forced {
		d.Rewrite = true
		return d
	}
	if reasoning && in.KeywordDetection {
		if kw, ok := in.Keywords.Match(in.Text); ok {
			d.Rewrite = true
			d.Keyword = kw
		}
	}
	return d
}

func resolveEffort(in Input, forced bool) Effort {
	if forced {
		return EffortHigh
	}
	if in.Tags.Effort != "" && in.Tags.Effort != EffortNone {
		return in.Tags.Effort
	}
	if effort, ok := ParseEffort(in.RequestEffort); ok {
		return effort
	}
	return EffortNone
}
