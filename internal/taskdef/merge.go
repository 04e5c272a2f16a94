package taskdef

// Merge overlays other onto def. Any field set on other replaces the
// whole field on def; list fields are never concatenated.
func (def *ProcessedTaskDefinition) Merge(other *ProcessedTaskDefinition) {
	if other.Extends != nil {
		def.Extends = other.Extends
	}
	if other.Cache != nil {
		def.Cache = other.Cache
	}
	if other.DependsOn != nil {
		def.DependsOn = other.DependsOn
	}
	if other.DotEnv != nil {
		def.DotEnv = other.DotEnv
	}
	if other.Env != nil {
		def.Env = other.Env
	}
	if other.PassThroughEnv != nil {
		def.PassThroughEnv = other.PassThroughEnv
	}
	if other.Persistent != nil {
		def.Persistent = other.Persistent
	}
	if other.Inputs != nil {
		def.Inputs = other.Inputs
	}
	if other.Outputs != nil {
		def.Outputs = other.Outputs
	}
	if other.OutputMode != nil {
		def.OutputMode = other.OutputMode
	}
	if other.With != nil {
		def.With = other.With
	}
	if other.Source.File != "" {
		def.Source = other.Source
	}
}

// FromChain folds a root-most-first definition chain into one merged
// definition. Later entries win field by field.
func FromChain(chain []*ProcessedTaskDefinition) *ProcessedTaskDefinition {
	merged := &ProcessedTaskDefinition{}
	for _, def := range chain {
		merged.Merge(def)
	}
	return merged
}
