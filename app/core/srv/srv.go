package srv

type Srv struct {
	ai *AI
}

type ApplyFunc func(s *Srv)

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (s *Srv) AI() *AI {
	return s.ai
}

// GetAIStatus reports whether the completion provider is usable.
func (s *Srv) GetAIStatus() map[string]interface{} {
	if s.ai == nil || !s.ai.Available() {
		return map[string]interface{}{
			"status": "not_configured",
		}
	}
	return map[string]interface{}{
		"status": "running",
		"lang":   s.ai.Lang(),
	}
}
