package v1

import (
	"context"
	"testing"

	"github.com/markstyle-ai/markstyle/app/core"
	"github.com/markstyle-ai/markstyle/app/core/srv"
	"github.com/markstyle-ai/markstyle/app/store/filestore"
	"github.com/markstyle-ai/markstyle/pkg/ai"
)

// stubCompleter scripts model completions for logic tests. Each call consumes
// the next response; the last one repeats once the script runs out.
type stubCompleter struct {
	lang      string
	responses []string
	err       error
	calls     int
}

func (s *stubCompleter) Complete(ctx context.Context, opts ai.CompleteOptions) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	idx := s.calls - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx], nil
}

func (s *stubCompleter) Lang() string {
	if s.lang == "" {
		return ai.MODEL_BASE_LANGUAGE_EN
	}
	return s.lang
}

// newTestCore builds a core over a throwaway data dir. A nil driver leaves the
// provider unconfigured so NoProvider paths can be exercised.
func newTestCore(t *testing.T, driver ai.Completer) *core.Core {
	t.Helper()

	app := core.MustSetupCore(core.CoreConfig{
		Log:   core.Log{Level: "error"},
		Store: filestore.Config{DataDir: t.TempDir()},
	})
	if driver != nil {
		app.ApplySrvs(srv.ApplyAIDriver(driver))
	}
	return app
}
