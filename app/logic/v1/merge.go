package v1

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/markstyle-ai/markstyle/pkg/ai"
	"github.com/markstyle-ai/markstyle/pkg/types"
)

// MergeEngine folds a newly proposed rule into the existing rules of the same
// category. The semantic merge itself is delegated to the completion oracle;
// the engine owns the deterministic part: which record survives, which are
// deleted, and whether the oracle's answer is usable. The oracle is injected
// so the reduction can be tested with a stub.
type MergeEngine struct {
	completer ai.Completer
}

func NewMergeEngine(completer ai.Completer) *MergeEngine {
	return &MergeEngine{completer: completer}
}

// MergeDecision is what the caller applies as an update-and-delete
// transaction: write Body onto TargetID, remove DeleteIDs.
type MergeDecision struct {
	TargetID   string
	DeleteIDs  []string
	Body       types.RuleBody
	Summary    string
	Confidence float64
}

// mergePayload is the wire shape the merge prompt asks the model for.
type mergePayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Pattern     string   `json:"pattern"`
	Examples    []string `json:"examples"`
	Summary     string   `json:"summary"`
	Confidence  float64  `json:"confidence"`
}

// Merge returns the decision for folding proposed into existing. The target
// is always the earliest-created existing rule; every other same-type id
// lands in the delete set. Any error means the caller should insert the
// proposed rule as-is instead — merge is best effort.
func (e *MergeEngine) Merge(ctx context.Context, proposed types.RuleBody, existing []types.Rule) (*MergeDecision, error) {
	if len(existing) == 0 {
		return nil, fmt.Errorf("merge: no existing rules of type %q", proposed.Type)
	}

	ordered := make([]types.Rule, len(existing))
	copy(ordered, existing)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt < ordered[j].CreatedAt
	})

	target := ordered[0]
	deleteIDs := lo.Map(ordered[1:], func(r types.Rule, _ int) string {
		return r.ID
	})

	system, user := ai.BuildMergePrompt(e.completer.Lang(), proposed, ordered)
	raw, err := e.completer.Complete(ctx, ai.CompleteOptions{
		SystemPrompt: system,
		UserPrompt:   user,
	})
	if err != nil {
		return nil, fmt.Errorf("merge: completion failed: %w", err)
	}

	var payload mergePayload
	if err := ai.UnmarshalResponse(raw, &payload); err != nil {
		return nil, fmt.Errorf("merge: unusable response: %w", err)
	}
	if payload.Name == "" || payload.Pattern == "" {
		return nil, fmt.Errorf("merge: oracle returned an incomplete rule body")
	}

	return &MergeDecision{
		TargetID:  target.ID,
		DeleteIDs: deleteIDs,
		Body: types.RuleBody{
			Type:        target.Type,
			Name:        payload.Name,
			Pattern:     payload.Pattern,
			Description: payload.Description,
			Examples:    lo.Uniq(payload.Examples),
		},
		Summary:    payload.Summary,
		Confidence: payload.Confidence,
	}, nil
}
