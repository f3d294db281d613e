package risk

import (
	"strings"

	"github.com/opconsole/opconsole/api"
)

// Classifier assigns a capability tier to a tool name. Implementations
// must be deterministic and total: any string input yields a tier from the
// closed 3-value set.
type Classifier interface {
	Tier(toolName string) api.Tier
}

// PrefixClassifier infers a tier by longest-prefix classification of the
// tool name. It is the default classifier.
type PrefixClassifier struct{}

var prefixTiers = []struct {
	prefix string
	tier   api.Tier
}{
	{"time.", api.TierReadOnly},
	{"desktop.", api.TierLocalActions},
	{"android.", api.TierLocalActions},
	{"ios.", api.TierLocalActions},
}

// Tier classifies: time.* and the bare echo tool are ReadOnly; desktop.*,
// android.* and ios.* touch the local device; everything else is treated
// as a system-level action.
func (PrefixClassifier) Tier(toolName string) api.Tier {
	if toolName == "echo" {
		return api.TierReadOnly
	}
	best := api.TierSystemActions
	bestLen := 0
	for _, pt := range prefixTiers {
		if strings.HasPrefix(toolName, pt.prefix) && len(pt.prefix) > bestLen {
			best = pt.tier
			bestLen = len(pt.prefix)
		}
	}
	return best
}
