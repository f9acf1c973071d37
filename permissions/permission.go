package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var rulesData []byte

// Rule restricts one endpoint to a set of staff roles. An endpoint without a
// rule, or a rule with no roles, is open to any authenticated staff member.
type Rule struct {
	Roles  []string `json:"roles"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

type RuleSet struct {
	Endpoints []Rule `json:"endpoints"`
	Skip      bool   `json:"skip"`
}

func (r *RuleSet) Find(path, method string) Rule {
	idx := slices.IndexFunc(r.Endpoints, func(rule Rule) bool {
		return rule.Path == path && rule.Method == method
	})

	if idx == -1 {
		return Rule{}
	}

	return r.Endpoints[idx]
}

func Get() *RuleSet {
	var rules RuleSet

	err := json.Unmarshal(rulesData, &rules)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded role rules")

		return nil
	}

	log.Info().Int("endpoints", len(rules.Endpoints)).Msg("Successfully loaded embedded role rules")

	return &rules
}
