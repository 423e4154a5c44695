package mini

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// MarkupPolicy returns a shared policy suited to documentation pages: user
// generated content rules plus class attributes and basic colour styles.
func MarkupPolicy() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowStyles("background", "background-color", "color").Globally()
		markupPolicy = policy
	})
	return markupPolicy
}
