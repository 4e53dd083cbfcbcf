package moderation

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/models"
)

// Decision is the escalation chosen for a warning count
type Decision struct {
	Action models.PolicyAction
	Until  time.Time
	Reason string
}

// Fires reports whether the decision requires a platform action
func (d Decision) Fires() bool {
	return d.Action != models.ActionNothing
}

// Decide picks the escalation for a user's post-increment warning count.
// Policies fire on every count at or above their threshold. A timeout policy whose
// duration does not validate never fires.
func Decide(count int, policy models.EscalationPolicy, now time.Time) Decision {
	none := Decision{Action: models.ActionNothing}

	switch policy.Action {
	case models.ActionNothing, "":
		return none
	case models.ActionBan, models.ActionKick:
		if count < policy.Threshold {
			return none
		}
		return Decision{Action: policy.Action, Reason: escalationReason(count, policy.Threshold)}
	case models.ActionTimeout:
		if count < policy.Threshold {
			return none
		}
		d := policy.TimeoutDuration()
		if d.Validate() != nil {
			return none
		}
		until, ok := d.EndTime(now)
		if !ok {
			return none
		}
		return Decision{Action: models.ActionTimeout, Until: until, Reason: escalationReason(count, policy.Threshold)}
	default:
		return none
	}
}

func escalationReason(count, threshold int) string {
	return fmt.Sprintf("Acumuló %d advertencias (límite: %d)", count, threshold)
}
