package domain

import (
	"fmt"
	"time"
)

// Verdict is the authority's answer for one requested transition. Reason is
// set only on denial and is shown to the end user verbatim.
type Verdict struct {
	Allowed bool
	Reason  string
}

// Authority decides whether a requested status change is permitted for a
// given caller role. It is pure: no I/O, no side effects, and every call
// returns a definitive verdict.
type Authority struct {
	now func() time.Time
}

// NewAuthority builds an Authority. A nil now falls back to time.Now; tests
// inject a fixed clock to place a request on either side of the cancellation
// window boundary.
func NewAuthority(now func() time.Time) *Authority {
	if now == nil {
		now = time.Now
	}
	return &Authority{now: now}
}

// Decide evaluates one transition request.
//
// Admins bypass the edge rules entirely. That is a deliberate break-glass
// mechanism, not a modeled transition: it is checked before the edge rules
// and can move an order out of a terminal state or to any target, including
// values outside the closed status set.
func (a *Authority) Decide(order Order, target Status, role Role) Verdict {
	if role == RoleAdmin {
		return Verdict{Allowed: true}
	}

	switch {
	case order.Status == StatusNeedToOrder && target == StatusOrdered:
		if role != RoleManager {
			return deny("Only managers can approve orders.")
		}
		return allow()

	case order.Status == StatusNeedToOrder && target == StatusCancelled:
		if role == RoleManager {
			return allow()
		}
		// Boundary is inclusive: at exactly one hour the cancel still goes
		// through.
		if a.now().Sub(order.CreatedAt) <= CancellationWindow {
			return allow()
		}
		return deny("Cancellation window (1 hour) has expired.")

	case order.Status == StatusNeedToOrder && target == StatusOutOfStock:
		if role != RoleManager {
			return deny("Only managers can mark orders as out of stock.")
		}
		return allow()

	// Neither receiving nor completing carries a role gate; any
	// authenticated role may move an order along these two edges.
	case order.Status == StatusOrdered && target == StatusReceived:
		return allow()

	case order.Status == StatusReceived && target == StatusCompleted:
		return allow()
	}

	return deny(fmt.Sprintf("Transition from %q to %q is not permitted.", order.Status, target))
}

func allow() Verdict {
	return Verdict{Allowed: true}
}

func deny(reason string) Verdict {
	return Verdict{Allowed: false, Reason: reason}
}
