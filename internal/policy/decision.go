package policy

import "github.com/DGersmv/personal-227-info-sub000/internal/domain"

// Reason is the machine-distinguishable cause of a Deny.
type Reason string

const (
	ReasonUnauthenticated Reason = "UNAUTHENTICATED"
	ReasonNotFound        Reason = "NOT_FOUND"
	ReasonNoAccess        Reason = "NO_ACCESS"
	ReasonNotPermitted    Reason = "NOT_PERMITTED"
	ReasonRoleMismatch    Reason = "ROLE_MISMATCH"
)

// Decision is the verdict of the decision function. A Deny is an
// ordinary value, never an exception; only storage failures during
// resolution travel as errors.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

// Allow is the positive verdict.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny is a negative verdict carrying its reason.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err maps a denial to its domain sentinel so callers can use the
// uniform errors.Is mapping. Returns nil for an Allow.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	case ReasonNotFound:
		return domain.ErrNotFound
	case ReasonNoAccess:
		return domain.ErrNoAccess
	case ReasonRoleMismatch:
		return domain.ErrRoleMismatch
	default:
		return domain.ErrNotPermitted
	}
}
