package floorplan

import (
	"errors"

	"estate_market/model"
)

var (
	ErrInvalidTransition = errors.New("apartment status does not allow this action")
	ErrProofRequired     = errors.New("a proof image is required to claim an apartment")
)

// Action names a lifecycle transition.
type Action string

const (
	ActionClaim    Action = "CLAIM"
	ActionApprove  Action = "APPROVE"
	ActionReject   Action = "REJECT"
	ActionAssign   Action = "ASSIGN"
	ActionRelease  Action = "RELEASE"
	ActionComplete Action = "COMPLETE"
)

var transitions = map[Action]struct {
	from model.ApartmentStatus
	to   model.ApartmentStatus
}{
	ActionClaim:    {model.StatusAvailable, model.StatusPending},
	ActionApprove:  {model.StatusPending, model.StatusSold},
	ActionReject:   {model.StatusPending, model.StatusAvailable},
	ActionAssign:   {model.StatusAvailable, model.StatusReserved},
	ActionRelease:  {model.StatusReserved, model.StatusAvailable},
	ActionComplete: {model.StatusReserved, model.StatusSold},
}

func CanTransition(from model.ApartmentStatus, action Action) bool {
	t, ok := transitions[action]
	return ok && t.from == from
}

// move applies action when the table allows it from the current status.
func move(a *model.Apartment, action Action) error {
	if !CanTransition(a.Status, action) {
		return ErrInvalidTransition
	}
	a.Status = transitions[action].to
	return nil
}

// Claim moves an AVAILABLE apartment to PENDING for the claimant.
func Claim(a *model.Apartment, claimantId uint, proofRef string) error {
	if !CanTransition(a.Status, ActionClaim) {
		return ErrInvalidTransition
	}
	if proofRef == "" {
		return ErrProofRequired
	}
	a.Status = transitions[ActionClaim].to
	a.OwnerId = &claimantId
	a.ProofImageUrl = &proofRef
	return nil
}

func Approve(a *model.Apartment) error {
	return move(a, ActionApprove)
}

// Reject returns a PENDING claim to AVAILABLE and drops both the owner and
// the proof.
func Reject(a *model.Apartment) error {
	if err := move(a, ActionReject); err != nil {
		return err
	}
	clearClaim(a)
	return nil
}

func Assign(a *model.Apartment, ownerId uint) error {
	if err := move(a, ActionAssign); err != nil {
		return err
	}
	a.OwnerId = &ownerId
	return nil
}

func Release(a *model.Apartment) error {
	if err := move(a, ActionRelease); err != nil {
		return err
	}
	clearClaim(a)
	return nil
}

func Complete(a *model.Apartment) error {
	return move(a, ActionComplete)
}

// actionBetween finds the single transition connecting two statuses.
func actionBetween(from, to model.ApartmentStatus) (Action, bool) {
	for action, t := range transitions {
		if t.from == from && t.to == to {
			return action, true
		}
	}
	return "", false
}

// Apply moves a to target using the single transition that connects the
// two statuses. ownerId is only read when the target is RESERVED.
func Apply(a *model.Apartment, target model.ApartmentStatus, ownerId *uint) error {
	action, ok := actionBetween(a.Status, target)
	if !ok {
		return ErrInvalidTransition
	}
	switch action {
	case ActionApprove:
		return Approve(a)
	case ActionReject:
		return Reject(a)
	case ActionAssign:
		if ownerId == nil {
			return ErrInvalidTransition
		}
		return Assign(a, *ownerId)
	case ActionRelease:
		return Release(a)
	case ActionComplete:
		return Complete(a)
	}
	// claims need a proof and go through Claim
	return ErrInvalidTransition
}

// GrantsAccess reports whether owning an apartment in this status opens the
// project's private areas.
func GrantsAccess(s model.ApartmentStatus) bool {
	return s == model.StatusSold || s == model.StatusReserved
}

func clearClaim(a *model.Apartment) {
	a.OwnerId = nil
	a.ProofImageUrl = nil
}
