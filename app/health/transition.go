package health

import "github.com/linkhub-io/linkhub/app/labels"

// brokenThreshold is the number of consecutive failed probes after which a
// site is declared broken and the admins are notified.
const brokenThreshold = 3

// Result is the outcome of applying one probe result to a record's
// lifecycle state. AddLabels/RemoveLabels are the remote label swaps the
// caller must perform; NotifyAdmins is set exactly once, when the failure
// count crosses the broken threshold.
type Result struct {
	Status       labels.Status
	FailCount    int
	AddLabels    []string
	RemoveLabels []string
	NotifyAdmins bool
}

// Transition derives the next lifecycle state from the previous status, the
// consecutive failure count, and a probe result. It is a pure function: no
// I/O, independently testable.
func Transition(prev labels.Status, failCount int, reachable bool) Result {
	if reachable {
		res := Result{Status: prev, FailCount: 0}
		if prev == labels.StatusValWarning || prev == labels.StatusValBroken {
			res.Status = labels.StatusValActive
			res.RemoveLabels = []string{labels.StatusBroken, labels.StatusWarning}
			res.AddLabels = []string{labels.StatusActive}
		}
		return res
	}

	failCount++

	if failCount >= brokenThreshold {
		return Result{
			Status:       labels.StatusValBroken,
			FailCount:    failCount,
			RemoveLabels: []string{labels.StatusActive, labels.StatusWarning},
			AddLabels:    []string{labels.StatusBroken},
			NotifyAdmins: failCount == brokenThreshold,
		}
	}

	return Result{
		Status:       labels.StatusValWarning,
		FailCount:    failCount,
		RemoveLabels: []string{labels.StatusActive},
		AddLabels:    []string{labels.StatusWarning},
	}
}
