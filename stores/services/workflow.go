package services

import (
	"fmt"

	"signops-backend/db/models"
)

// WorkflowAction is a named mutation on a store's lifecycle. Every status
// change goes through ApplyAction so the legal-transition knowledge lives in
// one table instead of scattered list filters.
type WorkflowAction string

const (
	ActionAssignRecce        WorkflowAction = "ASSIGN_RECCE"
	ActionSubmitRecce        WorkflowAction = "SUBMIT_RECCE"
	ActionApproveRecce       WorkflowAction = "APPROVE_RECCE"
	ActionRejectRecce        WorkflowAction = "REJECT_RECCE"
	ActionAssignInstallation WorkflowAction = "ASSIGN_INSTALLATION"
	ActionSubmitInstallation WorkflowAction = "SUBMIT_INSTALLATION"
	ActionCompleteInstall    WorkflowAction = "COMPLETE_INSTALLATION"
	ActionRejectInstallation WorkflowAction = "REJECT_INSTALLATION"
)

// ErrInvalidTransition is returned when an action is not legal from the
// store's current status.
type ErrInvalidTransition struct {
	From   models.StoreStatus
	Action WorkflowAction
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("action %s is not allowed from status %s", e.Action, e.From)
}

type transition struct {
	from []models.StoreStatus
	to   models.StoreStatus
}

// transitions is the authoritative state x action table. RECCE_REJECTED and
// INSTALLATION_REJECTED feed back into their assignment states for
// resubmission; COMPLETED is terminal.
var transitions = map[WorkflowAction]transition{
	ActionAssignRecce: {
		from: []models.StoreStatus{models.StatusUploaded, models.StatusRecceRejected},
		to:   models.StatusRecceAssigned,
	},
	ActionSubmitRecce: {
		from: []models.StoreStatus{models.StatusRecceAssigned},
		to:   models.StatusRecceSubmitted,
	},
	ActionApproveRecce: {
		from: []models.StoreStatus{models.StatusRecceSubmitted},
		to:   models.StatusRecceApproved,
	},
	ActionRejectRecce: {
		from: []models.StoreStatus{models.StatusRecceSubmitted},
		to:   models.StatusRecceRejected,
	},
	ActionAssignInstallation: {
		from: []models.StoreStatus{models.StatusRecceApproved, models.StatusInstallationRejected},
		to:   models.StatusInstallationAssigned,
	},
	ActionSubmitInstallation: {
		from: []models.StoreStatus{models.StatusInstallationAssigned},
		to:   models.StatusInstallationSubmitted,
	},
	ActionCompleteInstall: {
		from: []models.StoreStatus{models.StatusInstallationSubmitted},
		to:   models.StatusCompleted,
	},
	ActionRejectInstallation: {
		from: []models.StoreStatus{models.StatusInstallationSubmitted},
		to:   models.StatusInstallationRejected,
	},
}

// NextStatus resolves the target status for an action from the given status,
// or an ErrInvalidTransition.
func NextStatus(from models.StoreStatus, action WorkflowAction) (models.StoreStatus, error) {
	t, ok := transitions[action]
	if !ok {
		return "", &ErrInvalidTransition{From: from, Action: action}
	}
	for _, allowed := range t.from {
		if allowed == from {
			return t.to, nil
		}
	}
	return "", &ErrInvalidTransition{From: from, Action: action}
}

// ApplyAction mutates the store's status in place after validating the
// transition. Callers persist the store themselves.
func ApplyAction(store *models.Store, action WorkflowAction) error {
	next, err := NextStatus(store.CurrentStatus, action)
	if err != nil {
		return err
	}
	store.CurrentStatus = next
	return nil
}

// CanTransition reports whether some action leads from one status directly
// to another.
func CanTransition(from, to models.StoreStatus) bool {
	for _, t := range transitions {
		if t.to != to {
			continue
		}
		for _, allowed := range t.from {
			if allowed == from {
				return true
			}
		}
	}
	return false
}

// FilterByStatus returns the stores whose status is in the given set. Pure:
// the input slice is never mutated, so filtering is idempotent.
func FilterByStatus(stores []models.Store, statuses []models.StoreStatus) []models.Store {
	set := make(map[models.StoreStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}

	filtered := make([]models.Store, 0, len(stores))
	for _, store := range stores {
		if _, ok := set[store.CurrentStatus]; ok {
			filtered = append(filtered, store)
		}
	}
	return filtered
}
