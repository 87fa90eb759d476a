package services

import (
	"errors"
	"reflect"
	"testing"

	"signops-backend/db/models"
)

func TestNextStatusLegalTransitions(t *testing.T) {
	cases := []struct {
		from   models.StoreStatus
		action WorkflowAction
		want   models.StoreStatus
	}{
		{models.StatusUploaded, ActionAssignRecce, models.StatusRecceAssigned},
		{models.StatusRecceRejected, ActionAssignRecce, models.StatusRecceAssigned},
		{models.StatusRecceAssigned, ActionSubmitRecce, models.StatusRecceSubmitted},
		{models.StatusRecceSubmitted, ActionApproveRecce, models.StatusRecceApproved},
		{models.StatusRecceSubmitted, ActionRejectRecce, models.StatusRecceRejected},
		{models.StatusRecceApproved, ActionAssignInstallation, models.StatusInstallationAssigned},
		{models.StatusInstallationRejected, ActionAssignInstallation, models.StatusInstallationAssigned},
		{models.StatusInstallationAssigned, ActionSubmitInstallation, models.StatusInstallationSubmitted},
		{models.StatusInstallationSubmitted, ActionCompleteInstall, models.StatusCompleted},
		{models.StatusInstallationSubmitted, ActionRejectInstallation, models.StatusInstallationRejected},
	}

	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.action)
		if err != nil {
			t.Errorf("NextStatus(%s, %s) unexpected error: %v", tc.from, tc.action, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NextStatus(%s, %s) = %s, want %s", tc.from, tc.action, got, tc.want)
		}
	}
}

func TestNextStatusRejectsIllegalTransitions(t *testing.T) {
	allStatuses := []models.StoreStatus{
		models.StatusUploaded,
		models.StatusRecceAssigned,
		models.StatusRecceSubmitted,
		models.StatusRecceApproved,
		models.StatusRecceRejected,
		models.StatusInstallationAssigned,
		models.StatusInstallationSubmitted,
		models.StatusInstallationRejected,
		models.StatusCompleted,
	}
	allActions := []WorkflowAction{
		ActionAssignRecce, ActionSubmitRecce, ActionApproveRecce, ActionRejectRecce,
		ActionAssignInstallation, ActionSubmitInstallation, ActionCompleteInstall, ActionRejectInstallation,
	}

	legal := map[models.StoreStatus][]WorkflowAction{
		models.StatusUploaded:              {ActionAssignRecce},
		models.StatusRecceAssigned:         {ActionSubmitRecce},
		models.StatusRecceSubmitted:        {ActionApproveRecce, ActionRejectRecce},
		models.StatusRecceApproved:         {ActionAssignInstallation},
		models.StatusRecceRejected:         {ActionAssignRecce},
		models.StatusInstallationAssigned:  {ActionSubmitInstallation},
		models.StatusInstallationSubmitted: {ActionCompleteInstall, ActionRejectInstallation},
		models.StatusInstallationRejected:  {ActionAssignInstallation},
		models.StatusCompleted:             {},
	}

	for _, from := range allStatuses {
		for _, action := range allActions {
			allowed := false
			for _, a := range legal[from] {
				if a == action {
					allowed = true
				}
			}
			_, err := NextStatus(from, action)
			if allowed && err != nil {
				t.Errorf("NextStatus(%s, %s): expected legal, got %v", from, action, err)
			}
			if !allowed {
				if err == nil {
					t.Errorf("NextStatus(%s, %s): expected rejection", from, action)
					continue
				}
				var invalid *ErrInvalidTransition
				if !errors.As(err, &invalid) {
					t.Errorf("NextStatus(%s, %s): expected ErrInvalidTransition, got %T", from, action, err)
				}
			}
		}
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	store := &models.Store{CurrentStatus: models.StatusCompleted}
	for _, action := range []WorkflowAction{
		ActionAssignRecce, ActionSubmitRecce, ActionApproveRecce, ActionRejectRecce,
		ActionAssignInstallation, ActionSubmitInstallation, ActionCompleteInstall, ActionRejectInstallation,
	} {
		if err := ApplyAction(store, action); err == nil {
			t.Errorf("ApplyAction(COMPLETED, %s) should fail", action)
		}
		if store.CurrentStatus != models.StatusCompleted {
			t.Fatalf("status mutated on rejected action: %s", store.CurrentStatus)
		}
	}
}

func TestFilterByStatusIdempotent(t *testing.T) {
	stores := []models.Store{
		{StoreCode: "S1", CurrentStatus: models.StatusUploaded},
		{StoreCode: "S2", CurrentStatus: models.StatusRecceAssigned},
		{StoreCode: "S3", CurrentStatus: models.StatusRecceSubmitted},
		{StoreCode: "S4", CurrentStatus: models.StatusCompleted},
		{StoreCode: "S5", CurrentStatus: models.StatusRecceApproved},
	}

	once := FilterByStatus(stores, models.RecceListStatuses)
	twice := FilterByStatus(once, models.RecceListStatuses)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering twice changed the result: %v vs %v", once, twice)
	}

	want := []string{"S2", "S3", "S5"}
	if len(once) != len(want) {
		t.Fatalf("expected %d stores, got %d", len(want), len(once))
	}
	for i, s := range once {
		if s.StoreCode != want[i] {
			t.Errorf("store %d: got %s, want %s", i, s.StoreCode, want[i])
		}
	}

	// Source slice untouched
	if len(stores) != 5 {
		t.Errorf("input slice mutated")
	}
}

func TestIsDoneRule(t *testing.T) {
	done := []models.StoreStatus{
		models.StatusCompleted, models.StatusRecceSubmitted, models.StatusInstallationSubmitted,
	}
	notDone := []models.StoreStatus{
		models.StatusUploaded, models.StatusRecceAssigned, models.StatusRecceApproved,
		models.StatusRecceRejected, models.StatusInstallationAssigned, models.StatusInstallationRejected,
	}
	for _, s := range done {
		if !s.IsDone() {
			t.Errorf("%s should be done", s)
		}
	}
	for _, s := range notDone {
		if s.IsDone() {
			t.Errorf("%s should not be done", s)
		}
	}
}
