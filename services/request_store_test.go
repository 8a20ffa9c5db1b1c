package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"leave-management-api/models"
)

func TestCompareAndSetStatusAppliesConditionalWrite(t *testing.T) {
	updatePattern := regexp.MustCompile("(?i)UPDATE `leave_requests` SET .* WHERE request_id = \\? AND status = \\?")

	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: updatePattern,
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewRequestStore(db)

	applied, err := store.CompareAndSetStatus(7, models.StatusPendingStaff, map[string]interface{}{
		"status":        models.StatusPendingHOD,
		"staff_comment": "ok",
	})
	if err != nil {
		t.Fatalf("CompareAndSetStatus returned error: %v", err)
	}
	if !applied {
		t.Fatal("expected the conditional write to land")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompareAndSetStatusLostRaceReportsNoWrite(t *testing.T) {
	updatePattern := regexp.MustCompile("(?i)UPDATE `leave_requests` SET .* WHERE request_id = \\? AND status = \\?")

	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: updatePattern,
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewRequestStore(db)

	applied, err := store.CompareAndSetStatus(7, models.StatusPendingHOD, map[string]interface{}{
		"status": models.StatusApproved,
	})
	if err != nil {
		t.Fatalf("CompareAndSetStatus returned error: %v", err)
	}
	if applied {
		t.Fatal("a write that matched no row must report false")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDMissingRequestReturnsNotFound(t *testing.T) {
	selectPattern := regexp.MustCompile("(?i)SELECT .* FROM `leave_requests` WHERE request_id = \\?")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectPattern,
			columns: []string{"request_id", "status"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewRequestStore(db)

	if _, err := store.GetByID(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryFiltersStatusesAndSection(t *testing.T) {
	selectPattern := regexp.MustCompile("(?i)SELECT .* FROM `leave_requests` WHERE status IN \\(.*\\) AND student_section = \\? ORDER BY date_requested DESC")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectPattern,
			columns: []string{"request_id", "student_username", "student_section", "status"},
			rows: [][]driver.Value{
				{int64(3), "alice", "A", models.StatusApproved},
				{int64(1), "alice", "A", models.StatusRejectedByHOD},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewRequestStore(db)

	rows, err := store.Query(RequestFilter{
		Statuses: []string{models.StatusApproved, models.StatusRejectedByHOD},
		Section:  "A",
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].RequestID != 3 || rows[0].Status != models.StatusApproved {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
