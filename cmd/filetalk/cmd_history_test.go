package main

import (
	"strings"
	"testing"
)

func TestHistoryCmd_NoJournalConfigured(t *testing.T) {
	t.Setenv("FILETALK_JOURNAL", "")

	_, err := execRoot(t, "history")
	if err == nil {
		t.Fatal("expected error without a journal")
	}
	if !strings.Contains(err.Error(), "no journal configured") {
		t.Errorf("error = %q", err)
	}
}

func TestHistoryCmd_EmptyJournal(t *testing.T) {
	t.Setenv("FILETALK_JOURNAL", t.TempDir()+"/journal.db")

	out, err := execRoot(t, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "no entries") {
		t.Errorf("output = %q", out)
	}
}
