package session

import (
	"strings"
	"testing"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

func TestAddEvictsOldestBeyondCapacity(t *testing.T) {
	m := NewManager()
	m.Add("q1", "a1", docmodel.PolicyGeneral)
	m.Add("q2", "a2", docmodel.PolicyGeneral)
	m.Add("q3", "a3", docmodel.PolicyGeneral)

	if m.Len() != 2 {
		t.Fatalf("expected capacity 2, got %d", m.Len())
	}
	// q1 must be gone: a question overlapping only q1 finds nothing
	if got := m.RelevantContext("tell me about q1"); got != "" {
		t.Errorf("evicted entry still matched: %q", got)
	}
}

func TestRelevantContextMatchesLeadingWords(t *testing.T) {
	m := NewManager()
	m.Add("grace period duration", "The grace period is thirty days.", docmodel.PolicyTime)

	got := m.RelevantContext("Does the grace period affect renewals?")
	if !strings.HasPrefix(got, "Previous context: The grace period is thirty days.") {
		t.Errorf("expected previous-answer snippet, got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("snippet should be ellipsized: %q", got)
	}
}

func TestRelevantContextIgnoresUnrelatedQuestion(t *testing.T) {
	m := NewManager()
	m.Add("grace period duration", "Thirty days.", docmodel.PolicyTime)

	if got := m.RelevantContext("What about maternity coverage?"); got != "" {
		t.Errorf("unrelated question should get no context, got %q", got)
	}
}

func TestRelevantContextTruncatesLongAnswers(t *testing.T) {
	m := NewManager()
	long := strings.Repeat("waiting period details ", 20)
	m.Add("waiting period", long, docmodel.PolicyTime)

	got := m.RelevantContext("Is the waiting period waived?")
	if len(got) > len("Previous context: ")+80+len("...") {
		t.Errorf("snippet too long: %d chars", len(got))
	}
}

func TestRelevantContextEmptyHistory(t *testing.T) {
	if got := NewManager().RelevantContext("anything"); got != "" {
		t.Errorf("empty history should yield empty context, got %q", got)
	}
}
