package session

import (
	"strings"
	"sync"
	"time"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

// Manager keeps the last two answered questions of one request so follow-up
// questions can reuse a snippet of the previous answer. Every question task
// in the fan-out appends here, so all access goes through the mutex.
type Manager struct {
	mu      sync.Mutex
	history []docmodel.QAPair
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(question, answer string, questionType docmodel.QuestionType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, docmodel.QAPair{
		Question:  question,
		Answer:    answer,
		Type:      questionType,
		Timestamp: time.Now(),
	})
	if len(m.history) > config.SessionCapacity {
		m.history = m.history[1:]
	}
}

// RelevantContext returns a snippet of the most recent answer when the new
// question mentions one of the leading words of the stored question.
func (m *Manager) RelevantContext(question string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return ""
	}

	last := m.history[len(m.history)-1]
	current := strings.ToLower(question)
	words := strings.Fields(strings.ToLower(last.Question))
	if len(words) > config.SessionQuestionPrefix {
		words = words[:config.SessionQuestionPrefix]
	}
	for _, w := range words {
		if strings.Contains(current, w) {
			snippet := last.Answer
			if len(snippet) > config.SessionSnippetLength {
				snippet = snippet[:config.SessionSnippetLength]
			}
			return "Previous context: " + snippet + "..."
		}
	}
	return ""
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}
