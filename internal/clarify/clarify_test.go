package clarify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-proposal/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAnswers_YAML(t *testing.T) {
	path := writeFile(t, "answers.yaml", `answers:
  - لدينا فريق صيانة من 12 فنياً
  - نعم، شهادة ISO 9001 سارية
additional_info: نرحب بزيارة ميدانية
`)

	f, err := LoadAnswers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"لدينا فريق صيانة من 12 فنياً", "نعم، شهادة ISO 9001 سارية"}, f.Answers)
	assert.Equal(t, "نرحب بزيارة ميدانية", f.AdditionalInfo)
}

func TestLoadAnswers_JSONTurns(t *testing.T) {
	path := writeFile(t, "answers.json", `{"chat_history": [{"question": "س1", "answer": "ج1"}, {"question": "س2", "answer": "ج2"}]}`)

	f, err := LoadAnswers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ج1", "ج2"}, f.Answers)
}

func TestLoadAnswers_Errors(t *testing.T) {
	_, err := LoadAnswers(filepath.Join(t.TempDir(), "missing.yaml"))
	var answerErr *AnswerError
	require.ErrorAs(t, err, &answerErr)
	assert.Contains(t, err.Error(), "read failed")

	_, err = LoadAnswers(writeFile(t, "bad.yml", "answers: [unterminated"))
	require.ErrorAs(t, err, &answerErr)
	assert.Contains(t, err.Error(), "parse failed")
}

func TestBuildHistory_PairsByPosition(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("AST", 3*3600))

	h := BuildHistory([]string{"س1", "س2", "س3"}, []string{" ج1 ", "ج2", "ج3", "ج4"}, " إضافة ", now)

	assert.Equal(t, "2026-03-01T06:30:00Z", h.Timestamp)
	assert.Equal(t, 3, h.TotalQuestions)
	assert.Equal(t, []string{"ج1", "ج2", "ج3"}, h.Answers)
	assert.Equal(t, types.ChatTurn{Question: "س1", Answer: "ج1"}, h.ChatHistory[0])
	assert.Equal(t, "إضافة", h.AdditionalInfo)
	assert.Equal(t, 3, Answered(h))
}

func TestBuildHistory_MissingAnswers(t *testing.T) {
	h := BuildHistory([]string{"س1", "س2"}, []string{"ج1"}, "", time.Now())

	assert.Equal(t, []string{"ج1", ""}, h.Answers)
	assert.Len(t, h.ChatHistory, 2)
	assert.Equal(t, 1, Answered(h))
}

func TestSave_WritesArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")
	h := BuildHistory([]string{"س1"}, []string{"ج1"}, "", time.Now())

	require.NoError(t, Save(path, h))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"timestamp", "total_questions", "questions", "answers", "chat_history", "additional_info"} {
		assert.Contains(t, raw, key)
	}
}
