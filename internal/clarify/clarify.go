// Package clarify records the answers given to the clarification questions of a gap report.
package clarify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/rfp-proposal/internal/types"
)

// AnswerFile is the on-disk form of the answers, in question order. Answers may be given
// as plain strings or as question/answer pairs.
type AnswerFile struct {
	Answers        []string         `yaml:"answers" json:"answers"`
	Turns          []types.ChatTurn `yaml:"chat_history" json:"chat_history"`
	AdditionalInfo string           `yaml:"additional_info" json:"additional_info"`
}

// AnswerError reports an unreadable answers file.
type AnswerError struct {
	Path    string
	Message string
	Cause   error
}

func (e *AnswerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("answers %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("answers %s: %s", e.Path, e.Message)
}

func (e *AnswerError) Unwrap() error {
	return e.Cause
}

// LoadAnswers reads an answers file. ".yaml" and ".yml" are parsed as YAML; anything else
// as JSON.
func LoadAnswers(path string) (*AnswerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AnswerError{Path: path, Message: "read failed", Cause: err}
	}

	var f AnswerFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, &AnswerError{Path: path, Message: "parse failed", Cause: err}
	}

	if len(f.Answers) == 0 {
		for _, turn := range f.Turns {
			f.Answers = append(f.Answers, turn.Answer)
		}
	}
	return &f, nil
}

// BuildHistory pairs each question with its answer, by position. Questions without an
// answer get an empty answer; answers beyond the last question are dropped.
func BuildHistory(questions, answers []string, additionalInfo string, now time.Time) *types.ChatHistory {
	h := &types.ChatHistory{
		Timestamp:      now.UTC().Format(time.RFC3339),
		TotalQuestions: len(questions),
		Questions:      append([]string{}, questions...),
		Answers:        make([]string, 0, len(questions)),
		ChatHistory:    make([]types.ChatTurn, 0, len(questions)),
		AdditionalInfo: strings.TrimSpace(additionalInfo),
	}
	for i, q := range questions {
		var a string
		if i < len(answers) {
			a = strings.TrimSpace(answers[i])
		}
		h.Answers = append(h.Answers, a)
		h.ChatHistory = append(h.ChatHistory, types.ChatTurn{Question: q, Answer: a})
	}
	return h
}

// Answered returns the number of questions that received a non-empty answer.
func Answered(h *types.ChatHistory) int {
	n := 0
	for _, a := range h.Answers {
		if a != "" {
			n++
		}
	}
	return n
}

// Save writes the history as indented JSON.
func Save(path string, h *types.ChatHistory) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write chat history: %w", err)
	}
	return nil
}
