package questions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/rfp-proposal/internal/llm"
)

func TestSynthesize_NoRequirements(t *testing.T) {
	client := &MockLLMClient{
		GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			t.Fatal("service must not be called")
			return "", nil
		},
	}
	got, err := Synthesize(context.Background(), client, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{NoGaps}, got)
}

func TestSynthesize_OneQuestionPerRequirement(t *testing.T) {
	var prompt string
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, p string, _ llm.ModelTier) (string, error) {
			prompt = p
			return "[2] يرجى توضيح آلية تقديم شهادة الأيزو.\n[1] قدّم تفاصيل عن فريق الصيانة.\n", nil
		},
	}

	got, err := Synthesize(context.Background(), client, []string{"فريق الصيانة", "شهادة الأيزو"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"قدّم تفاصيل عن فريق الصيانة.",
		"يرجى توضيح آلية تقديم شهادة الأيزو.",
	}, got)
	assert.Contains(t, prompt, "[1] فريق الصيانة\n[2] شهادة الأيزو")
	assert.Contains(t, prompt, "أخرج 2 أسئلة فقط")
}

func TestSynthesize_CardinalityMismatchLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	client := &MockLLMClient{
		GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "1. يرجى توضيح الجدول الزمني.", nil
		},
	}

	got, err := Synthesize(context.Background(), client, []string{"أ", "ب"}, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, []string{"يرجى توضيح الجدول الزمني."}, got)
	assert.Equal(t, 1, logs.Len())
}

func TestSynthesize_CallFailure(t *testing.T) {
	callErr := &llm.CallError{Model: "mock", Message: "quota"}
	client := &MockLLMClient{
		GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "", callErr
		},
	}
	_, err := Synthesize(context.Background(), client, []string{"أ"}, nil)
	assert.ErrorIs(t, err, callErr)
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		n    int
		want []string
	}{
		{
			name: "enumeration stripped",
			raw:  "1) يرجى توضيح أ\n2. قدّم تفاصيل ب\n- اشرح آلية ج\n• يرجى توضيح د",
			n:    4,
			want: []string{"يرجى توضيح أ", "قدّم تفاصيل ب", "اشرح آلية ج", "يرجى توضيح د"},
		},
		{
			name: "blank lines dropped",
			raw:  "\n  \nيرجى توضيح أ\n\n",
			n:    1,
			want: []string{"يرجى توضيح أ"},
		},
		{
			name: "tags reorder",
			raw:  "[3] ج\n[1] أ\n[2] ب",
			n:    3,
			want: []string{"أ", "ب", "ج"},
		},
		{
			name: "duplicate tags keep order",
			raw:  "[2] ب\n[2] ج\n[1] أ",
			n:    3,
			want: []string{"ب", "ج", "أ"},
		},
		{
			name: "partial tags keep order",
			raw:  "[2] ب\nأ",
			n:    2,
			want: []string{"ب", "أ"},
		},
		{
			name: "out of range tag keeps order",
			raw:  "[5] ب\n[1] أ",
			n:    2,
			want: []string{"ب", "أ"},
		},
		{
			name: "trailing number kept",
			raw:  "[1] يرجى توضيح متطلبات المادة 5",
			n:    1,
			want: []string{"يرجى توضيح متطلبات المادة 5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLines(tt.raw, tt.n))
		})
	}
}
