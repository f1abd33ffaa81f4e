package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerReader_ReadAnswer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single answer", input: "2020\n", want: []string{"2020"}},
		{name: "surrounding whitespace", input: "  Automatic \t\n", want: []string{"Automatic"}},
		{name: "blank answer", input: "\n", want: []string{""}},
		{name: "several answers", input: "2020\n25000\nHybrid\n", want: []string{"2020", "25000", "Hybrid"}},
		{name: "last line without newline", input: "2020\nManual", want: []string{"2020", "Manual"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewAnswerReader(strings.NewReader(tt.input))
			ctx := context.Background()

			for _, want := range tt.want {
				got, err := r.ReadAnswer(ctx)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			_, err := r.ReadAnswer(ctx)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestAnswerReader_Cancellation(t *testing.T) {
	t.Run("already canceled", func(t *testing.T) {
		r := NewAnswerReader(strings.NewReader("2020\n"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.ReadAnswer(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pr.Close() }()
		defer func() { _ = pw.Close() }()

		r := NewAnswerReader(pr)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := r.ReadAnswer(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})
}

func TestNewAnswerReader_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewAnswerReader(nil) })
}
