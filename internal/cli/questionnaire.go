package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/carpicker/internal/model"
)

// Question is one prompt of the questionnaire.
type Question struct {
	Field  string
	Prompt string
}

// DefaultQuestions asks for every query field in catalog order.
var DefaultQuestions = []Question{
	{Field: model.ColumnYear, Prompt: "Year"},
	{Field: model.ColumnPrice, Prompt: "Max price"},
	{Field: model.ColumnTransmission, Prompt: "Transmission (Manual/Automatic)"},
	{Field: model.ColumnMileage, Prompt: "Max mileage"},
	{Field: model.ColumnFuelType, Prompt: "Fuel type (Gasoline/Diesel/Hybrid)"},
	{Field: model.ColumnMPG, Prompt: "Min MPG"},
	{Field: model.ColumnFinanceMonthly, Prompt: "Max finance monthly"},
	{Field: model.ColumnLeaseMonthly, Prompt: "Max lease monthly"},
	{Field: model.ColumnHorsepower, Prompt: "Min horsepower"},
}

// Questionnaire collects query answers from a terminal, one field at a time.
// A blank answer skips the field.
type Questionnaire struct {
	reader    *AnswerReader
	writer    io.Writer
	questions []Question
}

// NewQuestionnaire creates a questionnaire reading answers from reader and
// writing prompts to writer.
func NewQuestionnaire(reader io.Reader, writer io.Writer) *Questionnaire {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Questionnaire{
		reader:    NewAnswerReader(reader),
		writer:    writer,
		questions: DefaultQuestions,
	}
}

// Ask prompts for every field and returns the non-blank answers keyed by
// field name, ready for model.ParseQueryStrings. Input ending early leaves
// the remaining fields unanswered.
func (q *Questionnaire) Ask(ctx context.Context) (map[string]string, error) {
	answers := make(map[string]string, len(q.questions))

	if _, err := fmt.Fprintln(q.writer, FormatTitle("Find your Toyota")); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}
	if _, err := fmt.Fprintln(q.writer, SubtleStyle.Render("Press Enter to skip a question.")); err != nil {
		return nil, fmt.Errorf("failed to write hint: %w", err)
	}

	for _, question := range q.questions {
		if _, err := fmt.Fprint(q.writer, FormatPrompt(question.Prompt)); err != nil {
			return nil, fmt.Errorf("failed to write prompt: %w", err)
		}

		answer, err := q.reader.ReadAnswer(ctx)
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(q.writer)
			break
		}
		if err != nil {
			return nil, err
		}

		if answer != "" {
			answers[question.Field] = answer
		}
	}

	return answers, nil
}
