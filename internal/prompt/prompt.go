// Package prompt renders the fixed natural-language templates handed
// to the model backends. The task-to-template mapping is a static
// table; inputs are substituted verbatim.
package prompt

import (
	"fmt"
	"strings"
)

// Task names one generation operation.
type Task string

const (
	TaskSummary   Task = "summary"
	TaskProcedure Task = "procedure"
	TaskViva      Task = "viva"
	TaskNotes     Task = "notes"
	TaskQuestion  Task = "question"
	TaskStructure Task = "structure"
)

// Input carries the pieces substituted into a template. Retrieval
// tasks use Context; TaskQuestion additionally uses Question;
// TaskStructure uses Experiment.
type Input struct {
	Context    string
	Question   string
	Experiment string
}

const questionTemplate = `You are a Lab Manual Assistant.

Answer strictly using the provided lab manual context.
If the answer is not present, say:
"Not available in the lab manual context."

Context:
%s

Question:
%s

Answer:
`

const summaryTemplate = `From the following lab manual content, extract all experiments.
For each experiment include:
- Experiment title
- Aim
- Apparatus
- Brief theory overview

%s`

const procedureTemplate = `Generate clear step-by-step experimental procedures
suitable for writing in a lab record.

%s`

const vivaTemplate = `Generate 5-7 viva or exam-oriented questions
based on the following lab manual content.

%s`

const notesTemplate = `Create structured lab notes including:
- Key concepts
- Important formulas
- Observations
- Precautions

%s`

const structureTemplate = `Extract procedure, theory, and safety from the experiment below.
Return JSON only:

"""
%s
"""

JSON format:
{
  "procedure": "...",
  "theory": "...",
  "safety": "..."
}`

// Retrieval pairs a task with the fixed index query and result count
// used to assemble its context.
type Retrieval struct {
	Query string
	TopK  int
}

var retrievals = map[Task]Retrieval{
	TaskSummary:   {Query: "list all experiments with aim apparatus theory description", TopK: 10},
	TaskProcedure: {Query: "experimental procedure steps", TopK: 8},
	TaskViva:      {Query: "important definitions principles viva questions", TopK: 6},
	TaskNotes:     {Query: "key concepts formulas observations precautions", TopK: 8},
	TaskQuestion:  {TopK: 4}, // query is the user's question
}

// RetrievalFor returns the index query and k for a retrieval-backed
// task. The second return is false for tasks that do not retrieve.
func RetrievalFor(task Task) (Retrieval, bool) {
	r, ok := retrievals[task]
	return r, ok
}

// Build renders the template for task with in substituted. Unknown
// tasks are an error; templates themselves are not configurable.
func Build(task Task, in Input) (string, error) {
	switch task {
	case TaskSummary:
		return fmt.Sprintf(summaryTemplate, in.Context), nil
	case TaskProcedure:
		return fmt.Sprintf(procedureTemplate, in.Context), nil
	case TaskViva:
		return fmt.Sprintf(vivaTemplate, in.Context), nil
	case TaskNotes:
		return fmt.Sprintf(notesTemplate, in.Context), nil
	case TaskQuestion:
		return fmt.Sprintf(questionTemplate, in.Context, in.Question), nil
	case TaskStructure:
		return fmt.Sprintf(structureTemplate, in.Experiment), nil
	default:
		return "", fmt.Errorf("unknown task: %q", task)
	}
}

// ParseTask maps a request path segment onto a generation task.
func ParseTask(s string) (Task, error) {
	switch Task(strings.ToLower(strings.TrimSpace(s))) {
	case TaskSummary:
		return TaskSummary, nil
	case TaskProcedure:
		return TaskProcedure, nil
	case TaskViva:
		return TaskViva, nil
	case TaskNotes:
		return TaskNotes, nil
	default:
		return "", fmt.Errorf("unknown task: %q", s)
	}
}
