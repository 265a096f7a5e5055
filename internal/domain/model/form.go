package model

import "fmt"

type IntakeStep int

const (
	StepName IntakeStep = iota
	StepSolveMethod
	StepTimeComplexity
	StepDifficulty
	StepConfirm
)

func (s IntakeStep) String() string {
	switch s {
	case StepName:
		return "name"
	case StepSolveMethod:
		return "solve_method"
	case StepTimeComplexity:
		return "time_complexity"
	case StepDifficulty:
		return "difficulty"
	case StepConfirm:
		return "confirm"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// FormField describes one prompt of the submission form.
type FormField struct {
	Step     IntakeStep
	Label    string
	Prompt   string
	Required bool
}

// SubmissionFields is the fixed prompt order of the submission form.
var SubmissionFields = []FormField{
	{Step: StepName, Label: "Name of Problem", Prompt: "Enter Name of the problem", Required: true},
	{Step: StepSolveMethod, Label: "Solution", Prompt: "How did you solve it ?", Required: true},
	{Step: StepTimeComplexity, Label: "Time Complexity", Prompt: "What is the time complexity ?", Required: true},
	{Step: StepDifficulty, Label: "Difficulty", Prompt: "How did you find this problem ? (optional)", Required: false},
}

// SubmissionDraft accumulates answers while a submission form is in progress.
type SubmissionDraft struct {
	Step           IntakeStep `json:"step"`
	Name           string     `json:"name" validate:"required,max=4096"`
	SolveMethod    string     `json:"solve_method" validate:"required,max=4096"`
	TimeComplexity string     `json:"time_complexity" validate:"required,max=4096"`
	Difficulty     string     `json:"difficulty" validate:"max=4096"`
}

// Set stores value for step. The confirm step has no field.
func (d *SubmissionDraft) Set(step IntakeStep, value string) {
	switch step {
	case StepName:
		d.Name = value
	case StepSolveMethod:
		d.SolveMethod = value
	case StepTimeComplexity:
		d.TimeComplexity = value
	case StepDifficulty:
		d.Difficulty = value
	}
}

// Field returns the prompt definition for the draft's current step, if any.
func (d *SubmissionDraft) Field() (FormField, bool) {
	for _, f := range SubmissionFields {
		if f.Step == d.Step {
			return f, true
		}
	}
	return FormField{}, false
}

// SessionKey scopes form progress to one user in one chat.
type SessionKey struct {
	ChatID int64
	UserID int64
}

func (k SessionKey) String() string {
	return fmt.Sprintf("%d:%d", k.ChatID, k.UserID)
}
