package system

import (
	"fmt"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/validation"
)

type ValidateCmd struct {
	All bool `help:"Validate every project instead of the active one."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	projects, err := ctx.Store.GetAllProjects()
	if err != nil {
		return fmt.Errorf("failed to get projects: %w", err)
	}

	projectID := ""
	if !c.All {
		j, err := ctx.RequireProject()
		if err != nil {
			return err
		}
		projectID = j.ProjectID()
	}

	questions, err := ctx.Store.GetQuestions(projectID)
	if err != nil {
		return fmt.Errorf("failed to get questions: %w", err)
	}
	entries, err := ctx.Store.GetAllLogEntries()
	if err != nil {
		return fmt.Errorf("failed to get answers: %w", err)
	}
	if projectID != "" {
		scoped := entries[:0:0]
		for _, e := range entries {
			if e.ProjectID == projectID {
				scoped = append(scoped, e)
			}
		}
		entries = scoped
	}

	v := validation.New()
	result := v.ValidateQuestions(questions, projects)
	result.Merge(v.ValidateLog(entries, questions))

	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
		return nil
	}
	return fmt.Errorf("validation found %d problem(s)", len(result.Conflicts))
}
