package projects

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/alog/internal/cli"
)

type ProjectCmd struct {
	Add    ProjectAddCmd    `cmd:"" help:"Create a project."`
	List   ProjectListCmd   `cmd:"" help:"List projects."`
	Use    ProjectUseCmd    `cmd:"" help:"Switch the active project."`
	Delete ProjectDeleteCmd `cmd:"" help:"Delete a project with its questions and answers."`
}

type ProjectAddCmd struct {
	Name string `arg:"" help:"Project name."`
	Use  bool   `help:"Make the new project active."`
}

func (c *ProjectAddCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}
	for _, p := range j.Projects() {
		if p.Name == c.Name {
			return fmt.Errorf("project with name %q already exists", c.Name)
		}
	}

	p, err := j.AddProject(c.Name)
	if err != nil {
		return err
	}
	if c.Use || j.ProjectID() == p.ID {
		if err := j.SwitchProject(p.ID); err != nil {
			return err
		}
	}

	fmt.Printf("Added project: %s (%s)\n", p.Name, p.ID)
	return nil
}

type ProjectListCmd struct{}

func (c *ProjectListCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}

	projects := j.Projects()
	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	for _, p := range projects {
		marker := "  "
		if p.ID == j.ProjectID() {
			marker = "* "
		}
		fmt.Printf("%s%s  %s\n", marker, p.ID, p.Name)
	}
	return nil
}

type ProjectUseCmd struct {
	Project string `arg:"" help:"Project id, id prefix or name."`
}

func (c *ProjectUseCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}
	p, err := cli.FindProject(j.Projects(), c.Project)
	if err != nil {
		return err
	}
	if err := j.SwitchProject(p.ID); err != nil {
		return err
	}
	fmt.Printf("Active project: %s\n", p.Name)
	return nil
}

type ProjectDeleteCmd struct {
	Project string `arg:"" help:"Project id, id prefix or name."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ProjectDeleteCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}
	p, err := cli.FindProject(j.Projects(), c.Project)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete project %q and all of its questions and answers?", p.Name)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	wasActive := p.ID == j.ProjectID()
	if err := j.DeleteProject(p.ID); err != nil {
		return err
	}
	if wasActive && j.ProjectID() != "" {
		if err := j.SwitchProject(j.ProjectID()); err != nil {
			return err
		}
	}

	fmt.Printf("Deleted project: %s\n", p.Name)
	return nil
}
