package questions

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/scheduler"
	"github.com/julianstephens/alog/internal/utils"
)

type QuestionCmd struct {
	Add    QuestionAddCmd    `cmd:"" help:"Add a question to the active project."`
	List   QuestionListCmd   `cmd:"" help:"List questions of the active project."`
	Edit   QuestionEditCmd   `cmd:"" help:"Edit a question."`
	Delete QuestionDeleteCmd `cmd:"" help:"Delete a question and its answers."`
}

type QuestionAddCmd struct {
	Text string `arg:"" help:"Question text."`
	Days string `help:"Schedule: daily, weekdays, weekends, or comma-separated days (e.g. mon,wed,fri)." default:"daily"`
}

func (c *QuestionAddCmd) Run(ctx *cli.Context) error {
	schedule, err := utils.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}
	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}

	q, err := j.AddQuestion(c.Text, schedule)
	if err != nil {
		return err
	}
	fmt.Printf("Added question: %s [%s]\n", q.Text, utils.FormatSchedule(q.Schedule))
	return nil
}

type QuestionListCmd struct{}

func (c *QuestionListCmd) Run(ctx *cli.Context) error {
	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}

	questions := j.Questions()
	if len(questions) == 0 {
		fmt.Println("No questions found.")
		return nil
	}

	today := ctx.Today()
	width := 0
	for _, q := range questions {
		if len(q.Text) > width {
			width = len(q.Text)
		}
	}
	for _, q := range questions {
		due := " "
		if scheduler.IsDueOn(q, today) {
			due = "•"
		}
		fmt.Printf("%s %-8s  %-*s  %s\n", due, shortID(q.ID), width, q.Text, utils.FormatSchedule(q.Schedule))
	}
	fmt.Println("\n• due today")
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type QuestionEditCmd struct {
	Question string  `arg:"" help:"Question id, id prefix or text."`
	Text     *string `help:"New question text."`
	Days     *string `help:"New schedule."`
}

func (c *QuestionEditCmd) Run(ctx *cli.Context) error {
	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}
	q, err := cli.FindQuestion(j.Questions(), c.Question)
	if err != nil {
		return err
	}

	if c.Text == nil && c.Days == nil {
		fmt.Println("No changes specified. Use --text or --days.")
		return nil
	}
	if c.Text != nil {
		q.Text = strings.TrimSpace(*c.Text)
	}
	if c.Days != nil {
		schedule, err := utils.ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		q.Schedule = schedule
	}

	if err := j.UpdateQuestion(q); err != nil {
		return err
	}
	fmt.Printf("Updated question: %s [%s]\n", q.Text, utils.FormatSchedule(q.Schedule))
	return nil
}

type QuestionDeleteCmd struct {
	Question string `arg:"" help:"Question id, id prefix or text."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *QuestionDeleteCmd) Run(ctx *cli.Context) error {
	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}
	q, err := cli.FindQuestion(j.Questions(), c.Question)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and all of its answers?", q.Text)).
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

	if err := j.DeleteQuestion(q.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted question: %s\n", q.Text)
	return nil
}
