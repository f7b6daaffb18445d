package answers

import (
	"fmt"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/scheduler"
	"github.com/julianstephens/alog/internal/utils"
)

type AnswerCmd struct {
	Question string `arg:"" help:"Question id, id prefix or text."`
	Answer   string `arg:"" help:"yes, no or clear."`
	Date     string `help:"Date in YYYY-MM-DD format, 'today' or 'yesterday' (default: today)."`
	Toggle   bool   `help:"Clear the answer if it already matches."`
}

func (c *AnswerCmd) Run(ctx *cli.Context) error {
	answer, err := models.ParseAnswer(c.Answer)
	if err != nil {
		return err
	}
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}
	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}
	q, err := cli.FindQuestion(j.Questions(), c.Question)
	if err != nil {
		return err
	}

	result := answer
	if c.Toggle && answer.IsAnswered() {
		if result, err = j.ToggleAnswer(date, q.ID, answer); err != nil {
			return err
		}
	} else if err := j.SetAnswer(date, q.ID, answer); err != nil {
		return err
	}

	key := utils.FormatDateKey(date)
	if !scheduler.IsDueOn(q, date) {
		fmt.Printf("Note: %q is not scheduled on %s\n", q.Text, date.Weekday())
	}
	if result.IsAnswered() {
		fmt.Printf("%s  %s: %s\n", key, q.Text, result)
	} else {
		fmt.Printf("%s  %s: cleared\n", key, q.Text)
	}
	return nil
}

type TodayCmd struct {
	Date string `help:"Show another day (YYYY-MM-DD, 'yesterday')."`
	All  bool   `help:"Include questions not scheduled on this day."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}
	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}
	project, _ := j.Project()

	items := j.Day(date)
	fmt.Printf("%s  %s  %s\n\n", project.Name, utils.FormatDateKey(date), date.Weekday())

	shown := 0
	for _, item := range items {
		if !item.Due && !c.All {
			continue
		}
		fmt.Printf("%s %s\n", statusBox(item.Status), item.Question.Text)
		shown++
	}
	if shown == 0 {
		fmt.Println("NO OBJECTIVES SCHEDULED")
		return nil
	}

	pending := scheduler.PendingCount(items)
	fmt.Printf("\nPending: %d\n", pending)
	return nil
}

func statusBox(s scheduler.Status) string {
	switch s {
	case scheduler.StatusAnsweredYes:
		return "[✓]"
	case scheduler.StatusAnsweredNo:
		return "[✗]"
	case scheduler.StatusOffSchedule:
		return "[-]"
	default:
		return "[ ]"
	}
}
