package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/constants"
	apperrors "github.com/julianstephens/alog/internal/errors"
	"github.com/julianstephens/alog/internal/insight"
)

type InsightCmd struct {
	Model   string        `help:"Model name (default from settings)."`
	Timeout time.Duration `help:"Request timeout." default:"60s"`
	DryRun  bool          `help:"Print the prompt instead of sending it."`
	BaseURL string        `help:"API base URL." default:"https://generativelanguage.googleapis.com" hidden:""`
}

func (c *InsightCmd) Run(ctx *cli.Context) error {
	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}
	today := ctx.Today()

	if c.DryRun {
		digest := insight.BuildDigest(j.Questions(), j.Log(), today, constants.InsightDigestDays)
		fmt.Println(insight.BuildPrompt(digest))
		return nil
	}

	key, err := cli.ResolveAPIKey()
	if err != nil {
		return err
	}
	if key == "" {
		return apperrors.WithHint(insight.ErrNoAPIKey,
			fmt.Sprintf("export %s or run '%s keyring set-api-key'", constants.EnvAPIKey, constants.AppName))
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	model := c.Model
	if model == "" {
		model = settings.InsightModel
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Println("ANALYZING LOGS...")
	client := insight.NewGeminiClient(key, model)
	if c.BaseURL != "" {
		client.BaseURL = c.BaseURL
	}
	text, err := insight.Report(reqCtx, client, j.Questions(), j.Log(), today)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(text)
	return nil
}
