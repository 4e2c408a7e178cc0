package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/mvwi/icheckout/internal/config"
	"github.com/mvwi/icheckout/internal/git"
	"github.com/mvwi/icheckout/internal/logging"
)

// cmdContext holds resolved repo info, config and the debug logger.
type cmdContext struct {
	Config   *config.Config
	RepoName string
	TopLevel string
	GitDir   string
	Logger   *slog.Logger

	logCloser io.Closer
}

// newContext builds shared context from the current repo. Outside a
// repository TopLevel and GitDir stay empty; the run itself reports that.
func newContext(ctx context.Context, client *git.Client) (*cmdContext, error) {
	top, _ := client.TopLevel(ctx)
	gitDir, _ := client.GitDir(ctx)
	repo := git.RepoName(top)

	cfg, err := config.Load(top, repo)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		Enabled:    cfg.IsDebug(),
		Path:       cfg.EffectiveLogFile(gitDir),
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return nil, err
	}

	return &cmdContext{
		Config:    cfg,
		RepoName:  repo,
		TopLevel:  top,
		GitDir:    gitDir,
		Logger:    logger,
		logCloser: closer,
	}, nil
}

// Close flushes the debug log.
func (c *cmdContext) Close() error {
	return c.logCloser.Close()
}
