package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/api"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/config"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/infrastructure"
)

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "zelda",
		Short:         "Batch extraction pipeline for scanned annual reports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(runCommand())
	root.AddCommand(scoreCommand())
	root.AddCommand(gateCommand())

	return root
}

// pipeline bundles everything a CLI command needs: the loaded config, the
// started infrastructure, and the assembled domain systems.
type pipeline struct {
	cfg    *config.Config
	infra  *infrastructure.Infrastructure
	domain *api.Domain
}

func openPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	domain, err := api.NewDomain(cfg, api.NewRuntime(cfg, infra))
	if err != nil {
		return nil, err
	}

	return &pipeline{cfg: cfg, infra: infra, domain: domain}, nil
}

func (p *pipeline) close() {
	if err := p.infra.Lifecycle.Shutdown(p.cfg.ShutdownTimeoutDuration()); err != nil {
		p.infra.Logger.Warn("shutdown incomplete", "error", err)
	}
}
