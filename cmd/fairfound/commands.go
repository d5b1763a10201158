package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fadilmartias/fairfound-coach/internal/dto"
	"github.com/fadilmartias/fairfound-coach/internal/gateway"
	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/pipeline"
	"github.com/fadilmartias/fairfound-coach/internal/util"
	"github.com/spf13/cobra"
)

func loadProfile(path string) (model.Profile, error) {
	if path == "" {
		return model.Profile{}, fmt.Errorf("--profile is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	var req dto.ProfileRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return model.Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		for field, msg := range errs {
			printWarning("%s: %s", field, msg)
		}
		return model.Profile{}, fmt.Errorf("profile is invalid")
	}
	return req.ToModel(), nil
}

func setup(cmd *cobra.Command) (*gateway.Gateway, model.Profile, logger.Logger, error) {
	path, _ := cmd.Flags().GetString("profile")
	p, err := loadProfile(path)
	if err != nil {
		return nil, p, nil, err
	}
	if resume, _ := cmd.Flags().GetString("resume"); resume != "" {
		data, err := os.ReadFile(resume)
		if err != nil {
			return nil, p, nil, fmt.Errorf("reading resume: %w", err)
		}
		text, err := util.ExtractResumeText(resume, data)
		if err != nil {
			return nil, p, nil, err
		}
		p.Bio = text
	}

	log := logger.New(logLevel, "console")
	gw, err := newGateway(cmd.Context(), log)
	if err != nil {
		return nil, p, nil, err
	}
	if !gw.Online() {
		printWarning("no API key configured, showing sample output")
	}
	return gw, p, log, nil
}

// --- analyze ---

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyse a profile and build a roadmap for its skill gaps",
		Long: `Analyse a profile and build a roadmap for its skill gaps.

Examples:
  fairfound analyze --profile ./me.json
  fairfound analyze --profile ./me.json --json
  fairfound analyze --profile ./me.json --resume ./cv.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, p, log, err := setup(cmd)
			if err != nil {
				return err
			}

			o := pipeline.NewOrchestrator(gw, nil, nil, log)
			s, err := o.Run(cmd.Context(), pipeline.NewSession("cli"), p)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			if asJSON {
				return writeJSON(cmd, s)
			}
			printSession(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().String("profile", "", "path to a profile JSON file")
	cmd.Flags().String("resume", "", "resume (.pdf, .docx, .txt) used as the profile bio")
	return cmd
}

// --- proposal ---

func newProposalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Write a job proposal for a profile",
		Long: `Write a job proposal for a profile.

Examples:
  fairfound proposal --profile ./me.json --job "Build a Next.js storefront" --tone Confident --client Acme`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, _ := cmd.Flags().GetString("job")
			tone, _ := cmd.Flags().GetString("tone")
			client, _ := cmd.Flags().GetString("client")
			if job == "" {
				return fmt.Errorf("--job is required")
			}

			gw, p, _, err := setup(cmd)
			if err != nil {
				return err
			}
			text := gw.GenerateProposal(cmd.Context(), p, job, tone, client)
			if asJSON {
				return writeJSON(cmd, dto.ProposalResponse{Proposal: text})
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().String("profile", "", "path to a profile JSON file")
	cmd.Flags().String("job", "", "job description")
	cmd.Flags().String("tone", "Professional", "tone of voice")
	cmd.Flags().String("client", "", "client name")
	return cmd
}

// --- portfolio ---

func newPortfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Generate portfolio copy for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, p, _, err := setup(cmd)
			if err != nil {
				return err
			}
			content, err := gw.EnhancePortfolio(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("portfolio generation failed: %w", err)
			}
			if asJSON {
				return writeJSON(cmd, content)
			}
			printPortfolio(cmd.OutOrStdout(), content)
			return nil
		},
	}
	cmd.Flags().String("profile", "", "path to a profile JSON file")
	return cmd
}
