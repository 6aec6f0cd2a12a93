package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/workhive/workhive/internal/config"
	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/extraction"
	"github.com/workhive/workhive/internal/matching"
	"github.com/workhive/workhive/internal/observability"
	"github.com/workhive/workhive/internal/skills"
	"github.com/workhive/workhive/internal/textgen"
)

var (
	matchResumePath  string
	matchPage        int
	matchSearch      string
	matchArrangement string
	matchShowSkills  bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume PDF against the job corpus",
	Long:  `Extract skills from a resume PDF and rank the stored job corpus against them, without going through the API.`,
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchResumePath, "resume", "", "Path to the resume PDF (required)")
	matchCmd.Flags().IntVar(&matchPage, "page", 1, "Result page")
	matchCmd.Flags().StringVar(&matchSearch, "search", "", "Corpus search filter")
	matchCmd.Flags().StringVar(&matchArrangement, "work-arrangement", "", "Corpus work arrangement filter")
	matchCmd.Flags().BoolVar(&matchShowSkills, "show-skills", false, "Also print the extracted skill set")
	_ = matchCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(matchCmd)
}

// staticResume serves one pre-extracted resume text for any user ID.
type staticResume struct {
	text string
}

func (s staticResume) GetResumeText(_ context.Context, _ uuid.UUID) (string, error) {
	return s.text, nil
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewAppConfig()
	if err != nil {
		return err
	}

	resumeText, err := extraction.File(matchResumePath)
	if err != nil {
		return err
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := textgen.NewClient(cmd.Context(), textgen.Config{
		Provider: textgen.Provider(cfg.SkillServiceProvider),
		BaseURL:  cfg.SkillServiceURL,
		APIKey:   cfg.GeminiAPIKey,
		Timeout:  cfg.SkillServiceTimeout,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	extractor := skills.NewExtractor(client, skills.ExtractorConfig{
		Attempts: cfg.SkillServiceRetries,
		Timeout:  cfg.SkillServiceTimeout,
	})

	printer := observability.NewPrinter(os.Stdout)
	if matchShowSkills {
		ext, err := extractor.Extract(cmd.Context(), resumeText)
		if err != nil {
			return err
		}
		printer.PrintSkills(&ext)
	}

	pipeline := matching.NewPipeline(database, staticResume{text: resumeText}, extractor, matching.Config{
		Threshold: cfg.MatchThreshold,
		PageSize:  cfg.MatchPageSize,
		Workers:   cfg.MatchWorkers,
	})

	resp, err := pipeline.Match(cmd.Context(), uuid.Nil, db.JobFilters{
		Search:          matchSearch,
		WorkArrangement: matchArrangement,
	}, matchPage, cfg.MatchPageSize)
	if err != nil {
		return err
	}

	printer.PrintMatches(resp)
	return nil
}
