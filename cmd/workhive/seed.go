package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/workhive/workhive/internal/config"
	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/ingest"
	"github.com/workhive/workhive/internal/observability"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small set of sample jobs",
	Long:  `Insert a handful of sample postings into the corpus for local development. Re-running refreshes the same rows.`,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedJobs() []db.JobCreateInput {
	str := func(s string) *string { return &s }
	num := func(f float64) *float64 { return &f }

	return []db.JobCreateInput{
		{
			JobTitle:         "Senior Backend Engineer",
			CompanyName:      "Hivemind Labs",
			Location:         str("London"),
			WorkArrangement:  str("hybrid"),
			EmploymentType:   str("fullTime"),
			ExperienceLevel:  str("senior"),
			Industry:         str("Technology"),
			ShortDescription: str("Build Go and PostgreSQL services powering our matching platform. Experience with Docker and AWS is a plus."),
			SalaryMin:        num(80000),
			SalaryMax:        num(105000),
			Source:           "seed",
			SourceJobID:      str("seed-1"),
		},
		{
			JobTitle:         "Frontend Developer",
			CompanyName:      "Brightpath",
			Location:         str("Remote"),
			WorkArrangement:  str("remote"),
			EmploymentType:   str("fullTime"),
			ExperienceLevel:  str("mid"),
			Industry:         str("Technology"),
			ShortDescription: str("React and TypeScript developer for our customer dashboard. CSS craftsmanship valued."),
			SalaryMin:        num(55000),
			SalaryMax:        num(70000),
			Source:           "seed",
			SourceJobID:      str("seed-2"),
		},
		{
			JobTitle:         "Data Analyst",
			CompanyName:      "Northwind Finance",
			Location:         str("Manchester"),
			WorkArrangement:  str("onSite"),
			EmploymentType:   str("fullTime"),
			ExperienceLevel:  str("entry"),
			Industry:         str("Finance"),
			ShortDescription: str("SQL and Python analysis of trading data. Excel wizardry welcome."),
			SalaryMin:        num(32000),
			SalaryMax:        num(40000),
			Source:           "seed",
			SourceJobID:      str("seed-3"),
		},
		{
			JobTitle:         "DevOps Engineer (Contract)",
			CompanyName:      "Cloudforge",
			Location:         str("Remote"),
			WorkArrangement:  str("remote"),
			EmploymentType:   str("contract"),
			ExperienceLevel:  str("senior"),
			Industry:         str("Technology"),
			ShortDescription: str("Six month contract. Kubernetes, Terraform, and CI/CD pipeline work on AWS."),
			Source:           "seed",
			SourceJobID:      str("seed-4"),
		},
		{
			JobTitle:         "Marketing Intern",
			CompanyName:      "Fieldnote Media",
			Location:         str("Bristol"),
			WorkArrangement:  str("flexTime"),
			EmploymentType:   str("internship"),
			ExperienceLevel:  str("entry"),
			Industry:         str("Marketing"),
			ShortDescription: str("Support campaign planning and social media content. Communication and writing skills essential."),
			Source:           "seed",
			SourceJobID:      str("seed-5"),
		},
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewAppConfig()
	if err != nil {
		return err
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	summary := ingest.NewIngestor(database, true).Run(cmd.Context(), seedJobs())
	observability.NewPrinter(os.Stdout).PrintIngestSummary(summary)
	return nil
}
