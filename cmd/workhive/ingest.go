package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/workhive/workhive/internal/config"
	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/fetch"
	"github.com/workhive/workhive/internal/ingest"
	"github.com/workhive/workhive/internal/observability"
)

var (
	ingestVerbose bool

	adzunaWhat    string
	adzunaWhere   string
	adzunaPages   int
	adzunaPerPage int

	scrapeBrowser   bool
	scrapeSkipCache bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Pull job postings into the corpus",
}

var adzunaCmd = &cobra.Command{
	Use:   "adzuna",
	Short: "Pull postings from the Adzuna search API",
	Long:  `Fetch pages of search results from Adzuna, normalize them, and upsert them into the job corpus. Requires ADZUNA_APP_ID and ADZUNA_APP_KEY.`,
	RunE:  runIngestAdzuna,
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape URL...",
	Short: "Scrape hosted job board postings",
	Long:  `Fetch one or more job board posting pages (Greenhouse, Lever, Workable), extract the posting, and upsert it into the job corpus. Pages are cached in the database.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngestScrape,
}

func init() {
	ingestCmd.PersistentFlags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Log each written posting")

	adzunaCmd.Flags().StringVar(&adzunaWhat, "what", "", "Search keywords")
	adzunaCmd.Flags().StringVar(&adzunaWhere, "where", "", "Location filter")
	adzunaCmd.Flags().IntVar(&adzunaPages, "pages", 1, "Number of result pages to fetch")
	adzunaCmd.Flags().IntVar(&adzunaPerPage, "per-page", ingest.DefaultAdzunaPageSize, "Results per page")

	scrapeCmd.Flags().BoolVar(&scrapeBrowser, "browser", false, "Render JavaScript-heavy pages with headless Chrome")
	scrapeCmd.Flags().BoolVar(&scrapeSkipCache, "no-cache", false, "Bypass the page cache")

	ingestCmd.AddCommand(adzunaCmd)
	ingestCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestAdzuna(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewAppConfig()
	if err != nil {
		return err
	}

	client, err := ingest.NewAdzunaClient(ingest.AdzunaConfig{
		AppID:  cfg.AdzunaAppID,
		AppKey: cfg.AdzunaAppKey,
	})
	if err != nil {
		return err
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	inputs, fetchErrs := client.FetchPages(cmd.Context(), ingest.SearchQuery{
		What:           adzunaWhat,
		Where:          adzunaWhere,
		ResultsPerPage: adzunaPerPage,
	}, 1, adzunaPages)

	summary := ingest.NewIngestor(database, ingestVerbose).Run(cmd.Context(), inputs)
	for _, err := range fetchErrs {
		summary.Failed++
		summary.Errors = append(summary.Errors, err.Error())
	}

	observability.NewPrinter(os.Stdout).PrintIngestSummary(summary)
	if summary.Written == 0 && summary.Failed > 0 {
		return fmt.Errorf("ingestion wrote nothing")
	}
	return nil
}

func runIngestScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewAppConfig()
	if err != nil {
		return err
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	fetcher := fetch.NewCachedFetcher(database, &fetch.CachedFetcherConfig{
		SkipCache: scrapeSkipCache,
	})
	scraper := ingest.NewBoardScraper(fetcher, ingest.BoardScraperConfig{
		EnableBrowser: scrapeBrowser,
		Verbose:       ingestVerbose,
	})

	var (
		inputs    []db.JobCreateInput
		scrapeErr []string
	)
	for _, postingURL := range args {
		input, err := scraper.Scrape(cmd.Context(), postingURL)
		if err != nil {
			scrapeErr = append(scrapeErr, err.Error())
			continue
		}
		inputs = append(inputs, *input)
	}

	summary := ingest.NewIngestor(database, ingestVerbose).Run(cmd.Context(), inputs)
	summary.Failed += len(scrapeErr)
	summary.Errors = append(summary.Errors, scrapeErr...)

	observability.NewPrinter(os.Stdout).PrintIngestSummary(summary)
	if summary.Written == 0 && summary.Failed > 0 {
		return fmt.Errorf("ingestion wrote nothing")
	}
	return nil
}
