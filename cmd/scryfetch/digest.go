package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/janiskrasemann/scryfetch/internal/config"
	"github.com/janiskrasemann/scryfetch/internal/digest"
	"github.com/janiskrasemann/scryfetch/internal/mailer"
	"github.com/janiskrasemann/scryfetch/internal/renderer"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

//go:embed templates/digest.html
var digestHTML string

//go:embed templates/digest.txt
var digestText string

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Email a digest of the configured card watchlist",
	Long: `Digest looks up every card in the config's watchlist, renders the
results and emails them via Resend. By default it runs on the cron schedule
from the config until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		once, _ := cmd.Flags().GetBool("once")
		preview, _ := cmd.Flags().GetBool("preview")

		cfg, catalog, lookup, err := setup()
		if err != nil {
			return err
		}

		rend, err := renderer.New(digestHTML, digestText)
		if err != nil {
			return fmt.Errorf("initializing renderer: %w", err)
		}

		job := digest.New(catalog, lookup, cfg.Watchlist)
		if len(job.Watchlist()) == 0 {
			log.Println("Watchlist is empty, the digest will only contain the catalog size")
		}

		if preview {
			return previewDigest(cmd.Context(), job, rend, cfg.Edition+1)
		}

		mail := mailer.New(cfg.Email.From, cfg.Email.To, cfg.Email.ResendAPIKey)

		runDigest := func() error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			return sendDigest(ctx, job, rend, mail, configPath)
		}

		if once {
			return runDigest()
		}

		c := cron.New()
		if _, err := c.AddFunc(cfg.Schedule, func() {
			if err := runDigest(); err != nil {
				log.Printf("Digest failed: %v", err)
			}
		}); err != nil {
			return fmt.Errorf("adding cron schedule %q: %w", cfg.Schedule, err)
		}
		c.Start()

		log.Printf("scryfetch digest started. Schedule: %s", cfg.Schedule)

		<-cmd.Context().Done()

		log.Println("Shutting down...")
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)

	digestCmd.Flags().Bool("once", false, "run once immediately and exit")
	digestCmd.Flags().Bool("preview", false, "render the digest and open the HTML in a browser instead of sending email")
}

type digestSender interface {
	Send(ctx context.Context, email *renderer.RenderedEmail, edition int) error
}

// sendDigest collects, renders and mails one digest, then bumps the edition
// counter in the config file at path.
func sendDigest(ctx context.Context, job *digest.Job, rend *renderer.Renderer, mail digestSender, path string) error {
	log.Println("Starting digest generation...")

	// Reload config to get current edition number
	latestCfg, err := config.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	edition := latestCfg.Edition + 1

	results := job.Collect(ctx)
	ok, failed := digest.Summary(results)
	log.Printf("Collected %d results (%d failed)", ok+failed, failed)

	email, err := rend.Render(results, edition)
	if err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}

	if err := mail.Send(ctx, email, edition); err != nil {
		return fmt.Errorf("sending digest: %w", err)
	}

	if err := config.IncrementEdition(path); err != nil {
		log.Printf("Failed to update edition counter: %v", err)
	}

	log.Printf("Digest #%d sent successfully!", edition)
	return nil
}

func previewDigest(ctx context.Context, job *digest.Job, rend *renderer.Renderer, edition int) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	email, err := rend.Render(job.Collect(ctx), edition)
	if err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}

	f, err := os.CreateTemp("", "scryfetch-digest-*.html")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := f.WriteString(email.HTML); err != nil {
		f.Close()
		return fmt.Errorf("writing HTML: %w", err)
	}
	f.Close()

	log.Printf("HTML written to %s", f.Name())

	opener := "open"
	if runtime.GOOS == "linux" {
		opener = "xdg-open"
	}
	if err := exec.Command(opener, f.Name()).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
	return nil
}
