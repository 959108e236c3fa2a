// Command smoke runs end-to-end checks against a live history service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"quoridor-history/internal/api"
	"quoridor-history/internal/domain"
	"quoridor-history/internal/logger"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type scenario struct {
	name string
	run  func(ctx context.Context, c *api.Client) error
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the service")
	concurrency := flag.Int("concurrency", 10, "parallel game creates in the race check")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	log := logger.SetLevel(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, zerolog.InfoLevel)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := api.NewClient(*baseURL)
	for _, s := range scenarios(*concurrency) {
		start := time.Now()
		if err := s.run(ctx, client); err != nil {
			log.Error().Err(err).Str("scenario", s.name).Msg("FAIL")
			os.Exit(1)
		}
		log.Info().Str("scenario", s.name).Dur("took", time.Since(start)).Msg("PASS")
	}
	log.Info().Str("url", *baseURL).Msg("all scenarios passed")
}

func scenarios(concurrency int) []scenario {
	return []scenario{
		{"root says hello", checkRoot},
		{"status check round trip", checkStatusRoundTrip},
		{"game numbers increment", checkIncrement},
		{"games listed newest first", checkDescending},
		{"missing game_mode rejected", checkValidation},
		{"concurrent creates get distinct numbers", func(ctx context.Context, c *api.Client) error {
			return checkConcurrent(ctx, c, concurrency)
		}},
	}
}

func checkRoot(ctx context.Context, c *api.Client) error {
	msg, err := c.Root(ctx)
	if err != nil {
		return err
	}
	if msg.Message != "Hello World" {
		return fmt.Errorf("unexpected message %q", msg.Message)
	}
	return nil
}

func checkStatusRoundTrip(ctx context.Context, c *api.Client) error {
	created, err := c.CreateStatusCheck(ctx, "smoke")
	if err != nil {
		return err
	}
	checks, err := c.ListStatusChecks(ctx)
	if err != nil {
		return err
	}
	for _, check := range checks {
		if check.ID == created.ID {
			return nil
		}
	}
	return fmt.Errorf("status check %s not listed", created.ID)
}

func checkIncrement(ctx context.Context, c *api.Client) error {
	first, err := c.CreateGameResult(ctx, "SmokeA", domain.GameModeLocal)
	if err != nil {
		return err
	}
	second, err := c.CreateGameResult(ctx, "SmokeB", domain.GameModeAI)
	if err != nil {
		return err
	}
	if second.GameNumber != first.GameNumber+1 {
		return fmt.Errorf("expected %d after %d, got %d", first.GameNumber+1, first.GameNumber, second.GameNumber)
	}
	return nil
}

func checkDescending(ctx context.Context, c *api.Client) error {
	games, err := c.ListGameResults(ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return errors.New("no games listed")
	}
	for i := 1; i < len(games); i++ {
		if games[i-1].GameNumber < games[i].GameNumber {
			return fmt.Errorf("game %d listed before %d", games[i-1].GameNumber, games[i].GameNumber)
		}
	}
	return nil
}

func checkValidation(ctx context.Context, c *api.Client) error {
	before, err := c.ListGameResults(ctx)
	if err != nil {
		return err
	}

	err = c.PostRaw(ctx, "/api/games", map[string]string{"winner_name": "Alice"})
	var serr *api.StatusError
	if !errors.As(err, &serr) || serr.Code != http.StatusUnprocessableEntity {
		return fmt.Errorf("expected 422, got %v", err)
	}

	after, err := c.ListGameResults(ctx)
	if err != nil {
		return err
	}
	if len(after) != len(before) {
		return fmt.Errorf("rejected request changed the game list from %d to %d entries", len(before), len(after))
	}
	if len(after) > 0 && after[0].GameNumber != before[0].GameNumber {
		return fmt.Errorf("rejected request created game %d", after[0].GameNumber)
	}
	return nil
}

func checkConcurrent(ctx context.Context, c *api.Client, n int) error {
	numbers := make([]int64, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			game, err := c.CreateGameResult(gctx, fmt.Sprintf("Racer%d", i), domain.GameModeLocal)
			if err != nil {
				return err
			}
			numbers[i] = game.GameNumber
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slices.Sort(numbers)
	if len(slices.Compact(slices.Clone(numbers))) != n {
		return fmt.Errorf("duplicate game numbers in %v", numbers)
	}
	return nil
}
