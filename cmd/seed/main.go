package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/logging"
)

func main() {
	config.LoadEnvFiles()
	defaultFile := os.Getenv("BOOKS_FILE")
	if defaultFile == "" {
		defaultFile = "library.json"
	}

	var (
		count = flag.Int("count", 50, "Number of books to generate")
		file  = flag.String("file", defaultFile, "Storage file to append to")
	)
	flag.Parse()

	slog.SetDefault(logging.New(os.Stderr, slog.LevelInfo))

	if err := seed(context.Background(), book.NewJSONFileRepo(*file), *count, rand.New(rand.NewSource(rand.Int63()))); err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, repo *book.JSONFileRepo, count int, rng *rand.Rand) error {
	if err := repo.Init(ctx); err != nil {
		return err
	}

	genres := []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	authors := []string{"Herbert", "Austen", "Le Guin", "Tolstoy", "Morrison", "Borges", "Calvino", "Lem", "Atwood", "Achebe"}

	slog.InfoContext(ctx, "generating books", "count", count, "file", repo.Path())
	for i := 0; i < count; i++ {
		b, err := repo.Create(ctx, book.Draft{
			Name:   fmt.Sprintf("%s %s", randomWord(rng), randomWord(rng)),
			Author: authors[rng.Intn(len(authors))],
			Genre:  genres[rng.Intn(len(genres))],
		})
		if err != nil {
			return fmt.Errorf("create book %d: %w", i+1, err)
		}
		if (i+1)%10 == 0 {
			slog.InfoContext(ctx, "progress", "created", i+1, "last_id", b.ID)
		}
	}

	books, err := repo.List(ctx)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "seed complete", "total", len(books))
	return nil
}

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}
