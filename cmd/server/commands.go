package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/user/films/internal/middleware"
	"github.com/user/films/internal/model"
	"github.com/user/films/internal/repository"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%s)\n", a.cfg.DBDriver)
			return nil
		},
	}
}

func newFilmsCommand() *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "films",
		Short: "Print a page of films",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			repos := repository.NewRepositories(db)
			total, err := repos.Film.Count(cmd.Context())
			if err != nil {
				return err
			}
			films, err := repos.Film.List(cmd.Context(), offset, limit)
			if errors.Is(err, repository.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No films (total %d)\n", total)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderFilms(model.NewFilmPublicList(films)))
			fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d\n", len(films), total)
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 10, "Rows to show")
	return cmd
}

func newTokenCommand() *cobra.Command {
	var subject string
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for write endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			if !a.cfg.AuthEnabled() {
				return errors.New("AUTH_SECRET is not set")
			}
			if expiry <= 0 {
				expiry = a.cfg.TokenExpiry
			}
			token, err := middleware.GenerateToken(subject, middleware.RoleEditor, a.cfg.AuthSecret, expiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "cli", "Token subject")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "Token lifetime (defaults to TOKEN_EXPIRY)")
	return cmd
}

func renderFilms(films []model.FilmPublic) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Name", "Released", "Duration", "Rating"})
	for _, f := range films {
		tw.AppendRow(table.Row{
			f.ID,
			f.Name,
			f.ReleaseDate,
			strconv.Itoa(f.Duration) + " min",
			strconv.FormatFloat(f.Rating, 'f', 1, 64),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}
