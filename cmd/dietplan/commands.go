package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/dietplan/internal/domain/profile"
	"github.com/tesso57/dietplan/internal/infrastructure/history"
	"github.com/tesso57/dietplan/internal/presentation/tui"
	"github.com/tesso57/dietplan/internal/presentation/web"
)

// TUICmd runs the interactive form.
type TUICmd struct{}

// Run starts the bubbletea program. Logs never go to the terminal here.
func (c *TUICmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g, io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	model := tui.NewModel(a.settings, a.service)
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// GenerateCmd produces one plan from flags.
type GenerateCmd struct {
	Age    int     `help:"Age in years (5-100)" default:"25"`
	Gender string  `help:"Male, Female or Other" default:"Male"`
	Weight float64 `help:"Weight in kg (30-200)" default:"70"`
	Height float64 `help:"Height in cm (120-220)" default:"170"`
	Goal   string  `help:"Weight Loss, Muscle Gain, Healthy Eating or Maintain Weight" default:"Weight Loss"`
	Diet   string  `help:"Vegetarian, Non-Vegetarian, Vegan or Any" default:"Vegetarian"`
	Quiet  bool    `short:"q" help:"Do not print the plan text"`
}

// Run generates, prints and exports the plan.
func (c *GenerateCmd) Run(ctx context.Context, g *Globals) error {
	p, err := c.profile()
	if err != nil {
		return err
	}

	a, err := newApp(g, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	progress := NewProgress(os.Stderr)
	a.service.Progress = progress
	out, err := a.service.Generate(ctx, p)
	progress.Clear()
	if err != nil {
		return err
	}

	if !c.Quiet {
		fmt.Fprintln(os.Stdout, out.Text)
	}
	fmt.Fprintf(os.Stderr, "PDF saved to %s\n", out.PDFPath)
	return nil
}

func (c *GenerateCmd) profile() (profile.Profile, error) {
	gender, err := profile.ParseGender(c.Gender)
	if err != nil {
		return profile.Profile{}, err
	}
	goal, err := profile.ParseGoal(c.Goal)
	if err != nil {
		return profile.Profile{}, err
	}
	diet, err := profile.ParseDietType(c.Diet)
	if err != nil {
		return profile.Profile{}, err
	}
	p := profile.Profile{
		Age:      c.Age,
		Gender:   gender,
		WeightKg: c.Weight,
		HeightCm: c.Height,
		Goal:     goal,
		DietType: diet,
	}
	return p, p.Validate()
}

// ServeCmd runs the web surface.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)"`
}

// Run serves until interrupted.
func (c *ServeCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	cfg := a.settings.Server
	if strings.TrimSpace(c.Addr) != "" {
		cfg.Addr = c.Addr
	}

	var hist web.PlanHistory
	if a.history != nil {
		hist = a.history
	}
	srv := web.NewServer(cfg, a.service, hist, a.exporter.Path(), a.service.ProviderIDs(), a.logger)
	err = srv.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// HistoryCmd lists stored plans.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Number of plans to list" default:"10"`
	Show  string `help:"Print the full document of the plan with this id"`
}

// Run prints the plan list or one document.
func (c *HistoryCmd) Run(g *Globals) error {
	a, err := newApp(g, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if a.history == nil {
		return errors.New("plan history is disabled")
	}
	return c.print(os.Stdout, a.history)
}

func (c *HistoryCmd) print(w io.Writer, store *history.Store) error {
	if c.Show != "" {
		record, err := store.Get(c.Show)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, record.Document)
		return err
	}

	records, err := store.List(c.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, err = fmt.Fprintln(w, "No plans yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tPROVIDERS\tPOLICY\tPDF")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			strings.Join(r.Providers, ","),
			r.Policy,
			r.PDFPath,
		)
	}
	return tw.Flush()
}
