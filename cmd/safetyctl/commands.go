package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/heartmarshall/safetylog-backend/internal/client"
	"github.com/heartmarshall/safetylog-backend/internal/selection"
)

type establishmentAPI interface {
	ListEstablishments(ctx context.Context) ([]client.Establishment, error)
	GetEstablishment(ctx context.Context, id uuid.UUID) (*client.Establishment, error)
}

type commands struct {
	api   establishmentAPI
	state *selection.State
	out   io.Writer
}

func (c *commands) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "list":
		return c.list(ctx)
	case "select":
		if len(args) != 1 {
			return fmt.Errorf("usage: safetyctl select ID")
		}
		return c.selectEstablishment(ctx, args[0])
	case "unselect":
		return c.unselect(ctx)
	case "year":
		if len(args) == 0 {
			fmt.Fprintln(c.out, c.state.Year())
			return nil
		}
		return c.setYear(ctx, args[0])
	case "status":
		return c.status(ctx)
	default:
		return fmt.Errorf("unknown command: %s", name)
	}
}

func (c *commands) list(ctx context.Context) error {
	items, err := c.api.ListEstablishments(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "No establishments.")
		return nil
	}

	selected := c.state.EstablishmentID()
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tNAME\tCITY\tSTATE\tEMPLOYEES")
	for _, e := range items {
		marker := ""
		if selected != nil && *selected == e.ID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", marker, e.ID, e.Name, e.City, e.State, e.AverageEmployees)
	}
	return w.Flush()
}

// selectEstablishment stores the id without asking the server whether it
// exists; status reports stale selections later.
func (c *commands) selectEstablishment(ctx context.Context, raw string) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid establishment id %q", raw)
	}
	if err := c.state.SetEstablishment(ctx, &id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Selected establishment %s.\n", id)
	return nil
}

func (c *commands) unselect(ctx context.Context) error {
	if err := c.state.SetEstablishment(ctx, nil); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Selection cleared.")
	return nil
}

func (c *commands) setYear(ctx context.Context, raw string) error {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid year %q", raw)
	}
	if err := c.state.SetYear(ctx, year); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Reporting year set to %d.\n", year)
	return nil
}

func (c *commands) status(ctx context.Context) error {
	snap := c.state.Snapshot()
	fmt.Fprintf(c.out, "Year:          %d\n", snap.Year)

	if snap.EstablishmentID == nil {
		fmt.Fprintln(c.out, "Establishment: none selected")
		return nil
	}

	e, err := c.api.GetEstablishment(ctx, *snap.EstablishmentID)
	switch {
	case client.IsNotFound(err):
		fmt.Fprintf(c.out, "Establishment: %s (stale: no longer exists or not yours)\n", snap.EstablishmentID)
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(c.out, "Establishment: %s (%s, %s %s)\n", e.Name, e.ID, e.City, e.State)
	return nil
}
