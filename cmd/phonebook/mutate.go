package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := entryFromFlags(cmd)
		if err != nil {
			return err
		}
		return apply(cmd, domain.Create(e))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the entry with the given id (inserting it if missing)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := entryFromFlags(cmd)
		if err != nil {
			return err
		}
		return apply(cmd, domain.Update(e))
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the entry with the given id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("id") {
			return errors.New("--id is required")
		}
		id, _ := cmd.Flags().GetInt("id")
		return apply(cmd, domain.Delete(domain.Entry{ID: id}))
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace all entries with the built-in seed list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return apply(cmd, domain.Reset())
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, updateCmd} {
		c.Flags().Int("id", 0, "Entry id (caller-assigned, must be unique)")
		c.Flags().String("first", "", "First name")
		c.Flags().String("last", "", "Last name")
		c.Flags().String("phone", "", "Phone number")
		rootCmd.AddCommand(c)
	}
	deleteCmd.Flags().Int("id", 0, "Entry id")
	rootCmd.AddCommand(deleteCmd, resetCmd)
}

func entryFromFlags(cmd *cobra.Command) (domain.Entry, error) {
	flags := cmd.Flags()
	if !flags.Changed("id") {
		return domain.Entry{}, errors.New("--id is required")
	}
	id, _ := flags.GetInt("id")
	first, _ := flags.GetString("first")
	last, _ := flags.GetString("last")
	phone, _ := flags.GetString("phone")
	return domain.Entry{ID: id, FirstName: first, LastName: last, PhoneNumber: phone}, nil
}

// apply runs one READ → ev → FINISH cycle and reports what changed.
func apply(cmd *cobra.Command, ev domain.Event) error {
	ctx := cmd.Context()

	var storageErr error
	a, err := newApp(ctx, cmd, domain.LifecycleHooks{
		OnStorageError: func(_ context.Context, e *domain.StorageErrorEvent) {
			if e.Op == domain.StorageOpWrite {
				storageErr = e.Err
			}
		},
	})
	if err != nil {
		return err
	}
	defer a.Close()

	before := a.book.Load(ctx)
	if !a.book.Apply(ctx, ev) {
		return fmt.Errorf("%s was rejected in state %s", ev.Type, before.State)
	}
	if storageErr != nil {
		return fmt.Errorf("%s applied in memory but not saved: %w", ev.Type, storageErr)
	}

	after := a.book.Snapshot()
	diff := domain.Diff(&before, &after)

	out := cmd.OutOrStdout()
	if diff == nil || len(diff.Added)+len(diff.Changed)+len(diff.Removed) == 0 {
		fmt.Fprintln(out, "no changes")
		return nil
	}
	for _, e := range diff.Added {
		fmt.Fprintf(out, "added   %d %s, %s %s\n", e.ID, e.LastName, e.FirstName, e.PhoneNumber)
	}
	for _, e := range diff.Changed {
		fmt.Fprintf(out, "updated %d %s, %s %s\n", e.ID, e.LastName, e.FirstName, e.PhoneNumber)
	}
	for _, e := range diff.Removed {
		fmt.Fprintf(out, "removed %d %s, %s\n", e.ID, e.LastName, e.FirstName)
	}
	return nil
}
