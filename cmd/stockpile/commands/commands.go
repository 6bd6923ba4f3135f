package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rl1809/stockpile/internal/adapter/storage"
	"github.com/rl1809/stockpile/internal/core/service"
	"github.com/rl1809/stockpile/internal/infrastructure/config"
	"github.com/rl1809/stockpile/internal/infrastructure/logger"
)

// session wires the store for a single command invocation. Opening a
// session loads the inventory document; a corrupt or unreadable file
// fails the open, which cobra turns into a non-zero exit. A missing file
// is a fresh start and does not fail.
type session struct {
	cfg *config.Config
	log *logger.Logger
	inv *service.InventoryService
}

func openSession(file string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if file == "" {
		file = cfg.Store.File
	}

	repo := storage.NewJSONFileAdapter(file)
	inv := service.NewInventoryService(repo, appLogger)

	if err := inv.Load(context.Background(), ""); err != nil {
		return nil, err
	}

	return &session{cfg: cfg, log: appLogger, inv: inv}, nil
}

// save persists the inventory. Save failures are recoverable: they are
// reported but leave the exit status untouched, so the caller may fix
// the path or permissions and retry.
func (s *session) save(cmd *cobra.Command) {
	if err := s.inv.Save(context.Background(), ""); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
	}
}

// lastActivity prints the timestamped log line of the mutation that just
// happened, e.g. "2026-03-14T09:30:00Z: Added 10 of apple".
func (s *session) lastActivity(cmd *cobra.Command) {
	if entries := s.inv.Activity(); len(entries) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), entries[len(entries)-1].String())
	}
}

func parseQuantity(cmd *cobra.Command, raw string) (int, bool) {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: quantity %q must be a positive integer.\n", raw)
		return 0, false
	}
	return qty, true
}

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <item> <quantity>",
		Short: "Add stock for an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			qty, ok := parseQuantity(cmd, args[1])
			if !ok {
				return nil
			}

			sess, err := openSession(file)
			if err != nil {
				return err
			}
			defer sess.log.Close()

			if err := sess.inv.Add(args[0], qty); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
				return nil
			}

			sess.lastActivity(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Current stock of %s: %d\n", args[0], sess.inv.Quantity(args[0]))
			sess.save(cmd)
			return nil
		},
	}

	cmd.Flags().String("file", "", "Inventory file (defaults to configured path)")
	return cmd
}

// NewRemoveCommand creates the remove command
func NewRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <item> <quantity>",
		Short: "Remove stock for an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			qty, ok := parseQuantity(cmd, args[1])
			if !ok {
				return nil
			}

			sess, err := openSession(file)
			if err != nil {
				return err
			}
			defer sess.log.Close()

			remaining, err := sess.inv.Remove(args[0], qty)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
				return nil
			}

			sess.lastActivity(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Current stock of %s: %d\n", args[0], remaining)
			if remaining == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Info: %q is now out of stock and has been removed.\n", args[0])
			}
			sess.save(cmd)
			return nil
		},
	}

	cmd.Flags().String("file", "", "Inventory file (defaults to configured path)")
	return cmd
}

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <item>",
		Short: "Print the current quantity of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			sess, err := openSession(file)
			if err != nil {
				return err
			}
			defer sess.log.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", args[0], sess.inv.Quantity(args[0]))
			return nil
		},
	}

	cmd.Flags().String("file", "", "Inventory file (defaults to configured path)")
	return cmd
}

// NewLowCommand creates the low-stock listing command
func NewLowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "low",
		Short: "List items strictly below the low-stock threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			threshold, _ := cmd.Flags().GetInt("threshold")

			sess, err := openSession(file)
			if err != nil {
				return err
			}
			defer sess.log.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = sess.cfg.Store.LowStockThreshold
			}

			low := sess.inv.LowStock(threshold)
			if len(low) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No items below threshold %d.\n", threshold)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Low stock (threshold %d): %s\n", threshold, strings.Join(low, ", "))
			return nil
		},
	}

	cmd.Flags().String("file", "", "Inventory file (defaults to configured path)")
	cmd.Flags().IntP("threshold", "t", 0, "Low-stock cutoff (defaults to configured value)")
	return cmd
}

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a report of every item and its quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			sess, err := openSession(file)
			if err != nil {
				return err
			}
			defer sess.log.Close()

			fmt.Fprintln(cmd.OutOrStdout(), sess.inv.Report())
			return nil
		},
	}

	cmd.Flags().String("file", "", "Inventory file (defaults to configured path)")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Stockpile version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Stockpile (unknown version)")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}
