package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/internal/backup"
	"github.com/thoreinstein/fieldcheck/internal/errors"
)

var (
	backupKind     string
	backupListJSON bool
	backupKeep     int
)

func init() {
	backupCmd.PersistentFlags().StringVar(&backupKind, "kind", "", "limit to one kind: config, forms")
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "output in JSON format")
	backupPruneCmd.Flags().IntVar(&backupKeep, "keep", backup.DefaultRetentionCount, "number of backups to keep per kind")

	backupCmd.AddCommand(backupListCmd, backupRestoreCmd, backupPruneCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups of overwritten config and form files",
	Long: `fieldcheck copies the config file before "config set" or "config init
--force" rewrites it, and a form definition before "form init --force"
replaces it. The most recent backups of each kind are kept.`,
	Example: `  # List backups
  fieldcheck backup list

  # Undo the last config change
  fieldcheck backup restore --kind config

  # Restore a form from a specific backup
  fieldcheck backup restore 20260301T090001.000000000 --kind forms`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore a file from a backup",
	Long: `Copy a backed up file back to where it came from. Without an ID the most
recent backup of the kind is used. --kind is required.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupRestore,
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Args:  cobra.NoArgs,
	RunE:  runBackupPrune,
}

// backupEntry is one backup in list output.
type backupEntry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	Path      string    `json:"path"`
	Version   string    `json:"fieldcheck_version"`
}

// selectedKinds returns the kinds named by --kind, or all of them.
func selectedKinds() ([]string, error) {
	switch backupKind {
	case "":
		return []string{backup.KindConfig, backup.KindForms}, nil
	case backup.KindConfig, backup.KindForms:
		return []string{backupKind}, nil
	default:
		return nil, errors.NewUserError(errors.Newf("unknown kind %q", backupKind), "Use --kind config or --kind forms")
	}
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	kinds, err := selectedKinds()
	if err != nil {
		return err
	}

	mgr := backup.NewManager()
	entries := []backupEntry{}
	for _, kind := range kinds {
		manifests, err := mgr.List(kind)
		if err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "listing %s backups", kind), "")
		}
		for _, m := range manifests {
			entries = append(entries, backupEntry{
				ID:        m.ID,
				Kind:      m.Kind,
				CreatedAt: m.CreatedAt,
				Path:      m.File.OriginalPath,
				Version:   m.FieldcheckVersion,
			})
		}
	}

	w := cmd.OutOrStdout()
	if backupListJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding output")
	}
	printBackups(w, entries, mgr.Dir())
	return nil
}

func printBackups(w io.Writer, entries []backupEntry, dir string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintf(w, "  stored in: %s\n", dir)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tCREATED\tFILE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Kind, e.CreatedAt.Local().Format(time.DateTime), e.Path)
	}
	tw.Flush()
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	if backupKind == "" {
		return errors.NewUserError(errors.New("--kind is required for restore"), "Use --kind config or --kind forms")
	}
	if _, err := selectedKinds(); err != nil {
		return err
	}

	id := "latest"
	if len(args) > 0 {
		id = args[0]
	}

	manifest, err := backup.NewManager().Restore(backupKind, id)
	switch {
	case err == nil:
	case errors.Is(err, backup.ErrNoBackupsFound):
		return errors.NewUserError(err, "Run: fieldcheck backup list")
	case errors.Is(err, backup.ErrBackupCorrupted):
		return errors.NewUserError(err, "Pick an older backup")
	default:
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored %s from backup %s\n", manifest.File.OriginalPath, manifest.ID)
	return nil
}

func runBackupPrune(cmd *cobra.Command, _ []string) error {
	if backupKeep < 0 {
		return errors.NewUserError(errors.Newf("invalid --keep %d", backupKeep), "Use 0 or more")
	}
	kinds, err := selectedKinds()
	if err != nil {
		return err
	}

	mgr := backup.NewManager()
	for _, kind := range kinds {
		if err := mgr.Prune(kind, backupKeep); err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "pruning %s backups", kind), "")
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Kept at most %d backup(s) per kind\n", backupKeep)
	return nil
}
