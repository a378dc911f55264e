package main

import (
	"fmt"
	"os"
	"time"

	"sislog/internal/app"
	"sislog/internal/config"
	"sislog/internal/console"
	"sislog/internal/logi"
	"sislog/internal/shell"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
)

func main() {
	// A missing .env file is fine; the environment is used as is.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a LogiApp. The caller must defer app.Close().
func newApp(opts app.Options) (*app.LogiApp, error) {
	paths, err := resolvePaths()
	if err != nil {
		return nil, err
	}

	cfg, err := config.ReadFromFile(paths.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	opts.Verbose = verbose
	a, err := app.NewLogiApp(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// resolvePaths applies --config on top of the environment defaults.
func resolvePaths() (app.Paths, error) {
	paths, err := app.DefaultPaths()
	if err != nil {
		return app.Paths{}, fmt.Errorf("getting defaults: %w", err)
	}
	if configFile != "" {
		paths.ConfigFile = configFile
	}
	return paths, nil
}

var rootCmd = &cobra.Command{
	Use:   "sislog",
	Short: "Logistics and shipment management",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := resolvePaths()
		if err != nil {
			return err
		}

		stationID := uuid.New().String()
		cfg := config.NewConfig(stationID, paths.BaseDir)

		if err := config.Init(paths.ConfigFile, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", paths.ConfigFile)
		fmt.Printf("Station ID: %s\n", stationID)
		fmt.Printf("Base Dir:   %s\n", paths.BaseDir)
		fmt.Println("Next: sislog db migrate && sislog user bootstrap")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := resolvePaths()
		if err != nil {
			return err
		}

		cfg, err := config.ReadFromFile(paths.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", paths.ConfigFile)
		fmt.Printf("Station ID: %s\n", cfg.StationID)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Log Level:  %s\n", cfg.LogLevel)
		fmt.Printf("Database:   %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Archive:    %s (%s)\n", cfg.Archive.Name, cfg.Archive.Type)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate the snapshot encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		con := console.NewStdio()
		p1, err := con.Password("Passphrase for the private key: ")
		if err != nil {
			return err
		}
		p2, err := con.Password("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if p1 != p2 {
			return fmt.Errorf("passphrases do not match")
		}

		if err := a.SetupKeys(p1); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}
		fmt.Println("Encryption keys generated.")
		if pub, err := a.PublicKey(); err == nil && pub != "" {
			fmt.Printf("Public key: %s\n", pub)
		}
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(app.Options{SkipMigrationCheck: true})
		if err != nil {
			return err
		}
		defer a.Close()

		from, to, err := a.Migrate()
		if err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		if from == to {
			fmt.Printf("Database is up to date (version %d).\n", to)
			return nil
		}
		fmt.Printf("Database migrated from version %d to %d.\n", from, to)
		return nil
	},
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Store an encrypted snapshot of the database in the archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ValidateArchive(); err != nil {
			return fmt.Errorf("checking archive: %w", err)
		}
		name, err := a.BackupDatabase()
		if err != nil {
			return fmt.Errorf("backing up database: %w", err)
		}
		fmt.Printf("Snapshot stored: %s\n", name)
		return nil
	},
}

var dbSnapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.ListSnapshots()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No snapshots stored.")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var dbRestoreCmd = &cobra.Command{
	Use:   "restore NAME",
	Short: "Decrypt a stored snapshot into a new database file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, _ := cmd.Flags().GetString("to")

		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := console.NewStdio().Password("Passphrase: ")
		if err != nil {
			return err
		}
		if err := a.RestoreDatabase(args[0], passphrase, dest); err != nil {
			return fmt.Errorf("restoring snapshot: %w", err)
		}
		fmt.Printf("Restored %s to %s\n", args[0], dest)
		return nil
	},
}

// shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Log in and use the interactive menus",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		return shell.New(console.NewStdio(), a.Service(), a).Run()
	},
}

// register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Sign up as a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		return shell.New(console.NewStdio(), a.Service(), a).Register()
	},
}

// shipment command
var shipmentCmd = &cobra.Command{
	Use:   "shipment",
	Short: "Inspect shipments",
}

var shipmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every load item, newest shipment first",
	RunE: func(cmd *cobra.Command, args []string) error {
		grouped, _ := cmd.Flags().GetBool("grouped")

		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		out := console.NewStdio()
		if grouped {
			groups, err := logi.GroupLoads(a.Service().LoadItems())
			if err != nil {
				return err
			}
			shell.PrintLoadGroups(out, groups)
			return nil
		}

		var items []*logi.LoadItemView
		for item, err := range a.Service().LoadItems() {
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		shell.PrintLoadItems(out, items)
		return nil
	},
}

var shipmentShowCmd = &cobra.Command{
	Use:   `show PLATE "YYYY-MM-DD HH:MM"`,
	Short: "Show the products of one shipment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadedAt, err := logi.ParseLoadTime(args[1])
		if err != nil {
			return err
		}

		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		detail, err := a.Service().LoadDetail(args[0], loadedAt)
		if err != nil {
			return err
		}
		shell.PrintLoadDetail(console.NewStdio(), detail)
		return nil
	},
}

// user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage logins",
}

var userBootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the first administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		return shell.New(console.NewStdio(), a.Service(), a).BootstrapAdmin()
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recorded operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-20s  %s  %-10s  %-8s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Parameters,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also write log output to stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $SISLOG_CONFIG_PATH or ~/.config/sislog.toml)")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)

	// db subcommands
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbBackupCmd)
	dbCmd.AddCommand(dbSnapshotsCmd)
	dbCmd.AddCommand(dbRestoreCmd)
	dbRestoreCmd.Flags().String("to", "", "Path of the database file to create")
	dbRestoreCmd.MarkFlagRequired("to")

	// shipment subcommands
	shipmentCmd.AddCommand(shipmentListCmd)
	shipmentListCmd.Flags().BoolP("grouped", "g", false, "Group items by vehicle and timestamp")
	shipmentCmd.AddCommand(shipmentShowCmd)

	userCmd.AddCommand(userBootstrapCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(shipmentCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
