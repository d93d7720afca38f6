package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/internal/runstore"
	"github.com/huangsam/teamcap/schema"
)

// runsBackendConfig reads and validates the run tracking backend settings.
func runsBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := viper.GetString("runs-backend")
	connStr := viper.GetString("runs-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// runsSetup loads the minimal configuration needed to read or clear recorded runs.
// It skips snapshot loading and the rest of sharedSetup.
func runsSetup() error {
	backend, connStr, err := runsBackendConfig()
	if err != nil {
		return err
	}

	if err := runstore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads configuration for migrations. It does NOT initialize
// stores or create tables, so migrations can run on a fresh database.
func runsMigrateSetup() error {
	backend, connStr, err := runsBackendConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunsDBFilePath()
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on recorded run management.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage recorded analysis runs",
	Long: `Manage the history of analysis runs recorded by teamcap.

Every analysis command records its run, the workload scores it computed and the
sprint forecasts it made. The history makes it possible to follow a team's load
and sprint outlook from one planning session to the next.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run counts and connection info
  export  - Export runs, scores and forecasts to Parquet
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check how many runs are recorded
  teamcap runs status

  # Export for analysis in pandas/DuckDB
  teamcap runs export --output-file teamcap-runs.parquet`,
}

// runsStatusCmd shows run tracking status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show information about recorded runs.

Displays:
- Backend type and connection status
- Total runs, workload scores and forecasts stored
- Last and oldest run timestamps

Examples:
  # Check run tracking status
  teamcap runs status

  # Check a shared PostgreSQL store
  teamcap runs status --runs-backend postgresql --runs-db-connect "host=db user=teamcap dbname=teamcap"`,
	Args:    cobra.NoArgs,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := runstore.Manager.GetRunStore()
		if store == nil {
			contract.LogFatal("Failed to get run status", fmt.Errorf("run tracking is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		runstore.PrintRunStatus(os.Stdout, status)
	},
}

// runsExportCmd exports recorded runs to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all recorded data to Parquet format for use with analytics tools.

Exports three datasets next to --output-file:
- Runs - one row per analysis command
- Workload scores - one row per scored team member
- Predictions - one row per sprint forecast, baseline or simulated

Requires: --output-file parameter

Examples:
  # Export all data
  teamcap runs export --output-file teamcap-runs.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('teamcap-runs.parquet.runs.parquet') LIMIT 10"`,
	Args:    cobra.NoArgs,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ExportRuns(runstore.Manager.GetRunStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// runsClearCmd clears recorded runs.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all recorded runs with their workload scores and forecasts.

For SQLite the database file is removed. For MySQL and PostgreSQL the run
tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  teamcap runs export --output-file backup.parquet
  teamcap runs clear`,
	Args:    cobra.NoArgs,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ClearRuns(cfg.RunsBackend, cfg.RunsDBConnect, cfg.RunsDBConnect); err != nil {
			contract.LogFatal("Failed to clear run data", err)
		}
		fmt.Println("Run data cleared successfully.")
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  teamcap runs migrate

  # Migrate to specific version
  teamcap runs migrate --target-version 1

  # Roll back everything
  teamcap runs migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		summary, err := runstore.MigrateRuns(cfg.RunsBackend, cfg.RunsDBConnect, targetVersion)
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println(summary)
	},
}
