// Package cmd defines the command-line interface for teamcap.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(velocityCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(whatifCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the what-if scenarios to the parent whatif command
	whatifCmd.AddCommand(removePersonCmd)
	whatifCmd.AddCommand(addScopeCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("team", "", "Team whose thresholds apply (defaults to the snapshot's team)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("runs-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this textfile after each run")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("thresholds-override", "", "Threshold overrides (format: 'overload:110,at_risk:85,balance_variance:25,min_coverage:3')")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Flags shared by several commands are bound to Viper by sharedSetup, once the
	// running command is known.
	for _, c := range []*cobra.Command{predictCmd, removePersonCmd, addScopeCmd, checkCmd} {
		c.Flags().String("today", "", "Reference date as YYYY-MM-DD (defaults to the snapshot, then the current date)")
	}
	for _, c := range []*cobra.Command{coverageCmd, checkCmd} {
		c.Flags().String("start", "", "Coverage window start as YYYY-MM-DD (defaults to the snapshot)")
		c.Flags().String("end", "", "Coverage window end as YYYY-MM-DD (defaults to the snapshot)")
		c.Flags().Int("min-coverage", 0, "Minimum people available per workday (0 defers to the snapshot, then the thresholds)")
	}

	// Bind all flags of removePersonCmd to Viper
	removePersonCmd.Flags().String("person", "", "Id of the person to remove")
	if err := viper.BindPFlags(removePersonCmd.Flags()); err != nil {
		contract.LogFatal("Error binding remove-person flags", err)
	}

	// Bind all flags of addScopeCmd to Viper
	addScopeCmd.Flags().Int("points", 0, "Story points of unplanned work to add")
	if err := viper.BindPFlags(addScopeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding add-scope flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("min-probability", contract.DefaultMinProbability, "Lowest acceptable sprint completion probability")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
