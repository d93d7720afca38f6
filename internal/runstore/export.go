package runstore

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/internal/parquet"
)

// ExportRuns writes the run history held by store to three Parquet files named after outputFile.
func ExportRuns(store contract.RunStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run tracking is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	scores, err := store.GetAllWorkloadScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve workload scores: %w", err)
	}
	predictions, err := store.GetAllPredictions()
	if err != nil {
		return fmt.Errorf("failed to retrieve predictions: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + ".workload_scores.parquet"
	if err := parquet.WriteWorkloadScoresParquet(parquet.ConvertWorkloadRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write workload scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d workload scores to: %s\n", len(scores), scoresFile)

	predictionsFile := outputFile + ".predictions.parquet"
	if err := parquet.WritePredictionsParquet(parquet.ConvertPredictionRecords(predictions), predictionsFile); err != nil {
		return fmt.Errorf("failed to write predictions: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d predictions to: %s\n", len(predictions), predictionsFile)

	return nil
}
