// Package retry provides automatic retry logic with exponential backoff
// for transient database connection failures during bulk loads.
//
// Error classification and backoff timing are pluggable through the
// jlb.ErrorClassifier and jlb.BackoffStrategy interfaces.
//
// # Example Usage
//
//	classifier := retry.NewPostgreSQLErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connectToDatabase(ctx)
//	})
//
// The PostgreSQLErrorClassifier recognizes common transient PostgreSQL
// conditions (connection refused, serialization failures, resource
// exhaustion) while treating everything else as fatal.
package retry
