//go:build integration

package testdb

import "os"

// Environment variables checked for the test database URL, in order.
var databaseURLEnvVars = []string{"KANBAN_TEST_DB_URL", "DATABASE_URL", "KANBAN_DATABASE_URL"}

// GetTestDatabaseURL returns the first non-empty database URL from the environment.
func GetTestDatabaseURL() string {
	for _, envVar := range databaseURLEnvVars {
		if url := os.Getenv(envVar); url != "" {
			return url
		}
	}
	return ""
}

// IsIntegrationTestEnvironment returns true if a database URL is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ShouldSkipDatabaseTest returns true if database integration tests cannot run.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}
