package cli

// Exit codes for the relcut CLI.
// Handled no-ops (nothing to release, missing PROD precondition) exit 0.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitRuntime indicates a failure during command execution
	ExitRuntime = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitConfiguration indicates invalid or corrupt configuration
	ExitConfiguration = 3

	// ExitPrerequisite indicates a missing prerequisite (dirty tree,
	// missing repository, failed doctor check)
	ExitPrerequisite = 4
)
