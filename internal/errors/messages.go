package errors

import "fmt"

// Common error messages for the relcut CLI.
// These templates ensure consistent, actionable error messages.

// NotARepository creates an error for running outside a git repository.
func NotARepository(dir string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no git repository found at or above %s", dir),
		"Run relcut from inside the repository you want to release",
		"Initialize one with: git init",
	)
}

// CorruptVersionFile creates an error for a malformed version file.
func CorruptVersionFile(path, reason string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("version file %s is corrupt: %s", path, reason),
		"The file must hold a single line of four dot-separated integers, e.g. 4.1.2.0",
		"Fix the file by hand or restore it from the last release tag",
	)
}

// DirtyWorkingTree creates an error for uncommitted changes before a release.
func DirtyWorkingTree() *CLIError {
	return NewPrerequisiteError(
		"working tree has uncommitted changes",
		"Commit or stash your changes before releasing",
		"Check what is pending with: git status",
	)
}

// RemoteUnreachable creates an error for a failed tag fetch or push.
func RemoteUnreachable(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"could not reach the git remote",
		"Check your network connection",
		"Verify the remote is configured: git remote -v",
		"For HTTPS remotes, set GIT_USERNAME/GIT_PASSWORD or GITHUB_TOKEN",
	)
}

// InvalidMenuSelection creates an error for an unrecognized menu choice.
func InvalidMenuSelection(input string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid selection %q", input),
		"relcut release",
		"Enter a number between 1 and 4",
	)
}

// InvalidTagSelection creates an error for an out-of-range tag choice.
func InvalidTagSelection(input string, count int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid tag selection %q", input),
		"relcut prod",
		fmt.Sprintf("Enter a number between 1 and %d", count),
	)
}
