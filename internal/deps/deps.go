package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Requirement describes an external tool the build needs.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports whether a requirement could be resolved.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Satisfied reports whether the status should block a build.
func (s Status) Satisfied() bool {
	return s.Available || s.Optional
}

// CheckBinaries resolves each requirement on PATH, or directly when the
// command is a path.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{
			Name:        req.Name,
			Command:     strings.TrimSpace(req.Command),
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch resolved, err := resolve(status.Command); {
		case status.Command == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = err.Error()
		default:
			status.Available = true
			status.Command = resolved
		}
		results = append(results, status)
	}
	return results
}

func resolve(command string) (string, error) {
	if command == "" {
		return "", nil
	}
	path, err := exec.LookPath(command)
	if err != nil {
		if strings.ContainsRune(command, filepath.Separator) {
			return "", fmt.Errorf("%s is missing or not executable", command)
		}
		return "", fmt.Errorf("binary %q not found", command)
	}
	return path, nil
}

// JavaCommand returns the java launcher Gradle will use: $JAVA_HOME/bin/java
// when JAVA_HOME is set, otherwise java from PATH.
func JavaCommand() string {
	if home := strings.TrimSpace(os.Getenv("JAVA_HOME")); home != "" {
		return filepath.Join(home, "bin", "java")
	}
	return "java"
}

// BuildRequirements lists what a Gradle wrapper build needs. The wrapper
// itself is required; a JDK is reported but optional since the wrapper may
// provision one through toolchains.
func BuildRequirements(wrapperPath string) []Requirement {
	return []Requirement{
		{
			Name:        "Gradle wrapper",
			Command:     wrapperPath,
			Description: "Runs the release build",
		},
		{
			Name:        "Java",
			Command:     JavaCommand(),
			Description: "JDK used by Gradle",
			Optional:    true,
		},
	}
}
