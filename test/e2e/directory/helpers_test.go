package directory_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/NotFromFatec/Carometro-V2/pkg/dirsdk"
)

/*
 * Common constants and helper functions for directory service end-to-end
 * tests: container setup and admin bootstrapping.
 */

const (
	testImageName = "carometro-directory-test:latest"

	adminName     = "Coordinator"
	adminUsername = "coordinator"
	adminPassword = "Admin123!"

	jwtSecret = "e2e-test-secret"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Directory Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Directory Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/directory/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupDirectoryContainer starts the directory service in a container and
// returns the base URL. The SMTP relay points at a closed port, so every
// email send fails; tests that exercise the failure path rely on this.
func setupDirectoryContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"DIRECTORY_DATABASE_FILE": "/tmp/directory.db",
			"DIRECTORY_PEPPER_FILE":   "/tmp/pepper",
			"DIRECTORY_JWT_SECRET":    jwtSecret,
			"DIRECTORY_BASE_URL":      "https://carometro.example.com",
			"DIRECTORY_SMTP_HOST":     "127.0.0.1",
			"DIRECTORY_SMTP_PORT":     "1",
			"ENV":                     "test",
			"LOG_LEVEL":               "info",
			"LOG_FORMAT":              "json",
			// Relaxed rate limits so rapid test requests do not trip them
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// provisionAdmin creates the test admin and returns a client holding its
// session token.
func provisionAdmin(t *testing.T, baseURL string) (*dirsdk.Client, *dirsdk.AdminResponse) {
	t.Helper()
	ctx := t.Context()

	client := dirsdk.NewClient(baseURL)
	admin, err := client.CreateAdmin(ctx, dirsdk.CreateAdminRequest{
		Name:     adminName,
		Username: adminUsername,
		Password: adminPassword,
	})
	require.NoError(t, err)

	login, err := client.AdminLogin(ctx, adminUsername, adminPassword)
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	return client, admin
}
