package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"confdata/internal/adapters/auth"
	"confdata/internal/adapters/database"
	"confdata/internal/domain"
	"confdata/internal/repository/postgres"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *options
		wantErr bool
	}{
		{
			name: "report only",
			args: []string{"--report", "speakers"},
			want: &options{report: "speakers"},
		},
		{
			name: "short flags and site",
			args: []string{"-r", "proposals", "-o", "-", "--site", "2026.djangocon.test"},
			want: &options{report: "proposals", out: "-", site: "2026.djangocon.test"},
		},
		{
			name: "list needs no report",
			args: []string{"--list"},
			want: &options{list: true},
		},
		{name: "missing report", args: nil, wantErr: true},
		{name: "unknown flag", args: []string{"--format", "json"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_MissingReportPrintsUsage(t *testing.T) {
	var stderr bytes.Buffer

	_, err := parseFlags(nil, &stderr)

	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr.String(), "Usage: dataexport --report")
	assert.Contains(t, stderr.String(), "--list")
	assert.Contains(t, stderr.String(), "set-password")
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{name: "default filename", out: "", want: "speaker_export.csv"},
		{name: "stdout", out: "-", want: ""},
		{name: "explicit", out: "/tmp/speakers.csv", want: "/tmp/speakers.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath(&options{out: tt.out}, domain.ReportSpeakers))
		})
	}
}

func TestRun_List(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--list"}, strings.NewReader(""), &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "sponsors-ticketbud")
	assert.NotContains(t, stdout.String(), "sponsors-raw")
}

func TestRun_UnknownReport(t *testing.T) {
	err := run(context.Background(), []string{"--report", "sponsors-raw"}, strings.NewReader(""), io.Discard, io.Discard)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseAccountFlags(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseAccountFlags(nil, &stderr)
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr.String(), "--email")

	opts, err := parseAccountFlags([]string{"--email", "admin@example.test", "--superuser"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, &accountOptions{email: "admin@example.test", superuser: true}, opts)
}

func TestReadPassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "first line only", input: "hunter2hunter2\nignored\n", want: "hunter2hunter2"},
		{name: "crlf", input: "hunter2hunter2\r\n", want: "hunter2hunter2"},
		{name: "no trailing newline", input: "hunter2hunter2", want: "hunter2hunter2"},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPassword(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, errUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

const usersTable = `CREATE TABLE users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	salt TEXT NOT NULL,
	is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

func TestRun_SetPassword(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "confdata.db")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := database.Open(dsn)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(usersTable)
	require.NoError(t, err)

	ctx := context.Background()
	args := []string{setPasswordCommand, "--email", "Admin@Example.test", "--name", "Admin", "--superuser"}
	var stdout bytes.Buffer
	require.NoError(t, run(ctx, args, strings.NewReader("first password\n"), &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "password set for admin@example.test")

	// Resetting keeps the account, its name, and its superuser flag.
	args = []string{setPasswordCommand, "--email", "admin@example.test"}
	require.NoError(t, run(ctx, args, strings.NewReader("second password\n"), io.Discard, io.Discard))

	var count int
	var superuser bool
	require.NoError(t, db.QueryRow(`SELECT COUNT(*), MAX(is_superuser) FROM users`).Scan(&count, &superuser))
	assert.Equal(t, 1, count)
	assert.True(t, superuser)

	u, err := postgres.NewUserRepository(db).GetByEmail(ctx, "admin@example.test")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Name)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	assert.NoError(t, hasher.Compare(u.PasswordHash, u.Salt, "second password"))
	assert.Error(t, hasher.Compare(u.PasswordHash, u.Salt, "first password"))
}

func TestRun_SetPasswordRejectsShortPassword(t *testing.T) {
	args := []string{setPasswordCommand, "--email", "admin@example.test"}
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("JWT_SECRET", "test-secret")

	// Validation fails before the missing users table is touched.
	err := run(context.Background(), args, strings.NewReader("short\n"), io.Discard, io.Discard)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
