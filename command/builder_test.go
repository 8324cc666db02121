package command

import (
	"context"
	"testing"
	"time"
)

func TestValidateConfigKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid key", "github.user", false},
		{"valid nested key", "remote.origin.url", false},
		{"valid plain key", "token", false},
		{"empty key", "", true},
		{"shell metacharacters", "github.user;rm", true},
		{"starts with digit", "1key", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfigKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRepoSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid slug", "alice/widget", false},
		{"valid with dots", "alice/widget.rb", false},
		{"missing repo", "alice", true},
		{"empty", "", true},
		{"injection attempt", "alice/widget;ls", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRepoSlug(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRepoSlug(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid path", ".travis.yml", false},
		{"valid nested path", "config/ci.yml", false},
		{"empty path", "", true},
		{"traversal", "../secrets.yml", true},
		{"metacharacters", "file;rm -rf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	sb := NewSafeBuilder()

	cmd, err := sb.Build(context.Background(), "git", "config", "--get", "github.user")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if cmd.name != "git" {
		t.Errorf("cmd.name = %q, want git", cmd.name)
	}
	if cmd.timeout != DefaultTimeout {
		t.Errorf("cmd.timeout = %v, want %v", cmd.timeout, DefaultTimeout)
	}

	if _, err := sb.Build(context.Background(), ""); err == nil {
		t.Error("Build() with empty name should fail")
	}
}

func TestWithTimeout(t *testing.T) {
	sb := NewSafeBuilder()
	cmd, err := sb.Build(context.Background(), "git", "status")
	if err != nil {
		t.Fatal(err)
	}

	cmd = cmd.WithTimeout(30 * time.Second)
	if cmd.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cmd.timeout)
	}

	// Capped at MaxTimeout
	cmd = cmd.WithTimeout(time.Hour)
	if cmd.timeout != MaxTimeout {
		t.Errorf("timeout = %v, want %v", cmd.timeout, MaxTimeout)
	}
}

func TestValidate_UnknownType(t *testing.T) {
	sb := NewSafeBuilder()
	if err := sb.Validate("unknownType", "value"); err == nil {
		t.Error("Validate() with unknown type should fail")
	}
}
