package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-aidich/internal/config"
)

// ---------------------------------------------------------------------------
// Tests for runConfigInit
// ---------------------------------------------------------------------------

func TestRunConfigInit(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		env, _, _, stderr := testEnv(nil)
		p := filepath.Join(t.TempDir(), "config.cfg")
		cfg := config.Config{Username: "alice", Password: "s3cr3t", Beta: true}

		if err := RunConfigInit(env, p, cfg, false); err != nil {
			t.Fatalf("RunConfigInit() unexpected error: %v", err)
		}
		got, err := config.Load(p)
		if err != nil {
			t.Fatalf("config.Load() unexpected error: %v", err)
		}
		if got != cfg {
			t.Errorf("loaded %+v, want %+v", got, cfg)
		}
		if !strings.Contains(stderr.String(), "Wrote") {
			t.Errorf("stderr = %q, want confirmation", stderr.String())
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		env, _, _, _ := testEnv(nil)
		p := filepath.Join(t.TempDir(), "config.cfg")
		if err := os.WriteFile(p, []byte("old,creds"), 0600); err != nil {
			t.Fatal(err)
		}

		err := RunConfigInit(env, p, config.Config{Username: "new", Password: "pw"}, false)
		if !errors.Is(err, ErrConfigExists) {
			t.Fatalf("RunConfigInit() error = %v, want ErrConfigExists", err)
		}
		if data, _ := os.ReadFile(p); string(data) != "old,creds" {
			t.Errorf("file changed to %q", data)
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		t.Parallel()

		env, _, _, _ := testEnv(nil)
		p := filepath.Join(t.TempDir(), "config.cfg")
		if err := os.WriteFile(p, []byte("old,creds"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := RunConfigInit(env, p, config.Config{Username: "new", Password: "pw"}, true); err != nil {
			t.Fatalf("RunConfigInit() unexpected error: %v", err)
		}
		if data, _ := os.ReadFile(p); string(data) != "new,pw\n" {
			t.Errorf("file = %q, want %q", data, "new,pw\n")
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		env, _, _, _ := testEnv(nil)
		p := filepath.Join(t.TempDir(), "config.cfg")
		err := RunConfigInit(env, p, config.Config{Username: "a,b", Password: "pw"}, false)
		if !errors.Is(err, config.ErrInvalid) {
			t.Errorf("RunConfigInit() error = %v, want ErrInvalid", err)
		}
	})
}

// ---------------------------------------------------------------------------
// Tests for runConfigShow and ConfigCmd wiring
// ---------------------------------------------------------------------------

func TestRunConfigShow(t *testing.T) {
	t.Parallel()

	t.Run("masks password", func(t *testing.T) {
		t.Parallel()

		env, mocks, stdout, _ := testEnv(nil)
		mocks.configLoader.LoadFunc = func(path string) (config.Config, error) {
			return config.Config{Username: "alice", Password: "s3cr3t", Beta: true}, nil
		}

		if err := RunConfigShow(env, "config.cfg"); err != nil {
			t.Fatalf("RunConfigShow() unexpected error: %v", err)
		}
		out := stdout.String()
		if strings.Contains(out, "s3cr3t") {
			t.Errorf("stdout = %q, leaks password", out)
		}
		for _, want := range []string{"path=config.cfg", "username=alice", "activate_beta=true"} {
			if !strings.Contains(out, want) {
				t.Errorf("stdout = %q, missing %q", out, want)
			}
		}
	})

	t.Run("load error", func(t *testing.T) {
		t.Parallel()

		env, mocks, _, _ := testEnv(nil)
		mocks.configLoader.LoadFunc = func(path string) (config.Config, error) {
			return config.Config{}, config.ErrInvalid
		}
		if err := RunConfigShow(env, "config.cfg"); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("RunConfigShow() error = %v, want ErrInvalid", err)
		}
	})
}

func TestConfigCmd_InitThenShow(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "creds.cfg")
	env, _, stdout, _ := testEnv(nil)
	env.ConfigLoader = &defaultConfigLoader{}

	initCmd := ConfigCmd(env)
	initCmd.SetArgs([]string{"init", "alice", "s3cr3t", "--beta", "--config", p})
	if err := initCmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}

	showCmd := ConfigCmd(env)
	showCmd.SetArgs([]string{"show", "--config", p})
	if err := showCmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(stdout.String(), "activate_beta=true") {
		t.Errorf("stdout = %q, want beta enabled", stdout.String())
	}
}

func TestConfigCmd_InitRequiresTwoArgs(t *testing.T) {
	t.Parallel()

	env, _, _, _ := testEnv(nil)
	cmd := ConfigCmd(env)
	cmd.SetArgs([]string{"init", "alice"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() expected error with one argument")
	}
}
