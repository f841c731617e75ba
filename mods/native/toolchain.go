// Package native assembles and links generated assembly into a host
// executable using nasm and the system C compiler. Builds are content
// addressed: the same assembly for the same platform is only built
// once per work directory.
package native

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"

	"github.com/gofrs/uuid/v5"
	"gopkg.in/yaml.v3"

	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/logging"
)

//go:embed runtime
var runtimeFS embed.FS

var runtimeSources = []string{"main.c", "values.c", "print.c", "io.c"}
var runtimeHeaders = []string{"runtime.h", "values.h", "print.h"}

type Config struct {
	WorkDir  string `yaml:"work_dir"`
	Nasm     string `yaml:"nasm"`
	CC       string `yaml:"cc"`
	Platform string `yaml:"platform"`
}

func DefaultConfig() *Config {
	conf := &Config{
		Nasm: "nasm",
		CC:   "cc",
	}
	if cache, err := os.UserCacheDir(); err == nil {
		conf.WorkDir = filepath.Join(cache, "lithic")
	} else {
		conf.WorkDir = filepath.Join(os.TempDir(), "lithic")
	}
	return conf
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(content, conf); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

type Toolchain struct {
	conf     *Config
	platform asm.Platform
	nasmPath string
	ccPath   string
	log      logging.Log
}

func New(conf *Config) (*Toolchain, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	platform := hostPlatform()
	if conf.Platform != "" {
		parsed, err := asm.ParsePlatform(conf.Platform)
		if err != nil {
			return nil, err
		}
		platform = parsed
	}
	nasmPath, err := exec.LookPath(conf.Nasm)
	if err != nil {
		return nil, fmt.Errorf("assembler %q not found: %w", conf.Nasm, err)
	}
	ccPath, err := exec.LookPath(conf.CC)
	if err != nil {
		return nil, fmt.Errorf("c compiler %q not found: %w", conf.CC, err)
	}
	if err := os.MkdirAll(conf.WorkDir, 0755); err != nil {
		return nil, err
	}
	return &Toolchain{
		conf:     conf,
		platform: platform,
		nasmPath: nasmPath,
		ccPath:   ccPath,
		log:      logging.GetLog("native"),
	}, nil
}

func hostPlatform() asm.Platform {
	if goruntime.GOOS == "darwin" {
		return asm.PlatformMacOS
	}
	return asm.PlatformLinux
}

func (t *Toolchain) Platform() asm.Platform {
	return t.platform
}

// Executable is a built program on disk.
type Executable struct {
	Path string
}

// Exec runs the program once with the given streams and returns its
// exit code.
func (e *Executable) Exec(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, e.Path)
	cmd.Stdin = in
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}

// Build assembles and links asmText, reusing a previous build of the
// same text when present. The finished build is installed into the
// work directory with a rename so a half-built directory is never
// visible under its final name.
func (t *Toolchain) Build(ctx context.Context, asmText string) (*Executable, error) {
	sum := sha256.Sum256([]byte(t.platform.String() + "\n" + asmText))
	key := hex.EncodeToString(sum[:])[:16]
	installDir := filepath.Join(t.conf.WorkDir, key)
	binPath := filepath.Join(installDir, "program")

	if _, err := os.Stat(binPath); err == nil {
		t.log.Debugf("build cache hit %s", key)
		return &Executable{Path: binPath}, nil
	}

	stage := filepath.Join(t.conf.WorkDir, "stage-"+uuid.Must(uuid.NewV4()).String())
	if err := os.MkdirAll(stage, 0755); err != nil {
		return nil, err
	}
	defer os.RemoveAll(stage)

	if err := os.WriteFile(filepath.Join(stage, "program.s"), []byte(asmText), 0644); err != nil {
		return nil, err
	}
	for _, name := range append(append([]string{}, runtimeSources...), runtimeHeaders...) {
		content, err := runtimeFS.ReadFile("runtime/" + name)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(stage, name), content, 0644); err != nil {
			return nil, err
		}
	}

	if err := t.run(ctx, stage, t.nasmPath, "-f", t.platform.NasmFormat(), "-o", "program.o", "program.s"); err != nil {
		return nil, err
	}
	ccArgs := append([]string{"-o", "program"}, runtimeSources...)
	ccArgs = append(ccArgs, "program.o")
	if err := t.run(ctx, stage, t.ccPath, ccArgs...); err != nil {
		return nil, err
	}

	if err := os.Rename(stage, installDir); err != nil {
		// lost a race against a concurrent build of the same program
		if _, statErr := os.Stat(binPath); statErr == nil {
			return &Executable{Path: binPath}, nil
		}
		return nil, err
	}
	t.log.Tracef("built %s", binPath)
	return &Executable{Path: binPath}, nil
}

func (t *Toolchain) run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\n%s", filepath.Base(name), err, output)
	}
	return nil
}
