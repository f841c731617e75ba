package main

import (
	"context"
	"fmt"
	"io"
	"os"
	goruntime "runtime"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/lithic-lang/lithic/mods"
	"github.com/lithic-lang/lithic/mods/asm"
	"github.com/lithic-lang/lithic/mods/codegen"
	"github.com/lithic-lang/lithic/mods/lang"
	"github.com/lithic-lang/lithic/mods/launcher"
	"github.com/lithic-lang/lithic/mods/listing"
	"github.com/lithic-lang/lithic/mods/logging"
	"github.com/lithic-lang/lithic/mods/native"
)

type Globals struct {
	LogLevel    string `name:"log-level" default:"WARN" enum:"TRACE,DEBUG,INFO,WARN,ERROR" help:"log level"`
	LogFilename string `name:"log-filename" default:"-" placeholder:"<path>" help:"log file path, '-' for stderr"`
	Config      string `name:"config" short:"c" placeholder:"<path>" help:"toolchain config file (yaml)"`
	Platform    string `name:"platform" placeholder:"linux|macos" help:"target platform, defaults to the host"`
}

type CLI struct {
	Globals

	Compile CompileCmd `cmd:"" help:"compile a source file to assembly"`
	Build   BuildCmd   `cmd:"" help:"compile and link a native executable"`
	Run     RunCmd     `cmd:"" help:"compile, link and run a program"`
	Inspect InspectCmd `cmd:"" help:"show compiler artifacts for a source file"`
	Version VersionCmd `cmd:"" help:"show version and build info"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lithic"),
		kong.HelpOptions{NoAppSummary: false, Compact: true, FlagsLast: true},
		kong.UsageOnError(),
	)
	logging.Configure(&logging.Config{
		Console:            false,
		Filename:           cli.LogFilename,
		DefaultPrefixWidth: 16,
		DefaultLevel:       cli.LogLevel,
	})
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

func readSource(path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		return string(content), err
	}
	content, err := os.ReadFile(path)
	return string(content), err
}

func (g *Globals) toolchain() (*native.Toolchain, error) {
	conf := native.DefaultConfig()
	if g.Config != "" {
		loaded, err := native.LoadConfig(g.Config)
		if err != nil {
			return nil, err
		}
		conf = loaded
	}
	if g.Platform != "" {
		conf.Platform = g.Platform
	}
	return native.New(conf)
}

func (g *Globals) compileToAsm(source string) (string, error) {
	prog, err := lang.Parse(source)
	if err != nil {
		return "", err
	}
	compiled, err := codegen.New().Compile(prog)
	if err != nil {
		return "", err
	}
	platform := hostPlatform()
	if g.Platform != "" {
		platform, err = asm.ParsePlatform(g.Platform)
		if err != nil {
			return "", err
		}
	}
	return asm.Print(compiled, platform), nil
}

func hostPlatform() asm.Platform {
	if goruntime.GOOS == "darwin" {
		return asm.PlatformMacOS
	}
	return asm.PlatformLinux
}

type CompileCmd struct {
	Source string `arg:"" help:"source file, '-' for stdin"`
	Output string `name:"output" short:"o" default:"-" help:"assembly output path, '-' for stdout"`
}

func (c *CompileCmd) Run(g *Globals) error {
	source, err := readSource(c.Source)
	if err != nil {
		return err
	}
	asmText, err := g.compileToAsm(source)
	if err != nil {
		return err
	}
	if c.Output == "-" {
		colorize := isatty.IsTerminal(os.Stdout.Fd())
		return listing.Assembly(colorable.NewColorableStdout(), asmText, colorize)
	}
	return os.WriteFile(c.Output, []byte(asmText), 0644)
}

type BuildCmd struct {
	Source string `arg:"" help:"source file, '-' for stdin"`
	Output string `name:"output" short:"o" default:"a.out" help:"executable output path"`
}

func (c *BuildCmd) Run(g *Globals) error {
	source, err := readSource(c.Source)
	if err != nil {
		return err
	}
	tc, err := g.toolchain()
	if err != nil {
		return err
	}
	prog, err := lang.Parse(source)
	if err != nil {
		return err
	}
	compiled, err := codegen.New().Compile(prog)
	if err != nil {
		return err
	}
	exe, err := tc.Build(context.Background(), asm.Print(compiled, tc.Platform()))
	if err != nil {
		return err
	}
	return copyFile(exe.Path, c.Output)
}

func copyFile(src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, content, 0755)
}

type RunCmd struct {
	Source string `arg:"" help:"source file, '-' for stdin"`
	Input  string `name:"input" short:"i" default:"-" help:"program input, '-' for stdin"`
	Output string `name:"output" short:"o" default:"-" help:"program output, '-' for stdout, or 'exec <command>'"`
}

func (c *RunCmd) Run(g *Globals) error {
	source, err := readSource(c.Source)
	if err != nil {
		return err
	}
	tc, err := g.toolchain()
	if err != nil {
		return err
	}
	prog, err := lang.Parse(source)
	if err != nil {
		return err
	}
	compiled, err := codegen.New().Compile(prog)
	if err != nil {
		return err
	}
	exe, err := tc.Build(context.Background(), asm.Print(compiled, tc.Platform()))
	if err != nil {
		return err
	}

	l, err := launcher.New(c.Input, c.Output)
	if err != nil {
		return err
	}
	code, err := l.Launch(context.Background(), exe)
	// close before exiting so file-backed streams are flushed to disk
	closeErr := l.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

type InspectCmd struct {
	Source string `arg:"" help:"source file, '-' for stdin"`
	Show   string `name:"show" default:"asm" enum:"tokens,ast,asm" help:"artifact to show"`
}

func (c *InspectCmd) Run(g *Globals) error {
	source, err := readSource(c.Source)
	if err != nil {
		return err
	}
	out := colorable.NewColorableStdout()
	switch c.Show {
	case "tokens":
		tokens, err := lang.Tokenize(source)
		if err != nil {
			return err
		}
		listing.Tokens(out, tokens)
	case "ast":
		prog, err := lang.Parse(source)
		if err != nil {
			return err
		}
		listing.Tree(out, prog)
	case "asm":
		asmText, err := g.compileToAsm(source)
		if err != nil {
			return err
		}
		return listing.Assembly(out, asmText, isatty.IsTerminal(os.Stdout.Fd()))
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(os.Stdout, "lithic %s (%s, %s)\n",
		mods.VersionString(), mods.BuildCompiler(), mods.BuildTimestamp())
	return nil
}
