package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"autocritique/internal/agent"
	"autocritique/internal/config"
	"autocritique/internal/loop"
	"autocritique/internal/preset"
	"autocritique/internal/promptwatch"
	"autocritique/internal/provider"
	"autocritique/internal/trace"
	"autocritique/internal/ui"
	"autocritique/internal/verify"
)

var runCmd = &cobra.Command{
	Use:   "run [task...]",
	Short: "Start the interactive generate-critique REPL",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Int("max-rounds", 0, "override max reflection rounds")
	runCmd.Flags().String("model", "", "override model identifier")
	runCmd.Flags().String("preset", "", "TOML preset file carrying both role prompts")
	runCmd.Flags().String("generation-prompt-file", "", "file containing a custom generation system prompt")
	runCmd.Flags().String("critique-prompt-file", "", "file containing a custom critique system prompt")
	runCmd.Flags().Bool("auto", false, "run a single task from args/stdin and exit (non-interactive)")
	runCmd.Flags().Bool("show-rounds", false, "print per-round critiques to stderr")
	runCmd.Flags().Bool("no-verify", false, "skip verification of the final candidate")
	runCmd.Flags().String("trace-dir", "", "write a TOML trace of each run into this directory")

	rootCmd.AddCommand(runCmd)
}

// session bundles everything a task execution needs.
type session struct {
	cfg        config.Config
	printer    *ui.Printer
	provider   provider.Provider
	presetPath string
	showRounds bool
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := ui.New()

	applyFlagOverrides(cmd, &cfg)

	presetPath, err := loadPrompts(cmd, &cfg)
	if err != nil {
		return err
	}

	showRounds, _ := cmd.Flags().GetBool("show-rounds")
	s := &session{
		cfg:        cfg,
		printer:    printer,
		provider:   provider.FromEnv(cfg.BaseURL, cfg.Verbose),
		presetPath: presetPath,
		showRounds: showRounds,
	}

	ctx, cancel := setupSignalContext(printer)
	defer cancel()

	if auto, _ := cmd.Flags().GetBool("auto"); auto {
		return runAutoMode(ctx, s, args)
	}
	return runREPL(ctx, s)
}

// applyFlagOverrides applies CLI flag values to the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetInt("max-rounds"); v > 0 {
		cfg.MaxRounds = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	if v, _ := cmd.Flags().GetBool("no-verify"); v {
		cfg.NoVerify = true
	}
	if v, _ := cmd.Flags().GetString("trace-dir"); v != "" {
		cfg.TraceDir = v
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
}

// loadPrompts resolves the role prompts from defaults, config, a preset
// file, and per-role flag overrides, in that order. It returns the preset
// path (if one was given) so the REPL can watch it for edits.
func loadPrompts(cmd *cobra.Command, cfg *config.Config) (presetPath string, err error) {
	if cfg.GenerationPrompt == "" {
		cfg.GenerationPrompt = agent.DefaultGenerationPrompt
	}
	if cfg.CritiquePrompt == "" {
		cfg.CritiquePrompt = agent.DefaultCritiquePrompt
	}

	if presetPath, _ = cmd.Flags().GetString("preset"); presetPath != "" {
		if err := applyPreset(presetPath, cfg); err != nil {
			return "", err
		}
	}

	if f, _ := cmd.Flags().GetString("generation-prompt-file"); f != "" {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("failed to read generation prompt file: %w", err)
		}
		cfg.GenerationPrompt = string(data)
	}
	if f, _ := cmd.Flags().GetString("critique-prompt-file"); f != "" {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("failed to read critique prompt file: %w", err)
		}
		cfg.CritiquePrompt = string(data)
	}
	return presetPath, nil
}

// applyPreset loads a preset file into the config.
func applyPreset(path string, cfg *config.Config) error {
	p, err := preset.Load(path)
	if err != nil {
		return err
	}
	cfg.GenerationPrompt = p.GenerationPrompt
	cfg.CritiquePrompt = p.CritiquePrompt
	if p.Model != "" {
		cfg.Model = p.Model
	}
	return nil
}

// buildLoop constructs a Loop from the session state.
func (s *session) buildLoop() *loop.Loop {
	return &loop.Loop{
		Provider:         s.provider,
		UI:               s.printer,
		Model:            s.cfg.Model,
		GenerationPrompt: s.cfg.GenerationPrompt,
		CritiquePrompt:   s.cfg.CritiquePrompt,
		MaxRounds:        s.cfg.MaxRounds,
		Delay:            time.Duration(s.cfg.DelayMs) * time.Millisecond,
	}
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		printer.Info("\nshutting down...")
		cancel()
	}()
	return ctx, cancel
}

// runAutoMode reads a task from args or stdin and runs it once.
func runAutoMode(ctx context.Context, s *session, args []string) error {
	task := strings.Join(args, " ")
	if task == "" {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			task = scanner.Text()
		}
	}
	if task == "" {
		return loop.ErrNoTask
	}
	return runTask(ctx, s, task)
}

// runREPL starts the interactive read-eval-print loop. When a preset file
// is in play it is watched for edits; reloads apply between tasks only.
func runREPL(ctx context.Context, s *session) error {
	s.printer.Banner()
	s.printer.Info("type a task, 'help', 'status', or 'quit'")
	s.printer.ShowStatus(s.cfg.MaxRounds, s.cfg.Model, s.provider.Name())
	fmt.Fprintln(os.Stderr)

	var updates <-chan promptwatch.Update
	if s.presetPath != "" {
		w, err := promptwatch.New(s.presetPath)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		updates = w.Updates
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		s.printer.Prompt()
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			s.printer.Info("goodbye")
			return nil
		case "help", "h", "?":
			s.printer.ShowHelp()
			continue
		case "status":
			s.printer.ShowStatus(s.cfg.MaxRounds, s.cfg.Model, s.provider.Name())
			continue
		}

		if updates != nil && promptwatch.Drain(updates) {
			if err := applyPreset(s.presetPath, &s.cfg); err != nil {
				s.printer.Error(fmt.Sprintf("preset reload failed: %v", err))
			} else {
				s.printer.Info("preset reloaded")
			}
		}

		if err := runTask(ctx, s, input); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Non-fatal errors: continue the REPL.
		}
		fmt.Fprintln(os.Stderr)
	}
	return nil
}

// runTask executes one reflection run: loop, optional verification of the
// final candidate, optional trace, and final-candidate-only stdout output.
func runTask(ctx context.Context, s *session, task string) error {
	s.printer.TaskStarted(task)
	started := time.Now()

	res, err := s.buildLoop().Run(ctx, task)
	if err != nil {
		var stepErr *loop.StepError
		if errors.As(err, &stepErr) {
			s.printer.Error(err.Error())
			if len(stepErr.Partial.Rounds) > 0 {
				s.printer.Info(fmt.Sprintf("%d completed round(s) before the failure", len(stepErr.Partial.Rounds)))
			}
			return err
		}
		if ctx.Err() != nil {
			s.printer.Info("task canceled")
			return err
		}
		s.printer.Error(err.Error())
		return err
	}

	if s.showRounds {
		for _, r := range res.Rounds {
			s.printer.Critique(r.Step, r.Critique)
		}
	}
	s.printer.TaskComplete(len(res.Rounds), time.Since(started))

	var outcomes []verify.Outcome
	if !s.cfg.NoVerify {
		outcomes = verify.Verify(ctx, res.FinalCandidate)
		for _, o := range outcomes {
			s.printer.Verification(o.Fragment, string(o.Result), o.Detail)
		}
	}

	if s.cfg.TraceDir != "" {
		tr := trace.FromResult(task, s.cfg.Model, s.provider.Name(), started, res, outcomes)
		if path, err := trace.Write(s.cfg.TraceDir, tr); err != nil {
			s.printer.Error(fmt.Sprintf("failed to write trace: %v", err))
		} else if s.cfg.Verbose {
			s.printer.Info("trace written to " + path)
		}
	}

	// Only the final candidate reaches stdout.
	fmt.Println(res.FinalCandidate)
	return nil
}
