package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/Hexalyse/jean-albert/agent"
	"github.com/Hexalyse/jean-albert/clipboard"
	"github.com/Hexalyse/jean-albert/config"
	"github.com/Hexalyse/jean-albert/doctor"
	"github.com/Hexalyse/jean-albert/hotkey"
	"github.com/Hexalyse/jean-albert/log"
	"github.com/Hexalyse/jean-albert/notify"
	"github.com/Hexalyse/jean-albert/paste"
	"github.com/Hexalyse/jean-albert/shutdown"
	"github.com/Hexalyse/jean-albert/transform"
	"github.com/Hexalyse/jean-albert/tray"
)

var version = "dev"

var shutdownOnce sync.Once

func main() {
	configFlag := flag.String("config", "", "Path to config.yaml (default: working directory, then executable directory)")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	logPathFlag := flag.String("logpath", "", "Log directory path (default: OS-specific location, use ./ for current dir)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("jean-albert %s\n", version)
		os.Exit(0)
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	if *doctorFlag {
		os.Exit(doctor.Run())
	}

	var cfg *config.Config
	cfgPath := *configFlag
	if cfgPath != "" {
		cfg, err = config.LoadFile(cfgPath)
	} else {
		cfg, cfgPath, err = config.Load()
	}
	if err != nil {
		log.Errorf("config error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info("config loaded from " + cfgPath)

	prompt, promptPath := config.LoadPrompt()
	if promptPath != "" {
		log.Info("prompt loaded from " + promptPath)
	} else {
		log.Warn("prompt.txt not found, using the built-in prompt")
	}

	// Combos were validated at load time.
	trigger, _ := cfg.TriggerCombo()
	exitCombo, _ := cfg.ExitCombo()
	log.SessionStart(trigger.String(), exitCombo.String())

	listener := hotkey.New(trigger, exitCombo)
	if err := listener.Register(); err != nil {
		log.Errorf("listener register error: %v", err)
		fmt.Fprintf(os.Stderr, "Error registering keyboard listener: %v\n", err)
		os.Exit(1)
	}
	defer listener.Unregister()

	paster := paste.System{}
	if err := paster.Init(); err != nil {
		log.Warnf("paste init failed: %v", err)
		fmt.Printf("Warning: paste init failed: %v\n", err)
		fmt.Println("Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput")
	}

	t := tray.New(trigger.String(), exitCombo.String())
	notifier := notify.New(cfg.Notifications)

	var app *agent.Agent
	gracefulShutdown := func() {
		shutdownOnce.Do(func() {
			if app != nil {
				log.SessionEnd(app.Cycles())
			}
			log.Close()
			t.Quit()
			os.Exit(0)
		})
	}

	app = agent.New(agent.Options{
		Listener:   listener,
		Clipboard:  clipboard.System{},
		Client:     transform.NewGemini(cfg.GeminiAPIKey),
		Paster:     paster,
		BasePrompt: prompt,
		Shutdown:   gracefulShutdown,
		Hooks: agent.Hooks{
			Busy:  t.SetBusy,
			Done:  notifier.Done,
			Empty: notifier.Empty,
			Error: func(err error) { notifier.Error(err.Error()) },
		},
	})

	go func() {
		select {
		case <-shutdown.Requests():
		case <-t.QuitRequested():
		}
		gracefulShutdown()
	}()

	go app.Run(context.Background())

	fmt.Printf("jean-albert %s started\n", version)
	fmt.Printf("Press %s to transform selected text\n", trigger)
	fmt.Printf("Press %s to exit\n", exitCombo)

	t.Run()
}
